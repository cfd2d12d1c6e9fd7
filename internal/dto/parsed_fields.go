package dto

// Wire keys of the fields read from the model's resume JSON.
const (
	FieldName           = "name"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldEducation      = "education"
	FieldExperience     = "experience"
	FieldSkills         = "skills"
	FieldCertifications = "certifications"
	FieldProjects       = "projects"
	FieldLanguages      = "languages"
	FieldAdditionalInfo = "additional_info"
)

var FieldNames = []string{
	FieldName,
	FieldEmail,
	FieldPhone,
	FieldEducation,
	FieldExperience,
	FieldSkills,
	FieldCertifications,
	FieldProjects,
	FieldLanguages,
	FieldAdditionalInfo,
}

// ParsedFields is the intermediate between model output and a stored
// candidate. nil means "not provided".
type ParsedFields struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	Education      *string `json:"education"`
	Experience     *string `json:"experience"`
	Skills         *string `json:"skills"`
	Certifications *string `json:"certifications"`
	Projects       *string `json:"projects"`
	Languages      *string `json:"languages"`
	AdditionalInfo *string `json:"additional_info"`
}

func (f *ParsedFields) slot(key string) **string {
	switch key {
	case FieldName:
		return &f.Name
	case FieldEmail:
		return &f.Email
	case FieldPhone:
		return &f.Phone
	case FieldEducation:
		return &f.Education
	case FieldExperience:
		return &f.Experience
	case FieldSkills:
		return &f.Skills
	case FieldCertifications:
		return &f.Certifications
	case FieldProjects:
		return &f.Projects
	case FieldLanguages:
		return &f.Languages
	case FieldAdditionalInfo:
		return &f.AdditionalInfo
	}
	return nil
}

func (f *ParsedFields) Get(key string) *string {
	if s := f.slot(key); s != nil {
		return *s
	}
	return nil
}

// Set ignores unknown keys.
func (f *ParsedFields) Set(key string, value *string) {
	if s := f.slot(key); s != nil {
		*s = value
	}
}

// Count returns how many fields are provided.
func (f *ParsedFields) Count() int {
	n := 0
	for _, k := range FieldNames {
		if f.Get(k) != nil {
			n++
		}
	}
	return n
}

func (f *ParsedFields) IsEmpty() bool {
	return f.Count() == 0
}
