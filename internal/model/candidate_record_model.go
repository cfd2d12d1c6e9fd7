package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CandidateRecord is unique by email when one is known. Records without an
// email are anonymous and never merged.
type CandidateRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Email          *string   `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	Phone          *string   `gorm:"type:varchar(50)" json:"phone"`
	Education      *string   `gorm:"type:text" json:"education"`
	Experience     *string   `gorm:"type:text" json:"experience"`
	Skills         *string   `gorm:"type:text" json:"skills"`
	Certifications *string   `gorm:"type:text" json:"certifications"`
	Projects       *string   `gorm:"type:text" json:"projects"`
	Languages      *string   `gorm:"type:text" json:"languages"`
	AdditionalInfo *string   `gorm:"type:text" json:"additional_info"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (c *CandidateRecord) TableName() string {
	return "candidate_records"
}

func (c *CandidateRecord) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Clone returns a deep copy; the optional fields do not share storage.
func (c *CandidateRecord) Clone() *CandidateRecord {
	out := *c
	for _, p := range []**string{
		&out.Email, &out.Phone, &out.Education, &out.Experience, &out.Skills,
		&out.Certifications, &out.Projects, &out.Languages, &out.AdditionalInfo,
	} {
		if *p != nil {
			v := **p
			*p = &v
		}
	}
	return &out
}
