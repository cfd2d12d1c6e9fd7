package dto

import (
	"time"

	"github.com/fadilmartias/resume-analyzer/internal/model"
	"github.com/google/uuid"
)

type CandidateRecordDTO struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          *string   `json:"email"`
	Phone          *string   `json:"phone"`
	Education      *string   `json:"education"`
	Experience     *string   `json:"experience"`
	Skills         *string   `json:"skills"`
	Certifications *string   `json:"certifications"`
	Projects       *string   `json:"projects"`
	Languages      *string   `json:"languages"`
	AdditionalInfo *string   `json:"additional_info"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewCandidateRecordDTO(rec *model.CandidateRecord) CandidateRecordDTO {
	return CandidateRecordDTO{
		ID:             rec.ID,
		Name:           rec.Name,
		Email:          rec.Email,
		Phone:          rec.Phone,
		Education:      rec.Education,
		Experience:     rec.Experience,
		Skills:         rec.Skills,
		Certifications: rec.Certifications,
		Projects:       rec.Projects,
		Languages:      rec.Languages,
		AdditionalInfo: rec.AdditionalInfo,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
}

type CandidateMatchDTO struct {
	Candidate CandidateRecordDTO `json:"candidate"`
	Distance  float64            `json:"distance"`
}

type MatchCandidatesRequest struct {
	JobDescription string `json:"job_description"`
	TopK           int    `json:"top_k"`
}

// StoreResultDTO reports what happened to the parsed resume of an upload.
type StoreResultDTO struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	Fields    ParsedFields        `json:"fields"`
	Candidate *CandidateRecordDTO `json:"candidate"`
}

type ResumeAnalysisDTO struct {
	Analysis   string          `json:"analysis"`
	Filename   string          `json:"filename"`
	ResumeText string          `json:"resume_text"`
	Candidate  *StoreResultDTO `json:"candidate"`
}
