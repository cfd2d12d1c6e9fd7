package handler

import (
	"errors"
	"net/url"
	"path/filepath"
	"time"

	"github.com/fadilmartias/resume-analyzer/internal/config"
	"github.com/fadilmartias/resume-analyzer/internal/dto"
	"github.com/fadilmartias/resume-analyzer/internal/middleware"
	"github.com/fadilmartias/resume-analyzer/internal/repository"
	"github.com/fadilmartias/resume-analyzer/internal/response"
	"github.com/fadilmartias/resume-analyzer/internal/usecase"
	"github.com/fadilmartias/resume-analyzer/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type ResumeHandler struct {
	resumes       *usecase.ResumeUsecase
	candidates    *usecase.CandidateUsecase
	uploadDir     string
	maxUploadSize int64
	log           zerolog.Logger
}

func NewResumeHandler(resumes *usecase.ResumeUsecase, candidates *usecase.CandidateUsecase, cfg *config.AppConfig, log zerolog.Logger) *ResumeHandler {
	return &ResumeHandler{
		resumes:       resumes,
		candidates:    candidates,
		uploadDir:     cfg.UploadDir,
		maxUploadSize: cfg.MaxUploadSize,
		log:           log.With().Str("component", "handler").Logger(),
	}
}

func (h *ResumeHandler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/hello", h.Hello)
	api.Post("/pdf-analysis", middleware.RateLimiter(10, time.Minute), h.AnalyzeResume)
	api.Post("/ats", middleware.RateLimiter(20, time.Minute), h.ATSScore)
	api.Post("/cover_letter", middleware.RateLimiter(20, time.Minute), h.CoverLetter)
	api.Get("/candidates", h.ListCandidates)
	api.Post("/candidates/match", h.MatchCandidates)
	api.Get("/candidates/:email", h.GetCandidate)
}

func (h *ResumeHandler) Hello(c *fiber.Ctx) error {
	text, err := h.resumes.Hello(c.UserContext())
	if err != nil {
		return util.AppErrorResponse(c, err, "Failed to reach AI model")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: text,
		Data:    text,
	})
}

func (h *ResumeHandler) AnalyzeResume(c *fiber.Ctx) error {
	file, err := c.FormFile("pdf_file")
	if err != nil {
		file, err = c.FormFile("pdfFile")
	}
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "No file part in the request",
		}, nil)
	}
	if file.Filename == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "No selected file",
		}, nil)
	}
	if !util.AllowedFile(file.Filename) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid file type",
		}, nil)
	}
	if h.maxUploadSize > 0 && file.Size > h.maxUploadSize {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "File is too large",
		}, nil)
	}

	filename := uuid.NewString() + "_" + util.SecureFilename(file.Filename)
	savePath := filepath.Join(h.uploadDir, filename)
	if err := c.SaveFile(file, savePath); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "Cannot save uploaded file",
		}, err)
	}

	res, err := h.resumes.AnalyzeResume(c.UserContext(), usecase.AnalyzeInput{
		FilePath:       savePath,
		Filename:       filename,
		JobDescription: c.FormValue("job_description", c.FormValue("jobDescription")),
	})
	if err != nil {
		h.log.Error().Err(err).Str("file", filename).Msg("resume analysis failed")
		return util.AppErrorResponse(c, err, "Failed to analyze resume")
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success analyze resume",
		Data:    res,
	})
}

func (h *ResumeHandler) ATSScore(c *fiber.Ctx) error {
	score, err := h.resumes.ATSScore(c.UserContext(),
		c.FormValue("resume_text"),
		queryOrForm(c, "job_description"),
	)
	if err != nil {
		return util.AppErrorResponse(c, err, "Failed to generate ATS score")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success generate ATS score",
		Data:    fiber.Map{"ats_score": score},
	})
}

func (h *ResumeHandler) CoverLetter(c *fiber.Ctx) error {
	letter, err := h.resumes.CoverLetter(c.UserContext(), usecase.CoverLetterInput{
		ResumeText:        c.FormValue("resume_text"),
		JobDescription:    queryOrForm(c, "job_description"),
		CompanyName:       queryOrForm(c, "company_name"),
		HiringManagerName: queryOrForm(c, "hiring_manager_name"),
		DesiredTone:       queryOrForm(c, "desired_tone"),
	})
	if err != nil {
		return util.AppErrorResponse(c, err, "Failed to generate cover letter")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success generate cover letter",
		Data:    fiber.Map{"cover_letter": letter},
	})
}

func (h *ResumeHandler) ListCandidates(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := c.QueryInt("page_size", defaultPageSize)
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	records, total, err := h.candidates.ListCandidates(c.UserContext(), page, pageSize)
	if err != nil {
		return util.AppErrorResponse(c, err, "Failed to load candidates")
	}

	data := make([]dto.CandidateRecordDTO, 0, len(records))
	for i := range records {
		data = append(data, dto.NewCandidateRecordDTO(&records[i]))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get candidates",
		Data:       data,
		Pagination: response.NewPagination(page, pageSize, total),
	})
}

func (h *ResumeHandler) GetCandidate(c *fiber.Ctx) error {
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		email = c.Params("email")
	}

	rec, err := h.candidates.GetCandidate(c.UserContext(), email)
	if errors.Is(err, repository.ErrCandidateNotFound) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "Candidate not found",
		}, nil)
	}
	if err != nil {
		return util.AppErrorResponse(c, err, "Failed to load candidate")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get candidate",
		Data:    dto.NewCandidateRecordDTO(rec),
	})
}

func (h *ResumeHandler) MatchCandidates(c *fiber.Ctx) error {
	var req dto.MatchCandidatesRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}

	matches, err := h.candidates.MatchCandidates(c.UserContext(), req)
	if err != nil {
		return util.AppErrorResponse(c, err, "Failed to match candidates")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success match candidates",
		Data:    matches,
	})
}

func queryOrForm(c *fiber.Ctx, key string) string {
	if v := c.Query(key); v != "" {
		return v
	}
	return c.FormValue(key)
}
