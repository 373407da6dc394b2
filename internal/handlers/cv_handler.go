package handlers

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/manojthapa/neuroarc/internal/models"
	"github.com/manojthapa/neuroarc/internal/services"
)

const previewLength = 500

type CVHandler struct {
	analyzer    services.AnalyzerService
	store       services.StoreService
	scorer      services.ScorerService
	tailor      services.TailorService
	renderer    services.RendererService
	maxFileSize int64
	logger      *zap.Logger
}

func NewCVHandler(
	analyzer services.AnalyzerService,
	store services.StoreService,
	scorer services.ScorerService,
	tailor services.TailorService,
	renderer services.RendererService,
	maxFileSize int64,
	logger *zap.Logger,
) *CVHandler {
	return &CVHandler{
		analyzer:    analyzer,
		store:       store,
		scorer:      scorer,
		tailor:      tailor,
		renderer:    renderer,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// HandleUpload receives a CV file, extracts and analyzes it, and stores the
// resulting profile under a content-derived ID.
func (h *CVHandler) HandleUpload(c *fiber.Ctx) error {
	if removed := h.store.Sweep(); removed > 0 {
		h.logger.Debug("expired cvs swept", zap.Int("removed", removed))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded. Send the CV as multipart field 'file'",
		})
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".pdf" && ext != ".docx" && ext != ".txt" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Unsupported file format: %s. Upload a PDF, DOCX or TXT file", ext),
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return h.errorResponse(c, fmt.Errorf("%w. Max size: %d bytes", models.ErrFileTooLarge, h.maxFileSize))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to open uploaded file",
		})
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}

	profile, err := h.analyzer.Analyze(fileHeader.Filename, content)
	if err != nil {
		return h.errorResponse(c, err)
	}

	cvID := services.ContentID(content)
	h.store.Put(cvID, profile)

	return c.JSON(models.UploadResponse{
		Success:         true,
		CVID:            cvID,
		Filename:        profile.Filename,
		Format:          profile.Format,
		TextLength:      profile.TextLength,
		Skills:          profile.Skills,
		SkillsCount:     len(profile.Skills),
		Contact:         profile.Contact,
		Education:       profile.Education,
		Name:            profile.Name,
		ExperienceYears: profile.ExperienceYears,
		Industry:        profile.Industry,
		Preview:         preview(profile.Text, previewLength),
	})
}

// HandleGet returns the stored profile for a CV ID.
func (h *CVHandler) HandleGet(c *fiber.Ctx) error {
	profile, err := h.store.Get(c.Params("id"))
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"cv_id":   c.Params("id"),
		"profile": profile,
		"preview": preview(profile.Text, previewLength),
	})
}

// HandleAnalyze scores the stored CV against a job description.
func (h *CVHandler) HandleAnalyze(c *fiber.Ctx) error {
	req, profile, err := h.parseGenerateRequest(c)
	if err != nil {
		return h.errorResponse(c, err)
	}

	report, err := h.scorer.Score(c.Context(), profile, req.JobTitle, req.JobDescription)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(models.AnalyzeResponse{
		Success:  true,
		Analysis: report,
		Industry: profile.Industry,
	})
}

// HandleGenerate tailors the stored CV toward the job and returns a text
// preview of the result.
func (h *CVHandler) HandleGenerate(c *fiber.Ctx) error {
	req, profile, err := h.parseGenerateRequest(c)
	if err != nil {
		return h.errorResponse(c, err)
	}

	cv, err := h.tailor.Tailor(c.Context(), profile, req.JobTitle, req.JobDescription, req.CompanyName, req.ATSAnalysis)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"tailored_cv": cv,
		"job_title":   req.JobTitle,
		"company":     req.CompanyName,
	})
}

// HandleGeneratePDF tailors the stored CV and streams the rendered PDF.
// Score movement travels in response headers so the body stays a pure
// binary download.
func (h *CVHandler) HandleGeneratePDF(c *fiber.Ctx) error {
	req, profile, err := h.parseGenerateRequest(c)
	if err != nil {
		return h.errorResponse(c, err)
	}

	cv, err := h.tailor.Tailor(c.Context(), profile, req.JobTitle, req.JobDescription, req.CompanyName, req.ATSAnalysis)
	if err != nil {
		return h.errorResponse(c, err)
	}

	pdfBytes, err := h.renderer.Render(cv)
	if err != nil {
		h.logger.Error("pdf rendering failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to generate PDF",
		})
	}

	filename := models.PDFFilename(req.CompanyName, req.JobTitle)

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Set("X-New-Score", cv.ImprovementReport.NewScore.String())
	c.Set("X-Skills-Added", strings.Join(cv.ImprovementReport.SkillsAdded, ", "))
	c.Set(fiber.HeaderAccessControlExposeHeaders, "X-New-Score, X-Skills-Added, Content-Disposition")

	return c.Send(pdfBytes)
}

func (h *CVHandler) parseGenerateRequest(c *fiber.Ctx) (*models.GenerateRequest, *models.CandidateProfile, error) {
	var req models.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, nil, errBadRequest("invalid request body")
	}
	if req.CVID == "" || req.JobTitle == "" || req.JobDescription == "" {
		return nil, nil, errBadRequest("cv_id, job_title and job_description are required")
	}

	profile, err := h.store.Get(req.CVID)
	if err != nil {
		return nil, nil, err
	}
	return &req, profile, nil
}

func (h *CVHandler) errorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var badReq *badRequestError

	switch {
	case errors.As(err, &badReq):
		status = fiber.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, models.ErrInvalidCV),
		errors.Is(err, models.ErrUnsupportedFormat),
		errors.Is(err, models.ErrEmptyInput),
		errors.Is(err, models.ErrFileTooLarge),
		errors.Is(err, models.ErrDecode):
		status = fiber.StatusBadRequest
	case errors.Is(err, models.ErrAuth):
		status = fiber.StatusUnauthorized
	case errors.Is(err, models.ErrNotConfigured),
		errors.Is(err, models.ErrOracleUnavailable):
		status = fiber.StatusServiceUnavailable
	case errors.Is(err, models.ErrMalformedOutput):
		status = fiber.StatusBadGateway
	default:
		h.logger.Error("unhandled request error", zap.Error(err))
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

type badRequestError struct{ msg string }

func (e *badRequestError) Error() string { return e.msg }

func errBadRequest(msg string) error { return &badRequestError{msg: msg} }

func preview(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}
