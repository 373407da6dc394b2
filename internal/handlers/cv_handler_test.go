package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/manojthapa/neuroarc/internal/models"
	"github.com/manojthapa/neuroarc/internal/services"
)

const sampleCV = `John Smith
john@example.com
Software Engineer

EXPERIENCE
Software Engineer at Acme, 2019 - 2022
Built Python APIs on AWS, deployed with Docker, versioned in git.

EDUCATION
Bachelor of Science in Computer Science, MIT`

type fakeScorer struct {
	report *models.FitReport
	err    error
}

func (f *fakeScorer) Score(_ context.Context, _ *models.CandidateProfile, _, _ string) (*models.FitReport, error) {
	return f.report, f.err
}

type fakeTailor struct {
	cv  *models.TailoredCV
	err error
}

func (f *fakeTailor) Tailor(_ context.Context, _ *models.CandidateProfile, _, _, _ string, _ *models.FitReport) (*models.TailoredCV, error) {
	return f.cv, f.err
}

func newTestApp(t *testing.T, scorer services.ScorerService, tailor services.TailorService) (*fiber.App, services.StoreService) {
	t.Helper()

	log := zap.NewNop()
	extractor := services.NewExtractorService(nil, log)
	analyzer := services.NewAnalyzerService(extractor, log)
	store := services.NewStoreService(time.Hour)
	renderer := services.NewRendererService()

	handler := NewCVHandler(analyzer, store, scorer, tailor, renderer, 10*1024*1024, log)

	app := fiber.New()
	cv := app.Group("/api/v1/cv")
	cv.Post("/upload", handler.HandleUpload)
	cv.Get("/:id", handler.HandleGet)
	cv.Post("/analyze", handler.HandleAnalyze)
	cv.Post("/generate", handler.HandleGenerate)
	cv.Post("/generate/pdf", handler.HandleGeneratePDF)

	return app, store
}

func uploadCV(t *testing.T, app *fiber.App, filename, content string) *http.Response {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cv/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

func TestUpload_TXTEndToEnd(t *testing.T) {
	app, _ := newTestApp(t, &fakeScorer{}, &fakeTailor{})

	resp := uploadCV(t, app, "cv.txt", sampleCV)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.UploadResponse
	decodeBody(t, resp, &body)

	assert.True(t, body.Success)
	// The ID is derived from the uploaded bytes, so the same file always
	// maps to the same CV.
	assert.Equal(t, services.ContentID([]byte(sampleCV)), body.CVID)
	assert.Equal(t, models.FormatTXT, body.Format)
	assert.Contains(t, body.Skills, "Python")
	assert.Contains(t, body.Skills, "Aws")
	assert.Equal(t, len(body.Skills), body.SkillsCount)
	assert.Equal(t, "john@example.com", body.Contact.Email)
	assert.Equal(t, "John Smith", body.Name)
	assert.NotEmpty(t, body.Education)
	require.NotNil(t, body.ExperienceYears)
	assert.InDelta(t, 3.0, *body.ExperienceYears, 0.01)
	assert.NotEmpty(t, body.Preview)
}

func TestUpload_UnsupportedExtension(t *testing.T) {
	app, _ := newTestApp(t, &fakeScorer{}, &fakeTailor{})

	resp := uploadCV(t, app, "cv.exe", "whatever")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpload_MissingFile(t *testing.T) {
	app, _ := newTestApp(t, &fakeScorer{}, &fakeTailor{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cv/upload", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGet_RoundTrip(t *testing.T) {
	app, _ := newTestApp(t, &fakeScorer{}, &fakeTailor{})

	resp := uploadCV(t, app, "cv.txt", sampleCV)
	var uploaded models.UploadResponse
	decodeBody(t, resp, &uploaded)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cv/"+uploaded.CVID, nil)
	getResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, getResp.StatusCode)
}

func TestGet_UnknownID(t *testing.T) {
	app, _ := newTestApp(t, &fakeScorer{}, &fakeTailor{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cv/doesnotexist1", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAnalyze(t *testing.T) {
	report := &models.FitReport{
		DomainMatch:  models.DomainGoodMatch,
		OverallScore: models.FlexScore{Value: 72, Set: true},
		Score:        72,
	}
	app, _ := newTestApp(t, &fakeScorer{report: report}, &fakeTailor{})

	resp := uploadCV(t, app, "cv.txt", sampleCV)
	var uploaded models.UploadResponse
	decodeBody(t, resp, &uploaded)

	payload, _ := json.Marshal(models.GenerateRequest{
		CVID:           uploaded.CVID,
		JobTitle:       "Backend Engineer",
		JobDescription: "Python and AWS role",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cv/analyze", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	analyzeResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, analyzeResp.StatusCode)

	var body models.AnalyzeResponse
	decodeBody(t, analyzeResp, &body)
	assert.True(t, body.Success)
	require.NotNil(t, body.Analysis)
	assert.Equal(t, 72, body.Analysis.Score)
	assert.Equal(t, "Software Engineering", body.Industry)
}

func TestAnalyze_MissingFields(t *testing.T) {
	app, _ := newTestApp(t, &fakeScorer{}, &fakeTailor{})

	payload, _ := json.Marshal(models.GenerateRequest{CVID: "abc"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cv/analyze", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalyze_InvalidCV(t *testing.T) {
	app, _ := newTestApp(t, &fakeScorer{err: models.ErrInvalidCV}, &fakeTailor{})

	resp := uploadCV(t, app, "cv.txt", sampleCV)
	var uploaded models.UploadResponse
	decodeBody(t, resp, &uploaded)

	payload, _ := json.Marshal(models.GenerateRequest{
		CVID:           uploaded.CVID,
		JobTitle:       "Chef",
		JobDescription: "Cooking role",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cv/analyze", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	analyzeResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, analyzeResp.StatusCode)
}

func TestAnalyze_OracleUnavailable(t *testing.T) {
	app, _ := newTestApp(t, &fakeScorer{err: models.ErrOracleUnavailable}, &fakeTailor{})

	resp := uploadCV(t, app, "cv.txt", sampleCV)
	var uploaded models.UploadResponse
	decodeBody(t, resp, &uploaded)

	payload, _ := json.Marshal(models.GenerateRequest{
		CVID:           uploaded.CVID,
		JobTitle:       "Engineer",
		JobDescription: "role",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cv/analyze", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	analyzeResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, analyzeResp.StatusCode)
}

func TestGeneratePDF_HeadersAndBody(t *testing.T) {
	tailored := &models.TailoredCV{
		Header:  models.Header{Name: "John Smith", Email: "john@example.com"},
		Summary: "Python developer.",
		ImprovementReport: models.ImprovementReport{
			NewScore:    models.FlexScore{Value: 85, Set: true},
			SkillsAdded: []string{"Docker", "CI/CD"},
		},
	}
	app, _ := newTestApp(t, &fakeScorer{}, &fakeTailor{cv: tailored})

	resp := uploadCV(t, app, "cv.txt", sampleCV)
	var uploaded models.UploadResponse
	decodeBody(t, resp, &uploaded)

	payload, _ := json.Marshal(models.GenerateRequest{
		CVID:           uploaded.CVID,
		JobTitle:       "Backend Engineer",
		JobDescription: "Python role",
		CompanyName:    "Acme Corp",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cv/generate/pdf", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	pdfResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, pdfResp.StatusCode)

	assert.Equal(t, "application/pdf", pdfResp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="CV_Acme_Corp_Backend_Engineer.pdf"`, pdfResp.Header.Get("Content-Disposition"))
	assert.Equal(t, "85", pdfResp.Header.Get("X-New-Score"))
	assert.Equal(t, "Docker, CI/CD", pdfResp.Header.Get("X-Skills-Added"))

	data, err := io.ReadAll(pdfResp.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGenerate_TextPreview(t *testing.T) {
	tailored := &models.TailoredCV{
		Header:  models.Header{Name: "John Smith"},
		Summary: "Python developer.",
	}
	app, _ := newTestApp(t, &fakeScorer{}, &fakeTailor{cv: tailored})

	resp := uploadCV(t, app, "cv.txt", sampleCV)
	var uploaded models.UploadResponse
	decodeBody(t, resp, &uploaded)

	payload, _ := json.Marshal(models.GenerateRequest{
		CVID:           uploaded.CVID,
		JobTitle:       "Backend Engineer",
		JobDescription: "Python role",
		CompanyName:    "Acme",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cv/generate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	genResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, genResp.StatusCode)

	var body map[string]any
	decodeBody(t, genResp, &body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Backend Engineer", body["job_title"])
	assert.Equal(t, "Acme", body["company"])
}
