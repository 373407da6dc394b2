package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/manojthapa/neuroarc/internal/models"
)

func tailoringResponse() string {
	return `{
		"header": {"name": "Placeholder Name", "email": "placeholder@example.com"},
		"summary": "Python developer with cloud experience.",
		"skills": {"languages": ["Python"], "cloud": ["AWS", "Docker"]},
		"experience": [{"title": "Developer", "company": "Acme", "dates": "2019 - 2022", "bullets": ["Built APIs"]}],
		"certifications": ["AWS Certified Cloud Practitioner", {"name": "Scrum Master", "issuer": "Scrum.org", "year": "2021"}],
		"improvement_report": {
			"original_score": 62,
			"new_score": 85,
			"skills_added": ["Docker"],
			"remaining_gaps": ["Kubernetes production experience"]
		}
	}`
}

func analysisFixture() *models.FitReport {
	report := &models.FitReport{DomainMatch: models.DomainGoodMatch}
	report.OverallScore = models.FlexScore{Value: 62, Set: true}
	report.Breakdown.KeywordMatch.MissingCriticalKeywords = []string{"Docker"}
	return report
}

func TestTailor_ParsesCV(t *testing.T) {
	oracle := &fakeOracle{response: tailoringResponse()}
	tailor := NewTailorService(oracle, zap.NewNop())

	cv, err := tailor.Tailor(context.Background(), testProfile(), "Backend Engineer", "role desc", "Acme", analysisFixture())

	require.NoError(t, err)
	assert.Equal(t, "Python developer with cloud experience.", cv.Summary)
	assert.Equal(t, []string{"Python"}, cv.Skills["languages"])
	require.Len(t, cv.Experience, 1)
	assert.Equal(t, "Acme", cv.Experience[0].Company)
}

func TestTailor_CertificationVariants(t *testing.T) {
	oracle := &fakeOracle{response: tailoringResponse()}
	tailor := NewTailorService(oracle, zap.NewNop())

	cv, err := tailor.Tailor(context.Background(), testProfile(), "Backend Engineer", "role desc", "Acme", analysisFixture())

	require.NoError(t, err)
	require.Len(t, cv.Certifications, 2)
	assert.True(t, cv.Certifications[0].Plain)
	assert.Equal(t, "AWS Certified Cloud Practitioner", cv.Certifications[0].Name)
	assert.False(t, cv.Certifications[1].Plain)
	assert.Equal(t, "Scrum.org", cv.Certifications[1].Issuer)
}

func TestTailor_ContactOverride(t *testing.T) {
	oracle := &fakeOracle{response: tailoringResponse()}
	tailor := NewTailorService(oracle, zap.NewNop())

	profile := testProfile()
	profile.Contact = models.Contact{Email: "john.smith@example.com", Phone: "+44 7911 123456"}

	cv, err := tailor.Tailor(context.Background(), profile, "Backend Engineer", "role desc", "Acme", analysisFixture())

	require.NoError(t, err)
	// Extracted contact wins over whatever the model put in the header.
	assert.Equal(t, "John Smith", cv.Header.Name)
	assert.Equal(t, "john.smith@example.com", cv.Header.Email)
	assert.Equal(t, "+44 7911 123456", cv.Header.Phone)
}

func TestTailor_GapAnalysisLine(t *testing.T) {
	oracle := &fakeOracle{response: tailoringResponse()}
	tailor := NewTailorService(oracle, zap.NewNop())

	cv, err := tailor.Tailor(context.Background(), testProfile(), "Backend Engineer", "role desc", "Acme", analysisFixture())

	require.NoError(t, err)
	assert.Equal(t, "Optimization Complete. Score improved from 62% to 85%.", cv.GapAnalysis)
}

func TestTailor_GapAnalysisWithoutAnalysis(t *testing.T) {
	oracle := &fakeOracle{response: tailoringResponse()}
	tailor := NewTailorService(oracle, zap.NewNop())

	cv, err := tailor.Tailor(context.Background(), testProfile(), "Backend Engineer", "role desc", "Acme", nil)

	require.NoError(t, err)
	assert.Equal(t, "Optimization Complete. Score improved from 0% to 85%.", cv.GapAnalysis)
}

func TestTailor_PromptIncludesContactBlock(t *testing.T) {
	oracle := &fakeOracle{response: tailoringResponse()}
	tailor := NewTailorService(oracle, zap.NewNop())

	profile := testProfile()
	profile.Contact.Email = "john.smith@example.com"

	_, err := tailor.Tailor(context.Background(), profile, "Backend Engineer", "role desc", "Acme", analysisFixture())

	require.NoError(t, err)
	assert.Contains(t, oracle.lastUser, "EXTRACTED CONTACT INFORMATION")
	assert.Contains(t, oracle.lastUser, "john.smith@example.com")
	assert.Contains(t, oracle.lastUser, "Docker")
}

func TestTailor_MalformedResponse(t *testing.T) {
	oracle := &fakeOracle{response: "sorry, I had trouble"}
	tailor := NewTailorService(oracle, zap.NewNop())

	_, err := tailor.Tailor(context.Background(), testProfile(), "Engineer", "role", "Acme", nil)

	assert.ErrorIs(t, err, models.ErrMalformedOutput)
}

func TestHasSkill(t *testing.T) {
	cv := &models.TailoredCV{Skills: map[string][]string{
		"cloud": {"AWS", "Docker "},
	}}

	assert.True(t, cv.HasSkill("docker"))
	assert.True(t, cv.HasSkill("AWS"))
	assert.False(t, cv.HasSkill("Kubernetes"))
}

func TestPDFFilename(t *testing.T) {
	assert.Equal(t, "CV_Acme_Corp_Backend_Engineer.pdf", models.PDFFilename("Acme Corp", "Backend Engineer"))
	assert.Equal(t, "CV_A_B_C_.pdf", models.PDFFilename("A/B", "C:"))
}
