package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/manojthapa/neuroarc/internal/logger"
	"github.com/manojthapa/neuroarc/internal/models"
)

// TailorService rewrites a CV toward a specific job posting.
type TailorService interface {
	Tailor(ctx context.Context, profile *models.CandidateProfile, jobTitle, jobDescription, companyName string, analysis *models.FitReport) (*models.TailoredCV, error)
}

type tailorService struct {
	oracle OracleService
	logger *zap.Logger
}

func NewTailorService(oracle OracleService, log *zap.Logger) TailorService {
	return &tailorService{oracle: oracle, logger: log}
}

func (s *tailorService) Tailor(ctx context.Context, profile *models.CandidateProfile, jobTitle, jobDescription, companyName string, analysis *models.FitReport) (*models.TailoredCV, error) {
	userPrompt := buildTailoringUserPrompt(
		profile.Text, jobTitle, jobDescription, companyName,
		analysis, profile.Contact, profile.Name,
	)

	raw, err := s.oracle.InvokeJSON(ctx, tailoringSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	var cv models.TailoredCV
	if err := json.Unmarshal([]byte(raw), &cv); err != nil {
		s.logger.Error("unparseable tailoring response",
			zap.Error(err),
			zap.String("raw", logger.Truncate(raw, 500)))
		return nil, &MalformedOutputError{Raw: raw, Cause: err}
	}

	applyVerifiedContact(&cv, profile)

	for _, skill := range cv.ImprovementReport.SkillsAdded {
		if !cv.HasSkill(skill) {
			s.logger.Warn("skill reported as added but absent from skills section",
				zap.String("skill", skill))
		}
	}

	cv.GapAnalysis = gapAnalysisLine(analysis, &cv)

	return &cv, nil
}

// applyVerifiedContact overrides the model-produced header with the contact
// details extracted from the original document. Models occasionally emit
// placeholders despite instructions.
func applyVerifiedContact(cv *models.TailoredCV, profile *models.CandidateProfile) {
	if profile.Name != "" {
		cv.Header.Name = profile.Name
	}
	if profile.Contact.Email != "" {
		cv.Header.Email = profile.Contact.Email
	}
	if profile.Contact.Phone != "" {
		cv.Header.Phone = profile.Contact.Phone
	}
	if profile.Contact.LinkedIn != "" {
		cv.Header.LinkedIn = profile.Contact.LinkedIn
	}
}

// gapAnalysisLine summarizes the score movement for legacy consumers.
func gapAnalysisLine(analysis *models.FitReport, cv *models.TailoredCV) string {
	oldScore := "0"
	if analysis != nil && analysis.OverallScore.Set {
		oldScore = analysis.OverallScore.String()
	}
	return fmt.Sprintf("Optimization Complete. Score improved from %s%% to %s%%.",
		oldScore, cv.ImprovementReport.NewScore.String())
}
