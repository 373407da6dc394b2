package services

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/manojthapa/neuroarc/internal/logger"
	"github.com/manojthapa/neuroarc/internal/models"
)

// ScorerService runs the ATS fit analysis between a candidate and a job.
type ScorerService interface {
	Score(ctx context.Context, profile *models.CandidateProfile, jobTitle, jobDescription string) (*models.FitReport, error)
}

type scorerService struct {
	oracle OracleService
	logger *zap.Logger
}

func NewScorerService(oracle OracleService, log *zap.Logger) ScorerService {
	return &scorerService{oracle: oracle, logger: log}
}

func (s *scorerService) Score(ctx context.Context, profile *models.CandidateProfile, jobTitle, jobDescription string) (*models.FitReport, error) {
	userPrompt := buildScoringUserPrompt(profile.Text, profile.Skills, jobTitle, jobDescription)

	raw, err := s.oracle.InvokeJSON(ctx, scoringSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	var report models.FitReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		s.logger.Error("unparseable scoring response",
			zap.Error(err),
			zap.String("raw", logger.Truncate(raw, 500)))
		return nil, &MalformedOutputError{Raw: raw, Cause: err}
	}

	if report.IsValidCV != nil && !*report.IsValidCV {
		s.logger.Info("document rejected as non-CV",
			zap.String("reason", report.RejectionReason))
		return nil, models.ErrInvalidCV
	}

	// Frontend compatibility: score mirrors overall_ats_score.
	if report.OverallScore.Set {
		report.Score = report.OverallScore.Value
	}

	if min, max, ok := report.DomainMatch.ScoreBand(); ok && report.OverallScore.Set {
		if report.OverallScore.Value < min || report.OverallScore.Value > max {
			s.logger.Warn("score outside domain match band",
				zap.String("domain_match", string(report.DomainMatch)),
				zap.Int("score", report.OverallScore.Value),
				zap.Int("band_min", min),
				zap.Int("band_max", max))
		}
	}

	return &report, nil
}
