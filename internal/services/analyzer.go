package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/manojthapa/neuroarc/internal/models"
)

// AnalyzerService runs the full upload pipeline: extract text, then derive
// the candidate profile from it.
type AnalyzerService interface {
	Analyze(filename string, content []byte) (*models.CandidateProfile, error)
}

type analyzerService struct {
	extractor ExtractorService
	logger    *zap.Logger
}

func NewAnalyzerService(extractor ExtractorService, log *zap.Logger) AnalyzerService {
	return &analyzerService{extractor: extractor, logger: log}
}

func (s *analyzerService) Analyze(filename string, content []byte) (*models.CandidateProfile, error) {
	doc, err := s.extractor.Extract(filename, content)
	if err != nil {
		return nil, err
	}

	profile := &models.CandidateProfile{
		Filename:        filename,
		Format:          doc.Format,
		Text:            doc.Text,
		TextLength:      len(doc.Text),
		Name:            ExtractName(doc.Text),
		Skills:          ExtractSkills(doc.Text),
		Contact:         ExtractContact(doc.Text),
		Education:       ExtractEducation(doc.Text),
		ExperienceYears: ExtractExperienceYears(doc.Text, time.Now().Year()),
		Industry:        DetectIndustry(doc.Text),
	}

	s.logger.Info("cv analyzed",
		zap.String("filename", filename),
		zap.String("format", string(doc.Format)),
		zap.Int("text_length", profile.TextLength),
		zap.Int("skills", len(profile.Skills)),
		zap.String("industry", profile.Industry))

	return profile, nil
}
