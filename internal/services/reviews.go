package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/manojthapa/neuroarc/internal/models"
)

// ReviewService persists user reviews in a flat JSON file. The file is the
// source of truth; every call reads it fresh so external edits survive
// restarts and concurrent processes behave sanely enough for this scale.
type ReviewService interface {
	List() ([]models.Review, error)
	Add(name string, rating int, comment string) (*models.Review, error)
	Delete(id string) (bool, error)
}

type reviewService struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewReviewService(dataDir string) ReviewService {
	return &reviewService{
		path: filepath.Join(dataDir, "reviews.json"),
		now:  time.Now,
	}
}

func (s *reviewService) List() ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *reviewService) Add(name string, rating int, comment string) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reviews, err := s.load()
	if err != nil {
		return nil, err
	}

	review := models.Review{
		ID:      uuid.New().String(),
		Name:    name,
		Rating:  rating,
		Comment: comment,
		Date:    s.now().Format(time.RFC3339),
	}

	// Newest first.
	reviews = append([]models.Review{review}, reviews...)
	if err := s.save(reviews); err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *reviewService) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reviews, err := s.load()
	if err != nil {
		return false, err
	}

	kept := reviews[:0]
	for _, r := range reviews {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(reviews) {
		return false, nil
	}
	return true, s.save(kept)
}

func (s *reviewService) load() ([]models.Review, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []models.Review{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read reviews file: %w", err)
	}

	var reviews []models.Review
	if err := json.Unmarshal(data, &reviews); err != nil {
		// Corrupt file resets to empty rather than blocking new reviews.
		return []models.Review{}, nil
	}
	return reviews, nil
}

func (s *reviewService) save(reviews []models.Review) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	data, err := json.MarshalIndent(reviews, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode reviews: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write reviews file: %w", err)
	}
	return nil
}
