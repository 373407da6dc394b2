package services

import (
	"crypto/md5"
	"encoding/hex"
	"sync"
	"time"

	"github.com/manojthapa/neuroarc/internal/models"
)

// StoreService keeps analyzed CVs in memory for a limited time. Entries are
// keyed by a digest of the uploaded file bytes so re-uploading the same file
// reuses the same ID.
type StoreService interface {
	Put(id string, profile *models.CandidateProfile)
	Get(id string) (*models.CandidateProfile, error)
	Sweep() int
	Len() int
}

type storeEntry struct {
	profile  *models.CandidateProfile
	storedAt time.Time
}

type storeService struct {
	mu      sync.RWMutex
	entries map[string]storeEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewStoreService(ttl time.Duration) StoreService {
	return newStoreService(ttl, time.Now)
}

// newStoreService takes the clock as a parameter so tests can control time.
func newStoreService(ttl time.Duration, now func() time.Time) *storeService {
	return &storeService{
		entries: make(map[string]storeEntry),
		ttl:     ttl,
		now:     now,
	}
}

// ContentID derives the store key from the raw uploaded bytes. MD5 is used
// as a fingerprint here, not for security.
func ContentID(content []byte) string {
	sum := md5.Sum(content)
	return hex.EncodeToString(sum[:])[:12]
}

func (s *storeService) Put(id string, profile *models.CandidateProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = storeEntry{profile: profile, storedAt: s.now()}
}

func (s *storeService) Get(id string) (*models.CandidateProfile, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok {
		return nil, models.ErrNotFound
	}
	if s.now().Sub(entry.storedAt) > s.ttl {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		return nil, models.ErrNotFound
	}
	return entry.profile, nil
}

// Sweep removes every expired entry and reports how many were dropped.
// Called lazily on upload rather than from a background goroutine.
func (s *storeService) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.entries {
		if now.Sub(entry.storedAt) > s.ttl {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

func (s *storeService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
