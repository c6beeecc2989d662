package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"vidsum-backend/internal/models"
)

// MemoryStore keeps records in process memory, in insertion order. It backs
// the store contract for development and tests; identifiers are random UUIDs
// and are never reused after deletion.
type MemoryStore struct {
	mu      sync.Mutex
	records []*models.SummaryRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Create(_ context.Context, rec *models.SummaryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = uuid.New()
	rec.CreatedAt = time.Now().UTC()
	if rec.Keywords == nil {
		rec.Keywords = []string{}
	}

	stored := *rec
	s.records = append(s.records, &stored)
	return nil
}

func (s *MemoryStore) GetByID(_ context.Context, id uuid.UUID) (*models.SummaryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec.ID == id {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) List(_ context.Context) ([]*models.SummaryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.SummaryRecord, 0, len(s.records))
	for _, rec := range s.records {
		copied := *rec
		out = append(out, &copied)
	}
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.records {
		if rec.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
