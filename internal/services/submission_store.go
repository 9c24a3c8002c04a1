package services

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"launchpad-backend/internal/models"
)

// ErrSubmissionNotFound is returned when a submission ID is unknown
var ErrSubmissionNotFound = errors.New("submission not found")

// SubmissionStore persists submission records in Postgres. It implements
// SubmissionRecorder for the pipeline and serves reads for the API.
type SubmissionStore struct {
	db *gorm.DB
}

func NewSubmissionStore(db *gorm.DB) *SubmissionStore {
	return &SubmissionStore{db: db}
}

// RecordSubmission upserts the record at each stage transition. Persistence
// is best-effort: a storage hiccup must never fail a submission that already
// succeeded on-chain.
func (s *SubmissionStore) RecordSubmission(record *models.SubmissionRecord) {
	if err := s.db.Save(record).Error; err != nil {
		log.Printf("⚠️ Failed to persist submission %s: %v", record.ID, err)
	}
}

// GetSubmission loads one record by ID
func (s *SubmissionStore) GetSubmission(id string) (*models.SubmissionRecord, error) {
	var record models.SubmissionRecord
	err := s.db.First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubmissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load submission %s: %w", id, err)
	}
	return &record, nil
}

// ListSubmissions returns recent records, newest first, optionally filtered
// by requester address
func (s *SubmissionStore) ListSubmissions(requester string, limit, offset int) ([]models.SubmissionRecord, int64, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := s.db.Model(&models.SubmissionRecord{})
	if requester != "" {
		query = query.Where("requester = ?", requester)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count submissions: %w", err)
	}

	var records []models.SubmissionRecord
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list submissions: %w", err)
	}
	return records, total, nil
}
