// Package intake owns the normalization of extractor output into persisted
// Intake records and the record's status lifecycle.
package intake

import (
	"errors"
	"fmt"
	"time"

	"github.com/proptrail/crmgo/internal/database"
	"github.com/proptrail/crmgo/internal/models"
	"gorm.io/gorm"
)

// ErrEmptyContent marks a create attempt without extracted or supplied text.
var ErrEmptyContent = errors.New("intake content is required")

// ErrNotFound marks a lookup of a nonexistent intake record.
var ErrNotFound = errors.New("intake record not found")

// Service is the single normalization point turning any extractor's
// (text, meta, source) triple into a persisted Intake record.
type Service struct {
	db *database.DB
}

// NewService creates an intake Service backed by the given database.
func NewService(db *database.DB) *Service {
	return &Service{db: db}
}

// newExtractionRecord builds the normalized record every file route shares.
// Empty content is allowed: an archive with no textual members still yields a
// record, and callers surface that as "no textual content found".
func newExtractionRecord(source, content string, meta models.IntakeMeta, createdBy *string) (models.Intake, error) {
	metaJSON, err := meta.ToJSON()
	if err != nil {
		return models.Intake{}, fmt.Errorf("encode intake meta: %w", err)
	}

	return models.Intake{
		Source:     source,
		Content:    content,
		Status:     models.StatusRawReceived,
		ReceivedAt: time.Now().UTC(),
		Meta:       metaJSON,
		CreatedBy:  createdBy,
	}, nil
}

// CreateFromExtraction persists an Intake built from extractor output with
// status RawReceived and receivedAt set to now. Extraction failures never
// reach this point, so a failed request cannot leave a half-populated record.
func (s *Service) CreateFromExtraction(source, content string, meta models.IntakeMeta, createdBy *string) (*models.Intake, error) {
	record, err := newExtractionRecord(source, content, meta, createdBy)
	if err != nil {
		return nil, err
	}

	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("persist intake: %w", err)
	}

	return &record, nil
}

// CreateManual persists an Intake from a structured request body. Source
// defaults to Manual when unspecified; status is always forced to RawReceived.
func (s *Service) CreateManual(source, content, campaignName string, createdBy *string) (*models.Intake, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	if source == "" {
		source = models.SourceManual
	}
	if !models.ValidSource(source) {
		source = models.SourceOther
	}

	record := models.Intake{
		Source:       source,
		Content:      content,
		Status:       models.StatusRawReceived,
		ReceivedAt:   time.Now().UTC(),
		CampaignName: campaignName,
		CreatedBy:    createdBy,
	}

	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("persist intake: %w", err)
	}

	return &record, nil
}

// List returns all intake records ordered by receivedAt descending.
func (s *Service) List() ([]models.Intake, error) {
	var records []models.Intake
	if err := s.db.Order("received_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list intakes: %w", err)
	}
	return records, nil
}

// Delete removes an intake record.
func (s *Service) Delete(id string) error {
	result := s.db.Delete(&models.Intake{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete intake: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Get returns one intake record by ID.
func (s *Service) Get(id string) (*models.Intake, error) {
	var record models.Intake
	if err := s.db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load intake: %w", err)
	}
	return &record, nil
}
