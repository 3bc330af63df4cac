package intake

import (
	"errors"
	"fmt"

	"github.com/proptrail/crmgo/internal/models"
	"gorm.io/gorm"
)

// ErrIllegalTransition marks a rejected backwards status move.
var ErrIllegalTransition = errors.New("illegal status transition")

// ErrUnknownStatus marks a status value outside the lifecycle enum.
var ErrUnknownStatus = errors.New("unknown status")

// statusRank orders the lifecycle: RawReceived -> Processed -> LeadCreated ->
// DealLinked -> Archived. Transitions may skip forward (lead creation jumps
// RawReceived -> LeadCreated directly) but never move backwards.
var statusRank = map[string]int{
	models.StatusRawReceived: 0,
	models.StatusProcessed:   1,
	models.StatusLeadCreated: 2,
	models.StatusDealLinked:  3,
	models.StatusArchived:    4,
}

// CanTransition reports whether moving from one status to another is allowed.
// A same-status move is allowed and treated as a no-op by Transition.
func CanTransition(from, to string) error {
	fromRank, ok := statusRank[from]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, from)
	}
	toRank, ok := statusRank[to]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if toRank < fromRank {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}
	return nil
}

// Transition applies a forward-only status change to an intake record and
// returns the updated record. It is invoked by lead/deal creation flows,
// never by the extractors.
func (s *Service) Transition(id, target string) (*models.Intake, error) {
	var record models.Intake
	if err := s.db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load intake: %w", err)
	}

	if err := CanTransition(record.Status, target); err != nil {
		return nil, err
	}

	if record.Status == target {
		return &record, nil
	}

	record.Status = target
	if err := s.db.Save(&record).Error; err != nil {
		return nil, fmt.Errorf("update intake status: %w", err)
	}

	return &record, nil
}
