package intake

import (
	"errors"
	"testing"

	"github.com/proptrail/crmgo/internal/models"
)

func TestCanTransitionForward(t *testing.T) {
	cases := []struct{ from, to string }{
		{models.StatusRawReceived, models.StatusProcessed},
		{models.StatusRawReceived, models.StatusLeadCreated}, // lead flows skip Processed
		{models.StatusProcessed, models.StatusLeadCreated},
		{models.StatusLeadCreated, models.StatusDealLinked},
		{models.StatusDealLinked, models.StatusArchived},
		{models.StatusRawReceived, models.StatusArchived},
		{models.StatusProcessed, models.StatusProcessed}, // same status is a no-op
	}

	for _, c := range cases {
		if err := CanTransition(c.from, c.to); err != nil {
			t.Errorf("CanTransition(%s, %s) should be allowed: %v", c.from, c.to, err)
		}
	}
}

func TestCanTransitionRejectsBackwards(t *testing.T) {
	cases := []struct{ from, to string }{
		{models.StatusArchived, models.StatusRawReceived},
		{models.StatusDealLinked, models.StatusLeadCreated},
		{models.StatusProcessed, models.StatusRawReceived},
	}

	for _, c := range cases {
		err := CanTransition(c.from, c.to)
		if err == nil {
			t.Errorf("CanTransition(%s, %s) should be rejected", c.from, c.to)
			continue
		}
		if !errors.Is(err, ErrIllegalTransition) {
			t.Errorf("CanTransition(%s, %s): expected ErrIllegalTransition, got %v", c.from, c.to, err)
		}
	}
}

func TestCanTransitionRejectsUnknownStatus(t *testing.T) {
	if err := CanTransition("Bogus", models.StatusProcessed); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("Expected ErrUnknownStatus for unknown source status, got %v", err)
	}
	if err := CanTransition(models.StatusRawReceived, "Bogus"); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("Expected ErrUnknownStatus for unknown target status, got %v", err)
	}
}
