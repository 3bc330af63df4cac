package intake

import (
	"encoding/json"
	"testing"

	"github.com/proptrail/crmgo/internal/models"
)

func TestEmptyArchiveStillBuildsRecord(t *testing.T) {
	// An archive with zero qualifying entries consolidates to an empty
	// string; the record is still created, it does not fail the request.
	meta := models.IntakeMeta{
		FileName:   "empty-export.zip",
		MimeType:   "application/zip",
		ParsedData: []map[string]string{},
	}

	record, err := newExtractionRecord(models.SourceWhatsApp, "", meta, nil)
	if err != nil {
		t.Fatalf("Empty consolidation should still build a record: %v", err)
	}

	if record.Content != "" {
		t.Errorf("Expected empty content, got %q", record.Content)
	}
	if record.Source != models.SourceWhatsApp {
		t.Errorf("Expected WhatsApp source, got %s", record.Source)
	}
	if record.Status != models.StatusRawReceived {
		t.Errorf("Expected RawReceived status, got %s", record.Status)
	}
	if record.ReceivedAt.IsZero() {
		t.Error("Expected receivedAt to be set")
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(record.Meta, &decoded); err != nil {
		t.Fatalf("Record meta not decodable: %v", err)
	}
	if parsed, ok := decoded["parsedData"].([]interface{}); !ok || len(parsed) != 0 {
		t.Errorf("Expected zero-length parsedData, got %v", decoded["parsedData"])
	}
}

func TestExtractionRecordCarriesOwnership(t *testing.T) {
	userID := "uuid-42"
	record, err := newExtractionRecord(models.SourceCamera, "42 Wallaby Way", models.IntakeMeta{FileName: "photo.jpg"}, &userID)
	if err != nil {
		t.Fatalf("Failed to build record: %v", err)
	}
	if record.CreatedBy == nil || *record.CreatedBy != userID {
		t.Errorf("Expected createdBy %s, got %v", userID, record.CreatedBy)
	}
}
