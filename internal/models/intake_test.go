package models

import (
	"encoding/json"
	"testing"
)

func TestValidSource(t *testing.T) {
	for _, s := range []string{SourceWhatsApp, SourceTribune, SourceCamera, SourceImageUpload, SourceManual, SourceOther} {
		if !ValidSource(s) {
			t.Errorf("%s should be a valid source", s)
		}
	}
	if ValidSource("Telegram") {
		t.Error("Telegram should not be a valid source")
	}
	if ValidSource("") {
		t.Error("Empty string should not be a valid source")
	}
}

func TestIntakeMetaToJSON(t *testing.T) {
	meta := IntakeMeta{
		FileName:    "export.zip",
		MimeType:    "application/zip",
		Attachments: []string{"chat.txt", "notes.csv"},
		ParsedData: []map[string]string{
			{"filename": "chat.txt", "content": "Hi there", "type": "TEXT"},
		},
	}

	raw, err := meta.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Meta JSON not decodable: %v", err)
	}
	if decoded["fileName"] != "export.zip" {
		t.Errorf("Unexpected fileName: %v", decoded["fileName"])
	}
	if parsed, ok := decoded["parsedData"].([]interface{}); !ok || len(parsed) != 1 {
		t.Errorf("Unexpected parsedData: %v", decoded["parsedData"])
	}
}

func TestIntakeMetaDocumentInfoKey(t *testing.T) {
	// PDF ingestion stores the document info dictionary under meta.info,
	// with parsedData absent.
	meta := IntakeMeta{
		FileName: "report.pdf",
		MimeType: "application/pdf",
		Info:     map[string]string{"Title": "Q3 Listings", "Author": "Agency"},
	}

	raw, err := meta.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Meta JSON not decodable: %v", err)
	}

	info, ok := decoded["info"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected meta.info to be a non-null object, got %v", decoded["info"])
	}
	if info["Title"] != "Q3 Listings" {
		t.Errorf("Unexpected info title: %v", info["Title"])
	}
	if _, ok := decoded["parsedData"]; ok {
		t.Error("parsedData should be absent for PDF meta")
	}
}

func TestIntakeMetaOmitsEmptyFields(t *testing.T) {
	raw, err := IntakeMeta{FileName: "photo.jpg", MimeType: "image/jpeg"}.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Meta JSON not decodable: %v", err)
	}
	if _, ok := decoded["parsedData"]; ok {
		t.Error("parsedData should be omitted for OCR meta")
	}
	if _, ok := decoded["attachments"]; ok {
		t.Error("attachments should be omitted for OCR meta")
	}
}
