package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Intake source channels
const (
	SourceWhatsApp    = "WhatsApp"
	SourceTribune     = "Tribune"
	SourceCamera      = "Camera"
	SourceImageUpload = "ImageUpload"
	SourceManual      = "Manual"
	SourceOther       = "Other"
)

// Intake lifecycle statuses
const (
	StatusRawReceived = "RawReceived"
	StatusProcessed   = "Processed"
	StatusLeadCreated = "LeadCreated"
	StatusDealLinked  = "DealLinked"
	StatusArchived    = "Archived"
)

// ValidSource reports whether s is one of the enumerated source channels.
func ValidSource(s string) bool {
	switch s {
	case SourceWhatsApp, SourceTribune, SourceCamera, SourceImageUpload, SourceManual, SourceOther:
		return true
	}
	return false
}

// Intake represents one ingested raw communication or document,
// normalized from any of the upload channels (OCR, ZIP, PDF, manual).
type Intake struct {
	ID           string         `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Source       string         `gorm:"not null;default:'Other';index" json:"source"`
	Content      string         `gorm:"type:text;not null" json:"content"`
	Status       string         `gorm:"not null;default:'RawReceived';index" json:"status"`
	ReceivedAt   time.Time      `gorm:"not null;index" json:"receivedAt"`
	CampaignName string         `gorm:"default:''" json:"campaignName"`
	Meta         datatypes.JSON `json:"meta"`
	CreatedBy    *string        `gorm:"type:uuid;index" json:"createdBy,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Creator *UserAuth `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

// TableName specifies the table name for Intake model
func (Intake) TableName() string {
	return "intakes"
}

// IntakeMeta is the structured bag stored in Intake.Meta. The extractor
// decides which fields are present: archives fill ParsedData with a per-file
// breakdown, PDFs fill Info with the document info dictionary, OCR and manual
// entries carry only the file identity fields.
type IntakeMeta struct {
	FileName    string            `json:"fileName,omitempty"`
	MimeType    string            `json:"mimeType,omitempty"`
	Attachments []string          `json:"attachments,omitempty"`
	Info        map[string]string `json:"info,omitempty"`
	ParsedData  interface{}       `json:"parsedData,omitempty"`
}

// ToJSON marshals the meta bag into a JSONB column value.
func (m IntakeMeta) ToJSON() (datatypes.JSON, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
