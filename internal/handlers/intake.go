package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/proptrail/crmgo/internal/extract"
	"github.com/proptrail/crmgo/internal/intake"
	"github.com/proptrail/crmgo/internal/middleware"
	"github.com/proptrail/crmgo/internal/models"
	"github.com/proptrail/crmgo/internal/websocket"
)

// formFile parses the multipart body (bounded by MAX_UPLOAD_MB) and returns
// the named file part. A missing part is a precondition failure handled
// before any extractor or temp file comes into play.
func (r *Router) formFile(req *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	maxBytes := r.cfg.Upload.MaxSizeMB << 20
	req.Body = http.MaxBytesReader(nil, req.Body, maxBytes)
	if err := req.ParseMultipartForm(maxBytes); err != nil {
		return nil, nil, err
	}
	return req.FormFile(field)
}

// extractTimeout bounds OCR/archive/PDF work so a slow or adversarial upload
// cannot stall a request indefinitely.
func (r *Router) extractTimeout(req *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(req.Context(), time.Duration(r.cfg.Upload.TimeoutSec)*time.Second)
}

// processOCR ingests an uploaded image through the OCR engine
func (r *Router) processOCR(w http.ResponseWriter, req *http.Request) {
	file, header, err := r.formFile(req, "image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No image file uploaded")
		return
	}
	defer file.Close()

	log.Printf("[Intake:OCR] Processing image: %s", header.Filename)

	path, cleanup, err := extract.SaveUpload(r.cfg.Upload.Dir, file, header)
	if err != nil {
		log.Printf("[Intake:OCR Error]: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer cleanup()

	ctx, cancel := r.extractTimeout(req)
	defer cancel()

	text, err := r.ocr.Recognize(ctx, path)
	if err != nil {
		log.Printf("[Intake:OCR Error]: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	meta := models.IntakeMeta{
		FileName: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
	}

	record, err := r.intakes.CreateFromExtraction(models.SourceCamera, text, meta, middleware.UserID(req.Context()))
	if err != nil {
		log.Printf("[Intake:OCR Error]: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	r.hub.Broadcast(websocket.Event{Type: "intake.created", Intake: record})
	respondData(w, http.StatusOK, record)
}

// processZIP ingests a ZIP archive of exported chat logs
func (r *Router) processZIP(w http.ResponseWriter, req *http.Request) {
	file, header, err := r.formFile(req, "file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No ZIP file uploaded")
		return
	}
	defer file.Close()

	log.Printf("[Intake:ZIP] Processing ZIP: %s", header.Filename)

	path, cleanup, err := extract.SaveUpload(r.cfg.Upload.Dir, file, header)
	if err != nil {
		log.Printf("[Intake:ZIP Error]: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer cleanup()

	result, err := extract.ExtractZip(path)
	if err != nil {
		log.Printf("[Intake:ZIP Error]: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	attachments := make([]string, 0, len(result.ParsedData))
	for _, entry := range result.ParsedData {
		attachments = append(attachments, entry.Filename)
	}

	meta := models.IntakeMeta{
		FileName:    header.Filename,
		MimeType:    header.Header.Get("Content-Type"),
		Attachments: attachments,
		ParsedData:  result.ParsedData,
	}

	record, err := r.intakes.CreateFromExtraction(models.SourceWhatsApp, result.Content, meta, middleware.UserID(req.Context()))
	if err != nil {
		log.Printf("[Intake:ZIP Error]: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	r.hub.Broadcast(websocket.Event{Type: "intake.created", Intake: record})
	respondData(w, http.StatusOK, record)
}

// processPDF ingests a PDF document
func (r *Router) processPDF(w http.ResponseWriter, req *http.Request) {
	file, header, err := r.formFile(req, "file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No PDF file uploaded")
		return
	}
	defer file.Close()

	log.Printf("[Intake:PDF] Processing PDF: %s", header.Filename)

	path, cleanup, err := extract.SaveUpload(r.cfg.Upload.Dir, file, header)
	if err != nil {
		log.Printf("[Intake:PDF Error]: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer cleanup()

	result, err := extract.ExtractPDF(path)
	if err != nil {
		log.Printf("[Intake:PDF Error]: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	meta := models.IntakeMeta{
		FileName: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Info:     result.Info,
	}

	record, err := r.intakes.CreateFromExtraction(models.SourceTribune, result.Text, meta, middleware.UserID(req.Context()))
	if err != nil {
		log.Printf("[Intake:PDF Error]: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	r.hub.Broadcast(websocket.Event{Type: "intake.created", Intake: record})
	respondData(w, http.StatusOK, record)
}

// createIntakeRequest is the manual-entry body
type createIntakeRequest struct {
	Source       string `json:"source"`
	Content      string `json:"content"`
	CampaignName string `json:"campaignName"`
}

// createIntake creates a manual intake record from a structured body
func (r *Router) createIntake(w http.ResponseWriter, req *http.Request) {
	var body createIntakeRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	record, err := r.intakes.CreateManual(body.Source, body.Content, body.CampaignName, middleware.UserID(req.Context()))
	if err != nil {
		if errors.Is(err, intake.ErrEmptyContent) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[Intake:Create Error]: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	r.hub.Broadcast(websocket.Event{Type: "intake.created", Intake: record})
	respondData(w, http.StatusCreated, record)
}

// listIntakes returns all intake records ordered by receivedAt descending
func (r *Router) listIntakes(w http.ResponseWriter, req *http.Request) {
	records, err := r.intakes.List()
	if err != nil {
		log.Printf("[Intake:Get Error]: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondData(w, http.StatusOK, records)
}

// updateIntakeStatusRequest carries the lifecycle transition target
type updateIntakeStatusRequest struct {
	Status string `json:"status"`
}

// updateIntakeStatus applies a lifecycle transition to an intake record
func (r *Router) updateIntakeStatus(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var body updateIntakeStatusRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	record, err := r.intakes.Transition(id, body.Status)
	if err != nil {
		switch {
		case errors.Is(err, intake.ErrNotFound):
			respondError(w, http.StatusNotFound, "Intake record not found")
		case errors.Is(err, intake.ErrUnknownStatus), errors.Is(err, intake.ErrIllegalTransition):
			respondError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			log.Printf("[Intake:Update Error]: %v", err)
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	r.hub.Broadcast(websocket.Event{Type: "intake.status", Intake: record})
	respondData(w, http.StatusOK, record)
}

// deleteIntake removes an intake record
func (r *Router) deleteIntake(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	if err := r.intakes.Delete(id); err != nil {
		if errors.Is(err, intake.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Intake record not found")
			return
		}
		log.Printf("[Intake:Delete Error]: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, envelope{Success: true, Message: "Intake deleted successfully"})
}
