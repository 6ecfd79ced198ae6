// internal/api/handlers.go
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"minutes-service/internal/common/errors"
	"minutes-service/internal/common/metrics"
	"minutes-service/internal/export"
	"minutes-service/internal/minutes"
	"minutes-service/internal/models"
	"minutes-service/internal/notify"

	"github.com/go-chi/chi/v5"
)

const maxBodySize = 1 << 20 // 1 MiB

var documentTitles = map[string]string{
	"opportunity": "商机评估会纪要",
	"bidding":     "投标评估会纪要",
	"handoff":     "项目交底会纪要",
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("response encode failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Server) readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, errors.NewInvalidRequestError(err.Error())
	}
	return body, nil
}

func (s *Server) decodeJSON(r *http.Request, dst interface{}) error {
	body, err := s.readBody(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return errors.NewInvalidRequestError(err.Error())
	}
	return nil
}

func (s *Server) authorize(offered string) error {
	if !secretsMatch(offered, s.cfg.Server.AdminSecret) {
		return errors.NewUnauthorizedError()
	}
	return nil
}

// ==========================
// Capture-Form Handlers
// ==========================

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(r)
	if err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	snap, err := export.Parse(body)
	if err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	payload, err := snap.Encode()
	if err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	rec, err := s.records.Save(r.Context(),
		snap.Fields.GetTrimmed(models.FieldProjectName),
		snap.Fields.GetTrimmed(models.FieldBusinessCode),
		payload)
	if err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	s.indexer.IndexRecord(rec)
	s.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"id":     rec.ID,
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	docType := chi.URLParam(r, "documentType")
	title, ok := documentTitles[docType]
	if !ok {
		s.errs.WriteError(w, r, errors.NewInvalidRequestError("unknown document type: "+docType))
		return
	}

	body, err := s.readBody(r)
	if err != nil {
		s.errs.WriteError(w, r, err)
		return
	}
	snap, err := export.Parse(body)
	if err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	var document string
	switch docType {
	case "opportunity":
		document = minutes.GenerateOpportunity(snap.Fields, snap.Rows)
	case "bidding":
		document = minutes.GenerateBidding(snap.Fields, snap.Rows)
	case "handoff":
		document = minutes.GenerateHandoff(snap.Fields, snap.Rows)
	}

	metrics.DocumentsGenerated.WithLabelValues(docType).Inc()
	s.writeJSON(w, http.StatusOK, map[string]string{
		"title":    title,
		"document": document,
	})
}

type attendeesRequest struct {
	MeetingType   string `json:"meetingType"`
	IronTriangle  string `json:"ironTriangle"`
	BudgetAmount  string `json:"budgetAmount"`
	ProjectLevel  string `json:"projectLevel"`
	Procurement   string `json:"procurement"`
	Cooperation   string `json:"cooperation"`
	PrimarySystem string `json:"primarySystem"`
	LegalRisk     string `json:"legalRisk"`
}

func (s *Server) handleAttendees(w http.ResponseWriter, r *http.Request) {
	var req attendeesRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	lines := minutes.DeriveAttendees(minutes.AttendeesInput{
		MeetingType:   req.MeetingType,
		IronTriangle:  req.IronTriangle,
		BudgetAmount:  req.BudgetAmount,
		ProjectLevel:  req.ProjectLevel,
		Procurement:   req.Procurement,
		Cooperation:   req.Cooperation,
		PrimarySystem: req.PrimarySystem,
		LegalRisk:     req.LegalRisk,
	})

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"attendees": lines,
		"text":      minutes.FormatAttendees(lines),
	})
}

type recipientsRequest struct {
	IronTriangle    string               `json:"ironTriangle"`
	DeliveryDetails []models.DeliveryRow `json:"deliveryDetails"`
	Departments     []string             `json:"departments"`
}

func (s *Server) handleRecipients(w http.ResponseWriter, r *http.Request) {
	var req recipientsRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	contacts := s.directory.Contacts()
	depts := req.Departments
	if len(depts) == 0 {
		depts = minutes.AutoDetectDepartments(req.IronTriangle, req.DeliveryDetails, contacts)
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"departments": depts,
		"recipients":  minutes.ResolveRecipients(depts, contacts),
	})
}

type lookupManagerRequest struct {
	IronTriangle string `json:"ironTriangle"`
}

func (s *Server) handleLookupManager(w http.ResponseWriter, r *http.Request) {
	var req lookupManagerRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	roles, _ := minutes.ExtractRoles(req.IronTriangle)
	pm, ok := roles[minutes.RoleProjectManager]
	if !ok {
		s.errs.WriteError(w, r, errors.NewInvalidRequestError("no project manager in the triangle block"))
		return
	}

	matches := s.directory.LookupManager(r.Context(), pm.Name, pm.Department)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":    pm.Name,
		"matches": matches,
	})
}

func (s *Server) handleDepartments(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"delivery_departments":  minutes.DeliveryDepartments(),
		"directory_departments": s.directory.Departments(),
	})
}

func (s *Server) handleExportSnapshot(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(r)
	if err != nil {
		s.errs.WriteError(w, r, err)
		return
	}
	snap, err := export.Parse(body)
	if err != nil {
		s.errs.WriteError(w, r, err)
		return
	}
	encoded, err := snap.Encode()
	if err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	filename := export.Filename(snap.Fields, time.Now())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(encoded)
}

type sendNoticeRequest struct {
	Recipients string `json:"recipients"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
}

func (s *Server) handleSendNotice(w http.ResponseWriter, r *http.Request) {
	var req sendNoticeRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	addresses := notify.ExtractAddresses(req.Recipients)
	if err := s.mailer.SendMeetingNotice(r.Context(), addresses, req.Subject, req.Body); err != nil {
		s.errs.WriteError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "sent",
		"recipients": len(addresses),
	})
}

// ==========================
// Admin Console Handlers
// ==========================

type listRequest struct {
	Secret    string `json:"secret"`
	Page      int    `json:"page"`
	PerPage   int    `json:"per_page"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (s *Server) handleGetAllRecords(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errs.WriteError(w, r, err)
		return
	}
	if err := s.authorize(req.Secret); err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	page, err := s.records.List(r.Context(), models.ListQuery{
		Page:      req.Page,
		PerPage:   req.PerPage,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		s.errs.WriteError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, page)
}

type secretRequest struct {
	Secret string `json:"secret"`
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	var req secretRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errs.WriteError(w, r, err)
		return
	}
	if err := s.authorize(req.Secret); err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.records.Delete(r.Context(), id); err != nil {
		s.errs.WriteError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "记录已删除"})
}

type batchRequest struct {
	Secret string   `json:"secret"`
	IDs    []string `json:"ids"`
}

func (s *Server) handleDeleteBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errs.WriteError(w, r, err)
		return
	}
	if err := s.authorize(req.Secret); err != nil {
		s.errs.WriteError(w, r, err)
		return
	}
	if len(req.IDs) == 0 {
		s.errs.WriteError(w, r, errors.NewInvalidRequestError("no ids given"))
		return
	}

	affected, err := s.records.DeleteBatch(r.Context(), req.IDs)
	if err != nil {
		s.errs.WriteError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("已删除 %d 条记录", affected),
		"deleted": affected,
	})
}

func (s *Server) handleExportExcel(w http.ResponseWriter, r *http.Request) {
	if err := s.authorize(r.URL.Query().Get("secret")); err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	records, err := s.records.FetchRange(r.Context(),
		r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if err != nil {
		s.errs.WriteError(w, r, err)
		return
	}
	s.writeWorkbook(w, r, records)
}

func (s *Server) handleExportBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errs.WriteError(w, r, err)
		return
	}
	if err := s.authorize(req.Secret); err != nil {
		s.errs.WriteError(w, r, err)
		return
	}
	if len(req.IDs) == 0 {
		s.errs.WriteError(w, r, errors.NewInvalidRequestError("no ids given"))
		return
	}

	records, err := s.records.FetchByIDs(r.Context(), req.IDs)
	if err != nil {
		s.errs.WriteError(w, r, err)
		return
	}
	s.writeWorkbook(w, r, records)
}

func (s *Server) writeWorkbook(w http.ResponseWriter, r *http.Request, records []models.Record) {
	start := time.Now()
	buf, err := export.BuildWorkbook(records)
	if err != nil {
		s.errs.WriteError(w, r, err)
		return
	}
	metrics.ExportDuration.WithLabelValues("xlsx").Observe(time.Since(start).Seconds())

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.WorkbookFilename(time.Now())))
	_, _ = w.Write(buf)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": s.cfg.App.Name,
		"version": s.cfg.App.Version,
	})
}
