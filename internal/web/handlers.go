package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agilec-tools/touchpoint/internal/candidate"
	"github.com/agilec-tools/touchpoint/internal/excel"
	"github.com/agilec-tools/touchpoint/internal/logging"
	"github.com/agilec-tools/touchpoint/internal/mail"
	"github.com/agilec-tools/touchpoint/internal/store"
)

const dateParamLayout = "2006-01-02"

// listResponse wraps the candidate list endpoints.
type listResponse struct {
	Candidates []candidate.Candidate `json:"candidates"`
	Total      int                   `json:"total"`
}

// handleImport replaces the whole list from an uploaded xlsx workbook.
// The swap is atomic: a workbook that fails to parse leaves the store
// exactly as it was.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)
	if err := r.ParseMultipartForm(s.cfg.Upload.MaxFileSize); err != nil {
		writeError(w, http.StatusBadRequest, "upload too large or malformed")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	list, err := excel.ReadCandidates(file)
	if err != nil {
		logger.Error("import failed", "filename", header.Filename, "error", err)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("could not read workbook: %v", err))
		return
	}

	s.store.ReplaceAll(list)
	logger.Info("import completed", "filename", header.Filename, "candidates", len(list))
	writeJSON(w, http.StatusOK, map[string]int{"imported": len(list)})
}

// handleExport streams the full list, archived records included, as an
// xlsx download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	list := s.store.Snapshot()
	if len(list) == 0 {
		writeError(w, http.StatusConflict, "no candidates to export")
		return
	}

	filename := fmt.Sprintf("touchpoint_export_%s.xlsx", s.now().Format(dateParamLayout))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := excel.Write(w, list); err != nil {
		// Headers are gone; all we can do is log.
		logging.FromContext(r.Context()).Error("export failed", "error", err)
	}
}

// handleListCandidates serves the filtered, searched, sorted list.
// Query parameters: q, sort, show_archived, date (yyyy-MM-dd).
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	showArchived, _ := strconv.ParseBool(q.Get("show_archived"))
	list := store.Visible(s.store.Snapshot(), showArchived)
	list = store.Search(list, q.Get("q"))

	if dateStr := q.Get("date"); dateStr != "" {
		day, err := time.ParseInLocation(dateParamLayout, dateStr, time.Local)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be yyyy-MM-dd")
			return
		}
		list = store.OnDay(list, day)
	}

	list = store.SortBy(list, q.Get("sort"))
	writeJSON(w, http.StatusOK, listResponse{Candidates: list, Total: len(list)})
}

// handleSchedule serves the upcoming-contact day buckets plus past
// due. Query parameter days defaults to 7.
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}

	list := store.Visible(s.store.Snapshot(), false)
	writeJSON(w, http.StatusOK, store.Schedule(list, s.now(), days))
}

// handleAddCandidate creates a record. Fields may be empty; a missing
// id is generated and a missing status defaults to Pending.
func (s *Server) handleAddCandidate(w http.ResponseWriter, r *http.Request) {
	var c candidate.Candidate
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid candidate payload")
		return
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = candidate.StatusPending
	}
	if c.Category != "" {
		c = candidate.WithCategory(c, c.Category)
	}

	if err := s.store.Add(c); err != nil {
		s.writeStoreError(w, err)
		return
	}
	logging.FromContext(r.Context()).Info("candidate added", "id", c.ID)
	writeJSON(w, http.StatusCreated, c)
}

// handleUpdateCandidate replaces a record wholesale. The path id wins
// over any id in the payload.
func (s *Server) handleUpdateCandidate(w http.ResponseWriter, r *http.Request) {
	var c candidate.Candidate
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid candidate payload")
		return
	}
	c.ID = chi.URLParam(r, "id")
	if !c.IsEmployed {
		c.PayStubs = nil
	}
	if c.Category != "" {
		c = candidate.WithCategory(c, c.Category)
	}

	if err := s.store.Update(c); err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// handleSetNextContact schedules or clears the next contact date.
// Body: {"date": "yyyy-MM-dd"} or {"date": ""} to clear.
func (s *Server) handleSetNextContact(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	var date *time.Time
	if strings.TrimSpace(body.Date) != "" {
		d, err := time.ParseInLocation(dateParamLayout, body.Date, time.Local)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be yyyy-MM-dd")
			return
		}
		date = &d
	}

	c, err := s.store.SetNextContact(chi.URLParam(r, "id"), date, s.now())
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// handleSetCategory assigns a category; color follows automatically.
func (s *Server) handleSetCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	c, err := s.store.SetCategory(chi.URLParam(r, "id"), body.Category)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// handleToggleArchive flips the archived flag.
func (s *Server) handleToggleArchive(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.ToggleArchive(chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// handleEmailDraft composes a templated email draft for a candidate.
func (s *Server) handleEmailDraft(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	draft, err := mail.Compose(c, chi.URLParam(r, "template"))
	if err != nil {
		if errors.Is(err, mail.ErrUnknownTemplate) {
			writeError(w, http.StatusNotFound, "unknown email template")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not compose email")
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// writeStoreError maps store sentinel errors to HTTP status codes.
func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "candidate not found")
	case errors.Is(err, store.ErrDuplicateID):
		writeError(w, http.StatusConflict, "candidate id already exists")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
