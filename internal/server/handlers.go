package server

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/BalanceBalls/timesheet-generator/internal/logger"
	"github.com/BalanceBalls/timesheet-generator/internal/service"
	"github.com/BalanceBalls/timesheet-generator/internal/timesheet"
)

type leaveRequest struct {
	Month     int    `json:"month"`
	Year      int    `json:"year"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	LeaveType string `json:"leave_type"`
}

type renderRequest struct {
	Month  int    `json:"month"`
	Year   int    `json:"year"`
	Format string `json:"format"`
}

type conflictDetails struct {
	Start string `json:"start_date"`
	End   string `json:"end_date"`
	Type  string `json:"leave_type"`
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	profile, err := s.svc.Profile(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	success(w, http.StatusOK, profile)
}

func (s *Server) handleAddLeave(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var req leaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "bad_request", "malformed request body", nil)
		return
	}

	month, ok := monthParam(w, req.Month)
	if !ok {
		return
	}

	raw := timesheet.RawEntry{Start: req.StartDate, End: req.EndDate, Type: req.LeaveType}
	if err := s.svc.AddLeave(r.Context(), userID, month, req.Year, raw); err != nil {
		s.writeError(w, r, err)
		return
	}

	success(w, http.StatusCreated, raw)
}

func (s *Server) handleClearLeaves(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	monthNum, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	month, ok := monthParam(w, monthNum)
	if !ok {
		return
	}

	if err := s.svc.ClearLeaves(r.Context(), userID, month, year); err != nil {
		s.writeError(w, r, err)
		return
	}

	success(w, http.StatusOK, nil)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "bad_request", "malformed request body", nil)
		return
	}

	month, ok := monthParam(w, req.Month)
	if !ok {
		return
	}

	result, err := s.svc.Render(r.Context(), userID, month, req.Year, req.Format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// Spreadsheet renders have no document body, only a range reference.
	if len(result.Data) == 0 {
		success(w, http.StatusOK, map[string]string{"ref": result.Name})
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(result.Name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=\""+result.Name+"\"")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Data)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.GetFromContext(r.Context())

	var overlapErr *timesheet.OverlapError
	var profileErr *timesheet.IncompleteProfileError

	switch {
	case errors.As(err, &overlapErr):
		fail(w, http.StatusConflict, "leave_overlap", err.Error(), conflictDetails{
			Start: overlapErr.Existing.Start.Format("02-January"),
			End:   overlapErr.Existing.End.Format("02-January"),
			Type:  overlapErr.Existing.Type.String(),
		})
	case errors.As(err, &profileErr):
		fail(w, http.StatusUnprocessableEntity, "incomplete_profile", err.Error(), profileErr.Missing)
	case errors.Is(err, timesheet.ErrUserNotFound):
		fail(w, http.StatusNotFound, "user_not_found", "user is not registered", nil)
	case errors.Is(err, timesheet.ErrInvalidDate),
		errors.Is(err, timesheet.ErrInvalidRange),
		errors.Is(err, timesheet.ErrUnknownLeaveType),
		errors.Is(err, service.ErrUnknownFormat):
		fail(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
	default:
		log.Error("request failed", "err", err)
		fail(w, http.StatusInternalServerError, "internal", "please try again", nil)
	}
}

func userIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		fail(w, http.StatusBadRequest, "bad_request", "invalid user id", nil)
		return 0, false
	}
	return userID, true
}

func monthParam(w http.ResponseWriter, month int) (time.Month, bool) {
	if month < 1 || month > 12 {
		fail(w, http.StatusBadRequest, "bad_request", "month must be between 1 and 12", nil)
		return 0, false
	}
	return time.Month(month), true
}
