package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/example/appointment-scheduler/internal/application"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

type scheduleService interface {
	ResolveWeek(ctx context.Context, date string) (application.Week, error)
	CreateSlot(ctx context.Context, params application.CreateSlotParams) (application.Slot, error)
	ModifyOccurrence(ctx context.Context, params application.OccurrenceParams) (application.OccurrenceOverride, error)
	ClearOccurrence(ctx context.Context, scheduleID int64, date string) (application.OccurrenceOverride, error)
	DeleteSlot(ctx context.Context, scheduleID int64) error
	ListSlots(ctx context.Context) ([]application.Slot, error)
	ListExceptions(ctx context.Context, scheduleID int64) ([]application.OccurrenceOverride, error)
}

// ScheduleHandler serves the slot and occurrence endpoints.
type ScheduleHandler struct {
	service   scheduleService
	responder responder
}

// NewScheduleHandler wires the schedule handler with its service dependency.
func NewScheduleHandler(service scheduleService, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{service: service, responder: newResponder(logger)}
}

// Week serves GET /api/slots/week/{date}.
func (h *ScheduleHandler) Week(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	date, ok := DateFromContext(r.Context())
	if !ok || !datePattern.MatchString(date) {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
		return
	}

	week, err := h.service.ResolveWeek(r.Context(), date)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeSuccess(r.Context(), w, http.StatusOK, toWeekDTO(week), "")
}

// List serves GET /api/slots.
func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	slots, err := h.service.ListSlots(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeSuccess(r.Context(), w, http.StatusOK, toSlotDTOs(slots), "")
}

// Create serves POST /api/slots.
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req createSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	if details := req.validate(); len(details) > 0 {
		h.responder.writeJSON(r.Context(), w, http.StatusBadRequest, errorResponse{
			Error: errorDetail{Message: "invalid input", Details: details},
		})
		return
	}

	slot, err := h.service.CreateSlot(r.Context(), application.CreateSlotParams{
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeSuccess(r.Context(), w, http.StatusCreated, toSlotDTO(slot), "recurring slot created")
}

// Modify serves PUT /api/slots/{id}/date/{date}.
func (h *ScheduleHandler) Modify(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	scheduleID, date, ok := h.occurrenceTarget(w, r)
	if !ok {
		return
	}

	var req modifyOccurrenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	if details := req.validate(); len(details) > 0 {
		h.responder.writeJSON(r.Context(), w, http.StatusBadRequest, errorResponse{
			Error: errorDetail{Message: "invalid input", Details: details},
		})
		return
	}

	override, err := h.service.ModifyOccurrence(r.Context(), application.OccurrenceParams{
		ScheduleID: scheduleID,
		Date:       date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeSuccess(r.Context(), w, http.StatusOK, toOverrideDTO(override), "occurrence updated")
}

// Clear serves DELETE /api/slots/{id}/date/{date}.
func (h *ScheduleHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	scheduleID, date, ok := h.occurrenceTarget(w, r)
	if !ok {
		return
	}

	override, err := h.service.ClearOccurrence(r.Context(), scheduleID, date)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeSuccess(r.Context(), w, http.StatusOK, toOverrideDTO(override), "occurrence deleted")
}

// Delete serves DELETE /api/slots/{id}.
func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	scheduleID, ok := ScheduleIDFromContext(r.Context())
	if !ok || scheduleID <= 0 {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return
	}

	if err := h.service.DeleteSlot(r.Context(), scheduleID); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeSuccess(r.Context(), w, http.StatusOK, nil, "recurring slot deleted")
}

// Exceptions serves GET /api/slots/{id}/exceptions.
func (h *ScheduleHandler) Exceptions(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	scheduleID, ok := ScheduleIDFromContext(r.Context())
	if !ok || scheduleID <= 0 {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return
	}

	overrides, err := h.service.ListExceptions(r.Context(), scheduleID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeSuccess(r.Context(), w, http.StatusOK, toOverrideDTOs(overrides), "")
}

func (h *ScheduleHandler) occurrenceTarget(w http.ResponseWriter, r *http.Request) (int64, string, bool) {
	scheduleID, ok := ScheduleIDFromContext(r.Context())
	if !ok || scheduleID <= 0 {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return 0, "", false
	}

	date, ok := DateFromContext(r.Context())
	if !ok || !datePattern.MatchString(date) {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
		return 0, "", false
	}

	return scheduleID, date, true
}

type createSlotRequest struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// validate applies the transport-level shape checks; range and ordering
// semantics stay in the application layer.
func (r createSlotRequest) validate() map[string]string {
	details := make(map[string]string)
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		details["day_of_week"] = "must be between 0 and 6"
	}
	if !timePattern.MatchString(r.StartTime) {
		details["start_time"] = "must match HH:MM"
	}
	if !timePattern.MatchString(r.EndTime) {
		details["end_time"] = "must match HH:MM"
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

type modifyOccurrenceRequest struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (r modifyOccurrenceRequest) validate() map[string]string {
	details := make(map[string]string)
	if !timePattern.MatchString(r.StartTime) {
		details["start_time"] = "must match HH:MM"
	}
	if !timePattern.MatchString(r.EndTime) {
		details["end_time"] = "must match HH:MM"
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

type slotDTO struct {
	ID        int64  `json:"id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toSlotDTO(slot application.Slot) slotDTO {
	return slotDTO{
		ID:        slot.ID,
		DayOfWeek: slot.DayOfWeek,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		IsActive:  slot.IsActive,
		CreatedAt: slot.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: slot.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toSlotDTOs(slots []application.Slot) []slotDTO {
	out := make([]slotDTO, 0, len(slots))
	for _, slot := range slots {
		out = append(out, toSlotDTO(slot))
	}
	return out
}

type overrideDTO struct {
	ID         int64   `json:"id"`
	ScheduleID int64   `json:"schedule_id"`
	Date       string  `json:"exception_date"`
	Type       string  `json:"exception_type"`
	StartTime  *string `json:"start_time,omitempty"`
	EndTime    *string `json:"end_time,omitempty"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

func toOverrideDTO(override application.OccurrenceOverride) overrideDTO {
	return overrideDTO{
		ID:         override.ID,
		ScheduleID: override.ScheduleID,
		Date:       override.Date,
		Type:       string(override.Type),
		StartTime:  override.StartTime,
		EndTime:    override.EndTime,
		CreatedAt:  override.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  override.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toOverrideDTOs(overrides []application.OccurrenceOverride) []overrideDTO {
	out := make([]overrideDTO, 0, len(overrides))
	for _, override := range overrides {
		out = append(out, toOverrideDTO(override))
	}
	return out
}

type occurrenceDTO struct {
	ID          int64  `json:"id"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsException bool   `json:"is_exception"`
	ScheduleID  int64  `json:"schedule_id"`
	ExceptionID *int64 `json:"exception_id,omitempty"`
}

type dayScheduleDTO struct {
	Date  string          `json:"date"`
	Slots []occurrenceDTO `json:"slots"`
}

type weekDTO struct {
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Days      []dayScheduleDTO `json:"days"`
}

func toWeekDTO(week application.Week) weekDTO {
	days := make([]dayScheduleDTO, 0, len(week.Days))
	for _, day := range week.Days {
		slots := make([]occurrenceDTO, 0, len(day.Slots))
		for _, occurrence := range day.Slots {
			slots = append(slots, occurrenceDTO{
				ID:          occurrence.ID,
				StartTime:   occurrence.StartTime,
				EndTime:     occurrence.EndTime,
				IsException: occurrence.IsException,
				ScheduleID:  occurrence.ScheduleID,
				ExceptionID: occurrence.ExceptionID,
			})
		}
		days = append(days, dayScheduleDTO{Date: day.Date, Slots: slots})
	}
	return weekDTO{StartDate: week.StartDate, EndDate: week.EndDate, Days: days}
}
