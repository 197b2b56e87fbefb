package stubserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shiftdesk/shiftdesk/internal/domain/request"
	"github.com/shiftdesk/shiftdesk/internal/domain/schedule"
)

type RequestHandler struct {
	store *Storage
}

func NewRequestHandler(store *Storage) *RequestHandler {
	return &RequestHandler{store: store}
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFromRequest(r)

	var payload request.CreateServiceRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := payload.Validate(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	req, err := h.store.CreateRequest(r.Context(), id.UserID, payload)
	if err != nil {
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *RequestHandler) Mine(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFromRequest(r)
	out, err := h.store.RequestsByUser(r.Context(), id.UserID)
	if err != nil {
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// All lists the requests of the calling manager's department. Without a
// department the list is empty.
func (h *RequestHandler) All(w http.ResponseWriter, r *http.Request) {
	manager, _ := identityFromRequest(r)

	dep, err := h.store.DepartmentByManager(r.Context(), manager.UserID)
	if errors.Is(err, ErrNotFound) {
		writeJSON(w, http.StatusOK, []request.ServiceRequest{})
		return
	}
	if err != nil {
		internalError(w)
		return
	}
	out, err := h.store.RequestsByDepartment(r.Context(), dep.ID)
	if err != nil {
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// UpdateStatus decides a pending request. Approval writes the requested
// absence into the employee's schedule for the whole span, overwriting
// whatever was planned there.
func (h *RequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	manager, _ := identityFromRequest(r)

	reqID, err := strconv.ParseInt(chi.URLParam(r, "requestID"), 10, 64)
	if err != nil || reqID <= 0 {
		badRequest(w, "invalid request id")
		return
	}
	var payload request.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := payload.Validate(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	req, err := h.store.RequestByID(r.Context(), reqID)
	if errors.Is(err, ErrNotFound) {
		notFound(w, "Request not found")
		return
	}
	if err != nil {
		internalError(w)
		return
	}

	allowed, err := managerCanEdit(r, h.store, manager.UserID, req.UserID)
	if err != nil {
		internalError(w)
		return
	}
	if !allowed {
		forbidden(w, "You cannot manage requests of employees outside your department")
		return
	}
	if req.Status != request.StatusPending {
		badRequest(w, "Request is already processed")
		return
	}

	if err := h.store.UpdateRequestStatus(r.Context(), reqID, payload.Status); err != nil {
		internalError(w)
		return
	}
	if payload.Status == request.StatusApproved {
		if err := h.applyToSchedule(r, req); err != nil {
			internalError(w)
			return
		}
	}

	out, err := h.store.RequestByID(r.Context(), reqID)
	if err != nil {
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// applyToSchedule writes one entry of the request's type per day of the
// span.
func (h *RequestHandler) applyToSchedule(r *http.Request, req request.ServiceRequest) error {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return err
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return err
	}
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		entry := schedule.ScheduleEntry{
			Date: cur.Format("2006-01-02"),
			Type: schedule.EntryType(req.Type),
		}
		if _, err := h.store.UpsertEntry(r.Context(), req.UserID, entry); err != nil {
			return err
		}
	}
	return nil
}
