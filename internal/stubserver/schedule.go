package stubserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shiftdesk/shiftdesk/internal/domain/schedule"
	"github.com/shiftdesk/shiftdesk/internal/pkg/validator"
)

type ScheduleHandler struct {
	store *Storage
}

func NewScheduleHandler(store *Storage) *ScheduleHandler {
	return &ScheduleHandler{store: store}
}

type monthOut struct {
	Month   string                   `json:"month"`
	Entries []schedule.ScheduleEntry `json:"entries"`
}

func userIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	return id, err == nil && id > 0
}

// managerCanEdit enforces the scope rule: a manager may only touch
// employees whose profile belongs to the department they run.
func managerCanEdit(r *http.Request, store *Storage, managerID, targetID int64) (bool, error) {
	dep, err := store.DepartmentByManager(r.Context(), managerID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	targetDep, ok, err := store.UserDepartment(r.Context(), targetID)
	if err != nil {
		return false, err
	}
	return ok && targetDep == dep.ID, nil
}

func (h *ScheduleHandler) month(w http.ResponseWriter, r *http.Request, userID int64) {
	ym := r.URL.Query().Get("month")
	if _, ok := validator.IsValidMonth(ym); !ok {
		badRequest(w, "month must be YYYY-MM")
		return
	}
	entries, err := h.store.MonthEntries(r.Context(), userID, ym)
	if err != nil {
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, monthOut{Month: ym, Entries: entries})
}

func (h *ScheduleHandler) MyMonth(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFromRequest(r)
	h.month(w, r, id.UserID)
}

func (h *ScheduleHandler) EmployeeMonth(w http.ResponseWriter, r *http.Request) {
	targetID, ok := userIDParam(r)
	if !ok {
		badRequest(w, "invalid user id")
		return
	}
	if _, err := h.store.UserByID(r.Context(), targetID); errors.Is(err, ErrNotFound) {
		notFound(w, "User not found")
		return
	} else if err != nil {
		internalError(w)
		return
	}
	h.month(w, r, targetID)
}

func (h *ScheduleHandler) upsertDay(w http.ResponseWriter, r *http.Request, userID int64) {
	var payload schedule.DayUpsert
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	payload.Normalize()
	if err := payload.Validate(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	entry := schedule.ScheduleEntry{
		Date:      payload.Date,
		Type:      payload.Type,
		StartTime: payload.StartTime,
		EndTime:   payload.EndTime,
		Title:     payload.Title,
	}
	if _, err := h.store.UpsertEntry(r.Context(), userID, entry); err != nil {
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *ScheduleHandler) UpsertMyDay(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFromRequest(r)
	h.upsertDay(w, r, id.UserID)
}

func (h *ScheduleHandler) UpsertEmployeeDay(w http.ResponseWriter, r *http.Request) {
	manager, _ := identityFromRequest(r)
	targetID, ok := userIDParam(r)
	if !ok {
		badRequest(w, "invalid user id")
		return
	}
	allowed, err := managerCanEdit(r, h.store, manager.UserID, targetID)
	if err != nil {
		internalError(w)
		return
	}
	if !allowed {
		forbidden(w, "You cannot edit employees outside your department")
		return
	}
	h.upsertDay(w, r, targetID)
}

// UpsertEmployeeRange fills every matching day of a span with the same
// entry, skipping existing days unless overwrite is set.
func (h *ScheduleHandler) UpsertEmployeeRange(w http.ResponseWriter, r *http.Request) {
	manager, _ := identityFromRequest(r)
	targetID, ok := userIDParam(r)
	if !ok {
		badRequest(w, "invalid user id")
		return
	}
	allowed, err := managerCanEdit(r, h.store, manager.UserID, targetID)
	if err != nil {
		internalError(w)
		return
	}
	if !allowed {
		forbidden(w, "You cannot edit employees outside your department")
		return
	}

	var payload schedule.RangeUpsert
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := payload.Validate(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	weekdays := map[int]bool{}
	for _, wd := range payload.Weekdays {
		weekdays[wd] = true
	}

	var result schedule.RangeResult
	start, _ := time.Parse("2006-01-02", payload.StartDate)
	end, _ := time.Parse("2006-01-02", payload.EndDate)
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		// Monday=0 .. Sunday=6, matching the wire contract.
		if len(weekdays) > 0 && !weekdays[(int(cur.Weekday())+6)%7] {
			continue
		}
		date := cur.Format("2006-01-02")
		if !payload.Overwrite {
			if _, err := h.store.EntryOn(r.Context(), targetID, date); err == nil {
				result.Skipped++
				continue
			} else if !errors.Is(err, ErrNotFound) {
				internalError(w)
				return
			}
		}
		entry := schedule.ScheduleEntry{
			Date:      date,
			Type:      payload.Type,
			StartTime: payload.StartTime,
			EndTime:   payload.EndTime,
			Title:     payload.Title,
		}
		created, err := h.store.UpsertEntry(r.Context(), targetID, entry)
		if err != nil {
			internalError(w)
			return
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ScheduleHandler) deleteDay(w http.ResponseWriter, r *http.Request, userID int64) {
	date := r.URL.Query().Get("date")
	if _, ok := validator.IsValidDate(date); !ok {
		badRequest(w, "date must be YYYY-MM-DD")
		return
	}
	if err := h.store.DeleteEntry(r.Context(), userID, date); err != nil {
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *ScheduleHandler) DeleteMyDay(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFromRequest(r)
	h.deleteDay(w, r, id.UserID)
}

func (h *ScheduleHandler) DeleteEmployeeDay(w http.ResponseWriter, r *http.Request) {
	manager, _ := identityFromRequest(r)
	targetID, ok := userIDParam(r)
	if !ok {
		badRequest(w, "invalid user id")
		return
	}
	allowed, err := managerCanEdit(r, h.store, manager.UserID, targetID)
	if err != nil {
		internalError(w)
		return
	}
	if !allowed {
		forbidden(w, "You cannot edit employees outside your department")
		return
	}
	h.deleteDay(w, r, targetID)
}
