package stubserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shiftdesk/shiftdesk/internal/domain/profile"
)

type ProfileHandler struct {
	store *Storage
}

func NewProfileHandler(store *Storage) *ProfileHandler {
	return &ProfileHandler{store: store}
}

func profileOut(p ProfileRow) profile.Profile {
	return profile.Profile{
		Email:          p.Email,
		FullName:       p.FullName,
		BirthDate:      p.BirthDate,
		EmployeeNumber: p.EmployeeNumber,
		Position:       p.Position,
		WorkStartDate:  p.WorkStartDate,
		DepartmentName: p.DepartmentName,
	}
}

func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFromRequest(r)
	p, err := h.store.ProfileByEmail(r.Context(), id.Email)
	if errors.Is(err, ErrNotFound) {
		notFound(w, "Profile not found")
		return
	}
	if err != nil {
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, profileOut(p))
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	targetID, ok := userIDParam(r)
	if !ok {
		badRequest(w, "invalid user id")
		return
	}
	target, err := h.store.UserByID(r.Context(), targetID)
	if errors.Is(err, ErrNotFound) {
		notFound(w, "User not found")
		return
	}
	if err != nil {
		internalError(w)
		return
	}
	p, err := h.store.ProfileByEmail(r.Context(), target.Email)
	if errors.Is(err, ErrNotFound) {
		notFound(w, "Profile not found")
		return
	}
	if err != nil {
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, profileOut(p))
}

// Upsert creates or patches an employee's profile. Only the fields present
// in the payload are touched.
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	targetID, ok := userIDParam(r)
	if !ok {
		badRequest(w, "invalid user id")
		return
	}
	target, err := h.store.UserByID(r.Context(), targetID)
	if errors.Is(err, ErrNotFound) {
		notFound(w, "User not found")
		return
	}
	if err != nil {
		internalError(w)
		return
	}

	var payload profile.Upsert
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	fields := map[string]any{}
	if payload.FullName != nil {
		fields["full_name"] = *payload.FullName
	}
	if payload.BirthDate != nil {
		fields["birth_date"] = *payload.BirthDate
	}
	if payload.EmployeeNumber != nil {
		fields["employee_number"] = *payload.EmployeeNumber
	}
	if payload.Position != nil {
		fields["position"] = *payload.Position
	}
	if payload.WorkStartDate != nil {
		fields["work_start_date"] = *payload.WorkStartDate
	}
	if payload.DepartmentID != nil {
		fields["department_id"] = *payload.DepartmentID
	}

	if err := h.store.UpsertProfile(r.Context(), target.Email, fields); err != nil {
		internalError(w)
		return
	}
	p, err := h.store.ProfileByEmail(r.Context(), target.Email)
	if err != nil {
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, profileOut(p))
}
