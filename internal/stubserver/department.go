package stubserver

import (
	"errors"
	"net/http"

	"github.com/shiftdesk/shiftdesk/internal/domain/schedule"
)

type DepartmentHandler struct {
	store *Storage
}

func NewDepartmentHandler(store *Storage) *DepartmentHandler {
	return &DepartmentHandler{store: store}
}

// Employees returns the roster of the department the calling manager runs.
// A manager without a department gets an empty list, not an error.
func (h *DepartmentHandler) Employees(w http.ResponseWriter, r *http.Request) {
	manager, _ := identityFromRequest(r)

	dep, err := h.store.DepartmentByManager(r.Context(), manager.UserID)
	if errors.Is(err, ErrNotFound) {
		writeJSON(w, http.StatusOK, []schedule.DeptEmployee{})
		return
	}
	if err != nil {
		internalError(w)
		return
	}

	roster, err := h.store.Roster(r.Context(), dep.ID)
	if err != nil {
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, roster)
}
