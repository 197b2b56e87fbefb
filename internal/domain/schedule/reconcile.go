package schedule

import (
	"context"
	"sync"

	"github.com/shiftdesk/shiftdesk/internal/apperr"
)

// Reconciler produces the authoritative set of entries for one
// (subject, month) pair. Starting a new pass always cancels the previous
// one, so a stale response can never overwrite a newer one, and an aborted
// pass never touches visible state.
type Reconciler struct {
	api  API
	sess Session

	mu       sync.Mutex
	cancel   context.CancelFunc
	gen      uint64
	view     View
	monthYM  string
	roster   []DeptEmployee
	selected *int64
	entries  []ScheduleEntry
	byDate   map[string]ScheduleEntry
	loading  bool
	err      error
}

func NewReconciler(api API, sess Session, monthYM string) *Reconciler {
	return &Reconciler{
		api:     api,
		sess:    sess,
		view:    ViewMe,
		monthYM: monthYM,
		byDate:  map[string]ScheduleEntry{},
	}
}

// Reload runs one reconciliation pass for the current view, month and
// subject. It is a no-op without a token. The previous pass, if still in
// flight, is cancelled first. Cancellation of this pass is reported as nil:
// no error, no state change.
func (r *Reconciler) Reload(ctx context.Context) error {
	token := r.sess.Token()
	if token == "" {
		return nil
	}

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.gen++
	gen := r.gen
	r.loading = true
	r.err = nil
	view := r.view
	ym := r.monthYM
	dept := r.sess.IsManager() && view == ViewDept
	rosterEmpty := len(r.roster) == 0
	selected := r.selected
	r.mu.Unlock()

	defer cancel()

	if dept {
		if rosterEmpty {
			emps, err := r.api.DeptEmployees(ctx, token)
			if err != nil {
				return r.finishErr(gen, err)
			}
			r.mu.Lock()
			if gen != r.gen {
				r.mu.Unlock()
				return nil
			}
			r.roster = emps
			if r.selected == nil && len(emps) > 0 {
				id := emps[0].UserID
				r.selected = &id
			}
			selected = r.selected
			r.mu.Unlock()
		}
		if selected == nil {
			// Empty roster: nothing to fetch for this view.
			r.finishIdle(gen)
			return nil
		}
		entries, err := r.api.EmployeeSchedule(ctx, token, *selected, ym)
		if err != nil {
			return r.finishErr(gen, err)
		}
		r.finishOK(gen, entries)
		return nil
	}

	entries, err := r.api.MySchedule(ctx, token, ym)
	if err != nil {
		return r.finishErr(gen, err)
	}
	r.finishOK(gen, entries)
	return nil
}

func (r *Reconciler) finishOK(gen uint64, entries []ScheduleEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		return
	}
	r.entries = entries
	r.byDate = indexByDate(entries)
	r.err = nil
	r.loading = false
}

func (r *Reconciler) finishErr(gen uint64, err error) error {
	if apperr.IsCancelled(err) {
		// A superseding pass owns the loading flag now; an explicit Close
		// clears it below.
		r.mu.Lock()
		if gen == r.gen {
			r.loading = false
		}
		r.mu.Unlock()
		return nil
	}
	appErr := apperr.Wrap(err)
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		return nil
	}
	r.entries = nil
	r.byDate = map[string]ScheduleEntry{}
	r.err = appErr
	r.loading = false
	return appErr
}

func (r *Reconciler) finishIdle(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen == r.gen {
		r.loading = false
	}
}

func indexByDate(entries []ScheduleEntry) map[string]ScheduleEntry {
	m := make(map[string]ScheduleEntry, len(entries))
	for _, e := range entries {
		m[e.Date] = e
	}
	return m
}

// Close cancels any in-flight pass.
func (r *Reconciler) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// SetView switches between own and department schedule. The caller follows
// up with Reload.
func (r *Reconciler) SetView(v View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.view = v
}

func (r *Reconciler) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view
}

// SetMonth changes the month window driving the fetch range.
func (r *Reconciler) SetMonth(ym string) error {
	if !ValidMonth(ym) {
		return ErrInvalidMonth
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.monthYM = ym
	return nil
}

func (r *Reconciler) Month() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.monthYM
}

// SetSelectedEmployee picks the active subject in dept view. The
// presentation layer is the only caller.
func (r *Reconciler) SetSelectedEmployee(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selected = &id
}

// SelectedEmployee returns the active subject id in dept view, if any.
func (r *Reconciler) SelectedEmployee() (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.selected == nil {
		return 0, false
	}
	return *r.selected, true
}

// Subject resolves the current edit target: self in me view, the selected
// employee in dept view. ok is false in dept view with nothing selected.
func (r *Reconciler) Subject() (Subject, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sess.IsManager() && r.view == ViewDept {
		if r.selected == nil {
			return Subject{}, false
		}
		return ForEmployee(*r.selected), true
	}
	return Self(), true
}

// Roster returns the cached department roster.
func (r *Reconciler) Roster() []DeptEmployee {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]DeptEmployee, len(r.roster))
	copy(out, r.roster)
	return out
}

// InvalidateRoster empties the roster cache so the next dept pass refetches
// it.
func (r *Reconciler) InvalidateRoster() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roster = nil
	r.selected = nil
}

func (r *Reconciler) Entries() []ScheduleEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ScheduleEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// EntryOn is the O(1) date lookup used by the presentation layer.
func (r *Reconciler) EntryOn(date string) (ScheduleEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byDate[date]
	return e, ok
}

// Index returns the full date-keyed view of the current entry set.
func (r *Reconciler) Index() map[string]ScheduleEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]ScheduleEntry, len(r.byDate))
	for k, v := range r.byDate {
		out[k] = v
	}
	return out
}

func (r *Reconciler) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// Err returns the error recorded by the last completed pass, nil after a
// success or a cancellation.
func (r *Reconciler) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
