package schedule

import (
	"context"
	"sync"

	"github.com/shiftdesk/shiftdesk/internal/apperr"
)

// EditorState tracks one edit session of a single day.
type EditorState int

const (
	EditorClosed EditorState = iota
	EditorOpen
	EditorSaving
	EditorDeleting
)

// EditorForm is the mutable form the presentation layer binds to.
type EditorForm struct {
	Type      EntryType
	StartTime string
	EndTime   string
	Title     string
}

const (
	defaultShiftStart = "09:00"
	defaultShiftEnd   = "18:00"
)

// Editor validates and submits one day's entry change, then asks the
// reconciler to reload. Validation failures never reach the network; a
// failed submission keeps the editor open with the error recorded inline so
// the user can correct and retry.
type Editor struct {
	api  API
	sess Session
	rec  *Reconciler

	mu       sync.Mutex
	state    EditorState
	date     string
	existing *ScheduleEntry
	form     EditorForm
	err      error
}

func NewEditor(api API, sess Session, rec *Reconciler) *Editor {
	return &Editor{api: api, sess: sess, rec: rec}
}

// Open starts an edit session for a date, prefilled from the loaded entry
// for that day or from defaults.
func (ed *Editor) Open(date string) error {
	if !ValidDate(date) {
		return ErrInvalidDate
	}
	existing, ok := ed.rec.EntryOn(date)

	ed.mu.Lock()
	defer ed.mu.Unlock()
	ed.state = EditorOpen
	ed.date = date
	ed.err = nil
	if ok {
		ed.existing = &existing
		form := EditorForm{Type: existing.Type}
		if existing.StartTime != nil {
			form.StartTime = ClockShort(*existing.StartTime)
		}
		if existing.EndTime != nil {
			form.EndTime = ClockShort(*existing.EndTime)
		}
		if existing.Title != nil {
			form.Title = *existing.Title
		}
		ed.form = form
	} else {
		ed.existing = nil
		ed.form = EditorForm{
			Type:      TypeShift,
			StartTime: defaultShiftStart,
			EndTime:   defaultShiftEnd,
		}
	}
	return nil
}

// Cancel discards the session without submitting anything.
func (ed *Editor) Cancel() {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	ed.state = EditorClosed
	ed.existing = nil
	ed.err = nil
}

func (ed *Editor) State() EditorState {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.state
}

func (ed *Editor) Date() string {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.date
}

// Existing returns the entry the session was opened on, if any.
func (ed *Editor) Existing() (ScheduleEntry, bool) {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	if ed.existing == nil {
		return ScheduleEntry{}, false
	}
	return *ed.existing, true
}

func (ed *Editor) Form() EditorForm {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.form
}

func (ed *Editor) SetForm(f EditorForm) {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	ed.form = f
}

// Err returns the error of the last failed submission, shown inline in the
// open editor.
func (ed *Editor) Err() error {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.err
}

// Save validates the form and upserts the day for the current subject.
// On success the editor closes and a reload is triggered; on failure it
// stays open.
func (ed *Editor) Save(ctx context.Context) error {
	ed.mu.Lock()
	if ed.state != EditorOpen {
		ed.mu.Unlock()
		return ErrEditorClosed
	}
	date := ed.date
	form := ed.form
	ed.mu.Unlock()

	payload := DayUpsert{Date: date, Type: form.Type}
	if form.StartTime != "" {
		start := form.StartTime
		payload.StartTime = &start
	}
	if form.EndTime != "" {
		end := form.EndTime
		payload.EndTime = &end
	}
	if form.Title != "" {
		title := form.Title
		payload.Title = &title
	}
	payload.Normalize()

	if err := payload.Validate(); err != nil {
		return ed.fail(apperr.Validation("%s", err.Error()))
	}
	target, ok := ed.rec.Subject()
	if !ok {
		return ed.fail(apperr.Validation("%s", ErrNoSubject.Error()))
	}

	ed.setState(EditorSaving)
	if _, err := ed.api.UpsertDay(ctx, ed.sess.Token(), payload, target); err != nil {
		ed.setState(EditorOpen)
		return ed.fail(apperr.Wrap(err))
	}

	ed.mu.Lock()
	ed.state = EditorClosed
	ed.existing = nil
	ed.err = nil
	ed.mu.Unlock()
	return ed.rec.Reload(ctx)
}

// Delete removes the day's entry. Only permitted when the session was
// opened on an existing entry; the missing-subject case is rejected locally
// before the backend is called.
func (ed *Editor) Delete(ctx context.Context) error {
	ed.mu.Lock()
	if ed.state != EditorOpen {
		ed.mu.Unlock()
		return ErrEditorClosed
	}
	if ed.existing == nil {
		ed.mu.Unlock()
		return ed.fail(apperr.Validation("%s", ErrNoEntry.Error()))
	}
	date := ed.date
	ed.mu.Unlock()

	target, ok := ed.rec.Subject()
	if !ok {
		return ed.fail(apperr.Validation("%s", ErrNoSubject.Error()))
	}

	ed.setState(EditorDeleting)
	if err := ed.api.DeleteDay(ctx, ed.sess.Token(), date, target); err != nil {
		ed.setState(EditorOpen)
		return ed.fail(apperr.Wrap(err))
	}

	ed.mu.Lock()
	ed.state = EditorClosed
	ed.existing = nil
	ed.err = nil
	ed.mu.Unlock()
	return ed.rec.Reload(ctx)
}

func (ed *Editor) setState(s EditorState) {
	ed.mu.Lock()
	ed.state = s
	ed.mu.Unlock()
}

func (ed *Editor) fail(err *apperr.Error) error {
	ed.mu.Lock()
	ed.err = err
	ed.mu.Unlock()
	return err
}
