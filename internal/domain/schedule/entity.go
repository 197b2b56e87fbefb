package schedule

import "strings"

// EntryType classifies one calendar day of a subject's schedule.
type EntryType string

const (
	TypeShift    EntryType = "shift"
	TypeOff      EntryType = "off"
	TypeVacation EntryType = "vacation"
	TypeSick     EntryType = "sick"
	TypeTrip     EntryType = "trip"
	TypeOther    EntryType = "other"
)

var EntryTypeValues = []string{
	string(TypeShift),
	string(TypeOff),
	string(TypeVacation),
	string(TypeSick),
	string(TypeTrip),
	string(TypeOther),
}

func (t EntryType) Valid() bool {
	switch t {
	case TypeShift, TypeOff, TypeVacation, TypeSick, TypeTrip, TypeOther:
		return true
	}
	return false
}

// NeedsTimes reports whether entries of this type carry clock times.
// Times on any other type are dropped before submission.
func (t EntryType) NeedsTimes() bool {
	return t == TypeShift || t == TypeTrip
}

// ScheduleEntry is one day's classification for one subject.
// At most one entry exists per (subject, date).
type ScheduleEntry struct {
	Date      string    `json:"date"`
	Type      EntryType `json:"type"`
	StartTime *string   `json:"start_time,omitempty"`
	EndTime   *string   `json:"end_time,omitempty"`
	Title     *string   `json:"title,omitempty"`
}

// DeptEmployee is one row of a manager's department roster.
type DeptEmployee struct {
	UserID   int64   `json:"user_id"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name,omitempty"`
}

// DisplayName prefers the full name and falls back to the email.
func (e DeptEmployee) DisplayName() string {
	if e.FullName != nil && strings.TrimSpace(*e.FullName) != "" {
		return strings.TrimSpace(*e.FullName)
	}
	return e.Email
}

// View selects whose schedule is being reconciled.
type View string

const (
	ViewMe   View = "me"
	ViewDept View = "dept"
)

// Subject identifies the person whose schedule is viewed or edited:
// the session owner (nil EmployeeID) or one employee from the roster.
type Subject struct {
	EmployeeID *int64
}

func Self() Subject { return Subject{} }

func ForEmployee(id int64) Subject {
	return Subject{EmployeeID: &id}
}

func (s Subject) IsSelf() bool { return s.EmployeeID == nil }
