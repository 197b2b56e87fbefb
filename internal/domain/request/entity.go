package request

// RequestType is the kind of absence an employee asks for.
type RequestType string

const (
	TypeOff      RequestType = "off"
	TypeVacation RequestType = "vacation"
	TypeSick     RequestType = "sick"
)

var RequestTypeValues = []string{
	string(TypeOff),
	string(TypeVacation),
	string(TypeSick),
}

func (t RequestType) Valid() bool {
	switch t {
	case TypeOff, TypeVacation, TypeSick:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Terminal reports whether no further transitions are permitted.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransitionTo enforces the single pending -> approved|rejected step.
func (s Status) CanTransitionTo(to Status) bool {
	if s != StatusPending {
		return false
	}
	return to == StatusApproved || to == StatusRejected
}

// ServiceRequest is one leave request. Created by an employee, decided
// exactly once by a manager.
type ServiceRequest struct {
	ID           int64       `json:"id"`
	UserID       int64       `json:"user_id"`
	UserEmail    *string     `json:"user_email,omitempty"`
	UserFullName *string     `json:"user_full_name,omitempty"`
	Type         RequestType `json:"type"`
	StartDate    string      `json:"start_date"`
	EndDate      string      `json:"end_date"`
	Status       Status      `json:"status"`
	CreatedAt    string      `json:"created_at"`
}
