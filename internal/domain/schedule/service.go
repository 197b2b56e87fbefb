package schedule

import "context"

// API is the schedule backend boundary consumed by the reconciler and the
// editor. internal/api implements it over HTTP.
type API interface {
	MySchedule(ctx context.Context, token, ym string) ([]ScheduleEntry, error)
	EmployeeSchedule(ctx context.Context, token string, employeeID int64, ym string) ([]ScheduleEntry, error)
	DeptEmployees(ctx context.Context, token string) ([]DeptEmployee, error)
	UpsertDay(ctx context.Context, token string, payload DayUpsert, target Subject) (ScheduleEntry, error)
	UpsertRange(ctx context.Context, token string, payload RangeUpsert, employeeID int64) (RangeResult, error)
	DeleteDay(ctx context.Context, token, date string, target Subject) error
}

// Session is the slice of the auth session the schedule core reads.
type Session interface {
	Token() string
	IsManager() bool
}
