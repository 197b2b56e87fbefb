package schedule

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftdesk/shiftdesk/internal/apperr"
)

type fakeSession struct {
	token   string
	manager bool
}

func (s *fakeSession) Token() string   { return s.token }
func (s *fakeSession) IsManager() bool { return s.manager }

// fakeAPI implements the API boundary with injectable behavior and call
// counting.
type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	myScheduleFn  func(ctx context.Context, ym string) ([]ScheduleEntry, error)
	empScheduleFn func(ctx context.Context, employeeID int64, ym string) ([]ScheduleEntry, error)
	deptFn        func(ctx context.Context) ([]DeptEmployee, error)
	upsertFn      func(ctx context.Context, payload DayUpsert, target Subject) (ScheduleEntry, error)
	deleteFn      func(ctx context.Context, date string, target Subject) error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: map[string]int{}}
}

func (f *fakeAPI) count(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeAPI) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) MySchedule(ctx context.Context, token, ym string) ([]ScheduleEntry, error) {
	f.count("mySchedule")
	if f.myScheduleFn != nil {
		return f.myScheduleFn(ctx, ym)
	}
	return []ScheduleEntry{}, nil
}

func (f *fakeAPI) EmployeeSchedule(ctx context.Context, token string, employeeID int64, ym string) ([]ScheduleEntry, error) {
	f.count("employeeSchedule")
	if f.empScheduleFn != nil {
		return f.empScheduleFn(ctx, employeeID, ym)
	}
	return []ScheduleEntry{}, nil
}

func (f *fakeAPI) DeptEmployees(ctx context.Context, token string) ([]DeptEmployee, error) {
	f.count("deptEmployees")
	if f.deptFn != nil {
		return f.deptFn(ctx)
	}
	return []DeptEmployee{}, nil
}

func (f *fakeAPI) UpsertDay(ctx context.Context, token string, payload DayUpsert, target Subject) (ScheduleEntry, error) {
	f.count("upsertDay")
	if f.upsertFn != nil {
		return f.upsertFn(ctx, payload, target)
	}
	return ScheduleEntry{Date: payload.Date, Type: payload.Type}, nil
}

func (f *fakeAPI) UpsertRange(ctx context.Context, token string, payload RangeUpsert, employeeID int64) (RangeResult, error) {
	f.count("upsertRange")
	return RangeResult{}, nil
}

func (f *fakeAPI) DeleteDay(ctx context.Context, token, date string, target Subject) error {
	f.count("deleteDay")
	if f.deleteFn != nil {
		return f.deleteFn(ctx, date, target)
	}
	return nil
}

func entry(date string, typ EntryType) ScheduleEntry {
	return ScheduleEntry{Date: date, Type: typ}
}

func TestReloadWithoutTokenIsNoop(t *testing.T) {
	api := newFakeAPI()
	rec := NewReconciler(api, &fakeSession{token: ""}, "2024-05")

	require.NoError(t, rec.Reload(context.Background()))
	assert.Equal(t, 0, api.callCount("mySchedule"))
	assert.False(t, rec.Loading())
}

func TestReloadTwiceYieldsIdenticalState(t *testing.T) {
	api := newFakeAPI()
	api.myScheduleFn = func(ctx context.Context, ym string) ([]ScheduleEntry, error) {
		return []ScheduleEntry{entry("2024-05-10", TypeShift), entry("2024-05-11", TypeOff)}, nil
	}
	rec := NewReconciler(api, &fakeSession{token: "t"}, "2024-05")

	require.NoError(t, rec.Reload(context.Background()))
	first := rec.Entries()
	firstIndex := rec.Index()

	require.NoError(t, rec.Reload(context.Background()))
	assert.Equal(t, first, rec.Entries())
	assert.Equal(t, firstIndex, rec.Index())
	assert.False(t, rec.Loading())
	assert.NoError(t, rec.Err())
}

func TestStaleFetchNeverOverwritesNewer(t *testing.T) {
	api := newFakeAPI()
	mayStarted := make(chan struct{})
	api.myScheduleFn = func(ctx context.Context, ym string) ([]ScheduleEntry, error) {
		if ym == "2024-05" {
			close(mayStarted)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return []ScheduleEntry{entry("2024-06-01", TypeShift)}, nil
	}
	rec := NewReconciler(api, &fakeSession{token: "t"}, "2024-05")

	done := make(chan error, 1)
	go func() { done <- rec.Reload(context.Background()) }()
	<-mayStarted

	require.NoError(t, rec.SetMonth("2024-06"))
	require.NoError(t, rec.Reload(context.Background()))
	require.NoError(t, <-done)

	assert.Equal(t, []ScheduleEntry{entry("2024-06-01", TypeShift)}, rec.Entries())
	_, hasStale := rec.EntryOn("2024-05-01")
	assert.False(t, hasStale)
	assert.NoError(t, rec.Err())
	assert.False(t, rec.Loading())
}

func TestCancellationSetsNoErrorAndKeepsEntries(t *testing.T) {
	api := newFakeAPI()
	api.myScheduleFn = func(ctx context.Context, ym string) ([]ScheduleEntry, error) {
		return []ScheduleEntry{entry("2024-05-10", TypeShift)}, nil
	}
	rec := NewReconciler(api, &fakeSession{token: "t"}, "2024-05")
	require.NoError(t, rec.Reload(context.Background()))

	started := make(chan struct{})
	api.myScheduleFn = func(ctx context.Context, ym string) ([]ScheduleEntry, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}

	done := make(chan error, 1)
	go func() { done <- rec.Reload(context.Background()) }()
	<-started
	rec.Close()

	require.NoError(t, <-done)
	assert.NoError(t, rec.Err())
	assert.Equal(t, []ScheduleEntry{entry("2024-05-10", TypeShift)}, rec.Entries())
	assert.False(t, rec.Loading())
}

func TestUnauthorizedClearsEntries(t *testing.T) {
	api := newFakeAPI()
	api.myScheduleFn = func(ctx context.Context, ym string) ([]ScheduleEntry, error) {
		return []ScheduleEntry{entry("2024-05-10", TypeShift)}, nil
	}
	rec := NewReconciler(api, &fakeSession{token: "t"}, "2024-05")
	require.NoError(t, rec.Reload(context.Background()))
	require.Len(t, rec.Entries(), 1)

	api.myScheduleFn = func(ctx context.Context, ym string) ([]ScheduleEntry, error) {
		return nil, apperr.Auth("session expired")
	}
	err := rec.Reload(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.IsAuth(err))
	assert.True(t, apperr.IsAuth(rec.Err()))
	assert.Empty(t, rec.Entries())
	assert.Empty(t, rec.Index())
}

func TestDeptViewFetchesRosterThenScheduleInOnePass(t *testing.T) {
	api := newFakeAPI()
	name := "Olena"
	api.deptFn = func(ctx context.Context) ([]DeptEmployee, error) {
		return []DeptEmployee{
			{UserID: 7, Email: "olena@example.com", FullName: &name},
			{UserID: 9, Email: "dmytro@example.com"},
		}, nil
	}
	api.empScheduleFn = func(ctx context.Context, employeeID int64, ym string) ([]ScheduleEntry, error) {
		require.EqualValues(t, 7, employeeID)
		return []ScheduleEntry{entry("2024-05-02", TypeVacation)}, nil
	}
	rec := NewReconciler(api, &fakeSession{token: "t", manager: true}, "2024-05")
	rec.SetView(ViewDept)

	require.NoError(t, rec.Reload(context.Background()))

	selected, ok := rec.SelectedEmployee()
	require.True(t, ok)
	assert.EqualValues(t, 7, selected)
	assert.Len(t, rec.Roster(), 2)
	assert.Equal(t, []ScheduleEntry{entry("2024-05-02", TypeVacation)}, rec.Entries())
	assert.Equal(t, 1, api.callCount("deptEmployees"))
	assert.Equal(t, 1, api.callCount("employeeSchedule"))

	// The cached roster is not refetched on the next pass.
	require.NoError(t, rec.Reload(context.Background()))
	assert.Equal(t, 1, api.callCount("deptEmployees"))
	assert.Equal(t, 2, api.callCount("employeeSchedule"))
}

func TestDeptViewEmptyRosterFetchesNothing(t *testing.T) {
	api := newFakeAPI()
	rec := NewReconciler(api, &fakeSession{token: "t", manager: true}, "2024-05")
	rec.SetView(ViewDept)

	require.NoError(t, rec.Reload(context.Background()))

	_, ok := rec.SelectedEmployee()
	assert.False(t, ok)
	assert.Equal(t, 0, api.callCount("employeeSchedule"))
	assert.False(t, rec.Loading())
	assert.NoError(t, rec.Err())
}

func TestInvalidateRosterForcesRefetch(t *testing.T) {
	api := newFakeAPI()
	api.deptFn = func(ctx context.Context) ([]DeptEmployee, error) {
		return []DeptEmployee{{UserID: 3, Email: "a@example.com"}}, nil
	}
	rec := NewReconciler(api, &fakeSession{token: "t", manager: true}, "2024-05")
	rec.SetView(ViewDept)

	require.NoError(t, rec.Reload(context.Background()))
	require.Equal(t, 1, api.callCount("deptEmployees"))

	rec.InvalidateRoster()
	require.NoError(t, rec.Reload(context.Background()))
	assert.Equal(t, 2, api.callCount("deptEmployees"))
}

func TestSetMonthRejectsMalformedWindow(t *testing.T) {
	rec := NewReconciler(newFakeAPI(), &fakeSession{token: "t"}, "2024-05")
	assert.ErrorIs(t, rec.SetMonth("May 2024"), ErrInvalidMonth)
	assert.Equal(t, "2024-05", rec.Month())
}

func TestLoadingFlagDuringFetch(t *testing.T) {
	api := newFakeAPI()
	started := make(chan struct{})
	release := make(chan struct{})
	api.myScheduleFn = func(ctx context.Context, ym string) ([]ScheduleEntry, error) {
		close(started)
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return []ScheduleEntry{}, nil
	}
	rec := NewReconciler(api, &fakeSession{token: "t"}, "2024-05")

	done := make(chan error, 1)
	go func() { done <- rec.Reload(context.Background()) }()
	<-started
	assert.True(t, rec.Loading())
	close(release)
	require.NoError(t, <-done)

	deadline := time.After(time.Second)
	for rec.Loading() {
		select {
		case <-deadline:
			t.Fatal("loading flag never cleared")
		default:
			time.Sleep(time.Millisecond)
		}
	}
}
