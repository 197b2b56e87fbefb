package request

import (
	"context"
	"sync"
	"testing"

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

type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	createFn func(ctx context.Context, payload CreateServiceRequestRequest) (ServiceRequest, error)
	updateFn func(ctx context.Context, id int64, status Status) (ServiceRequest, error)
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

func (f *fakeAPI) CreateServiceRequest(ctx context.Context, token string, payload CreateServiceRequestRequest) (ServiceRequest, error) {
	f.count("create")
	if f.createFn != nil {
		return f.createFn(ctx, payload)
	}
	return ServiceRequest{ID: 1, Type: payload.Type, StartDate: payload.StartDate, EndDate: payload.EndDate, Status: StatusPending}, nil
}

func (f *fakeAPI) MyServiceRequests(ctx context.Context, token string) ([]ServiceRequest, error) {
	f.count("mine")
	return []ServiceRequest{{ID: 1, Status: StatusPending}}, nil
}

func (f *fakeAPI) AllServiceRequests(ctx context.Context, token string) ([]ServiceRequest, error) {
	f.count("all")
	return []ServiceRequest{{ID: 1, Status: StatusPending}, {ID: 2, Status: StatusApproved}}, nil
}

func (f *fakeAPI) UpdateServiceRequestStatus(ctx context.Context, token string, id int64, status Status) (ServiceRequest, error) {
	f.count("update")
	if f.updateFn != nil {
		return f.updateFn(ctx, id, status)
	}
	return ServiceRequest{ID: id, Status: status}, nil
}

func TestCreateValidRequest(t *testing.T) {
	api := newFakeAPI()
	w := NewWorkflow(api, &fakeSession{token: "t"})

	out, err := w.Create(context.Background(), CreateServiceRequestRequest{
		Type: TypeVacation, StartDate: "2024-06-03", EndDate: "2024-06-07",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, out.Status)
	assert.Equal(t, 1, api.callCount("create"))
}

func TestCreateRejectsReversedDatesLocally(t *testing.T) {
	api := newFakeAPI()
	w := NewWorkflow(api, &fakeSession{token: "t"})

	_, err := w.Create(context.Background(), CreateServiceRequestRequest{
		Type: TypeSick, StartDate: "2024-06-07", EndDate: "2024-06-03",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, 0, api.callCount("create"))
}

func TestCreateRejectsUnknownType(t *testing.T) {
	api := newFakeAPI()
	w := NewWorkflow(api, &fakeSession{token: "t"})

	_, err := w.Create(context.Background(), CreateServiceRequestRequest{
		Type: RequestType("holiday"), StartDate: "2024-06-03", EndDate: "2024-06-03",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, 0, api.callCount("create"))
}

func TestListRoutesByRole(t *testing.T) {
	api := newFakeAPI()

	managerView, err := NewWorkflow(api, &fakeSession{token: "t", manager: true}).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, managerView, 2)
	assert.Equal(t, 1, api.callCount("all"))
	assert.Equal(t, 0, api.callCount("mine"))

	ownView, err := NewWorkflow(api, &fakeSession{token: "t"}).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, ownView, 1)
	assert.Equal(t, 1, api.callCount("mine"))
}

func TestDecidePendingRequest(t *testing.T) {
	api := newFakeAPI()
	w := NewWorkflow(api, &fakeSession{token: "t", manager: true})

	out, err := w.Decide(context.Background(), ServiceRequest{ID: 5, Status: StatusPending}, StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, out.Status)
	assert.Equal(t, 1, api.callCount("update"))
}

func TestDecideTerminalRequestIsRejectedLocally(t *testing.T) {
	api := newFakeAPI()
	w := NewWorkflow(api, &fakeSession{token: "t", manager: true})

	for _, status := range []Status{StatusApproved, StatusRejected} {
		_, err := w.Decide(context.Background(), ServiceRequest{ID: 5, Status: status}, StatusRejected)
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
	}
	assert.Equal(t, 0, api.callCount("update"))
}

func TestDecideRejectsPendingTarget(t *testing.T) {
	api := newFakeAPI()
	w := NewWorkflow(api, &fakeSession{token: "t", manager: true})

	_, err := w.Decide(context.Background(), ServiceRequest{ID: 5, Status: StatusPending}, StatusPending)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, 0, api.callCount("update"))
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusApproved))
	assert.True(t, StatusPending.CanTransitionTo(StatusRejected))
	assert.False(t, StatusApproved.CanTransitionTo(StatusRejected))
	assert.False(t, StatusRejected.CanTransitionTo(StatusApproved))
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusApproved.Terminal())
	assert.True(t, StatusRejected.Terminal())
}
