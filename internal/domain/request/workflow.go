package request

import (
	"context"

	"github.com/shiftdesk/shiftdesk/internal/apperr"
)

// API is the service-request slice of the backend.
type API interface {
	CreateServiceRequest(ctx context.Context, token string, payload CreateServiceRequestRequest) (ServiceRequest, error)
	MyServiceRequests(ctx context.Context, token string) ([]ServiceRequest, error)
	AllServiceRequests(ctx context.Context, token string) ([]ServiceRequest, error)
	UpdateServiceRequestStatus(ctx context.Context, token string, id int64, status Status) (ServiceRequest, error)
}

// Session is the slice of the auth session this workflow reads.
type Session interface {
	Token() string
	IsManager() bool
}

// Workflow mediates the leave-request operations: employees create and list
// their own requests, managers list and decide their department's.
// Transition rules are checked locally before the backend is called.
type Workflow struct {
	api  API
	sess Session
}

func NewWorkflow(api API, sess Session) *Workflow {
	return &Workflow{api: api, sess: sess}
}

// Create submits a new leave request for the session owner.
func (w *Workflow) Create(ctx context.Context, payload CreateServiceRequestRequest) (ServiceRequest, error) {
	if err := payload.Validate(); err != nil {
		return ServiceRequest{}, apperr.Validation("%s", err.Error())
	}
	out, err := w.api.CreateServiceRequest(ctx, w.sess.Token(), payload)
	if err != nil {
		return ServiceRequest{}, apperr.Wrap(err)
	}
	return out, nil
}

// List returns the requests visible to the session: the manager's whole
// department, or the employee's own.
func (w *Workflow) List(ctx context.Context) ([]ServiceRequest, error) {
	var (
		out []ServiceRequest
		err error
	)
	if w.sess.IsManager() {
		out, err = w.api.AllServiceRequests(ctx, w.sess.Token())
	} else {
		out, err = w.api.MyServiceRequests(ctx, w.sess.Token())
	}
	if err != nil {
		return nil, apperr.Wrap(err)
	}
	return out, nil
}

// Decide transitions a pending request to approved or rejected. Terminal
// requests are rejected locally, without a round-trip.
func (w *Workflow) Decide(ctx context.Context, req ServiceRequest, to Status) (ServiceRequest, error) {
	upd := UpdateStatusRequest{Status: to}
	if err := upd.Validate(); err != nil {
		return ServiceRequest{}, apperr.Validation("%s", err.Error())
	}
	if !req.Status.CanTransitionTo(to) {
		return ServiceRequest{}, apperr.Validation("%s", ErrAlreadyProcessed.Error())
	}
	out, err := w.api.UpdateServiceRequestStatus(ctx, w.sess.Token(), req.ID, to)
	if err != nil {
		return ServiceRequest{}, apperr.Wrap(err)
	}
	return out, nil
}
