package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shiftdesk/shiftdesk/internal/apperr"
	"github.com/shiftdesk/shiftdesk/internal/domain/request"
)

// CreateServiceRequest submits a leave request for the session owner.
func (c *Client) CreateServiceRequest(ctx context.Context, token string, payload request.CreateServiceRequestRequest) (request.ServiceRequest, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/service-requests", payload)
	if err != nil {
		return request.ServiceRequest{}, apperr.Wrap(err)
	}
	var out request.ServiceRequest
	if err := c.do(req, token, &out); err != nil {
		return request.ServiceRequest{}, err
	}
	return out, nil
}

// MyServiceRequests lists the caller's own requests, newest first.
func (c *Client) MyServiceRequests(ctx context.Context, token string) ([]request.ServiceRequest, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/service-requests/me", nil)
	if err != nil {
		return nil, apperr.Wrap(err)
	}
	var out []request.ServiceRequest
	if err := c.do(req, token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AllServiceRequests lists the requests of the manager's department.
func (c *Client) AllServiceRequests(ctx context.Context, token string) ([]request.ServiceRequest, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/service-requests", nil)
	if err != nil {
		return nil, apperr.Wrap(err)
	}
	var out []request.ServiceRequest
	if err := c.do(req, token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateServiceRequestStatus transitions one request. Manager only.
func (c *Client) UpdateServiceRequestStatus(ctx context.Context, token string, id int64, status request.Status) (request.ServiceRequest, error) {
	body := request.UpdateStatusRequest{Status: status}
	req, err := c.newRequest(ctx, http.MethodPatch, fmt.Sprintf("/service-requests/%d", id), body)
	if err != nil {
		return request.ServiceRequest{}, apperr.Wrap(err)
	}
	var out request.ServiceRequest
	if err := c.do(req, token, &out); err != nil {
		return request.ServiceRequest{}, err
	}
	return out, nil
}
