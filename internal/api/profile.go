package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shiftdesk/shiftdesk/internal/apperr"
	"github.com/shiftdesk/shiftdesk/internal/domain/profile"
)

// MyProfile fetches the caller's employee card.
func (c *Client) MyProfile(ctx context.Context, token string) (profile.Profile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/employee/profile/me", nil)
	if err != nil {
		return profile.Profile{}, apperr.Wrap(err)
	}
	var out profile.Profile
	if err := c.do(req, token, &out); err != nil {
		return profile.Profile{}, err
	}
	return out, nil
}

// EmployeeProfile fetches one employee's card. Manager only.
func (c *Client) EmployeeProfile(ctx context.Context, token string, userID int64) (profile.Profile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/employee/profile/%d", userID), nil)
	if err != nil {
		return profile.Profile{}, apperr.Wrap(err)
	}
	var out profile.Profile
	if err := c.do(req, token, &out); err != nil {
		return profile.Profile{}, err
	}
	return out, nil
}

// UpsertEmployeeProfile creates or updates an employee's card. Manager only.
func (c *Client) UpsertEmployeeProfile(ctx context.Context, token string, userID int64, payload profile.Upsert) (profile.Profile, error) {
	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/employee/profile/add/%d", userID), payload)
	if err != nil {
		return profile.Profile{}, apperr.Wrap(err)
	}
	var out profile.Profile
	if err := c.do(req, token, &out); err != nil {
		return profile.Profile{}, err
	}
	return out, nil
}
