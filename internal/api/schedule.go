package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shiftdesk/shiftdesk/internal/apperr"
	"github.com/shiftdesk/shiftdesk/internal/domain/schedule"
)

type monthResponse struct {
	Month   string                   `json:"month"`
	Entries []schedule.ScheduleEntry `json:"entries"`
}

// MySchedule fetches the caller's own entries for a YYYY-MM window.
func (c *Client) MySchedule(ctx context.Context, token, ym string) ([]schedule.ScheduleEntry, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/schedule/me?month="+url.QueryEscape(ym), nil)
	if err != nil {
		return nil, apperr.Wrap(err)
	}
	var out monthResponse
	if err := c.do(req, token, &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

// EmployeeSchedule fetches one employee's entries for a YYYY-MM window.
// Manager only.
func (c *Client) EmployeeSchedule(ctx context.Context, token string, employeeID int64, ym string) ([]schedule.ScheduleEntry, error) {
	path := fmt.Sprintf("/schedule/%d?month=%s", employeeID, url.QueryEscape(ym))
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, apperr.Wrap(err)
	}
	var out monthResponse
	if err := c.do(req, token, &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

// DeptEmployees fetches the roster of the manager's department.
func (c *Client) DeptEmployees(ctx context.Context, token string) ([]schedule.DeptEmployee, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/department/employees", nil)
	if err != nil {
		return nil, apperr.Wrap(err)
	}
	var out []schedule.DeptEmployee
	if err := c.do(req, token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertDay writes one day of the target subject's schedule.
func (c *Client) UpsertDay(ctx context.Context, token string, payload schedule.DayUpsert, target schedule.Subject) (schedule.ScheduleEntry, error) {
	path := "/schedule/day/me"
	if !target.IsSelf() {
		path = fmt.Sprintf("/schedule/day/%d", *target.EmployeeID)
	}
	req, err := c.newRequest(ctx, http.MethodPut, path, payload)
	if err != nil {
		return schedule.ScheduleEntry{}, apperr.Wrap(err)
	}
	var out schedule.ScheduleEntry
	if err := c.do(req, token, &out); err != nil {
		return schedule.ScheduleEntry{}, err
	}
	return out, nil
}

// UpsertRange fills a date span of an employee's schedule. Manager only.
func (c *Client) UpsertRange(ctx context.Context, token string, payload schedule.RangeUpsert, employeeID int64) (schedule.RangeResult, error) {
	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/schedule/range/%d", employeeID), payload)
	if err != nil {
		return schedule.RangeResult{}, apperr.Wrap(err)
	}
	var out schedule.RangeResult
	if err := c.do(req, token, &out); err != nil {
		return schedule.RangeResult{}, err
	}
	return out, nil
}

// DeleteDay removes one day of the target subject's schedule. Deleting an
// absent day succeeds.
func (c *Client) DeleteDay(ctx context.Context, token, date string, target schedule.Subject) error {
	path := "/schedule/day/me"
	if !target.IsSelf() {
		path = fmt.Sprintf("/schedule/day/%d", *target.EmployeeID)
	}
	req, err := c.newRequest(ctx, http.MethodDelete, path+"?date="+url.QueryEscape(date), nil)
	if err != nil {
		return apperr.Wrap(err)
	}
	return c.do(req, token, nil)
}
