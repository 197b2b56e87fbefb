package schedule

import (
	"strings"

	"github.com/shiftdesk/shiftdesk/internal/pkg/validator"
)

// DayUpsert is the payload for writing one day of a subject's schedule.
type DayUpsert struct {
	Date      string    `json:"date"`
	Type      EntryType `json:"type"`
	StartTime *string   `json:"start_time"`
	EndTime   *string   `json:"end_time"`
	Title     *string   `json:"title"`
}

func (r *DayUpsert) Validate() error {
	var errs validator.ValidationErrors

	if !ValidDate(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required in YYYY-MM-DD format",
		})
	}
	if !r.Type.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(EntryTypeValues, ", "),
		})
	}
	if r.Type == TypeShift {
		if r.StartTime == nil || validator.IsEmpty(*r.StartTime) {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time is required for a shift",
			})
		}
		if r.EndTime == nil || validator.IsEmpty(*r.EndTime) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time is required for a shift",
			})
		}
	}
	if r.StartTime != nil && !validator.IsEmpty(*r.StartTime) && !ValidClockTime(*r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be HH:MM",
		})
	}
	if r.EndTime != nil && !validator.IsEmpty(*r.EndTime) && !ValidClockTime(*r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be HH:MM",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Normalize drops times for types that do not carry them and collapses a
// whitespace-only title to absent.
func (r *DayUpsert) Normalize() {
	if !r.Type.NeedsTimes() {
		r.StartTime = nil
		r.EndTime = nil
	}
	if r.StartTime != nil {
		trimmed := strings.TrimSpace(*r.StartTime)
		r.StartTime = &trimmed
	}
	if r.EndTime != nil {
		trimmed := strings.TrimSpace(*r.EndTime)
		r.EndTime = &trimmed
	}
	if r.Title != nil {
		trimmed := strings.TrimSpace(*r.Title)
		if trimmed == "" {
			r.Title = nil
		} else {
			r.Title = &trimmed
		}
	}
}

// RangeUpsert fills every matching day of a date span with the same entry.
type RangeUpsert struct {
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Type      EntryType `json:"type"`
	StartTime *string   `json:"start_time"`
	EndTime   *string   `json:"end_time"`
	Title     *string   `json:"title"`
	// Weekdays restricts the fill to the listed days, 0=Monday..6=Sunday.
	// Nil means every day of the span.
	Weekdays  []int `json:"weekdays"`
	Overwrite bool  `json:"overwrite"`
}

func (r *RangeUpsert) Validate() error {
	var errs validator.ValidationErrors

	if !ValidDate(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required in YYYY-MM-DD format",
		})
	}
	if !ValidDate(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required in YYYY-MM-DD format",
		})
	}
	if ValidDate(r.StartDate) && ValidDate(r.EndDate) && r.StartDate > r.EndDate {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}
	if !r.Type.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(EntryTypeValues, ", "),
		})
	}
	if r.Type == TypeShift {
		if r.StartTime == nil || validator.IsEmpty(*r.StartTime) {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time is required for a shift",
			})
		}
		if r.EndTime == nil || validator.IsEmpty(*r.EndTime) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time is required for a shift",
			})
		}
	}
	for _, wd := range r.Weekdays {
		if wd < 0 || wd > 6 {
			errs = append(errs, validator.ValidationError{
				Field:   "weekdays",
				Message: "weekdays must be between 0 (Monday) and 6 (Sunday)",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RangeResult reports the outcome of a range fill.
type RangeResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}
