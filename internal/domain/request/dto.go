package request

import (
	"strings"

	"github.com/shiftdesk/shiftdesk/internal/pkg/validator"
)

type CreateServiceRequestRequest struct {
	Type      RequestType `json:"type"`
	StartDate string      `json:"start_date"`
	EndDate   string      `json:"end_date"`
}

func (r *CreateServiceRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Type.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(RequestTypeValues, ", "),
		})
	}
	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	if r.Status != StatusApproved && r.Status != StatusRejected {
		return validator.ValidationErrors{{
			Field:   "status",
			Message: ErrInvalidStatus.Error(),
		}}
	}
	return nil
}
