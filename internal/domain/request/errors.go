package request

import "errors"

var (
	ErrRequestNotFound  = errors.New("request not found")
	ErrAlreadyProcessed = errors.New("request is already processed")
	ErrInvalidStatus    = errors.New("status must be approved or rejected")
)
