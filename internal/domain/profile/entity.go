// Package profile holds the employee profile read and written through the
// profile endpoints.
package profile

// Profile is the employee card shown on the profile screen. All fields but
// the email are optional; managers fill them in over time.
type Profile struct {
	Email          string  `json:"email"`
	FullName       *string `json:"full_name"`
	BirthDate      *string `json:"birth_date"`
	EmployeeNumber *string `json:"employee_number"`
	Position       *string `json:"position"`
	WorkStartDate  *string `json:"work_start_date"`
	DepartmentName *string `json:"department_name"`
}

// Upsert is the manager-side payload for creating or updating a profile.
// Nil fields are left untouched by the backend.
type Upsert struct {
	FullName       *string `json:"full_name,omitempty"`
	BirthDate      *string `json:"birth_date,omitempty"`
	EmployeeNumber *string `json:"employee_number,omitempty"`
	Position       *string `json:"position,omitempty"`
	WorkStartDate  *string `json:"work_start_date,omitempty"`
	DepartmentID   *int64  `json:"department_id,omitempty"`
}
