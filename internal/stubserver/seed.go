package stubserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/shiftdesk/shiftdesk/internal/domain/schedule"
)

// Seed loads a small demo dataset: one manager running a department with
// two employees, a week of shifts and one pending vacation request.
// Idempotent: a second run is a no-op.
func (s *Server) Seed(ctx context.Context) error {
	if _, err := s.Store.UserByEmail(ctx, "manager@shiftdesk.dev"); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	managerID, err := s.Store.CreateUser(ctx, "manager@shiftdesk.dev", string(hash), "manager")
	if err != nil {
		return err
	}
	depID, err := s.Store.CreateDepartment(ctx, "Operations", &managerID)
	if err != nil {
		return err
	}

	employees := []struct {
		email, name string
	}{
		{"olena@shiftdesk.dev", "Olena Kovalenko"},
		{"dmytro@shiftdesk.dev", "Dmytro Bondar"},
	}
	for _, emp := range employees {
		userID, err := s.Store.CreateUser(ctx, emp.email, string(hash), "employee")
		if err != nil {
			return err
		}
		if err := s.Store.UpsertProfile(ctx, emp.email, map[string]any{
			"full_name":     emp.name,
			"department_id": depID,
		}); err != nil {
			return err
		}

		start := "09:00"
		end := "18:00"
		day := time.Now()
		for i := 0; i < 5; i++ {
			entry := schedule.ScheduleEntry{
				Date:      day.AddDate(0, 0, i).Format("2006-01-02"),
				Type:      schedule.TypeShift,
				StartTime: &start,
				EndTime:   &end,
			}
			if _, err := s.Store.UpsertEntry(ctx, userID, entry); err != nil {
				return err
			}
		}

		if emp.email == "olena@shiftdesk.dev" {
			_, err := s.Store.db.ExecContext(ctx, `
				INSERT INTO service_requests (user_id, type, start_date, end_date, status, created_at)
				VALUES (?, 'vacation', ?, ?, 'pending', ?)`,
				userID,
				day.AddDate(0, 0, 14).Format("2006-01-02"),
				day.AddDate(0, 0, 18).Format("2006-01-02"),
				time.Now().UTC().Format(time.RFC3339))
			if err != nil {
				return fmt.Errorf("seed request: %w", err)
			}
		}
	}
	return nil
}
