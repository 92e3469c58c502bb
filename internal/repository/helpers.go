package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dealdesk/internal/domain"
)

// ErrNotFound is returned (wrapped) when a row does not exist in the
// requested workspace.
var ErrNotFound = domain.ErrNotFound

// timeLayout is fixed-width in UTC, so stored values sort lexicographically.
const timeLayout = time.RFC3339

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored time %q: %w", s, err)
	}
	return t.UTC(), nil
}

// parseNullableTime parses a sql.NullString into a *time.Time.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(timeLayout, s.String)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted string.
func nullableTimeToString(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func nullableString(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid || s.String == "" {
		return nil
	}
	v := s.String
	return &v
}

func encodeStrings(vals []string) (string, error) {
	if vals == nil {
		vals = []string{}
	}
	b, err := json.Marshal(vals)
	if err != nil {
		return "", fmt.Errorf("encoding string list: %w", err)
	}
	return string(b), nil
}

func decodeStrings(s string) ([]string, error) {
	var out []string
	if s == "" {
		return []string{}, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("decoding string list: %w", err)
	}
	return out, nil
}

// storeErr wraps a driver error with op context, mapping a closed or
// unreachable database to domain.ErrServiceUnavailable.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrConnDone) || strings.Contains(err.Error(), "database is closed") {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrServiceUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// notFoundOr maps sql.ErrNoRows to a wrapped ErrNotFound for entity.
func notFoundOr(entity string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return storeErr("scanning "+entity, err)
}

// nowUTC returns the current UTC time truncated to the storage precision.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
