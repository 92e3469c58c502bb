package domain

import (
	"fmt"
	"strings"
)

// Actor identifies who performs an operation and which workspace scopes it.
// Both values are opaque to this module.
type Actor struct {
	WorkspaceID string
	UserID      string
}

func (a Actor) Validate() error {
	if strings.TrimSpace(a.WorkspaceID) == "" {
		return fmt.Errorf("%w: workspace id is required", ErrValidation)
	}
	if strings.TrimSpace(a.UserID) == "" {
		return fmt.Errorf("%w: actor id is required", ErrValidation)
	}
	return nil
}
