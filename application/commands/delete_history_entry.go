package commands

import (
	"strings"

	pkgerrors "symptomcheck/pkg/errors"
)

// DeleteHistoryEntryCommand removes one record from the owner's history
type DeleteHistoryEntryCommand struct {
	OwnerID  string
	RecordID string
}

// Validate validates the command
func (c DeleteHistoryEntryCommand) Validate() error {
	if strings.TrimSpace(c.OwnerID) == "" {
		return pkgerrors.NewUnauthenticatedError("please sign in to manage your history")
	}
	if strings.TrimSpace(c.RecordID) == "" {
		return pkgerrors.NewValidationError("record id is required")
	}
	return nil
}
