package sessionlog

import (
	"github.com/KirkDiggler/lumina-api/internal/errors"
)

func validateAppend(input *AppendInput) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return errors.InvalidArgument(errSessionIDEmpty)
	}
	if input.Entry == nil {
		return errors.InvalidArgument(errEntryNil)
	}
	if input.Entry.ID == "" {
		return errors.InvalidArgument(errEntryIDEmpty)
	}
	if !input.Entry.Category.IsValid() {
		return errors.InvalidArgumentf("unknown log category %q", input.Entry.Category)
	}
	return nil
}

func validateSessionID(sessionID string) error {
	if sessionID == "" {
		return errors.InvalidArgument(errSessionIDEmpty)
	}
	return nil
}
