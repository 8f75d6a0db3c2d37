package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrDuplicateKey reports a unique-constraint violation. The database
// constraint is the authoritative guard: two requests racing through the
// same check-then-insert both reach the store, and the loser must surface
// the same error the pre-check would have produced.
var ErrDuplicateKey = errors.New("duplicate key")

// isDuplicate detects unique violations across drivers. Postgres reports
// through gorm's error translation; the sqlite driver used in tests does
// not always translate, hence the message fallbacks.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

func translateErr(err error) error {
	if isDuplicate(err) {
		return ErrDuplicateKey
	}
	return err
}
