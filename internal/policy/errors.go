package policy

import (
	"errors"

	"github.com/eleven-am/squall/internal/store"
)

// Policy errors. A todo or task that exists but belongs to someone else is
// reported exactly like a missing one; callers never learn whether a
// foreign id exists.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("operation not permitted")
	ErrConflict  = errors.New("request could not be processed")
)

// mapStoreError translates storage errors into the policy taxonomy.
// Constraint violations collapse into a generic conflict so schema detail
// never leaks to callers.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if store.IsConstraintError(err) {
		return ErrConflict
	}
	return err
}
