package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the store.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date,
// a destination with no trips).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrGuardDenied is returned when a change would leave a destination without
// any trip. Handlers should map this to HTTP 403.
var ErrGuardDenied = errors.New("relationship guard denied")

// ErrDependency marks a failure of an outbound enrichment call.
// It never reaches a handler: the enrichment step degrades instead.
var ErrDependency = errors.New("dependency unavailable")

// GuardDeniedError names the destinations that would be orphaned.
// errors.Is(err, ErrGuardDenied) reports true for it.
type GuardDeniedError struct {
	DestinationIDs []uuid.UUID
}

func (e *GuardDeniedError) Error() string {
	ids := make([]string, len(e.DestinationIDs))
	for i, id := range e.DestinationIDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("%s: destination %s would be left without a trip", ErrGuardDenied, strings.Join(ids, ", "))
}

// Is lets errors.Is match the sentinel through a wrapped *GuardDeniedError.
func (e *GuardDeniedError) Is(target error) bool {
	return target == ErrGuardDenied
}
