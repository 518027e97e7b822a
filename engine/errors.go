package engine

import (
	"errors"
	"fmt"
)

// Sentinel error kinds (spec §7). Callers compare with errors.Is; the
// engine wraps these with context via fmt.Errorf("%w: ...").
var (
	// ErrConfigInvalid is returned by Warm for malformed prefilter/field
	// configuration (unknown hint field, illegal null prefilter entry).
	ErrConfigInvalid = errors.New("engine: invalid configuration")
	// ErrNotFound is returned by Drop, DestroyView, and GetView lookups.
	ErrNotFound = errors.New("engine: not found")
	// ErrDuplicate is returned by CreateView when the fingerprint already exists.
	ErrDuplicate = errors.New("engine: duplicate")
	// ErrMissingField indicates a record passed to Put or Warm lacks the
	// field its FieldIDKey names. No other configured field is checked: a
	// record without one is accepted and the field reads as Nil.
	ErrMissingField = errors.New("engine: missing field")
	// ErrBadCursor indicates a pagination cursor failed to decode.
	ErrBadCursor = errors.New("engine: bad cursor")
	// ErrUnknownEntity indicates a read/write op referenced an unconfigured entity.
	ErrUnknownEntity = errors.New("engine: unknown entity")
)

func errMissingField(field string) error {
	return fmt.Errorf("%w: %q", ErrMissingField, field)
}

func errConfigInvalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrConfigInvalid, reason)
}

func errUnknownEntity(entity string) error {
	return fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
}

func errNotFound(id string) error {
	return fmt.Errorf("%w: id %q", ErrNotFound, id)
}

func errDuplicate(fingerprint string) error {
	return fmt.Errorf("%w: view %q", ErrDuplicate, fingerprint)
}

func errBadCursor(reason string) error {
	return fmt.Errorf("%w: %s", ErrBadCursor, reason)
}
