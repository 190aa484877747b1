package store

import (
	"errors"
	"fmt"
)

// KeyKind names the namespace a key belongs to.
type KeyKind string

const (
	KeyTemplate  KeyKind = "template"
	KeyGroup     KeyKind = "group"
	KeyContainer KeyKind = "container"
)

// ErrEntryHasNoTarget is wrapped by MalformedEntryError when an entry names
// neither an item nor a group.
var ErrEntryHasNoTarget = errors.New("entry has neither a name nor a group")

// DuplicateKeyError reports a name registered twice.
type DuplicateKeyError struct {
	Kind KeyKind
	Name string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate %s name %q", e.Kind, e.Name)
}

// UnresolvedReferenceError reports a group entry citing a group or template
// that does not exist.
type UnresolvedReferenceError struct {
	Kind  KeyKind
	Name  string
	Group string
	Entry int
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("group %q entry %d references unknown %s %q", e.Group, e.Entry, e.Kind, e.Name)
}

// MalformedEntryError reports an entry that cannot be interpreted.
type MalformedEntryError struct {
	Group string
	Entry int
	Err   error
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("group %q entry %d: %v", e.Group, e.Entry, e.Err)
}

func (e *MalformedEntryError) Unwrap() error { return e.Err }

// InvalidValueError reports a literal that does not parse.
type InvalidValueError struct {
	Field string
	Value string
	Err   error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *InvalidValueError) Unwrap() error { return e.Err }

// IsDuplicateKey reports whether err (or any error in its chain) is a
// DuplicateKeyError.
func IsDuplicateKey(err error) bool {
	var de *DuplicateKeyError
	return errors.As(err, &de)
}

// IsUnresolvedReference reports whether err (or any error in its chain) is
// an UnresolvedReferenceError.
func IsUnresolvedReference(err error) bool {
	var ue *UnresolvedReferenceError
	return errors.As(err, &ue)
}

// IsMalformedEntry reports whether err (or any error in its chain) is a
// MalformedEntryError.
func IsMalformedEntry(err error) bool {
	var me *MalformedEntryError
	return errors.As(err, &me)
}
