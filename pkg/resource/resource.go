// Package resource defines the values that flow through a batch load:
// resource identifiers, their content, and the per-resource outcome.
package resource

import "errors"

// ID names a resource to load. It is opaque to the loader and only has to
// be usable as a storage key (see ValidateID).
type ID = string

// Content is the payload of a successfully loaded resource.
// Once it has been handed to a result map it is shared and must be treated
// as read-only.
type Content []byte

// String returns the content as text.
func (c Content) String() string {
	return string(c)
}

// Outcome is the result of one fetch attempt. Exactly one Outcome is
// produced per submitted ID. It is a success when Err is nil.
type Outcome struct {
	// ID is the identifier the outcome belongs to
	ID ID

	// Content is set on success
	Content Content

	// Err is set on failure; it is always a *Error
	Err error
}

// Success builds a successful outcome.
func Success(id ID, content Content) Outcome {
	return Outcome{ID: id, Content: content}
}

// Failure builds a failed outcome. Errors that are not already a *Error are
// classified as read failures.
func Failure(id ID, err error) Outcome {
	if err == nil {
		err = &Error{Kind: KindReadFailure, ID: id, Message: "unknown failure"}
	}
	var rerr *Error
	if !errors.As(err, &rerr) {
		err = &Error{Kind: KindReadFailure, ID: id, Message: err.Error(), Err: err}
	}
	return Outcome{ID: id, Err: err}
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Kind returns the failure kind, or "" for a success.
func (o Outcome) Kind() Kind {
	if o.Err == nil {
		return ""
	}
	return KindOf(o.Err)
}
