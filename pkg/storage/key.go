package storage

import (
	"strings"
)

// Key identifies an entry in a flat key/value backend such as Redis.
type Key struct {
	// Namespace groups entries (e.g., "resource")
	Namespace string

	// Name is the resource key within the namespace
	Name string
}

// String generates a deterministic backend key.
// Format: namespace:name
//
// Example:
//
//	resource:cat
func (k Key) String() string {
	parts := make([]string, 0, 2)

	// Normalize namespace
	namespace := strings.Trim(k.Namespace, ":")
	if namespace != "" {
		parts = append(parts, namespace)
	}

	parts = append(parts, k.Name)

	return strings.Join(parts, ":")
}
