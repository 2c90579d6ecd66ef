package storage

import "testing"

func TestKey_String(t *testing.T) {
	tests := []struct {
		name     string
		key      Key
		expected string
	}{
		{"namespaced", Key{Namespace: "resource", Name: "cat"}, "resource:cat"},
		{"trims separators", Key{Namespace: ":resource:", Name: "cat"}, "resource:cat"},
		{"no namespace", Key{Name: "cat"}, "cat"},
		{"name with colon", Key{Namespace: "resource", Name: "a:b"}, "resource:a:b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}
