package storage

import (
	"testing"
	"time"
)

func TestEntry_IsExpired(t *testing.T) {
	tests := []struct {
		name     string
		expires  time.Time
		expected bool
	}{
		{"no expiry", time.Time{}, false},
		{"future", time.Now().Add(time.Minute), false},
		{"past", time.Now().Add(-time.Minute), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Entry{Expires: tt.expires}
			if got := e.IsExpired(); got != tt.expected {
				t.Errorf("IsExpired() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestEntry_TTL(t *testing.T) {
	if ttl := (&Entry{}).TTL(); ttl != 0 {
		t.Errorf("TTL() without expiry = %v, want 0", ttl)
	}
	if ttl := (&Entry{Expires: time.Now().Add(-time.Second)}).TTL(); ttl != 0 {
		t.Errorf("TTL() when expired = %v, want 0", ttl)
	}
	ttl := (&Entry{Expires: time.Now().Add(time.Minute)}).TTL()
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("TTL() = %v, want (0, 1m]", ttl)
	}
}
