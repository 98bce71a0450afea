package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationMinutes(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		last time.Time
		want int64
	}{
		{"whole minutes truncate", base.Add(7*time.Minute + 30*time.Second), 7},
		{"exact minutes", base.Add(12 * time.Minute), 12},
		{"sub-minute session", base.Add(40 * time.Second), 0},
		{"zero duration", base, 0},
		{"clock anomaly clamps to zero", base.Add(-3 * time.Minute), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &SessionRecord{CreatedAt: base, LastActivity: tt.last}
			assert.Equal(t, tt.want, s.DurationMinutes())
		})
	}
}

func TestHasAccount(t *testing.T) {
	u := &User{AccountIDs: []int64{3, 1}}
	assert.True(t, u.HasAccount(1))
	assert.True(t, u.HasAccount(3))
	assert.False(t, u.HasAccount(2))

	empty := &User{}
	assert.False(t, empty.HasAccount(1))
}
