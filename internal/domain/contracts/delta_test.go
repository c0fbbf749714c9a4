package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelta(t *testing.T) {
	prev := func(v int) *int { return &v }

	tests := []struct {
		name     string
		current  int
		previous *int
		want     *int
	}{
		{"improvement", 75, prev(60), prev(15)},
		{"regression", 60, prev(75), prev(-15)},
		{"unchanged", 80, prev(80), prev(0)},
		{"no baseline", 75, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Delta(tt.current, tt.previous)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}
