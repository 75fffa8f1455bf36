package daily

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StatePending, StateRunning, true},
		{StatePending, StateDone, false},
		{StateRunning, StateDone, true},
		{StateRunning, StateRunning, false},
		{StateDone, StateRunning, false},
		{StateDone, StatePending, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}
