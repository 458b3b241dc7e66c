package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSignalType(t *testing.T) {
	t.Run("accepts known signals", func(t *testing.T) {
		for _, value := range []string{"LONG_BTC_SHORT_ETF", "SHORT_BTC_LONG_ETF", "HOLD"} {
			signal, err := NewSignalType(value)
			assert.NoError(t, err)
			assert.Equal(t, SignalType(value), signal)
		}
	})

	t.Run("rejects unknown signals", func(t *testing.T) {
		_, err := NewSignalType("LONG_EVERYTHING")
		assert.Error(t, err)

		_, err = NewSignalType("")
		assert.Error(t, err)
	})
}

func TestSignalTypeIsActionable(t *testing.T) {
	assert.True(t, SignalLongBtcShortEtf.IsActionable())
	assert.True(t, SignalShortBtcLongEtf.IsActionable())
	assert.False(t, SignalHold.IsActionable())
}
