package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloorBucket(t *testing.T) {
	base := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)

	assert.True(t, FloorBucket(base).Equal(base))
	assert.True(t, FloorBucket(base.Add(7*time.Minute)).Equal(base))
	assert.True(t, FloorBucket(base.Add(14*time.Minute+59*time.Second)).Equal(base))
	assert.True(t, FloorBucket(base.Add(15*time.Minute)).Equal(base.Add(15*time.Minute)))
}

func TestRequireEnv(t *testing.T) {
	t.Setenv("SOME_REQUIRED_KEY", "value")

	value, err := RequireEnv("SOME_REQUIRED_KEY")
	require.NoError(t, err)
	assert.Equal(t, "value", value)

	_, err = RequireEnv("SOME_MISSING_KEY")
	assert.ErrorContains(t, err, "SOME_MISSING_KEY")
}
