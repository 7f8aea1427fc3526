package controller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetentionService_StartStop(t *testing.T) {
	c, _, _ := setupController(t, time.Millisecond, 2*time.Millisecond)
	svc := NewRetentionService(c, "@daily", time.Hour)

	require.NoError(t, svc.Start())
	assert.Error(t, svc.Start())

	require.NoError(t, svc.Stop())
	assert.Error(t, svc.Stop())
}

func TestRetentionService_InvalidSchedule(t *testing.T) {
	c, _, _ := setupController(t, time.Millisecond, 2*time.Millisecond)
	svc := NewRetentionService(c, "not a schedule", time.Hour)

	assert.Error(t, svc.Start())
}

func TestRetentionService_RunOnce(t *testing.T) {
	c, _, _ := setupController(t, time.Millisecond, 2*time.Millisecond)
	first := c.Store().ActiveID()
	c.NewChat()
	c.SwitchChat(first)

	svc := NewRetentionService(c, "", 0)
	assert.Equal(t, DefaultRetentionSchedule, svc.schedule)
	assert.Equal(t, DefaultRetentionAge, svc.maxAge)

	// Nothing is old enough for the default age.
	svc.RunOnce()
	assert.Equal(t, 2, c.Store().Len())

	aggressive := NewRetentionService(c, "@daily", time.Nanosecond)
	time.Sleep(10 * time.Millisecond)
	aggressive.RunOnce()
	assert.Equal(t, 1, c.Store().Len())
	assert.Equal(t, first, c.Store().ActiveID())
}
