package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	LoadConfig()

	assert.Equal(t, "8080", AppConfig.AppPort)
	assert.Equal(t, "development", AppConfig.Env)
	assert.Equal(t, "08:00", AppConfig.SchedWindowStart)
	assert.Equal(t, "20:30", AppConfig.SchedWindowEnd)
	assert.Equal(t, 30, AppConfig.SchedStepMinutes)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, AppConfig.SchedRooms)
	assert.Equal(t, 120, AppConfig.SchedCrossDayCeilingMin)
	assert.Equal(t, 240, AppConfig.SchedOpenEndCeilingMin)
	assert.Equal(t, 60, AppConfig.ReminderLeadMinutes)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("SCHED_WINDOW_START", "07:00")
	t.Setenv("SCHED_STEP_MINUTES", "15")
	t.Setenv("SCHED_CROSS_DAY_CEILING_MIN", "90")

	LoadConfig()

	assert.Equal(t, "9090", AppConfig.AppPort)
	assert.True(t, IsProduction())
	assert.Equal(t, "07:00", AppConfig.SchedWindowStart)
	assert.Equal(t, 15, AppConfig.SchedStepMinutes)
	assert.Equal(t, 90, AppConfig.SchedCrossDayCeilingMin)
}
