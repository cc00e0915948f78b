package printshare

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/printshare/model"
	"github.com/viant/printshare/policy"
)

func intPtr(v int) *int { return &v }

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		description string
		mutate      func(c *Config)
		field       string
	}{
		{description: "default is valid", mutate: func(c *Config) {}},
		{description: "no printers", mutate: func(c *Config) { c.Printers = 0 }, field: "printers"},
		{description: "zero mean", mutate: func(c *Config) { c.Mean = 0 }, field: "mean"},
		{description: "negative print mean", mutate: func(c *Config) { c.PrintMean = -1 }, field: "printMean"},
		{description: "bad time unit", mutate: func(c *Config) { c.TimeUnit = "fast" }, field: "timeUnit"},
		{description: "negative timeout", mutate: func(c *Config) { c.Timeout = "-1s" }, field: "timeout"},
		{description: "unknown policy", mutate: func(c *Config) { c.Policy = &policy.Policy{Release: "random"} }, field: "policy.release"},
		{description: "no group size", mutate: func(c *Config) { c.GroupSize = 0 }, field: "groupSize"},
		{description: "overlapping groups", mutate: func(c *Config) {
			c.Groups = []GroupConfig{{From: 0, To: 2}, {From: 2, To: 3}}
		}, field: "groups"},
		{description: "gap between groups", mutate: func(c *Config) {
			c.Groups = []GroupConfig{{From: 0, To: 1}, {From: 3, To: 4}}
		}, field: "groups"},
		{description: "leader outside range", mutate: func(c *Config) {
			c.Groups = []GroupConfig{{From: 0, To: 1, Leader: intPtr(5)}}
		}, field: "groups"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			config := DefaultConfig()
			tc.mutate(config)
			err := config.Validate()
			if tc.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var configErr *model.ConfigError
			require.ErrorAs(t, err, &configErr)
			assert.Equal(t, tc.field, configErr.Field)
		})
	}
}

func TestConfig_GroupModels(t *testing.T) {
	config := DefaultConfig()
	config.Students, config.GroupSize = 7, 3
	config.Policy = &policy.Policy{Leader: policy.LeaderLast}
	groups, err := config.GroupModels()
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, model.Group{ID: 2, From: 6, To: 6, Leader: 6}, *groups[2])
	assert.Equal(t, 2, groups[0].Leader)

	config.Groups = []GroupConfig{{From: 0, To: 3, Leader: intPtr(1)}, {From: 4, To: 6}}
	groups, err = config.GroupModels()
	require.NoError(t, err)
	assert.Equal(t, 1, groups[0].Leader)
	assert.Equal(t, 6, groups[1].Leader)
}

func TestConfig_Durations(t *testing.T) {
	config := DefaultConfig()
	config.TimeUnit = ""
	unit, err := config.TimeUnitDuration()
	require.NoError(t, err)
	assert.Equal(t, time.Millisecond, unit)

	config.Timeout = "2s"
	timeout, err := config.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, timeout)

	assert.Equal(t, config.Mean, config.EffectivePrintMean())
	config.PrintMean = 9
	assert.Equal(t, 9.0, config.EffectivePrintMean())
}
