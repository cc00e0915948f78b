package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStopwatch_Elapsed(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	current := base
	NowFunc = func() time.Time { return current }
	defer func() { NowFunc = time.Now }()

	watch := Start()
	assert.Equal(t, base, watch.StartedAt())

	current = base.Add(1500 * time.Millisecond)
	assert.Equal(t, 1500*time.Millisecond, watch.Elapsed())
	assert.EqualValues(t, 1500, watch.ElapsedMs())
}
