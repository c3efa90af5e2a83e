package plcs

import (
	"time"

	"github.com/reusee/ladder/cells"
	"github.com/reusee/ladder/clocks"
)

type Clock struct {
	Preset clocks.Preset

	val *cells.Cell
}

func newClock(preset clocks.Preset) *Clock {
	return &Clock{
		Preset: preset,
		val:    cells.New(cells.KindBool),
	}
}

func (c *Clock) sample(now time.Time) bool {
	match := c.Preset.Match(now)
	c.val.SetBool(match)
	return match
}
