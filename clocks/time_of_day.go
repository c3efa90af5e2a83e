package clocks

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay reads HH:MM or HH:MM:SS.
func ParseTimeOfDay(str string) (ret TimeOfDay, err error) {
	parts := strings.Split(strings.TrimSpace(str), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return ret, fmt.Errorf("bad time of day: %q", str)
	}
	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return ret, fmt.Errorf("bad time of day: %q", str)
		}
		nums[i] = n
	}
	ret = TimeOfDay{
		Hour:   nums[0],
		Minute: nums[1],
		Second: nums[2],
	}
	if ret.Hour < 0 || ret.Hour > 23 ||
		ret.Minute < 0 || ret.Minute > 59 ||
		ret.Second < 0 || ret.Second > 59 {
		return ret, fmt.Errorf("time of day out of range: %q", str)
	}
	return ret, nil
}

func Of(t time.Time) TimeOfDay {
	return TimeOfDay{
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

func (t TimeOfDay) Seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Preset is the comparison a Clock object asserts against live time.
type Preset struct {
	Start  TimeOfDay
	End    TimeOfDay
	Window bool
}

func ParsePreset(args []string) (ret Preset, err error) {
	if len(args) == 0 || len(args) > 2 {
		return ret, fmt.Errorf("expecting one or two times, got %d", len(args))
	}
	ret.Start, err = ParseTimeOfDay(args[0])
	if err != nil {
		return
	}
	if len(args) == 2 {
		ret.End, err = ParseTimeOfDay(args[1])
		if err != nil {
			return
		}
		ret.Window = true
	}
	return
}

// Match reports whether now falls in the preset. A single time matches for the
// whole minute it names; a window is [start, end) and may wrap midnight.
func (p Preset) Match(now time.Time) bool {
	cur := Of(now)
	if !p.Window {
		return cur.Hour == p.Start.Hour && cur.Minute == p.Start.Minute
	}
	s, e, c := p.Start.Seconds(), p.End.Seconds(), cur.Seconds()
	if s <= e {
		return c >= s && c < e
	}
	return c >= s || c < e
}

func (p Preset) String() string {
	if p.Window {
		return p.Start.String() + "-" + p.End.String()
	}
	return p.Start.String()
}
