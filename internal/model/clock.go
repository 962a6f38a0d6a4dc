package model

// TimeControl is the starting time per side and the per-move increment, in
// seconds.
type TimeControl struct {
	Initial   int `json:"initial" yaml:"initial"`
	Increment int `json:"increment" yaml:"increment"`
}

var DefaultTimeControl = TimeControl{Initial: 600, Increment: 5}

// Clock holds each side's remaining seconds. It only changes through the
// increment applied at move time and the once-per-second tick; the timer
// that drives the tick lives outside the engine.
type Clock struct {
	White     int `json:"white"`
	Black     int `json:"black"`
	Increment int `json:"increment"`
}

func NewClock(tc TimeControl) Clock {
	return Clock{
		White:     tc.Initial,
		Black:     tc.Initial,
		Increment: tc.Increment,
	}
}

func (c Clock) TimeLeft(color Color) int {
	if color == White {
		return c.White
	}
	return c.Black
}

func (c Clock) Expired(color Color) bool {
	return c.TimeLeft(color) <= 0
}

func (c *Clock) addIncrement(color Color) {
	if color == White {
		c.White += c.Increment
	} else {
		c.Black += c.Increment
	}
}

// tick takes one second from color, never going below zero. It reports true
// only on the tick that reaches zero.
func (c *Clock) tick(color Color) bool {
	left := &c.Black
	if color == White {
		left = &c.White
	}
	if *left <= 0 {
		return false
	}
	*left--
	return *left == 0
}
