package plcs

import (
	"time"

	"github.com/reusee/ladder/clocks"
	"github.com/reusee/ladder/logs"
	"github.com/reusee/ladder/pins"
	"github.com/reusee/ladder/remotes"
)

// Env is what logic objects may touch outside the program.
type Env struct {
	Board  pins.Board
	Clock  clocks.Clock
	Logger logs.Logger
	Dial   remotes.Dial

	RemoteTimeout time.Duration
	RemoteRetries int
	RemoteRefresh time.Duration
}
