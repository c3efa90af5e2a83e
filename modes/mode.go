package modes

type Mode uint8

const (
	ModeProduction Mode = iota + 1
	ModeDevelopment
	// ModeSimulation runs programs against the in-memory board without remote peers.
	ModeSimulation
)

func (m Mode) String() string {
	switch m {
	case ModeProduction:
		return "production"
	case ModeDevelopment:
		return "development"
	case ModeSimulation:
		return "simulation"
	}
	return "unknown"
}
