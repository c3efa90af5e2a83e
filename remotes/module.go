package remotes

import (
	"context"

	"github.com/reusee/dscope"
	"github.com/reusee/ladder/logs"
	"github.com/reusee/ladder/nets"
)

type Module struct {
	dscope.Module
	Nets nets.Module
}

// Dial opens line transports through the plant dialer. The "can" network is
// carried over TCP to a CAN gateway at addr.
func (Module) Dial(
	dialer nets.Dialer,
	logger logs.Logger,
) Dial {
	return func(ctx context.Context, network, addr string) (Transport, error) {
		if network == "" || network == "can" {
			network = "tcp"
		}
		conn, err := dialer.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		logger.DebugContext(ctx, "remote connected", "addr", addr)
		return NewLineTransport(conn), nil
	}
}
