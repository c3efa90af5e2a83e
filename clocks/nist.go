package clocks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

const NISTAddr = "time.nist.gov:13"

var ErrBadDaytime = errors.New("bad daytime reply")

type DialContext func(ctx context.Context, network, addr string) (net.Conn, error)

// ParseDaytime reads the NIST daytime format:
// JJJJJ YY-MM-DD HH:MM:SS TT L H msADV UTC(NIST) OTM
func ParseDaytime(reply string) (time.Time, error) {
	fields := strings.Fields(reply)
	if len(fields) < 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDaytime, reply)
	}
	t, err := time.ParseInLocation("06-01-02 15:04:05", fields[1]+" "+fields[2], time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrBadDaytime, err)
	}
	return t, nil
}

func QueryDaytime(ctx context.Context, dial DialContext, addr string) (time.Time, error) {
	conn, err := dial(ctx, "tcp", addr)
	if err != nil {
		return time.Time{}, err
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return time.Time{}, err
		}
	}
	content, err := io.ReadAll(io.LimitReader(conn, 256))
	if err != nil {
		return time.Time{}, err
	}
	return ParseDaytime(string(content))
}

// Sync sets the offset of s from a daytime server.
func (s *System) Sync(ctx context.Context, dial DialContext, addr string) (time.Duration, error) {
	remote, err := QueryDaytime(ctx, dial, addr)
	if err != nil {
		return 0, err
	}
	offset := remote.Sub(time.Now()).Round(time.Second)
	s.Adjust(offset)
	return offset, nil
}
