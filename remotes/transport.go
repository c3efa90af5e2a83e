package remotes

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"time"
)

// Transport carries one request line and returns one reply line.
type Transport interface {
	Exchange(ctx context.Context, request string) (string, error)
	Close() error
}

type Dial func(ctx context.Context, network, addr string) (Transport, error)

type lineTransport struct {
	conn   net.Conn
	reader *bufio.Reader
}

var _ Transport = new(lineTransport)

func NewLineTransport(conn net.Conn) Transport {
	return &lineTransport{
		conn:   conn,
		reader: bufio.NewReader(conn),
	}
}

func (l *lineTransport) Exchange(ctx context.Context, request string) (string, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Time{}
	}
	if err := l.conn.SetDeadline(deadline); err != nil {
		return "", err
	}
	if _, err := l.conn.Write([]byte(request + "\n")); err != nil {
		return "", fmt.Errorf("write request: %w", err)
	}
	line, err := l.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read reply: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (l *lineTransport) Close() error {
	return l.conn.Close()
}
