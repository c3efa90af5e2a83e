package remotes

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Client exchanges records with one peer, redialing after failures.
// Every attempt is bounded by Timeout; at most Retries extra attempts are made.
type Client struct {
	Dial    Dial
	Network string
	Addr    string
	Timeout time.Duration
	Retries int

	transport Transport
}

func (c *Client) Exchange(ctx context.Context, request string) (reply string, err error) {
	var errs []error
	for attempt := 0; attempt <= c.Retries; attempt++ {
		reply, err = c.exchangeOnce(ctx, request)
		if err == nil {
			return reply, nil
		}
		errs = append(errs, err)
		c.Close()
		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("exchange with %s: %w", c.Addr, errors.Join(errs...))
}

func (c *Client) exchangeOnce(ctx context.Context, request string) (string, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if c.transport == nil {
		t, err := c.Dial(ctx, c.Network, c.Addr)
		if err != nil {
			return "", err
		}
		c.transport = t
	}
	return c.transport.Exchange(ctx, request)
}

func (c *Client) Close() error {
	if c.transport == nil {
		return nil
	}
	err := c.transport.Close()
	c.transport = nil
	return err
}

// Update requests the current values of ids.
func (c *Client) Update(ctx context.Context, ids []string) ([]Record, error) {
	return c.query(ctx, EncodeUpdateRequest(ids), false)
}

// Init requests type tags and values of ids.
func (c *Client) Init(ctx context.Context, ids []string) ([]Record, error) {
	return c.query(ctx, EncodeInitRequest(ids), true)
}

func (c *Client) query(ctx context.Context, request string, init bool) ([]Record, error) {
	reply, err := c.Exchange(ctx, request)
	if err != nil {
		return nil, err
	}
	isInit, records, err := DecodeReply(reply)
	if err != nil {
		return nil, err
	}
	if isInit != init {
		return nil, fmt.Errorf("%w: reply kind mismatch", ErrBadRecord)
	}
	return records, nil
}
