package remotes

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strings"

	"github.com/reusee/ladder/cells"
)

// Source answers record lookups for a peer.
type Source interface {
	RemoteRecord(id string) (kind cells.Kind, value string, ok bool)
}

// Serve answers requests on ln until ctx is done. Unknown ids are left out of
// the reply.
func Serve(ctx context.Context, ln net.Listener, source Source) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		go serveConn(ctx, conn, source)
	}
}

func serveConn(ctx context.Context, conn net.Conn, source Source) {
	defer conn.Close()
	reader := bufio.NewReader(conn)
	for ctx.Err() == nil {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		reply := Answer(strings.TrimRight(line, "\r\n"), source)
		if _, err := conn.Write([]byte(reply + "\n")); err != nil {
			return
		}
	}
}

// Answer builds the reply for one request line. Records that would break the
// framing are left out like unknown ids.
func Answer(request string, source Source) string {
	init, ids, err := DecodeRequest(request)
	if err != nil {
		return CmdUpdateReply
	}
	records := make([]Record, 0, len(ids))
	for _, id := range ids {
		kind, value, ok := source.RemoteRecord(id)
		if !ok {
			continue
		}
		record := Record{
			ID:    id,
			Kind:  kind,
			Value: value,
		}
		if !record.Encodable() {
			continue
		}
		records = append(records, record)
	}
	if init {
		return EncodeInitReply(records)
	}
	return EncodeUpdateReply(records)
}
