package remotes

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/reusee/ladder/cells"
)

const (
	RecordSep = "\x1e"
	GroupSep  = "\x1d"
	QueryEnd  = "\x04"

	CmdUpdateRequest = "?U"
	CmdUpdateReply   = "!U"
	CmdInitRequest   = "?I"
	CmdInitReply     = "!I"
)

var ErrBadRecord = errors.New("bad remote record")

// Record is one object's value as carried on the wire. Kind is only
// meaningful in init records.
type Record struct {
	ID    string
	Kind  cells.Kind
	Value string
}

// framingChars may not appear inside an id or value.
const framingChars = "\n\r" + RecordSep + GroupSep + QueryEnd

// Encodable reports whether r survives the line framing unchanged.
func (r Record) Encodable() bool {
	return r.ID != "" &&
		!strings.ContainsAny(r.ID, framingChars) &&
		!strings.ContainsAny(r.Value, framingChars)
}

func EncodeUpdateRequest(ids []string) string {
	return CmdUpdateRequest + strings.Join(ids, RecordSep) + QueryEnd
}

func EncodeInitRequest(ids []string) string {
	return CmdInitRequest + strings.Join(ids, RecordSep) + QueryEnd
}

// DecodeRequest parses an update or init request.
func DecodeRequest(line string) (init bool, ids []string, err error) {
	switch {
	case strings.HasPrefix(line, CmdUpdateRequest):
		line = line[len(CmdUpdateRequest):]
	case strings.HasPrefix(line, CmdInitRequest):
		line = line[len(CmdInitRequest):]
		init = true
	default:
		return false, nil, fmt.Errorf("%w: unknown command in %q", ErrBadRecord, line)
	}
	body, ok := strings.CutSuffix(line, QueryEnd)
	if !ok {
		return false, nil, fmt.Errorf("%w: missing query end", ErrBadRecord)
	}
	if body == "" {
		return init, nil, nil
	}
	return init, strings.Split(body, RecordSep), nil
}

func EncodeUpdateReply(records []Record) string {
	groups := make([]string, 0, len(records))
	for _, r := range records {
		groups = append(groups, r.ID+RecordSep+r.Value)
	}
	return CmdUpdateReply + strings.Join(groups, GroupSep)
}

func EncodeInitReply(records []Record) string {
	groups := make([]string, 0, len(records))
	for _, r := range records {
		groups = append(groups, r.ID+RecordSep+strconv.Itoa(int(r.Kind))+RecordSep+r.Value)
	}
	return CmdInitReply + strings.Join(groups, GroupSep)
}

// DecodeReply parses an update or init reply.
func DecodeReply(line string) (init bool, records []Record, err error) {
	switch {
	case strings.HasPrefix(line, CmdUpdateReply):
		line = line[len(CmdUpdateReply):]
	case strings.HasPrefix(line, CmdInitReply):
		line = line[len(CmdInitReply):]
		init = true
	default:
		return false, nil, fmt.Errorf("%w: unknown command in %q", ErrBadRecord, line)
	}
	if line == "" {
		return init, nil, nil
	}
	for group := range strings.SplitSeq(line, GroupSep) {
		fields := strings.Split(group, RecordSep)
		var r Record
		switch {
		case !init && len(fields) == 2:
			r.ID, r.Value = fields[0], fields[1]
		case init && len(fields) == 3:
			n, err := strconv.Atoi(fields[1])
			if err != nil || !cells.Kind(n).Valid() {
				return init, nil, fmt.Errorf("%w: bad type tag %q", ErrBadRecord, fields[1])
			}
			r.ID, r.Kind, r.Value = fields[0], cells.Kind(n), fields[2]
		default:
			return init, nil, fmt.Errorf("%w: group %q", ErrBadRecord, group)
		}
		if r.ID == "" {
			return init, nil, fmt.Errorf("%w: empty id", ErrBadRecord)
		}
		records = append(records, r)
	}
	return init, records, nil
}
