package formats

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Block list errors.
var ErrInvalidBlockList = errors.New("invalid block list")

// Field numbers of the block list message.
const (
	blockListEntryField protowire.Number = 1
	blockEntryIDField   protowire.Number = 1
	blockEntryNameField protowire.Number = 2
)

// BlockEntry maps a numeric block id to its type name.
type BlockEntry struct {
	ID   uint32
	Name string
}

// ParseBlockList decodes a protobuf-encoded block list: a repeated
// message field 1 whose entries carry a varint id (1) and a name (2).
// Unknown fields are skipped.
func ParseBlockList(data []byte) ([]BlockEntry, error) {
	var entries []BlockEntry
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBlockList, protowire.ParseError(n))
		}
		data = data[n:]

		if num != blockListEntryField || typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", ErrInvalidBlockList, protowire.ParseError(n))
			}
			data = data[n:]
			continue
		}

		msg, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBlockList, protowire.ParseError(n))
		}
		data = data[n:]

		entry, err := parseBlockEntry(msg)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseBlockEntry(msg []byte) (BlockEntry, error) {
	var e BlockEntry
	for len(msg) > 0 {
		num, typ, n := protowire.ConsumeTag(msg)
		if n < 0 {
			return e, fmt.Errorf("%w: entry: %v", ErrInvalidBlockList, protowire.ParseError(n))
		}
		msg = msg[n:]

		switch {
		case num == blockEntryIDField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(msg)
			if n < 0 {
				return e, fmt.Errorf("%w: id: %v", ErrInvalidBlockList, protowire.ParseError(n))
			}
			e.ID = uint32(v)
			msg = msg[n:]
		case num == blockEntryNameField && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(msg)
			if n < 0 {
				return e, fmt.Errorf("%w: name: %v", ErrInvalidBlockList, protowire.ParseError(n))
			}
			e.Name = v
			msg = msg[n:]
		default:
			n = protowire.ConsumeFieldValue(num, typ, msg)
			if n < 0 {
				return e, fmt.Errorf("%w: entry: %v", ErrInvalidBlockList, protowire.ParseError(n))
			}
			msg = msg[n:]
		}
	}
	return e, nil
}

// AppendBlockList encodes entries in the format read by ParseBlockList.
func AppendBlockList(b []byte, entries []BlockEntry) []byte {
	for _, e := range entries {
		var msg []byte
		msg = protowire.AppendTag(msg, blockEntryIDField, protowire.VarintType)
		msg = protowire.AppendVarint(msg, uint64(e.ID))
		msg = protowire.AppendTag(msg, blockEntryNameField, protowire.BytesType)
		msg = protowire.AppendString(msg, e.Name)

		b = protowire.AppendTag(b, blockListEntryField, protowire.BytesType)
		b = protowire.AppendBytes(b, msg)
	}
	return b
}
