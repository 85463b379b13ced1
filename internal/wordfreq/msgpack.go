package wordfreq

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Minimal msgpack reader covering the layouts the wordfreq data files
// use: arrays of scored word buckets, string/float pairs, and the map
// form of older releases. Integers normalize to int64 (uint64 for the
// 64-bit unsigned case), floats to float64.
func decodeMsgpack(r io.Reader) (interface{}, error) {
	mp := &msgpackReader{br: bufio.NewReader(r)}
	return mp.next()
}

type msgpackReader struct {
	br *bufio.Reader
}

func (mp *msgpackReader) next() (interface{}, error) {
	prefix, err := mp.br.ReadByte()
	if err != nil {
		return nil, err
	}

	// Fixed-format ranges first.
	switch {
	case prefix <= 0x7f: // positive fixint
		return int64(prefix), nil
	case prefix >= 0xe0: // negative fixint
		return int64(int8(prefix)), nil
	case prefix&0xe0 == 0xa0: // fixstr
		return mp.str(int(prefix & 0x1f))
	case prefix&0xf0 == 0x90: // fixarray
		return mp.array(int(prefix & 0x0f))
	case prefix&0xf0 == 0x80: // fixmap
		return mp.mapping(int(prefix & 0x0f))
	}

	switch prefix {
	case 0xc0:
		return nil, nil
	case 0xc2:
		return false, nil
	case 0xc3:
		return true, nil
	case 0xc4, 0xc5, 0xc6: // bin 8/16/32
		n, err := mp.length(1 << (prefix - 0xc4))
		if err != nil {
			return nil, err
		}
		return mp.take(n)
	case 0xca: // float 32
		raw, err := mp.uint(4)
		if err != nil {
			return nil, err
		}
		return float64(math.Float32frombits(uint32(raw))), nil
	case 0xcb: // float 64
		raw, err := mp.uint(8)
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(raw), nil
	case 0xcc, 0xcd, 0xce: // uint 8/16/32
		raw, err := mp.uint(1 << (prefix - 0xcc))
		if err != nil {
			return nil, err
		}
		return int64(raw), nil
	case 0xcf: // uint 64
		return mp.uint(8)
	case 0xd0: // int 8
		raw, err := mp.uint(1)
		if err != nil {
			return nil, err
		}
		return int64(int8(raw)), nil
	case 0xd1: // int 16
		raw, err := mp.uint(2)
		if err != nil {
			return nil, err
		}
		return int64(int16(raw)), nil
	case 0xd2: // int 32
		raw, err := mp.uint(4)
		if err != nil {
			return nil, err
		}
		return int64(int32(raw)), nil
	case 0xd3: // int 64
		raw, err := mp.uint(8)
		if err != nil {
			return nil, err
		}
		return int64(raw), nil
	case 0xd9, 0xda, 0xdb: // str 8/16/32
		n, err := mp.length(1 << (prefix - 0xd9))
		if err != nil {
			return nil, err
		}
		return mp.str(n)
	case 0xdc, 0xdd: // array 16/32
		n, err := mp.length(2 << (prefix - 0xdc))
		if err != nil {
			return nil, err
		}
		return mp.array(n)
	case 0xde, 0xdf: // map 16/32
		n, err := mp.length(2 << (prefix - 0xde))
		if err != nil {
			return nil, err
		}
		return mp.mapping(n)
	default:
		return nil, fmt.Errorf("unsupported msgpack prefix 0x%x", prefix)
	}
}

func (mp *msgpackReader) array(n int) ([]interface{}, error) {
	out := make([]interface{}, 0, n)
	for i := 0; i < n; i++ {
		v, err := mp.next()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (mp *msgpackReader) mapping(n int) (map[interface{}]interface{}, error) {
	out := make(map[interface{}]interface{}, n)
	for i := 0; i < n; i++ {
		k, err := mp.next()
		if err != nil {
			return nil, err
		}
		v, err := mp.next()
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func (mp *msgpackReader) str(n int) (string, error) {
	data, err := mp.take(n)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (mp *msgpackReader) take(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid msgpack length %d", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(mp.br, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// length reads a big-endian size field of 1, 2, or 4 bytes.
func (mp *msgpackReader) length(width int) (int, error) {
	raw, err := mp.uint(width)
	if err != nil {
		return 0, err
	}
	return int(raw), nil
}

// uint reads a big-endian unsigned integer of 1, 2, 4, or 8 bytes.
func (mp *msgpackReader) uint(width int) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(mp.br, buf[8-width:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}
