// SPDX-FileCopyrightText: 2021 Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package sm

import (
	"encoding/binary"
	"errors"
)

// ErrIncorrectIE reports a malformed, undersized or out-of-range wire
// field. The failure is local to one IE; the framing layer decides whether
// it invalidates the whole message.
var ErrIncorrectIE = errors.New("incorrect information element")

// ieReader walks an IE payload field by field and refuses any read that
// would pass the declared IE length.
type ieReader struct {
	b   []byte
	off int
}

func newIEReader(ieValue []byte, ieLength uint16) (*ieReader, error) {
	if len(ieValue) < int(ieLength) {
		return nil, ErrIncorrectIE
	}
	return &ieReader{b: ieValue[:ieLength]}, nil
}

func (r *ieReader) remaining() int {
	return len(r.b) - r.off
}

func (r *ieReader) uint8() (uint8, error) {
	if r.remaining() < 1 {
		return 0, ErrIncorrectIE
	}
	v := r.b[r.off]
	r.off++
	return v, nil
}

func (r *ieReader) uint16() (uint16, error) {
	if r.remaining() < 2 {
		return 0, ErrIncorrectIE
	}
	v := binary.BigEndian.Uint16(r.b[r.off:])
	r.off += 2
	return v, nil
}

func (r *ieReader) uint24() (uint32, error) {
	if r.remaining() < 3 {
		return 0, ErrIncorrectIE
	}
	v := uint32(r.b[r.off])<<16 | uint32(r.b[r.off+1])<<8 | uint32(r.b[r.off+2])
	r.off += 3
	return v, nil
}

func (r *ieReader) uint32() (uint32, error) {
	if r.remaining() < 4 {
		return 0, ErrIncorrectIE
	}
	v := binary.BigEndian.Uint32(r.b[r.off:])
	r.off += 4
	return v, nil
}

// bytes returns the next n octets without copying; decoders copy whatever
// they keep so no output ever aliases the input buffer.
func (r *ieReader) bytes(n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, ErrIncorrectIE
	}
	v := r.b[r.off : r.off+n]
	r.off += n
	return v, nil
}
