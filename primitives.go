package sshcert

import "encoding/binary"

// readUint32 consumes a big-endian uint32 from the front of b and
// returns the value alongside the remaining bytes. RFC 4251 §5.
func readUint32(b []byte) (v uint32, rest []byte, err error) {
	if len(b) < 4 {
		return 0, nil, ErrMalformedInteger
	}
	return binary.BigEndian.Uint32(b), b[4:], nil
}

// readUint64 consumes a big-endian uint64 from the front of b and
// returns the value alongside the remaining bytes. RFC 4251 §5.
func readUint64(b []byte) (v uint64, rest []byte, err error) {
	if len(b) < 8 {
		return 0, nil, ErrMalformedInteger
	}
	return binary.BigEndian.Uint64(b), b[8:], nil
}

// readString consumes a uint32 length L followed by L opaque bytes
// from the front of b, per RFC 4251 §5. The returned slice aliases b,
// nothing is copied. L == 0 is valid and yields an empty, non-nil
// slice.
func readString(b []byte) (s []byte, rest []byte, err error) {
	l, rest, err := readUint32(b)
	if err != nil {
		return nil, nil, ErrMalformedString
	}
	n := int(l)
	if n < 0 || n > len(rest) {
		return nil, nil, ErrMalformedString
	}
	return rest[:n:n], rest[n:], nil
}

// readMpint consumes an RFC 4251 mpint, which is framed identically
// to string: this package treats it as opaque bytes and leaves
// interpretation (sign, magnitude) to the caller, since nothing here
// does arithmetic on key material.
func readMpint(b []byte) (v []byte, rest []byte, err error) {
	return readString(b)
}
