package sshcert

import (
	"bytes"
	"encoding/binary"
)

// wireBuilder assembles RFC 4251-framed test fixtures the same way
// production OpenSSH wire data is laid out: a flat sequence of
// uint32/uint64/string fields, one call per field, no padding.
type wireBuilder struct {
	buf bytes.Buffer
}

func (w *wireBuilder) uint32(v uint32) *wireBuilder {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
	return w
}

func (w *wireBuilder) uint64(v uint64) *wireBuilder {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
	return w
}

func (w *wireBuilder) str(s string) *wireBuilder {
	w.uint32(uint32(len(s)))
	w.buf.WriteString(s)
	return w
}

func (w *wireBuilder) bytes(b []byte) *wireBuilder {
	w.uint32(uint32(len(b)))
	w.buf.Write(b)
	return w
}

// strings packs a back-to-back sequence of length-prefixed strings
// (as used for principals) and appends it as one outer string field.
func (w *wireBuilder) strings(ss ...string) *wireBuilder {
	var inner wireBuilder
	for _, s := range ss {
		inner.str(s)
	}
	return w.bytes(inner.buf.Bytes())
}

// pairs packs a back-to-back sequence of (name, value) string pairs
// (as used for critical options and extensions) and appends it as one
// outer string field.
func (w *wireBuilder) pairs(kv ...string) *wireBuilder {
	if len(kv)%2 != 0 {
		panic("pairs: odd number of arguments")
	}
	var inner wireBuilder
	for i := 0; i < len(kv); i += 2 {
		inner.str(kv[i])
		inner.str(kv[i+1])
	}
	return w.bytes(inner.buf.Bytes())
}

func (w *wireBuilder) Bytes() []byte { return w.buf.Bytes() }

// certTail appends every field a certificate variant's tail shares,
// from serial through signature, matching what parseTail expects.
func certTail(w *wireBuilder, serial uint64, kind uint32, keyID string, principals []string, validAfter, validBefore uint64, criticalOptionPairs, extensionNames []string, reserved string, sigKeyAlg string, sigKey, sig []byte) {
	w.uint64(serial)
	w.uint32(kind)
	w.str(keyID)
	w.strings(principals...)
	w.uint64(validAfter)
	w.uint64(validBefore)
	w.pairs(criticalOptionPairs...)

	extKV := make([]string, 0, len(extensionNames)*2)
	for _, n := range extensionNames {
		extKV = append(extKV, n, "")
	}
	w.pairs(extKV...)

	w.str(reserved)

	var keyBuf wireBuilder
	keyBuf.str(sigKeyAlg)
	keyBuf.bytes(sigKey)
	w.bytes(keyBuf.Bytes())

	var sigBuf wireBuilder
	sigBuf.str(sigKeyAlg)
	sigBuf.bytes(sig)
	w.bytes(sigBuf.Bytes())
}
