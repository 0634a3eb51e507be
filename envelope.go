package sshcert

import (
	"bytes"
	"encoding/base64"
)

// Base64Decoder is the collaborator contract for turning the textual
// envelope's base64 payload into binary. *base64.Encoding (e.g.
// base64.StdEncoding) satisfies it without adaptation; it is declared
// here so callers can plug in an alternate implementation (streaming,
// SIMD-accelerated, whatever) without this package importing it.
type Base64Decoder interface {
	DecodedLen(n int) int
	Decode(dst, src []byte) (int, error)
}

// Envelope is the parsed textual outer form of an OpenSSH certificate:
// `<magic> <base64-blob> [comment]`. Blob is the decoded binary
// certificate, the authoritative representation everything downstream
// of the envelope decoder operates on.
type Envelope struct {
	Magic   string
	Blob    []byte
	Comment string
}

// DecodeEnvelope parses the one-line textual certificate form using
// the standard base64 alphabet with padding, allocating a fresh
// buffer for the decoded blob. text may carry leading/trailing
// whitespace and an optional trailing newline.
func DecodeEnvelope(text []byte) (*Envelope, error) {
	return DecodeEnvelopeWith(text, base64.StdEncoding)
}

// DecodeEnvelopeWith is DecodeEnvelope with an injected base64
// decoder, for callers that want a non-default alphabet or decoder
// implementation. The blob buffer is still allocated here.
func DecodeEnvelopeWith(text []byte, dec Base64Decoder) (*Envelope, error) {
	magic, payload, comment, err := splitEnvelope(text)
	if err != nil {
		return nil, err
	}

	blob := make([]byte, dec.DecodedLen(len(payload)))
	n, err := dec.Decode(blob, payload)
	if err != nil {
		return nil, ErrFailToParse
	}

	return &Envelope{Magic: string(magic), Blob: blob[:n], Comment: string(comment)}, nil
}

// DecodeEnvelopeInPlace decodes the base64 payload within buf without
// allocating: the decoded blob overwrites the payload's own bytes.
// The caller must not reuse buf for anything else and must keep it
// alive for as long as any Certificate parsed from the result is in
// use: the blob is the lifetime anchor, per the package's zero-copy
// contract.
func DecodeEnvelopeInPlace(buf []byte) (*Envelope, error) {
	magic, payload, comment, err := splitEnvelope(buf)
	if err != nil {
		return nil, err
	}

	// base64.Decode tolerates dst aliasing the front of src: it only
	// ever reads ahead of where it writes, so decoding in place is
	// safe without a temporary buffer.
	n, err := base64.StdEncoding.Decode(payload, payload)
	if err != nil {
		return nil, ErrFailToParse
	}

	return &Envelope{Magic: string(magic), Blob: payload[:n], Comment: string(comment)}, nil
}

// splitEnvelope isolates the magic, base64 payload, and optional
// comment tokens of a textual envelope line. The comment, if present,
// is everything after the second space-delimited token, verbatim.
func splitEnvelope(text []byte) (magic, payload, comment []byte, err error) {
	text = bytes.Trim(text, " \t\r\n")
	if len(text) == 0 {
		return nil, nil, nil, ErrFailToParse
	}

	fields := bytes.SplitN(text, []byte(" "), 3)
	if len(fields) < 2 || len(fields[0]) == 0 || len(fields[1]) == 0 {
		return nil, nil, nil, ErrFailToParse
	}

	magic = fields[0]
	payload = fields[1]
	if len(fields) == 3 {
		comment = bytes.TrimLeft(fields[2], " \t")
	}
	return magic, payload, comment, nil
}
