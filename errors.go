package sshcert

// Error is the closed set of faults this package can report. Every
// fault, from a malformed length prefix to an unrecognized magic
// string, is one of these values (no wrapped cause and no payload),
// so callers can compare with == or errors.Is.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrFailToParse means the textual envelope did not contain at
	// least a magic token and a base64 payload token, or its payload
	// token was not valid base64.
	ErrFailToParse Error = "sshcert: envelope missing or undecodable payload token"

	// ErrInvalidMagicString means the binary blob's leading magic
	// string is not one of the eight known certificate types, or the
	// textual envelope's magic disagrees with the binary magic.
	ErrInvalidMagicString Error = "sshcert: invalid or mismatched magic string"

	// ErrMalformedCertificate means the blob passed magic dispatch
	// but violated certificate structure: an unrecognized cert_kind,
	// a short blob, or trailing bytes after the expected field list.
	ErrMalformedCertificate Error = "sshcert: malformed certificate structure"

	// ErrMalformedInteger means a fixed-width integer read would
	// overrun the remaining buffer.
	ErrMalformedInteger Error = "sshcert: truncated integer field"

	// ErrMalformedString means a length-prefixed string's declared
	// length overruns its buffer.
	ErrMalformedString Error = "sshcert: truncated string field"

	// ErrRepeatedExtension means the same extension bit was set twice
	// while folding the extensions blob.
	ErrRepeatedExtension Error = "sshcert: repeated extension"

	// ErrUnknownExtension means the extensions blob named an
	// extension this package does not recognize.
	ErrUnknownExtension Error = "sshcert: unknown extension"
)
