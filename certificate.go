package sshcert

// CertKind distinguishes a user certificate from a host certificate.
// No other value is valid; parsing a cert_kind outside this set is
// ErrMalformedCertificate.
type CertKind uint32

const (
	CertKindUser CertKind = 1
	CertKindHost CertKind = 2
)

// Certificate is the tagged union of the four OpenSSH certificate
// variants. The interface is sealed to this package (isCertificate is
// unexported), so callers distinguish variants with a type switch over
// *RSACertificate, *DSACertificate, *ECDSACertificate, and
// *Ed25519Certificate.
//
// Every byte-slice-returning method aliases the blob the Certificate
// was parsed from. The blob must outlive the Certificate.
type Certificate interface {
	Magic() Magic
	Serial() uint64
	Kind() CertKind
	KeyID() []byte
	ValidPrincipals() Principals
	ValidAfter() uint64
	ValidBefore() uint64
	CriticalOptions() []byte
	Extensions() []byte
	Reserved() []byte
	SignatureKey() []byte
	Signature() []byte

	// SignedMessage returns the blob prefix the signature covers:
	// everything up to (not including) the signature field's own
	// length prefix. Pass this, SignatureKey, and Signature to an
	// external verifier.
	SignedMessage() []byte

	// EncodedSigSize is len(SignedMessage()), the byte offset within
	// the original blob where the signature field's length prefix
	// begins.
	EncodedSigSize() int

	isCertificate()
}

// tail holds the fields every certificate variant shares, from serial
// through signature, plus the bookkeeping needed to reconstruct the
// signed prefix. It is embedded in each variant struct so the common
// accessor methods are promoted for free.
type tail struct {
	magic           Magic
	blob            []byte
	sigFieldOffset  int
	serial          uint64
	kind            CertKind
	keyID           []byte
	validPrincipals Principals
	validAfter      uint64
	validBefore     uint64
	criticalOptions []byte
	extensions      []byte
	reserved        []byte
	signatureKey    []byte
	signature       []byte
}

func (t *tail) Magic() Magic                { return t.magic }
func (t *tail) Serial() uint64              { return t.serial }
func (t *tail) Kind() CertKind              { return t.kind }
func (t *tail) KeyID() []byte               { return t.keyID }
func (t *tail) ValidPrincipals() Principals { return t.validPrincipals }
func (t *tail) ValidAfter() uint64          { return t.validAfter }
func (t *tail) ValidBefore() uint64         { return t.validBefore }
func (t *tail) CriticalOptions() []byte     { return t.criticalOptions }
func (t *tail) Extensions() []byte          { return t.extensions }
func (t *tail) Reserved() []byte            { return t.reserved }
func (t *tail) SignatureKey() []byte        { return t.signatureKey }
func (t *tail) Signature() []byte           { return t.signature }
func (t *tail) SignedMessage() []byte       { return t.blob[:t.sigFieldOffset] }
func (t *tail) EncodedSigSize() int         { return t.sigFieldOffset }
func (t *tail) isCertificate()              {}

// RSACertificate is an ssh-rsa-cert-v01, rsa-sha2-256-cert-v01, or
// rsa-sha2-512-cert-v01 certificate.
type RSACertificate struct {
	tail
	Nonce []byte
	E     []byte // mpint, public exponent
	N     []byte // mpint, modulus
}

// DSACertificate is an ssh-dss-cert-v01 certificate.
type DSACertificate struct {
	tail
	Nonce      []byte
	P, Q, G, Y []byte // mpints
}

// ECDSACertificate is an ecdsa-sha2-nistp256/384/521-cert-v01
// certificate. Curve names the NIST curve ("nistp256", "nistp384", or
// "nistp521") and PublicKey is the uncompressed EC point.
type ECDSACertificate struct {
	tail
	Nonce     []byte
	Curve     []byte
	PublicKey []byte
}

// Ed25519Certificate is an ssh-ed25519-cert-v01 certificate.
type Ed25519Certificate struct {
	tail
	Nonce []byte
	PK    []byte
}

// Parse decodes a binary OpenSSH certificate blob (the decoded form
// of an Envelope) into its typed Certificate. It performs magic
// dispatch, selects the variant's field schema, and runs the parser
// to construct the tagged union in a single top-down pass.
func Parse(blob []byte) (Certificate, error) {
	return parse(blob, "")
}

// ParseEnvelope decodes env.Blob the same way Parse does, additionally
// requiring env.Magic (the textual magic token) to agree with the
// blob's own binary magic.
func ParseEnvelope(env *Envelope) (Certificate, error) {
	return parse(env.Blob, env.Magic)
}

func parse(blob []byte, textualMagic string) (Certificate, error) {
	magic, fam, rest, err := dispatchMagic(blob, textualMagic)
	if err != nil {
		return nil, err
	}

	switch fam {
	case familyRSA:
		return parseRSA(magic, blob, rest)
	case familyDSA:
		return parseDSA(magic, blob, rest)
	case familyECDSA:
		return parseECDSA(magic, blob, rest)
	case familyEd25519:
		return parseEd25519(magic, blob, rest)
	default:
		// unreachable: dispatchMagic only returns families it knows.
		return nil, ErrInvalidMagicString
	}
}

func parseRSA(magic Magic, blob, rest []byte) (*RSACertificate, error) {
	nonce, rest, err := readString(rest)
	if err != nil {
		return nil, err
	}
	e, rest, err := readMpint(rest)
	if err != nil {
		return nil, err
	}
	n, rest, err := readMpint(rest)
	if err != nil {
		return nil, err
	}
	t, err := parseTail(magic, blob, rest)
	if err != nil {
		return nil, err
	}
	return &RSACertificate{tail: t, Nonce: nonce, E: e, N: n}, nil
}

func parseDSA(magic Magic, blob, rest []byte) (*DSACertificate, error) {
	nonce, rest, err := readString(rest)
	if err != nil {
		return nil, err
	}
	p, rest, err := readMpint(rest)
	if err != nil {
		return nil, err
	}
	q, rest, err := readMpint(rest)
	if err != nil {
		return nil, err
	}
	g, rest, err := readMpint(rest)
	if err != nil {
		return nil, err
	}
	y, rest, err := readMpint(rest)
	if err != nil {
		return nil, err
	}
	t, err := parseTail(magic, blob, rest)
	if err != nil {
		return nil, err
	}
	return &DSACertificate{tail: t, Nonce: nonce, P: p, Q: q, G: g, Y: y}, nil
}

func parseECDSA(magic Magic, blob, rest []byte) (*ECDSACertificate, error) {
	nonce, rest, err := readString(rest)
	if err != nil {
		return nil, err
	}
	curve, rest, err := readString(rest)
	if err != nil {
		return nil, err
	}
	pub, rest, err := readString(rest)
	if err != nil {
		return nil, err
	}
	t, err := parseTail(magic, blob, rest)
	if err != nil {
		return nil, err
	}
	return &ECDSACertificate{tail: t, Nonce: nonce, Curve: curve, PublicKey: pub}, nil
}

func parseEd25519(magic Magic, blob, rest []byte) (*Ed25519Certificate, error) {
	nonce, rest, err := readString(rest)
	if err != nil {
		return nil, err
	}
	pk, rest, err := readString(rest)
	if err != nil {
		return nil, err
	}
	t, err := parseTail(magic, blob, rest)
	if err != nil {
		return nil, err
	}
	return &Ed25519Certificate{tail: t, Nonce: nonce, PK: pk}, nil
}

// parseTail consumes the fields every variant shares, from serial
// through signature, and records where the signature field begins so
// SignedMessage/EncodedSigSize can reconstruct the signed prefix. It
// is an error for any bytes to remain after the signature field: the
// concatenation of every consumed range, including the magic, must
// equal the blob exactly.
func parseTail(magic Magic, blob, rest []byte) (tail, error) {
	serial, rest, err := readUint64(rest)
	if err != nil {
		return tail{}, err
	}

	kindRaw, rest, err := readUint32(rest)
	if err != nil {
		return tail{}, err
	}
	kind := CertKind(kindRaw)
	if kind != CertKindUser && kind != CertKindHost {
		return tail{}, ErrMalformedCertificate
	}

	keyID, rest, err := readString(rest)
	if err != nil {
		return tail{}, err
	}

	principalsBlob, rest, err := readString(rest)
	if err != nil {
		return tail{}, err
	}

	validAfter, rest, err := readUint64(rest)
	if err != nil {
		return tail{}, err
	}
	validBefore, rest, err := readUint64(rest)
	if err != nil {
		return tail{}, err
	}

	criticalOptions, rest, err := readString(rest)
	if err != nil {
		return tail{}, err
	}
	extensions, rest, err := readString(rest)
	if err != nil {
		return tail{}, err
	}
	reserved, rest, err := readString(rest)
	if err != nil {
		return tail{}, err
	}
	signatureKey, rest, err := readString(rest)
	if err != nil {
		return tail{}, err
	}

	sigFieldOffset := len(blob) - len(rest)

	signature, rest, err := readString(rest)
	if err != nil {
		return tail{}, err
	}
	if len(rest) != 0 {
		return tail{}, ErrMalformedCertificate
	}

	return tail{
		magic:           magic,
		blob:            blob,
		sigFieldOffset:  sigFieldOffset,
		serial:          serial,
		kind:            kind,
		keyID:           keyID,
		validPrincipals: Principals{ref: principalsBlob},
		validAfter:      validAfter,
		validBefore:     validBefore,
		criticalOptions: criticalOptions,
		extensions:      extensions,
		reserved:        reserved,
		signatureKey:    signatureKey,
		signature:       signature,
	}, nil
}
