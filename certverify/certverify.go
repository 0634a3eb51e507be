// Package certverify is a reference implementation of the signature
// verifier collaborator sshcert expects: sshcert parses certificates
// but never verifies their signatures, so something outside it has to
// wire a real crypto primitive to the byte ranges
// [sshcert.Certificate.SignedMessage] exposes.
package certverify

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/ssh"

	"github.com/boldsoftware/exe.dev/sshcert"
)

// Verifier is the collaborator contract sshcert expects: message is
// [sshcert.Certificate.SignedMessage], signatureKeyBlob and
// signatureBlob are the certificate's SignatureKey and Signature
// fields verbatim.
type Verifier interface {
	Verify(message, signatureKeyBlob, signatureBlob []byte) (bool, error)
}

type sshVerifier struct{}

// Default returns a Verifier backed by golang.org/x/crypto/ssh: it
// parses signatureKeyBlob as an SSH public key and signatureBlob as
// an RFC 4251 (string algorithm, string blob) signature, then asks
// the public key to verify the message against it.
func Default() Verifier {
	return sshVerifier{}
}

func (sshVerifier) Verify(message, signatureKeyBlob, signatureBlob []byte) (bool, error) {
	pub, err := ssh.ParsePublicKey(signatureKeyBlob)
	if err != nil {
		return false, fmt.Errorf("certverify: parsing signature key: %w", err)
	}

	var sig ssh.Signature
	if err := ssh.Unmarshal(signatureBlob, &sig); err != nil {
		return false, fmt.Errorf("certverify: parsing signature: %w", err)
	}

	if err := pub.Verify(message, &sig); err != nil {
		return false, nil
	}
	return true, nil
}

// magicPrefix assigns each of the eight certificate magics a single
// byte.
var magicPrefix = map[sshcert.Magic]byte{
	sshcert.MagicRSA:       'r',
	sshcert.MagicRSASHA256: '2',
	sshcert.MagicRSASHA512: '5',
	sshcert.MagicDSA:       'd',
	sshcert.MagicECDSAP256: 'p',
	sshcert.MagicECDSAP384: 'q',
	sshcert.MagicECDSAP521: 'P',
	sshcert.MagicEd25519:   'e',
}

// prefixToMagic is the reverse of magicPrefix, built once at init so
// ParseCacheKeyMagic is a single array index. An unrecognized prefix
// byte maps to the zero value.
var prefixToMagic [256]sshcert.Magic

func init() {
	for magic, prefix := range magicPrefix {
		prefixToMagic[prefix] = magic
	}
}

// CacheKey derives a short, comparable key for "have I already
// verified this exact certificate's signature", useful for a policy
// engine that re-validates the same certificate across many
// connections without re-running public-key crypto every time. It is
// not a signature compaction format: it carries no recoverable
// signature bytes, only a prefix byte identifying the certificate's
// magic and a truncated digest of the signed message plus signature.
func CacheKey(cert sshcert.Certificate) (string, error) {
	prefix, ok := magicPrefix[cert.Magic()]
	if !ok {
		return "", fmt.Errorf("certverify: unrecognized magic %q", cert.Magic())
	}

	h := sha256.New()
	h.Write(cert.SignedMessage())
	h.Write(cert.Signature())
	digest := h.Sum(nil)[:16]

	return string(prefix) + base64.RawURLEncoding.EncodeToString(digest), nil
}

// ParseCacheKeyMagic reports the certificate magic a CacheKey was
// derived for, recovered from its prefix byte. It does not recover
// the digest's inputs (CacheKey is one-way by design).
func ParseCacheKeyMagic(key string) (sshcert.Magic, bool) {
	if len(key) == 0 {
		return "", false
	}
	m := prefixToMagic[key[0]]
	return m, m != ""
}
