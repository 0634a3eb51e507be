package sshcert

// Magic identifies an OpenSSH certificate's key family and wire
// format version. It is a closed enumeration, ParseMagic rejects
// anything not in this list.
type Magic string

// The eight certificate magics OpenSSH defines. The three RSA-family
// values (ssh-rsa-cert-v01, rsa-sha2-256-cert-v01, rsa-sha2-512-cert-v01)
// all carry the same wire layout and dispatch to the same schema.
const (
	MagicRSA       Magic = "ssh-rsa-cert-v01@openssh.com"
	MagicDSA       Magic = "ssh-dss-cert-v01@openssh.com"
	MagicECDSAP256 Magic = "ecdsa-sha2-nistp256-cert-v01@openssh.com"
	MagicECDSAP384 Magic = "ecdsa-sha2-nistp384-cert-v01@openssh.com"
	MagicECDSAP521 Magic = "ecdsa-sha2-nistp521-cert-v01@openssh.com"
	MagicEd25519   Magic = "ssh-ed25519-cert-v01@openssh.com"
	MagicRSASHA256 Magic = "rsa-sha2-256-cert-v01@openssh.com"
	MagicRSASHA512 Magic = "rsa-sha2-512-cert-v01@openssh.com"
)

// family is the internal variant dispatch target a Magic maps to.
type family int

const (
	familyRSA family = iota
	familyDSA
	familyECDSA
	familyEd25519
)

var magicFamilies = map[Magic]family{
	MagicRSA:       familyRSA,
	MagicRSASHA256: familyRSA,
	MagicRSASHA512: familyRSA,
	MagicDSA:       familyDSA,
	MagicECDSAP256: familyECDSA,
	MagicECDSAP384: familyECDSA,
	MagicECDSAP521: familyECDSA,
	MagicEd25519:   familyEd25519,
}

// ParseMagic reports whether s is one of the eight known certificate
// magics and, if so, returns it typed.
func ParseMagic(s string) (Magic, bool) {
	m := Magic(s)
	_, ok := magicFamilies[m]
	return m, ok
}

// dispatchMagic reads the blob's leading length-prefixed magic
// string, validates it against the closed enumeration, and, if
// textualMagic is non-empty, requires it to match the binary magic
// exactly. It returns the matched Magic, its family, and the
// remainder of the blob after the magic field.
func dispatchMagic(blob []byte, textualMagic string) (Magic, family, []byte, error) {
	raw, rest, err := readString(blob)
	if err != nil {
		return "", 0, nil, err
	}

	m, ok := ParseMagic(string(raw))
	if !ok {
		return "", 0, nil, ErrInvalidMagicString
	}
	if textualMagic != "" && textualMagic != string(m) {
		return "", 0, nil, ErrInvalidMagicString
	}

	return m, magicFamilies[m], rest, nil
}
