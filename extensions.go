package sshcert

// ExtensionFlag is a bit in the extensions bitmask, one per OpenSSH
// extension name.
type ExtensionFlag uint32

// The six extension bits OpenSSH defines, in the order their names
// are documented.
const (
	ExtensionNoTouchRequired       ExtensionFlag = 1 << 0
	ExtensionPermitX11Forwarding   ExtensionFlag = 1 << 1
	ExtensionPermitAgentForwarding ExtensionFlag = 1 << 2
	ExtensionPermitPortForwarding  ExtensionFlag = 1 << 3
	ExtensionPermitPty             ExtensionFlag = 1 << 4
	ExtensionPermitUserRC          ExtensionFlag = 1 << 5
)

var extensionBits = map[string]ExtensionFlag{
	"no-touch-required":       ExtensionNoTouchRequired,
	"permit-X11-forwarding":   ExtensionPermitX11Forwarding,
	"permit-agent-forwarding": ExtensionPermitAgentForwarding,
	"permit-port-forwarding":  ExtensionPermitPortForwarding,
	"permit-pty":              ExtensionPermitPty,
	"permit-user-rc":          ExtensionPermitUserRC,
}

// FoldExtensions walks the extensions blob as a sequence of (name,
// value) pairs (value is always a zero-length string per the OpenSSH
// certificate format) and ORs the corresponding bit into a mask for
// each name. The fold is order-insensitive: any permutation of a
// unique extension set yields the same mask. A name appearing twice
// is ErrRepeatedExtension; a name this package doesn't recognize is
// ErrUnknownExtension.
func FoldExtensions(blob []byte) (ExtensionFlag, error) {
	var mask ExtensionFlag
	off := 0
	for off != len(blob) {
		name, rest, err := readString(blob[off:])
		if err != nil {
			return 0, err
		}
		_, rest, err = readString(rest)
		if err != nil {
			return 0, err
		}
		off = len(blob) - len(rest)

		bit, ok := extensionBits[string(name)]
		if !ok {
			return 0, ErrUnknownExtension
		}
		if mask&bit != 0 {
			return 0, ErrRepeatedExtension
		}
		mask |= bit
	}
	return mask, nil
}
