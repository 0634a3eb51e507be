package sshcert

// Principals is a zero-copy reference to the valid_principals blob: a
// length-prefixed string whose payload is a back-to-back sequence of
// length-prefixed strings, each one a username or hostname the
// certificate is valid for.
type Principals struct {
	ref []byte
}

// Iterator returns a restartable, lazy iterator over p's entries.
func (p Principals) Iterator() *PrincipalsIterator {
	return &PrincipalsIterator{ref: p.ref}
}

// Slice materializes every principal into a slice, in order. It is a
// convenience over Iterator for callers that don't need laziness; an
// error here means the blob itself is malformed, which should not
// happen for a Principals obtained from a successfully parsed
// Certificate.
func (p Principals) Slice() ([][]byte, error) {
	it := p.Iterator()
	var out [][]byte
	for {
		s, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, s)
	}
}

// PrincipalsIterator walks a Principals blob one length-prefixed
// string at a time. There is no inter-element padding: RFC 4251
// strings are back-to-back, nothing more.
type PrincipalsIterator struct {
	ref []byte
	off int
}

// Next returns the next principal, or ok == false once exhausted.
// Calling Next again after exhaustion is a no-op: it keeps returning
// ok == false without advancing state.
func (it *PrincipalsIterator) Next() (s []byte, ok bool, err error) {
	if it.Done() {
		return nil, false, nil
	}
	s, rest, err := readString(it.ref[it.off:])
	if err != nil {
		return nil, false, err
	}
	it.off = len(it.ref) - len(rest)
	return s, true, nil
}

// Done reports whether the iterator has consumed the entire blob.
func (it *PrincipalsIterator) Done() bool {
	return it.off == len(it.ref)
}

// Reset rewinds the iterator to the start of the blob.
func (it *PrincipalsIterator) Reset() {
	it.off = 0
}
