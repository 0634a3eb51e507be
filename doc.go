// Package sshcert decodes OpenSSH certificates from their textual and
// binary wire representations into typed, read-only views.
//
// It covers the envelope (the `<magic> <base64> [comment]` line format
// produced by ssh-keygen -s), the RFC 4251 binary framing underneath
// it, and the eight certificate key types OpenSSH defines: RSA, DSA,
// ECDSA over the three NIST curves, and Ed25519.
//
// This package never verifies signatures, never generates
// certificates, and never writes certificates back to wire form. It
// is a one-way reader: bytes in, typed fields out, bounds-checked at
// every step. Signature verification is the caller's job, see
// [Certificate.SignedMessage] for the exact byte range a verifier
// needs, and the sibling certverify package for a reference
// implementation.
package sshcert
