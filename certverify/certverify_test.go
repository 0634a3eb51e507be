package certverify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boldsoftware/exe.dev/sshcert"
)

// exampleRSACert is the same ssh-keygen-generated certificate used in
// the core package's own tests (ssh-keygen -s ca-key -I test
// user-key): a real, CA-self-signed certificate, not a synthetic
// fixture, so Default().Verify exercises actual RSA signature
// verification end to end.
const exampleRSACert = `ssh-rsa-cert-v01@openssh.com AAAAHHNzaC1yc2EtY2VydC12MDFAb3BlbnNzaC5jb20AAAAgb1srW/W3ZDjYAO45xLYAwzHBDLsJ4Ux6ICFIkTjb1LEAAAADAQABAAAAYQCkoR51poH0wE8w72cqSB8Sszx+vAhzcMdCO0wqHTj7UNENHWEXGrU0E0UQekD7U+yhkhtoyjbPOVIP7hNa6aRk/ezdh/iUnCIt4Jt1v3Z1h1P+hA4QuYFMHNB+rmjPwAcAAAAAAAAAAAAAAAEAAAAEdGVzdAAAAAAAAAAAAAAAAP//////////AAAAAAAAAIIAAAAVcGVybWl0LVgxMS1mb3J3YXJkaW5nAAAAAAAAABdwZXJtaXQtYWdlbnQtZm9yd2FyZGluZwAAAAAAAAAWcGVybWl0LXBvcnQtZm9yd2FyZGluZwAAAAAAAAAKcGVybWl0LXB0eQAAAAAAAAAOcGVybWl0LXVzZXItcmMAAAAAAAAAAAAAAHcAAAAHc3NoLXJzYQAAAAMBAAEAAABhANFS2kaktpSGc+CcmEKPyw9mJC4nZKxHKTgLVZeaGbFZOvJTNzBspQHdy7Q1uKSfktxpgjZnksiu/tFF9ngyY2KFoc+U88ya95IZUycBGCUbBQ8+bhDtw/icdDGQD5WnUwAAAG8AAAAHc3NoLXJzYQAAAGC8Y9Z2LQKhIhxf52773XaWrXdxP0t3GBVo4A10vUWiYoAGepr6rQIoGGXFxT4B9Gp+nEBJjOwKDXPrAevow0T9ca8gZN+0ykbhSrXLE5Ao48rqr3zP4O1/9P7e6gp0gw8=`

func TestDefaultVerifierAcceptsGenuineCert(t *testing.T) {
	env, err := sshcert.DecodeEnvelope([]byte(exampleRSACert))
	require.NoError(t, err)

	cert, err := sshcert.ParseEnvelope(env)
	require.NoError(t, err)

	ok, err := Default().Verify(cert.SignedMessage(), cert.SignatureKey(), cert.Signature())
	require.NoError(t, err)
	assert.True(t, ok, "genuine ssh-keygen signature should verify")
}

func TestDefaultVerifierRejectsTamperedMessage(t *testing.T) {
	env, err := sshcert.DecodeEnvelope([]byte(exampleRSACert))
	require.NoError(t, err)
	cert, err := sshcert.ParseEnvelope(env)
	require.NoError(t, err)

	tampered := append([]byte(nil), cert.SignedMessage()...)
	tampered[0] ^= 0xFF

	ok, err := Default().Verify(tampered, cert.SignatureKey(), cert.Signature())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheKeyRoundTripsMagic(t *testing.T) {
	env, err := sshcert.DecodeEnvelope([]byte(exampleRSACert))
	require.NoError(t, err)
	cert, err := sshcert.ParseEnvelope(env)
	require.NoError(t, err)

	key, err := CacheKey(cert)
	require.NoError(t, err)
	assert.NotEmpty(t, key)

	magic, ok := ParseCacheKeyMagic(key)
	require.True(t, ok)
	assert.Equal(t, sshcert.MagicRSA, magic)
}

func TestCacheKeyStableAcrossCalls(t *testing.T) {
	env, err := sshcert.DecodeEnvelope([]byte(exampleRSACert))
	require.NoError(t, err)
	cert, err := sshcert.ParseEnvelope(env)
	require.NoError(t, err)

	k1, err := CacheKey(cert)
	require.NoError(t, err)
	k2, err := CacheKey(cert)
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
}
