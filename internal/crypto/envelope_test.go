package crypto

import (
	"crypto/rsa"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-graph-vault/models"
)

func TestWrapUnwrap_RoundTrip(t *testing.T) {
	priv, _ := testRSAKeys(t)

	for _, alg := range []string{"sha256", "SHA-512", "sha384"} {
		t.Run(alg, func(t *testing.T) {
			key, err := GenerateKey()
			require.NoError(t, err)

			wrapped, err := WrapKey(key, &priv.PublicKey, alg)
			require.NoError(t, err)

			got, err := UnwrapKey(wrapped, priv, alg)
			require.NoError(t, err)
			assert.Equal(t, key, got)
		})
	}
}

func TestUnwrap_WrongKey(t *testing.T) {
	priv, other := testRSAKeys(t)
	key, err := GenerateKey()
	require.NoError(t, err)

	wrapped, err := WrapKey(key, &priv.PublicKey, SHA512)
	require.NoError(t, err)

	_, err = UnwrapKey(wrapped, other, SHA512)
	assert.ErrorIs(t, err, ErrAuthenticationFailure)
}

func TestKeyReference_UnwrapRef(t *testing.T) {
	priv, _ := testRSAKeys(t)
	key, err := GenerateKey()
	require.NoError(t, err)

	ref, err := KeyReference(key, &priv.PublicKey, "SHA-256")
	require.NoError(t, err)
	assert.Equal(t, models.ReferenceKey, ref.Group)

	wantHash, err := KeyHash(&priv.PublicKey, SHA256)
	require.NoError(t, err)
	assert.Equal(t, wantHash, ref.TargetHash)

	parsed, err := ParseKeyRef(ref.Extra)
	require.NoError(t, err)
	assert.Equal(t, SHA256, parsed.HashAlgorithm)

	// The embedded algorithm wins over the fallback.
	got, err := UnwrapRef(parsed, priv, SHA512)
	require.NoError(t, err)
	assert.Equal(t, key, got)
}

func TestKeyHashes_MultipleAlgorithms(t *testing.T) {
	priv, _ := testRSAKeys(t)

	hashes, err := KeyHashes(&priv.PublicKey, []string{"SHA-256", "sha512", "blake3"})
	require.NoError(t, err)
	require.Len(t, hashes, 3)

	single, err := KeyHash(&priv.PublicKey, "sha-512")
	require.NoError(t, err)
	assert.Equal(t, single, hashes[SHA512])
	assert.NotEqual(t, hashes[SHA256], hashes[SHA512])
	assert.NotEqual(t, hashes[BLAKE3], hashes[SHA512])
}

func TestSignVerify(t *testing.T) {
	signer, other := testRSAKeys(t)
	ciphertext := []byte("ciphertext bytes")

	refs, err := Sign(ciphertext, []*rsa.PrivateKey{signer, other, signer}, SHA512)
	require.NoError(t, err)
	require.Len(t, refs, 2, "duplicate signers are signed once")
	for _, ref := range refs {
		assert.Equal(t, models.ReferenceSignature, ref.Group)
	}

	signerHash, err := KeyHash(&signer.PublicKey, SHA512)
	require.NoError(t, err)
	otherHash, err := KeyHash(&other.PublicKey, SHA512)
	require.NoError(t, err)

	verified, err := Verify(ciphertext, refs, map[string]*rsa.PublicKey{
		signerHash: &signer.PublicKey,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{signerHash}, verified)

	// A claimed signer whose key does not match the signature is rejected.
	forged := []models.Reference{{TargetHash: otherHash, Group: models.ReferenceSignature, Extra: refs[0].Extra}}
	verified, err = Verify(ciphertext, forged, map[string]*rsa.PublicKey{otherHash: &other.PublicKey})
	require.NoError(t, err)
	assert.Empty(t, verified)

	verified, err = Verify([]byte("tampered"), refs, map[string]*rsa.PublicKey{signerHash: &signer.PublicKey})
	require.NoError(t, err)
	assert.Empty(t, verified)
}

func TestSign_Blake3Unsupported(t *testing.T) {
	signer, _ := testRSAKeys(t)
	_, err := Sign([]byte("x"), []*rsa.PrivateKey{signer}, BLAKE3)
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}
