package service

import (
	"crypto/rsa"
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/go-graph-vault/internal/crypto"
)

// KeyRing holds the certificates of one scope keyed by public key hash.
// Private keys are imported on first use and cached; a KeyRing is safe for
// concurrent use.
type KeyRing struct {
	algorithms []string
	hashes     []string
	entries    map[string]*keyRingEntry
}

type keyRingEntry struct {
	once sync.Once
	der  []byte
	key  *rsa.PrivateKey
	err  error
}

// NewKeyRing returns an empty ring whose certificates are checked against
// their hash under any of algorithms on import.
func NewKeyRing(algorithms ...string) *KeyRing {
	return &KeyRing{
		algorithms: algorithms,
		entries:    make(map[string]*keyRingEntry),
	}
}

// Add registers certificate material under hash. The first registration
// of a hash wins; Add reports whether der was taken.
func (r *KeyRing) Add(hash string, der []byte) bool {
	if _, ok := r.entries[hash]; ok {
		return false
	}
	r.entries[hash] = &keyRingEntry{der: slices.Clone(der)}
	r.hashes = append(r.hashes, hash)
	return true
}

// Len returns the number of certificates in the ring.
func (r *KeyRing) Len() int {
	if r == nil {
		return 0
	}
	return len(r.hashes)
}

// Hashes returns the certificate hashes in insertion order.
func (r *KeyRing) Hashes() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.hashes)
}

// Has reports whether the ring holds a certificate for hash.
func (r *KeyRing) Has(hash string) bool {
	if r == nil {
		return false
	}
	_, ok := r.entries[hash]
	return ok
}

// Get returns the private key registered under hash, importing it on the
// first call. A certificate whose public key does not hash to the key it
// is stored under fails with ErrIntegrityMismatch.
func (r *KeyRing) Get(hash string) (*rsa.PrivateKey, error) {
	if !r.Has(hash) {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, hash)
	}
	e := r.entries[hash]
	e.once.Do(func() {
		e.key, e.err = r.load(hash, e.der)
		e.der = nil
	})
	return e.key, e.err
}

func (r *KeyRing) load(hash string, der []byte) (*rsa.PrivateKey, error) {
	priv, err := crypto.ToPrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("error importing certificate %s: %w", hash, err)
	}
	hashes, err := crypto.KeyHashes(&priv.PublicKey, r.algorithms)
	if err != nil {
		return nil, fmt.Errorf("error hashing certificate %s: %w", hash, err)
	}
	for _, h := range hashes {
		if h == hash {
			return priv, nil
		}
	}
	return nil, fmt.Errorf("%w: certificate stored under %s", ErrIntegrityMismatch, hash)
}

// Signers imports every certificate of the ring.
func (r *KeyRing) Signers() ([]*rsa.PrivateKey, error) {
	out := make([]*rsa.PrivateKey, 0, r.Len())
	for _, hash := range r.Hashes() {
		priv, err := r.Get(hash)
		if err != nil {
			return nil, err
		}
		out = append(out, priv)
	}
	return out, nil
}

// PublicKeys returns the public half of every certificate keyed by hash,
// suitable for signature verification.
func (r *KeyRing) PublicKeys() (map[string]*rsa.PublicKey, error) {
	out := make(map[string]*rsa.PublicKey, r.Len())
	for _, hash := range r.Hashes() {
		priv, err := r.Get(hash)
		if err != nil {
			return nil, err
		}
		out[hash] = &priv.PublicKey
	}
	return out, nil
}
