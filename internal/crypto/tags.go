package crypto

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// TagSet restricts which tag names are encrypted. A nil TagSet means every
// tag is encrypted.
type TagSet map[string]struct{}

// NewTagSet builds a TagSet from names.
func NewTagSet(names ...string) TagSet {
	set := make(TagSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func (s TagSet) covers(name string) bool {
	if s == nil {
		return true
	}
	_, ok := s[name]
	return ok
}

// SplitTag splits "name=value" at the first '='. Flag tags without '='
// yield an empty value.
func SplitTag(tag string) (name, value string) {
	name, value, _ = strings.Cut(tag, "=")
	return name, value
}

// EncryptTag returns "name=value", with value replaced by
// base64(nonce‖ciphertext) when name is covered by encryptSet.
func EncryptTag(name, value string, key []byte, encryptSet TagSet) (string, error) {
	if !encryptSet.covers(name) {
		return name + "=" + value, nil
	}
	blob, err := SealBlob([]byte(value), key)
	if err != nil {
		return "", fmt.Errorf("encrypt tag %q: %w", name, err)
	}
	return name + "=" + base64.StdEncoding.EncodeToString(blob), nil
}

// DecryptTag parses tag and decrypts its value when the name is covered by
// decryptSet.
func DecryptTag(tag string, key []byte, decryptSet TagSet) (name, value string, err error) {
	name, value = SplitTag(tag)
	if !decryptSet.covers(name) {
		return name, value, nil
	}
	blob, err := decodeB64(value)
	if err != nil {
		return name, "", fmt.Errorf("decrypt tag %q: %w", name, err)
	}
	plain, err := OpenBlob(blob, key)
	if err != nil {
		return name, "", fmt.Errorf("decrypt tag %q: %w", name, err)
	}
	return name, string(plain), nil
}

// EncryptTags encrypts every "name=value" tag with [EncryptTag].
func EncryptTags(tags []string, key []byte, encryptSet TagSet) ([]string, error) {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		name, value := SplitTag(tag)
		enc, err := EncryptTag(name, value, key, encryptSet)
		if err != nil {
			return nil, err
		}
		out = append(out, enc)
	}
	return out, nil
}

// ExtractTags decodes tags one by one into name → values. A tag that fails
// to decrypt is left out of the map and its error is joined into the
// returned error; the other tags are still decoded.
func ExtractTags(tags []string, key []byte, decryptSet TagSet) (map[string][]string, error) {
	out := make(map[string][]string, len(tags))
	var errs []error
	for _, tag := range tags {
		name, value, err := DecryptTag(tag, key, decryptSet)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[name] = append(out[name], value)
	}
	return out, errors.Join(errs...)
}
