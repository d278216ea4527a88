package vault

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-graph-vault/models"
)

// ErrInvalidHostURL is returned when a scope URL cannot be resolved to an
// absolute endpoint URL.
var ErrInvalidHostURL = errors.New("invalid host url")

// HostKey resolves scopeURL against baseURL and returns the key used in
// [models.Vault.Hosts]: an absolute URL with lower-cased scheme and host,
// no query, fragment or trailing slash. An empty scopeURL means baseURL.
func HostKey(baseURL, scopeURL string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: base %q: %v", ErrInvalidHostURL, baseURL, err)
	}
	ref, err := url.Parse(scopeURL)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidHostURL, scopeURL, err)
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme == "" || resolved.Host == "" {
		return "", fmt.Errorf("%w: %q is not absolute", ErrInvalidHostURL, resolved.String())
	}

	resolved.Scheme = strings.ToLower(resolved.Scheme)
	resolved.Host = strings.ToLower(resolved.Host)
	resolved.RawQuery = ""
	resolved.Fragment = ""
	resolved.User = nil
	resolved.Path = strings.TrimRight(resolved.Path, "/")
	resolved.RawPath = ""
	return resolved.String(), nil
}

// Host returns the entry for scopeURL together with its key. ok is false
// when the vault knows nothing about the host.
func Host(v models.Vault, scopeURL string) (key string, host models.HostEntry, ok bool, err error) {
	key, err = HostKey(v.BaseURL, scopeURL)
	if err != nil {
		return "", models.HostEntry{}, false, err
	}
	host, ok = v.Hosts[key]
	return key, host, ok, nil
}

// HashAlgorithms returns the algorithms the host advertises, or fallback
// when the host is unknown or advertises none.
func HashAlgorithms(v models.Vault, scopeURL string, fallback ...string) []string {
	_, host, ok, err := Host(v, scopeURL)
	if err != nil || !ok || len(host.HashAlgorithms) == 0 {
		return fallback
	}
	return host.HashAlgorithms
}
