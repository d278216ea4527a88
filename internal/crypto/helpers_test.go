package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"sync"
	"testing"
)

var (
	testKeyOnce sync.Once
	testKeys    []*rsa.PrivateKey
	testKeyErr  error
)

// testRSAKeys returns two 2048-bit keys shared by every test in the package.
func testRSAKeys(t *testing.T) (*rsa.PrivateKey, *rsa.PrivateKey) {
	t.Helper()
	testKeyOnce.Do(func() {
		for range 2 {
			k, err := rsa.GenerateKey(rand.Reader, 2048)
			if err != nil {
				testKeyErr = err
				return
			}
			testKeys = append(testKeys, k)
		}
	})
	if testKeyErr != nil {
		t.Fatalf("generate rsa key: %v", testKeyErr)
	}
	return testKeys[0], testKeys[1]
}
