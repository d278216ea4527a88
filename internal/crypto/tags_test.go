package crypto

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptTag_Selectivity(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	set := NewTagSet("mime")

	enc, err := EncryptTag("mime", "text/plain", key, set)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(enc, "mime="))
	_, err = base64.StdEncoding.DecodeString(strings.TrimPrefix(enc, "mime="))
	require.NoError(t, err)
	assert.NotContains(t, enc, "text/plain")

	name, value, err := DecryptTag(enc, key, set)
	require.NoError(t, err)
	assert.Equal(t, "mime", name)
	assert.Equal(t, "text/plain", value)

	plain, err := EncryptTag("name", "foo", key, set)
	require.NoError(t, err)
	assert.Equal(t, "name=foo", plain)
}

func TestEncryptTag_NilSetEncryptsEverything(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)

	enc, err := EncryptTag("name", "foo", key, nil)
	require.NoError(t, err)
	assert.NotEqual(t, "name=foo", enc)

	_, value, err := DecryptTag(enc, key, nil)
	require.NoError(t, err)
	assert.Equal(t, "foo", value)
}

func TestExtractTags_PartialFailure(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	set := NewTagSet("mime", "title")

	tags, err := EncryptTags([]string{"mime=text/plain", "title=report", "state=public", "flag"}, key, set)
	require.NoError(t, err)

	// corrupt the title tag
	tags[1] = "title=" + base64.StdEncoding.EncodeToString([]byte("garbage-garbage-garbage-garbage"))

	got, err := ExtractTags(tags, key, set)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthenticationFailure)
	assert.Contains(t, err.Error(), "title")

	assert.Equal(t, []string{"text/plain"}, got["mime"])
	assert.Equal(t, []string{"public"}, got["state"])
	assert.Equal(t, []string{""}, got["flag"])
	assert.NotContains(t, got, "title")
}

func TestExtractTags_AllValid(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	set := NewTagSet("name")

	tags, err := EncryptTags([]string{"name=a", "name=b=c"}, key, set)
	require.NoError(t, err)

	got, err := ExtractTags(tags, key, set)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b=c"}, got["name"])
}
