package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T) *TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec("test-secret")
	require.NoError(t, err)
	return codec
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Encrypt("raw-session-id")
	require.NoError(t, err)
	require.Contains(t, token, tokenSeparator)
	assert.NotContains(t, token, "raw-session-id", "token must be opaque")

	rawID, err := codec.Decrypt(token)
	require.NoError(t, err)
	assert.Equal(t, "raw-session-id", rawID)
}

func TestCodec_FreshNoncePerCall(t *testing.T) {
	codec := newTestCodec(t)

	first, err := codec.Encrypt("same-id")
	require.NoError(t, err)
	second, err := codec.Encrypt("same-id")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "encrypting the same id twice must differ")
}

// TestCodec_TamperedTokenFailsClosed alters the final character of a valid
// token and expects a deterministic decrypt failure -- never a different
// raw id.
func TestCodec_TamperedTokenFailsClosed(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Encrypt("raw-session-id")
	require.NoError(t, err)

	last := token[len(token)-1]
	flipped := byte('A')
	if last == 'A' {
		flipped = 'B'
	}
	tampered := token[:len(token)-1] + string(flipped)

	_, err = codec.Decrypt(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_MalformedTokens(t *testing.T) {
	codec := newTestCodec(t)

	for _, token := range []string{
		"",
		"no-separator",
		"not base64!:" + strings.Repeat("x", 40),
		"YWJj:dGVzdA", // valid base64, wrong nonce size
	} {
		_, err := codec.Decrypt(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestCodec_WrongKeyFailsIdentically(t *testing.T) {
	codec := newTestCodec(t)
	other, err := NewTokenCodec("different-secret")
	require.NoError(t, err)

	token, err := codec.Encrypt("raw-session-id")
	require.NoError(t, err)

	_, err = other.Decrypt(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
