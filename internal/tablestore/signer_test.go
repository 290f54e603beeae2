package tablestore

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/healthdiary-go/internal/errors"
)

// "secret" base64-encoded, a valid account key for signing tests.
const testAccountKey = "c2VjcmV0"

func testSigner(t *testing.T) *Signer {
	t.Helper()
	return NewSigner(Credentials{AccountName: "acct", AccountKey: testAccountKey})
}

func TestSigner_CanonicalString(t *testing.T) {
	s := testSigner(t)

	got := s.CanonicalString("Mon, 01 Jan 2024 09:00:00 GMT", "/symptomentries()")

	// Byte-exact wire contract: date, newline, slash, account, path.
	assert.Equal(t, "Mon, 01 Jan 2024 09:00:00 GMT\n/acct/symptomentries()", got)
}

func TestSigner_Deterministic(t *testing.T) {
	s := testSigner(t)

	first, err := s.Sign("Mon, 01 Jan 2024 09:00:00 GMT", "/foodentries()")
	require.NoError(t, err)
	second, err := s.Sign("Mon, 01 Jan 2024 09:00:00 GMT", "/foodentries()")
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical inputs must produce identical signatures")

	// Signature is standard base64
	_, err = base64.StdEncoding.DecodeString(first)
	assert.NoError(t, err, "signature must be valid base64")
}

func TestSigner_InputSensitivity(t *testing.T) {
	s := testSigner(t)

	base, err := s.Sign("Mon, 01 Jan 2024 09:00:00 GMT", "/foodentries()")
	require.NoError(t, err)

	differentDate, err := s.Sign("Mon, 01 Jan 2024 09:00:01 GMT", "/foodentries()")
	require.NoError(t, err)
	assert.NotEqual(t, base, differentDate, "date change must change signature")

	differentPath, err := s.Sign("Mon, 01 Jan 2024 09:00:00 GMT", "/drinkentries()")
	require.NoError(t, err)
	assert.NotEqual(t, base, differentPath, "path change must change signature")
}

func TestSigner_AuthorizationHeader(t *testing.T) {
	s := testSigner(t)

	header, err := s.AuthorizationHeader("Mon, 01 Jan 2024 09:00:00 GMT", "/foodentries()")
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(header, "SharedKeyLite acct:"), "header %q must carry scheme and account", header)

	signature := strings.TrimPrefix(header, "SharedKeyLite acct:")
	expected, err := s.Sign("Mon, 01 Jan 2024 09:00:00 GMT", "/foodentries()")
	require.NoError(t, err)
	assert.Equal(t, expected, signature)
}

func TestSigner_InvalidAccountKey(t *testing.T) {
	s := NewSigner(Credentials{AccountName: "acct", AccountKey: "not base64!!!"})

	_, err := s.Sign("Mon, 01 Jan 2024 09:00:00 GMT", "/foodentries()")
	require.Error(t, err)
	assert.Equal(t, errors.CategoryConfiguration, errors.CategoryOf(err))
}
