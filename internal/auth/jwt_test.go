package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func testOptions() Options {
	return Options{
		Key:       testKey,
		Issuer:    "PlayerBonusApi",
		Audience:  "PlayerBonusApiClients",
		TTL:       8 * time.Hour,
		ClockSkew: time.Minute,
	}
}

func newTestIssuer(t *testing.T) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer(testOptions())
	require.NoError(t, err)
	return issuer
}

func TestNewTokenIssuer_ShortKey(t *testing.T) {
	opts := testOptions()
	opts.Key = "too-short"
	_, err := NewTokenIssuer(opts)
	assert.ErrorIs(t, err, ErrKeyTooShort)
}

func TestIssueAndParse(t *testing.T) {
	issuer := newTestIssuer(t)

	token, err := issuer.IssueDevToken("u-1", "Jane Doe", "admin")
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(token.AccessToken, ".")))
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), token.ExpiresAtUTC, time.Minute)

	p, err := issuer.Parse(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, Principal{UserID: "u-1", UserName: "Jane Doe", Role: "admin"}, p)
}

func TestIssueDevToken_MissingIdentity(t *testing.T) {
	issuer := newTestIssuer(t)

	_, err := issuer.IssueDevToken("", "Jane", "")
	assert.ErrorIs(t, err, ErrMissingIdentity)

	_, err = issuer.IssueDevToken("u-1", "   ", "")
	assert.ErrorIs(t, err, ErrMissingIdentity)
}

func TestParse_Expired(t *testing.T) {
	issuer := newTestIssuer(t)
	issuer.now = func() time.Time { return time.Now().Add(-9 * time.Hour) }
	token, err := issuer.IssueDevToken("u-1", "Jane", "")
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_WithinClockSkew(t *testing.T) {
	issuer := newTestIssuer(t)
	issuer.now = func() time.Time { return time.Now().Add(-8*time.Hour - 30*time.Second) }
	token, err := issuer.IssueDevToken("u-1", "Jane", "")
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(token.AccessToken)
	assert.NoError(t, err)
}

func TestParse_WrongAudienceOrIssuer(t *testing.T) {
	other := testOptions()
	other.Audience = "someone-else"
	foreign, err := NewTokenIssuer(other)
	require.NoError(t, err)
	token, err := foreign.IssueDevToken("u-1", "Jane", "")
	require.NoError(t, err)

	_, err = newTestIssuer(t).Parse(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other = testOptions()
	other.Issuer = "rogue"
	foreign, err = NewTokenIssuer(other)
	require.NoError(t, err)
	token, err = foreign.IssueDevToken("u-1", "Jane", "")
	require.NoError(t, err)

	_, err = newTestIssuer(t).Parse(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_WrongKey(t *testing.T) {
	other := testOptions()
	other.Key = "ffffffffffffffffffffffffffffffff"
	foreign, err := NewTokenIssuer(other)
	require.NoError(t, err)
	token, err := foreign.IssueDevToken("u-1", "Jane", "")
	require.NoError(t, err)

	_, err = newTestIssuer(t).Parse(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_MissingNameFallsBackToUnknown(t *testing.T) {
	signer, err := jose.NewSigner(jose.SigningKey{Algorithm: jose.HS256, Key: []byte(testKey)}, nil)
	require.NoError(t, err)
	now := time.Now()
	raw, err := jwt.Signed(signer).Claims(jwt.Claims{
		Issuer:   "PlayerBonusApi",
		Audience: jwt.Audience{"PlayerBonusApiClients"},
		Expiry:   jwt.NewNumericDate(now.Add(time.Hour)),
		IssuedAt: jwt.NewNumericDate(now),
	}).Serialize()
	require.NoError(t, err)

	p, err := newTestIssuer(t).Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, Unknown, p.UserID)
	assert.Equal(t, Unknown, p.UserName)
}

func TestParse_Garbage(t *testing.T) {
	_, err := newTestIssuer(t).Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
