package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
)

const minKeyLength = 32

var (
	ErrMissingIdentity = errors.New("userId and userName are required")
	ErrKeyTooShort     = fmt.Errorf("jwt key must be at least %d bytes", minKeyLength)
	ErrInvalidToken    = errors.New("invalid token")
)

type Options struct {
	Key       string
	Issuer    string
	Audience  string
	TTL       time.Duration
	ClockSkew time.Duration
}

// DevToken is the result of IssueDevToken.
type DevToken struct {
	AccessToken  string    `json:"accessToken"`
	ExpiresAtUTC time.Time `json:"expiresAtUtc"`
}

type profileClaims struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
}

// TokenIssuer signs and validates HS256 tokens for one issuer/audience pair.
type TokenIssuer struct {
	opts   Options
	signer jose.Signer
	now    func() time.Time
}

func NewTokenIssuer(opts Options) (*TokenIssuer, error) {
	if len(opts.Key) < minKeyLength {
		return nil, ErrKeyTooShort
	}
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: []byte(opts.Key)},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create signer: %w", err)
	}
	return &TokenIssuer{opts: opts, signer: signer, now: time.Now}, nil
}

// IssueDevToken signs a token for an arbitrary identity. It exists so the API
// can be exercised without an identity provider and must not be exposed in
// production deployments.
func (i *TokenIssuer) IssueDevToken(userID, userName, role string) (*DevToken, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(userName) == "" {
		return nil, ErrMissingIdentity
	}

	now := i.now().UTC()
	expires := now.Add(i.opts.TTL)
	std := jwt.Claims{
		Issuer:   i.opts.Issuer,
		Subject:  userID,
		Audience: jwt.Audience{i.opts.Audience},
		IssuedAt: jwt.NewNumericDate(now),
		Expiry:   jwt.NewNumericDate(expires),
	}
	profile := profileClaims{Name: userName, Role: strings.TrimSpace(role)}

	token, err := jwt.Signed(i.signer).Claims(std).Claims(profile).Serialize()
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &DevToken{AccessToken: token, ExpiresAtUTC: expires}, nil
}

// Parse validates signature, issuer, audience and lifetime and returns the
// principal the token was issued for.
func (i *TokenIssuer) Parse(token string) (Principal, error) {
	parsed, err := jwt.ParseSigned(token, []jose.SignatureAlgorithm{jose.HS256})
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var std jwt.Claims
	var profile profileClaims
	if err := parsed.Claims([]byte(i.opts.Key), &std, &profile); err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	expected := jwt.Expected{
		Issuer:      i.opts.Issuer,
		AnyAudience: jwt.Audience{i.opts.Audience},
		Time:        i.now(),
	}
	if err := std.ValidateWithLeeway(expected, i.opts.ClockSkew); err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return Principal{UserID: std.Subject, UserName: profile.Name, Role: profile.Role}.Normalize(), nil
}
