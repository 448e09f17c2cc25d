package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"college-portal.backend/pkg/crypto"
)

const (
	// DefaultAccessExpiry is used when no access expiry is configured
	DefaultAccessExpiry = 15 * time.Minute
	// DefaultRefreshExpiry is used when no refresh expiry is configured
	DefaultRefreshExpiry = 7 * 24 * time.Hour
)

// ErrMissingSecret is returned when a signing domain has no secret configured
var ErrMissingSecret = errors.New("signing secret is not configured")

// TokenType distinguishes the two signing domains
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims represents JWT claims
type Claims struct {
	UserID uuid.UUID `json:"userId"`
	Type   TokenType `json:"typ"`
	jwt.RegisteredClaims
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// DomainConfig is the secret and lifetime of one token class
type DomainConfig struct {
	Secret string
	Expiry time.Duration
}

type domain struct {
	typ    TokenType
	secret []byte
	expiry time.Duration
}

// JWTService issues and verifies access and refresh tokens. Each class has
// its own secret and lifetime.
type JWTService struct {
	access  domain
	refresh domain
}

var (
	signJWTToken = func(token *jwt.Token, secret []byte) (string, error) {
		return token.SignedString(secret)
	}
	newTokenID = func() (string, error) {
		return crypto.GenerateRandomToken(16)
	}
)

// NewJWTService creates a new JWT service. Zero expiries fall back to the defaults.
func NewJWTService(access, refresh DomainConfig) *JWTService {
	if access.Expiry == 0 {
		access.Expiry = DefaultAccessExpiry
	}
	if refresh.Expiry == 0 {
		refresh.Expiry = DefaultRefreshExpiry
	}
	return &JWTService{
		access:  domain{typ: TokenTypeAccess, secret: []byte(access.Secret), expiry: access.Expiry},
		refresh: domain{typ: TokenTypeRefresh, secret: []byte(refresh.Secret), expiry: refresh.Expiry},
	}
}

// AccessTTL returns the access token lifetime. Logout uses it to bound
// how long a revoked token id is kept.
func (s *JWTService) AccessTTL() time.Duration {
	return s.access.expiry
}

// IssueAccess signs a new access token for the subject
func (s *JWTService) IssueAccess(userID uuid.UUID) (string, error) {
	return s.issue(s.access, userID)
}

// IssueRefresh signs a new refresh token for the subject
func (s *JWTService) IssueRefresh(userID uuid.UUID) (string, error) {
	return s.issue(s.refresh, userID)
}

// IssuePair generates access and refresh tokens
func (s *JWTService) IssuePair(userID uuid.UUID) (*TokenPair, error) {
	accessToken, err := s.IssueAccess(userID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.IssueRefresh(userID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// VerifyAccess returns the claims of a valid access token, or nil
func (s *JWTService) VerifyAccess(tokenString string) *Claims {
	return s.verify(s.access, tokenString)
}

// VerifyRefresh returns the claims of a valid refresh token, or nil
func (s *JWTService) VerifyRefresh(tokenString string) *Claims {
	return s.verify(s.refresh, tokenString)
}

func (s *JWTService) issue(d domain, userID uuid.UUID) (string, error) {
	if len(d.secret) == 0 {
		return "", fmt.Errorf("%w: %s", ErrMissingSecret, d.typ)
	}

	jti, err := newTokenID()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Type:   d.typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(d.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return signJWTToken(token, d.secret)
}

func (s *JWTService) verify(d domain, tokenString string) *Claims {
	if len(d.secret) == 0 || tokenString == "" {
		return nil
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return d.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Type != d.typ || claims.UserID == uuid.Nil {
		return nil
	}
	if claims.Subject != claims.UserID.String() {
		return nil
	}

	return claims
}
