package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const TokenTypeAccess = "access"

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims are issued by the external identity provider. Only access tokens
// are accepted by this service.
type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	TokenType string    `json:"token_type"`

	jwtlib.RegisteredClaims
}

type Service interface {
	GenerateAccessToken(userID uuid.UUID, email string) (string, error)
	ValidateToken(tokenString string) (Claims, error)
}

type HMACService struct {
	secret    []byte
	expiresIn time.Duration
	issuer    string

	now func() time.Time
}

func NewHMACService(secret string, expiresIn time.Duration, issuer string) *HMACService {
	return &HMACService{
		secret:    []byte(secret),
		expiresIn: expiresIn,
		issuer:    issuer,
		now:       time.Now,
	}
}

func (s *HMACService) GenerateAccessToken(userID uuid.UUID, email string) (string, error) {
	if len(s.secret) == 0 || s.expiresIn <= 0 || userID == uuid.Nil {
		return "", ErrTokenInvalid
	}

	now := s.now().UTC()
	c := Claims{
		UserID:    userID,
		Email:     email,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.expiresIn)),
			Subject:   userID.String(),
			Issuer:    s.issuer,
		},
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return t.SignedString(s.secret)
}

func (s *HMACService) ValidateToken(tokenString string) (Claims, error) {
	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.now),
		jwtlib.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(s.issuer))
	}
	p := jwtlib.NewParser(opts...)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(token *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}

	if c.UserID == uuid.Nil {
		if id, err := uuid.Parse(c.Subject); err == nil {
			c.UserID = id
		}
	}
	if c.UserID == uuid.Nil {
		return Claims{}, ErrTokenInvalid
	}
	if c.TokenType != "" && c.TokenType != TokenTypeAccess {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}
