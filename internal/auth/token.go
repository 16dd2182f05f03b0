package auth

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/baharkarakas/blogpost-backend/internal/apperr"
)

// Claims is the identity carried inside the encrypted payload. The role is
// deliberately absent: it is re-read from the store on every request, so a
// forged or stale token can never grant elevated access.
type Claims struct {
	UserID       string `json:"userID"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
}

// envelope is the signed outer token: a single opaque data claim plus the
// registered expiry fields.
type envelope struct {
	Data string `json:"data"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret []byte
	cipher *Cipher
	ttl    time.Duration
}

func NewTokenService(secret string, cipher *Cipher, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), cipher: cipher, ttl: ttl}
}

// Issue serializes the claims, encrypts them and wraps the ciphertext in a
// signed HS256 envelope expiring after the configured TTL.
func (s *TokenService) Issue(c Claims) (string, error) {
	payload, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	data, err := s.cipher.Encrypt(string(payload))
	if err != nil {
		return "", err
	}
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, envelope{
		Data: data,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	return tok.SignedString(s.secret)
}

// VerifyAndRefresh checks signature and expiry, then re-issues the same
// claims under a fresh expiry. Every successful use slides the session
// window; callers must hand the new envelope back to the client.
func (s *TokenService) VerifyAndRefresh(tokenStr string) (string, error) {
	c, err := s.DecodeClaims(tokenStr)
	if err != nil {
		return "", err
	}
	return s.Issue(c)
}

// DecodeClaims verifies the envelope and decrypts the payload without
// refreshing. Expired is expired: there is no grace period.
func (s *TokenService) DecodeClaims(tokenStr string) (Claims, error) {
	env := &envelope{}
	tok, err := jwt.ParseWithClaims(tokenStr, env, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return Claims{}, fmt.Errorf("%w: %v", apperr.ErrInvalidToken, err)
	}
	plain, err := s.cipher.Decrypt(env.Data)
	if err != nil {
		return Claims{}, err
	}
	var c Claims
	if err := json.Unmarshal([]byte(plain), &c); err != nil {
		return Claims{}, fmt.Errorf("%w: malformed payload", apperr.ErrInvalidToken)
	}
	return c, nil
}
