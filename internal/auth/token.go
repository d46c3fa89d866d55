package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/arloliu/galacticbuf/errs"
)

// Validator resolves a bearer token to a username.
type Validator interface {
	Validate(token string) (string, error)
}

// FuncValidator adapts a function into a Validator.
type FuncValidator func(token string) (string, error)

func (f FuncValidator) Validate(token string) (string, error) {
	return f(token)
}

// TokenIssuer signs tokens of the form
//
//	<base64url(username)>.<unix seconds>.<base64url(HMAC-SHA256)>
//
// The signature covers the first two segments.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ Validator = (*TokenIssuer)(nil)

// NewTokenIssuer creates an issuer. An empty secret is replaced by 32 random
// bytes, which invalidates all tokens on restart. A ttl of 0 disables expiry.
func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate token secret: %w", err)
		}
	}

	return &TokenIssuer{secret: key, ttl: ttl, now: time.Now}, nil
}

// Issue returns a signed token for username.
func (ti *TokenIssuer) Issue(username string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(username)) + "." +
		strconv.FormatInt(ti.now().Unix(), 10)

	return payload + "." + ti.sign(payload)
}

// Validate checks shape, signature and expiry and returns the username.
// Every failure is errs.ErrInvalidToken.
func (ti *TokenIssuer) Validate(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: malformed", errs.ErrInvalidToken)
	}

	payload := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(parts[2]), []byte(ti.sign(payload))) {
		return "", fmt.Errorf("%w: bad signature", errs.ErrInvalidToken)
	}

	issued, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: bad timestamp", errs.ErrInvalidToken)
	}
	if ti.ttl > 0 && ti.now().Sub(time.Unix(issued, 0)) > ti.ttl {
		return "", fmt.Errorf("%w: expired", errs.ErrInvalidToken)
	}

	username, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil || len(username) == 0 {
		return "", fmt.Errorf("%w: bad username", errs.ErrInvalidToken)
	}

	return string(username), nil
}

func (ti *TokenIssuer) sign(payload string) string {
	mac := hmac.New(sha256.New, ti.secret)
	mac.Write([]byte(payload))

	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
