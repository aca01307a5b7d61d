package auth

import (
	"crypto/sha256"
	"errors"
	"io"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"
)

const handleTokenType = "session_handle"

var ErrInvalidHandle = errors.New("invalid session handle")

type HandleClaims struct {
	Handle    string `json:"sid"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// HandleSigner issues and verifies the cookie value that points a browser at
// its server-side session record. The cookie carries no expiry; a handle stays
// usable until the session behind it is cleared.
type HandleSigner struct {
	key []byte
}

func NewHandleSigner(secret string) (*HandleSigner, error) {
	if secret == "" {
		return nil, errors.New("cookie secret is empty")
	}

	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte("bankportal session handle v1"))

	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, err
	}

	return &HandleSigner{key: key}, nil
}

// NewHandle mints a fresh random handle and its signed cookie value.
func (s *HandleSigner) NewHandle() (handle string, signed string, err error) {
	handle = uuid.NewString()
	signed, err = s.Sign(handle)
	return
}

func (s *HandleSigner) Sign(handle string) (string, error) {
	claims := HandleClaims{
		Handle:    handle,
		TokenType: handleTokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

func (s *HandleSigner) Verify(raw string) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &HandleClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Enforce HS256
		_, ok := t.Method.(*jwt.SigningMethodHMAC)

		if !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return "", ErrInvalidHandle
	}

	claims, ok := token.Claims.(*HandleClaims)

	if !ok || !token.Valid || claims.TokenType != handleTokenType {
		return "", ErrInvalidHandle
	}

	if _, err := uuid.Parse(claims.Handle); err != nil {
		return "", ErrInvalidHandle
	}

	return claims.Handle, nil
}
