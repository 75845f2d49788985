package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type JwtConfig struct {
	Secret        string   `json:"secret"`
	TokenLifetime Duration `json:"token_lifetime"`
}

// SessionClaims grant control over a single game session.
type SessionClaims struct {
	GameSessionId int64 `json:"game_session_id"`
	jwt.RegisteredClaims
}

type JWT struct {
	key           []byte
	signingMethod jwt.SigningMethod
	tokenLifetime time.Duration
}

// NewJWT builds an HS256 signer. Without a configured secret a random one
// is used, so tokens do not survive a restart.
func NewJWT(c JwtConfig) (*JWT, error) {
	key := []byte(c.Secret)
	if len(key) == 0 {
		var err error
		if key, err = randomKey(32); err != nil {
			return nil, fmt.Errorf("unable to generate jwt key: %w", err)
		}
	}
	j := &JWT{
		key:           key,
		signingMethod: jwt.SigningMethodHS256,
		tokenLifetime: c.TokenLifetime.Duration,
	}
	return j, nil
}

func (j *JWT) NewSessionClaims(gameSessionId int64, now time.Time) *SessionClaims {
	claims := &SessionClaims{GameSessionId: gameSessionId}
	claims.IssuedAt = jwt.NewNumericDate(now)
	if j.tokenLifetime > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(j.tokenLifetime))
	}
	return claims
}

func (j *JWT) Sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(j.signingMethod, claims).SignedString(j.key)
}

func (j *JWT) ParseSessionClaims(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&SessionClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return j.key, nil
		},
		jwt.WithValidMethods([]string{j.signingMethod.Alg()}),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, errors.New("malformed claims")
	}
	return claims, nil
}

func randomKey(n int) ([]byte, error) {
	key := make([]byte, n)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}
