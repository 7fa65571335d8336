// Package token issues and verifies the signed bearer tokens the server
// hands out on registration and login.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vpopov/authgate/internal/common"
)

// Claims carries the token payload: the standard registered claims plus the
// username of the subject. The subject claim holds the user id.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Issuer creates and verifies HS256-signed JWTs. The secret and TTL are
// loaded once at startup and read-only afterwards, so a single Issuer is
// safe for concurrent use.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{secret: secret, ttl: ttl}
}

// Issue signs a token binding userID and username to an expiry of now+TTL.
func (i *Issuer) Issue(userID, username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Username: username,
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks signature and expiry and returns the claims. Every failure
// mode (malformed token, bad signature, wrong algorithm, expired) yields
// the same common.ErrInvalidToken so callers cannot tell them apart.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
