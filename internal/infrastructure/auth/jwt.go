package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionIssuer implements ports.SessionIssuer with RS256. Claims carry
// display names only: no email, no password, no identifiers that change
// meaning over time.
type SessionIssuer struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
	audience   string
	expiry     time.Duration
}

type sessionClaims struct {
	jwt.RegisteredClaims
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func NewSessionIssuer(privateKey *rsa.PrivateKey, issuer, audience string, expiry time.Duration) *SessionIssuer {
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &SessionIssuer{
		privateKey: privateKey,
		publicKey:  &privateKey.PublicKey,
		issuer:     issuer,
		audience:   audience,
		expiry:     expiry,
	}
}

func (s *SessionIssuer) Issue(firstName, lastName string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
		FirstName: firstName,
		LastName:  lastName,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(s.privateKey)
}

func (s *SessionIssuer) Validate(credential string) (firstName, lastName string, err error) {
	token, err := jwt.ParseWithClaims(credential, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.publicKey, nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid session claims")
	}
	return claims.FirstName, claims.LastName, nil
}
