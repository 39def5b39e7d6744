package service

import (
	"time"

	"github.com/ikkim/kiwimarket-backend/pkg/util"
)

// TokenIssuer signs session tokens for a user id.
type TokenIssuer interface {
	Issue(userID uint) (string, error)
}

type jwtTokenIssuer struct {
	secret string
	expiry time.Duration
}

func NewTokenIssuer(secret string, expiry time.Duration) TokenIssuer {
	return &jwtTokenIssuer{secret: secret, expiry: expiry}
}

func (i *jwtTokenIssuer) Issue(userID uint) (string, error) {
	return util.GenerateSessionToken(userID, i.secret, i.expiry)
}
