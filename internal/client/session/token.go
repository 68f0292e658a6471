package session

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/lynq-cli/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what can be read from a JWT without verifying it. It is for
// display only and never gates anything.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// DescribeToken decodes the registered claims of token without checking its
// signature. Opaque tokens yield common.ErrInvalidToken.
func DescribeToken(token string) (TokenInfo, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	var info TokenInfo
	info.Subject = claims.Subject
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
