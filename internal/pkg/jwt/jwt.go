package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/glowdesk/salon-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	// GenerateAccessToken signs a token for p. The auth collaborator issues
	// tokens in production; this is used by tooling and tests.
	GenerateAccessToken(p user.Principal) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTTL time.Duration
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTTL time.Duration) Service {
	return &JWTService{
		accessTTL: accessTTL,
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(p user.Principal) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTTL).Unix()

	claims := map[string]interface{}{
		"user_id":    p.UserID,
		"staff_id":   p.StaffID,
		"staff_name": p.StaffName,
		"role":       string(p.Role),
		"type":       "access",
		"exp":        expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// PrincipalFromContext reads the caller from the verified token in ctx.
func PrincipalFromContext(ctx context.Context) (user.Principal, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: %v", user.ErrInvalidToken, err)
	}

	role, _ := claims["role"].(string)
	p := user.Principal{
		Role: user.Role(role),
	}
	p.UserID, _ = claims["user_id"].(string)
	p.StaffID, _ = claims["staff_id"].(string)
	p.StaffName, _ = claims["staff_name"].(string)

	if !p.Role.IsValid() {
		return user.Principal{}, user.ErrInvalidToken
	}
	return p, nil
}
