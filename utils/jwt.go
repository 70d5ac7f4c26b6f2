package utils

import (
	"errors"

	"caresched/config"

	"github.com/golang-jwt/jwt"
)

// TokenClaims are the claims caresched cares about: the org a tenant token is
// scoped to, and the role that distinguishes service credentials.
type TokenClaims struct {
	Subject        string
	OrganizationID string
	Role           string
}

const RoleService = "service"

// parseHMAC validates a token string against the given secret.
func parseHMAC(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ValidateTenantToken validates an ordinary tenant credential and extracts its
// organization scope.
func ValidateTenantToken(tokenString string) (*TokenClaims, error) {
	claims, err := parseHMAC(tokenString, config.AppConfig.TenantJWTSecret)
	if err != nil {
		return nil, err
	}
	org, _ := claims["org"].(string)
	if org == "" {
		return nil, errors.New("token does not contain a valid 'org' claim")
	}
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	return &TokenClaims{Subject: sub, OrganizationID: org, Role: role}, nil
}

// ValidateServiceToken validates a service-level credential. Only these may
// confirm holds.
func ValidateServiceToken(tokenString string) (*TokenClaims, error) {
	claims, err := parseHMAC(tokenString, config.AppConfig.ServiceJWTSecret)
	if err != nil {
		return nil, err
	}
	role, _ := claims["role"].(string)
	if role != RoleService {
		return nil, errors.New("token is not a service credential")
	}
	sub, _ := claims["sub"].(string)
	return &TokenClaims{Subject: sub, Role: role}, nil
}
