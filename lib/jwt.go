package lib

import (
	"fmt"
	"net/http"
	"strings"
	"time"
	"vivero_server/structs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SignToken signs an access token for the given claims using HS256.
func SignToken(claims *structs.AuthClaims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      claims.Sub,
		"email":    claims.Email,
		"username": claims.Username,
		"role":     claims.Role,
		"is_admin": claims.IsAdmin,
		"iat":      claims.Iat.Unix(),
		"exp":      claims.Exp.Unix(),
		"jti":      claims.Jti.String(),
	})
	return token.SignedString([]byte(secret))
}

// ParseToken parses and validates a JWT token string and returns the claims
func ParseToken(tokenStr string, secret string) (*structs.AuthClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		// Safely extract and validate claims
		subNum, ok := claims["sub"].(float64)
		if !ok {
			return nil, fmt.Errorf("invalid sub claim")
		}

		email, ok := claims["email"].(string)
		if !ok {
			return nil, fmt.Errorf("invalid email claim")
		}

		username, ok := claims["username"].(string)
		if !ok {
			return nil, fmt.Errorf("invalid username claim")
		}

		role, ok := claims["role"].(string)
		if !ok {
			return nil, fmt.Errorf("invalid role claim")
		}

		isAdmin, ok := claims["is_admin"].(bool)
		if !ok {
			return nil, fmt.Errorf("invalid is_admin claim")
		}

		iat, ok := claims["iat"].(float64)
		if !ok {
			return nil, fmt.Errorf("invalid iat claim")
		}

		exp, ok := claims["exp"].(float64)
		if !ok {
			return nil, fmt.Errorf("invalid exp claim")
		}

		jtiStr, ok := claims["jti"].(string)
		if !ok {
			return nil, fmt.Errorf("invalid jti claim")
		}

		jti, err := uuid.Parse(jtiStr)
		if err != nil {
			return nil, fmt.Errorf("invalid UUID in jti claim: %w", err)
		}

		return &structs.AuthClaims{
			Sub:      int64(subNum),
			Email:    email,
			Username: username,
			Role:     role,
			IsAdmin:  isAdmin,
			Iat:      time.Unix(int64(iat), 0),
			Exp:      time.Unix(int64(exp), 0),
			Jti:      jti,
		}, nil
	}
	return nil, ErrInvalidToken
}

// ExtractBearerToken pulls the raw token out of the Authorization header.
func ExtractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrUnauthenticated
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrInvalidToken
	}
	return parts[1], nil
}

// ExtractClaims authenticates a request from its Authorization header.
func ExtractClaims(r *http.Request, secret string) (*structs.AuthClaims, error) {
	tokenStr, err := ExtractBearerToken(r)
	if err != nil {
		return nil, err
	}

	claims, err := ParseToken(tokenStr, secret)
	if err != nil {
		return nil, err
	}

	if time.Now().After(claims.Exp) {
		return nil, ErrExpiredToken
	}

	return claims, nil
}
