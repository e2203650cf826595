package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Tipos de token bearer.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrTokenExpired = errors.New("jwt: token expirado")
	ErrTokenInvalid = errors.New("jwt: token inválido")
)

// Claims incluye los claims estándar JWT más los datos del usuario.
// Role permite al middleware RBAC decidir sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"` // "admin" | "staff" | "customer"
	TokenType string `json:"token_type"`
}

// Subject datos del usuario que viajan en el token.
type Subject struct {
	UserID   int64
	Username string
	Email    string
	Role     string
}

// Generate firma un token HS256 del tipo indicado (access o refresh).
func Generate(secret, issuer, tokenType string, sub Subject, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   strconv.FormatInt(sub.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    sub.UserID,
		Username:  sub.Username,
		Email:     sub.Email,
		Role:      sub.Role,
		TokenType: tokenType,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve los claims.
// Devuelve ErrTokenExpired o ErrTokenInvalid.
func Parse(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}
	if err := parseInto(secret, tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ActionClaims token firmado de un solo propósito (activación de cuenta, reset de contraseña).
type ActionClaims struct {
	jwt.RegisteredClaims
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
}

// SignAction firma un token de acción. La clave se deriva de secret y salt, de modo que un token
// emitido para un propósito no verifica con la sal de otro.
func SignAction(secret, salt, tokenType string, userID int64, username string, maxAge time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := ActionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(maxAge)),
		},
		UserID:    userID,
		Username:  username,
		Type:      tokenType,
		Timestamp: now.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(actionKey(secret, salt)))
}

// ParseAction verifica firma (con la sal) y expiración. No valida el tipo; eso lo decide el llamador.
func ParseAction(secret, salt, tokenString string) (*ActionClaims, error) {
	claims := &ActionClaims{}
	if err := parseInto(actionKey(secret, salt), tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func actionKey(secret, salt string) string {
	return secret + ":" + salt
}

func parseInto(secret, tokenString string, claims jwt.Claims) error {
	if secret == "" {
		return fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return ErrTokenInvalid
	}
	return nil
}
