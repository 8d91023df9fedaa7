package identity

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt"
)

// Provider resolves the caller's identity from a request. Sessions are
// minted by the external identity service; this package only validates them.
type Provider interface {
	FromRequest(request *http.Request) (*Claims, error)
}

// Claims are the fields of the identity provider's session token the
// application cares about. Email keys the admins allow-list.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.StandardClaims
}

const DefaultSessionCookie = "session_token"

var (
	ErrNoSession      = errors.New("no session token")
	ErrInvalidSession = errors.New("invalid or expired session token")
)

// SessionProvider verifies the provider-signed session token carried in a
// cookie or an Authorization bearer header. It never issues tokens.
type SessionProvider struct{}

func NewSessionProvider() *SessionProvider {
	return &SessionProvider{}
}

func cookieName() string {
	if name := os.Getenv("SESSION_COOKIE"); name != "" {
		return name
	}
	return DefaultSessionCookie
}

func (p *SessionProvider) FromRequest(request *http.Request) (*Claims, error) {
	token := ""

	if cookie, err := request.Cookie(cookieName()); err == nil && cookie.Value != "" {
		token = cookie.Value
	}

	if token == "" {
		authHeader := request.Header.Get("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return nil, ErrNoSession
			}
			token = parts[1]
		}
	}

	if token == "" {
		return nil, ErrNoSession
	}

	return decodeToken(token)
}

func decodeToken(tokenString string) (*Claims, error) {
	key := os.Getenv("SESSION_SECRET")
	if key == "" {
		return nil, errors.New("no session secret found")
	}
	secretKey := []byte(key)

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secretKey, nil
	})

	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) {
			if ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorSignatureInvalid|jwt.ValidationErrorMalformed) != 0 {
				return nil, ErrInvalidSession
			}
		}
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSession
	}

	if claims.Email == "" {
		return nil, ErrInvalidSession
	}

	return claims, nil
}
