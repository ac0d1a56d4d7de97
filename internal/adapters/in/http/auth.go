package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storefront/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// RoleAdmin may list every order and read any order.
const RoleAdmin = "Admin"

const principalKey = "principal"

// Principal is the authenticated caller. It is resolved once per request and
// passed explicitly to every command that needs it.
type Principal struct {
	AccountID kernel.UUID
	Role      string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Authenticate accepts HS256 bearer tokens whose "sub" claim is an account UUID.
func Authenticate(secret []byte) echo.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	keyFunc := func(*jwt.Token) (any, error) {
		return secret, nil
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			raw, ok := bearerToken(ctx.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return unauthorized(ctx, "Bearer token missing")
			}

			claims := jwt.MapClaims{}
			if _, err := parser.ParseWithClaims(raw, claims, keyFunc); err != nil {
				return unauthorized(ctx, "Invalid token")
			}

			principal, err := principalFromClaims(claims)
			if err != nil {
				return unauthorized(ctx, err.Error())
			}

			ctx.Set(principalKey, principal)
			return next(ctx)
		}
	}
}

// PrincipalFrom returns the caller stored by Authenticate.
func PrincipalFrom(ctx echo.Context) (Principal, bool) {
	p, ok := ctx.Get(principalKey).(Principal)
	return p, ok
}

func principalFromClaims(claims jwt.MapClaims) (Principal, error) {
	subject, _ := claims["sub"].(string)
	if subject == "" {
		return Principal{}, errors.New("token has no subject")
	}
	accountID, err := kernel.UUIDFromString(subject)
	if err != nil {
		return Principal{}, fmt.Errorf("token subject: %w", err)
	}
	role, _ := claims["role"].(string)
	return Principal{AccountID: accountID, Role: role}, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: message})
}
