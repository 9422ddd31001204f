package auth

import (
	"strings"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "fleetdesk/internal/errors"
	"fleetdesk/internal/logger"
)

const principalContextKey = "principal"

// Middleware returns the authentication extractor. It runs before any
// handler logic on every protected route: the bearer header is verified and
// a Principal is placed in the request context, or the request is rejected
// with a single generic unauthenticated response. The reason a token was
// rejected (malformed, bad signature, expired) is logged, never returned.
func Middleware(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: principalContextKey,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			claims, err := jwtService.Verify(tokenString)
			if err != nil {
				logger.L.Debug("token rejected", zap.Error(err))
				return nil, err
			}
			subject, err := uuid.Parse(claims.Subject)
			if err != nil {
				return nil, ErrTokenMalformed
			}
			if !claims.Role.Valid() {
				return nil, ErrTokenMalformed
			}
			return Principal{UserID: subject, Role: claims.Role}, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			msg := "invalid or expired token"
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				msg = "missing header"
			} else if !strings.HasPrefix(header, "Bearer ") {
				msg = "malformed header"
			}
			httpErr := apperrors.MapErrorToHTTP(apperrors.Unauthenticated(msg))
			return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})
}

// PrincipalFromContext returns the principal stored by Middleware. Handlers
// behind the middleware always find one; the error covers misconfigured
// routes that bypassed it.
func PrincipalFromContext(c echo.Context) (Principal, error) {
	p, ok := c.Get(principalContextKey).(Principal)
	if !ok {
		return Principal{}, apperrors.Unauthenticated("missing header")
	}
	return p, nil
}
