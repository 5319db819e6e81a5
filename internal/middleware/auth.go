package middleware

import (
	"strings"
	"time"

	"github.com/deppfellow/recipebook/internal/errs"
	"github.com/deppfellow/recipebook/internal/lib/auth"
	"github.com/deppfellow/recipebook/internal/server"
	"github.com/labstack/echo/v4"
)

const bearerScheme = "Bearer"

// AuthMiddleware validates bearer tokens issued by the token manager.
type AuthMiddleware struct {
	server *server.Server
	tokens *auth.TokenManager
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		tokens: s.Tokens,
	}
}

// RequireAuth rejects the request with 401 unless it carries a valid
// "Authorization: Bearer <token>" header. On success the caller's id is
// stored under UserIDKey.
func (a *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return errs.NewUnauthorizedError("Unauthorized user", true)
		}

		userID, err := a.tokens.Verify(token)
		if err != nil {
			GetLogger(c).Warn().
				Err(err).
				Str("function", "RequireAuth").
				Dur("duration", time.Since(start)).
				Msg("rejected bearer token")
			return errs.NewUnauthorizedError("Unauthorized user", true)
		}

		c.Set(UserIDKey, userID)

		userLogger := GetLogger(c).With().Int64("user_id", userID).Logger()
		c.Set(LoggerKey, &userLogger)
		c.SetRequest(c.Request().WithContext(userLogger.WithContext(c.Request().Context())))

		return next(c)
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
