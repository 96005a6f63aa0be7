package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"
	domain "github.com/pipelinecrm/crm-server/internal/domain/account"
)

const (
	SessionCookieName = "crm_session"
	sessionContextKey = "session"
)

type SessionParser interface {
	Parse(token string) (domain.Session, error)
}

// RequireSession rejects requests without a valid session cookie and stores
// the decoded session on the context.
func RequireSession(parser SessionParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return respondError(c, http.StatusUnauthorized, "unauthorized", "login required")
			}

			session, err := parser.Parse(cookie.Value)
			if err != nil {
				return respondError(c, http.StatusUnauthorized, "unauthorized", "session expired or invalid")
			}

			c.Set(sessionContextKey, session)
			return next(c)
		}
	}
}

func sessionFrom(c echo.Context) domain.Session {
	session, _ := c.Get(sessionContextKey).(domain.Session)
	return session
}
