package route

import (
	"context"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/ecomama/marketplace/internal/core/domain"
)

// Context is assembled fresh for every request and owned by that request.
// Session is nil on public routes.
type Context struct {
	Params  map[string]string
	Query   url.Values
	Session *domain.Session
	Body    any
}

// Param returns the path parameter name, or "" when the route has none.
func (rc *Context) Param(name string) string {
	return rc.Params[name]
}

// UserID returns the caller's id, or "" for anonymous requests.
func (rc *Context) UserID() string {
	if rc.Session == nil {
		return ""
	}
	return rc.Session.User.ID
}

// SessionResolver resolves the caller of a request. A nil session with a nil
// error means the request is anonymous.
type SessionResolver interface {
	Resolve(c echo.Context) (*domain.Session, error)
}

// Authorizer decides whether the assembled context may reach the handler.
// Implementations must not modify rc.
type Authorizer interface {
	Authorize(ctx context.Context, rc *Context) (bool, error)
}

// Normalizer is implemented by request schemas that trim or default their
// fields before validation.
type Normalizer interface {
	Normalize()
}
