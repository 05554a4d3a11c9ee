// Package route turns business functions into echo handlers. Every handler
// built here runs the same pipeline: authenticate, collect path and query
// parameters, parse and validate the body, authorize, execute, and render a
// success or error envelope.
package route

import (
	"context"
	"mime"
	"net/http"
	"net/url"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ecomama/marketplace/internal/api/metrics"
	"github.com/ecomama/marketplace/internal/core/domain"
)

// HandlerFunc is a business function for routes without a body.
type HandlerFunc[T any] func(ctx context.Context, rc *Context) (T, error)

// BodyHandlerFunc is a business function receiving the validated body. body
// is nil only when the route accepts an optional body and none was sent.
type BodyHandlerFunc[B, T any] func(ctx context.Context, rc *Context, body *B) (T, error)

// GetOptions configures a GET route. Public routes skip session resolution.
type GetOptions struct {
	Public    bool
	Authorize Authorizer
}

// BodyOptions configures a POST or PUT route. The body type parameter is the
// schema; OptionalBody lets requests without a JSON body through unvalidated.
type BodyOptions struct {
	Authorize    Authorizer
	OptionalBody bool
}

// DeleteOptions configures a DELETE route.
type DeleteOptions struct {
	Authorize Authorizer
}

// NoBody is the body type of mutating routes that take no payload.
type NoBody struct{}

// Factory holds the collaborators shared by every route.
type Factory struct {
	sessions SessionResolver
	validate *validator.Validate
	log      zerolog.Logger
}

func NewFactory(sessions SessionResolver, log zerolog.Logger) *Factory {
	return &Factory{sessions: sessions, validate: newValidator(), log: log}
}

type pipeline struct {
	requireAuth  bool
	authorize    Authorizer
	parseBody    func(c echo.Context, rc *Context) error
	optionalBody bool
}

// GET builds a read route. Authentication is required unless opts.Public.
func GET[T any](f *Factory, h HandlerFunc[T], opts GetOptions) echo.HandlerFunc {
	p := pipeline{requireAuth: !opts.Public, authorize: opts.Authorize}
	return f.handle(p, func(ctx context.Context, rc *Context) (any, error) {
		return h(ctx, rc)
	})
}

// POST builds a creating route answered with 201.
func POST[B, T any](f *Factory, h BodyHandlerFunc[B, T], opts BodyOptions) echo.HandlerFunc {
	return bodyRoute(f, h, opts)
}

// PUT builds an updating route.
func PUT[B, T any](f *Factory, h BodyHandlerFunc[B, T], opts BodyOptions) echo.HandlerFunc {
	return bodyRoute(f, h, opts)
}

// DELETE builds a deleting route. Only an authorization check is configurable.
func DELETE[T any](f *Factory, h HandlerFunc[T], opts DeleteOptions) echo.HandlerFunc {
	p := pipeline{requireAuth: true, authorize: opts.Authorize}
	return f.handle(p, func(ctx context.Context, rc *Context) (any, error) {
		return h(ctx, rc)
	})
}

func bodyRoute[B, T any](f *Factory, h BodyHandlerFunc[B, T], opts BodyOptions) echo.HandlerFunc {
	schema := hasSchema[B]()
	p := pipeline{requireAuth: true, authorize: opts.Authorize}
	p.parseBody = func(c echo.Context, rc *Context) error {
		body, present := decodeJSON[B](c)
		if !present {
			if schema && !opts.OptionalBody {
				return domain.Validation("request body is required")
			}
			return nil
		}
		if n, ok := any(body).(Normalizer); ok {
			n.Normalize()
		}
		if schema {
			if err := validateBody(f.validate, body); err != nil {
				return err
			}
		}
		rc.Body = body
		return nil
	}
	return f.handle(p, func(ctx context.Context, rc *Context) (any, error) {
		body, _ := rc.Body.(*B)
		return h(ctx, rc, body)
	})
}

func (f *Factory) handle(p pipeline, run func(ctx context.Context, rc *Context) (any, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		rc := &Context{}

		result, err := f.execute(ctx, c, rc, p, run)
		if err != nil {
			return f.fail(c, err)
		}
		return writeSuccess(c, c.Request().Method, result)
	}
}

func (f *Factory) execute(ctx context.Context, c echo.Context, rc *Context, p pipeline, run func(context.Context, *Context) (any, error)) (any, error) {
	if p.requireAuth {
		session, err := f.sessions.Resolve(c)
		if err != nil {
			if domain.KindOf(err) == domain.KindUnauthorized {
				return nil, err
			}
			f.log.Warn().Err(err).Msg("session resolution failed")
			return nil, domain.Unauthorized("Unauthorized")
		}
		if session == nil {
			return nil, domain.Unauthorized("Unauthorized")
		}
		rc.Session = session
	}

	rc.Params = pathParams(c)
	rc.Query = cloneQuery(c.QueryParams())

	if p.parseBody != nil && isMutating(c.Request().Method) {
		if err := p.parseBody(c, rc); err != nil {
			return nil, err
		}
	}

	if p.authorize != nil {
		ok, err := p.authorize.Authorize(ctx, rc)
		if err != nil {
			return nil, err
		}
		if !ok {
			metrics.AuthorizationDecisionsTotal.WithLabelValues("denied").Inc()
			return nil, domain.Forbidden("Forbidden")
		}
		metrics.AuthorizationDecisionsTotal.WithLabelValues("allowed").Inc()
	}

	return run(ctx, rc)
}

func (f *Factory) fail(c echo.Context, err error) error {
	status, body := Envelope(err)
	metrics.RequestFailuresTotal.WithLabelValues(body.Code).Inc()

	req := c.Request()
	if status == http.StatusInternalServerError {
		f.log.Error().
			Err(err).
			Str("method", req.Method).
			Str("path", c.Path()).
			Msg("unhandled route error")
	} else {
		f.log.Debug().
			Str("method", req.Method).
			Str("path", c.Path()).
			Int("status", status).
			Str("error", body.Error).
			Msg("request rejected")
	}
	return c.JSON(status, body)
}

func pathParams(c echo.Context) map[string]string {
	names := c.ParamNames()
	values := c.ParamValues()
	params := make(map[string]string, len(names))
	for i, name := range names {
		if i < len(values) {
			params[name] = values[i]
		}
	}
	return params
}

func cloneQuery(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// decodeJSON reads a JSON body. Missing, non-JSON and malformed bodies are
// all reported as absent.
func decodeJSON[B any](c echo.Context) (*B, bool) {
	mediaType, _, err := mime.ParseMediaType(c.Request().Header.Get(echo.HeaderContentType))
	if err != nil || mediaType != echo.MIMEApplicationJSON {
		return nil, false
	}
	if c.Request().Body == nil || c.Request().ContentLength == 0 {
		return nil, false
	}
	body := new(B)
	if err := c.Echo().JSONSerializer.Deserialize(c, body); err != nil {
		return nil, false
	}
	return body, true
}

func hasSchema[B any]() bool {
	t := reflect.TypeOf((*B)(nil)).Elem()
	return t.Kind() == reflect.Struct && t != reflect.TypeOf(NoBody{})
}
