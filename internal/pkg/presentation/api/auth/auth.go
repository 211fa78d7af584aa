package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/jwtauth/v5"
	"github.com/open-policy-agent/opa/rego"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("thopasichai/authz")

type Scope string

const (
	// ControlScope is required to switch motors and the system mode.
	ControlScope Scope = "irrigation.control"
	// AdminScope is required to manage sensors, motors and thresholds.
	AdminScope Scope = "irrigation.admin"
)

type scopesContextKey struct{ name string }

var scopesCtxKey = &scopesContextKey{"scopes"}

type Enticator interface {
	RequireAccess(scopes ...Scope) func(http.Handler) http.Handler
}

type impl struct {
	query rego.PreparedEvalQuery
}

func (a *impl) RequireAccess(scopes ...Scope) func(http.Handler) http.Handler {
	required := make([]string, 0, len(scopes))
	for _, s := range scopes {
		required = append(required, string(s))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var err error

			logger := logging.GetFromContext(r.Context())

			ctx, span := tracer.Start(r.Context(), "check-auth")
			defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

			token := jwtauth.TokenFromHeader(r)
			if token == "" {
				err = errors.New("authorization header missing")
				logger.Info().Msg(err.Error())
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			input := map[string]any{
				"method": r.Method,
				"path":   r.URL.Path,
				"token":  token,
				"scopes": required,
			}

			results, err := a.query.Eval(ctx, rego.EvalInput(input))
			if err != nil {
				logger.Error().Err(err).Msg("opa eval failed")
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			if len(results) == 0 {
				err = errors.New("opa query could not be satisfied")
				logger.Error().Err(err).Msg("auth failed")
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			allowed, ok := results[0].Bindings["x"].(bool)
			if !ok {
				err = errors.New("unexpected result type")
				logger.Error().Err(err).Msg("opa error")
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			if !allowed {
				err = errors.New("authorization failed")
				logger.Warn().Strs("scopes", required).Msg(err.Error())
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithScopes(r.Context(), scopes...)))
		})
	}
}

func NewAuthenticator(ctx context.Context, policies io.Reader) (Enticator, error) {
	module, err := io.ReadAll(policies)
	if err != nil {
		return nil, fmt.Errorf("unable to read authz policies: %s", err.Error())
	}

	query, err := rego.New(
		rego.Query("x = data.thopasichai.authz.allow"),
		rego.Module("thopasichai.rego", string(module)),
	).PrepareForEval(ctx)

	if err != nil {
		return nil, err
	}

	return &impl{query: query}, nil
}

type passthrough struct{}

func (passthrough) RequireAccess(scopes ...Scope) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return next
	}
}

// NewPassthrough returns an Enticator that lets every request through. Used when no policies are configured.
func NewPassthrough() Enticator {
	return passthrough{}
}

// GetScopes returns the scopes that were granted to the current request.
func GetScopes(ctx context.Context) []Scope {
	scopes, ok := ctx.Value(scopesCtxKey).([]Scope)
	if !ok {
		return []Scope{}
	}
	return scopes
}

func WithScopes(ctx context.Context, scopes ...Scope) context.Context {
	return context.WithValue(ctx, scopesCtxKey, scopes)
}
