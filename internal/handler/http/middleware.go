package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/auth"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/domain"
	"github.com/KilapathiMohanaRao/ReactProjectCart/pkg/logger"
	"github.com/KilapathiMohanaRao/ReactProjectCart/pkg/middleware"
)

// sessionHeader carries the anonymous session handle used as the cart owner
// for shoppers who have not logged in yet.
const sessionHeader = "X-Session-ID"

// guestOwnerPrefix namespaces session-keyed carts away from user-keyed ones.
const guestOwnerPrefix = "guest:"

// contextKey is an unexported type for context keys to avoid collisions.
type contextKey string

const (
	identityKey  contextKey = "identity"
	cartOwnerKey contextKey = "cart_owner"
)

// IdentityFromContext returns the verified identity, or nil for anonymous
// requests.
func IdentityFromContext(ctx context.Context) *domain.Identity {
	id, _ := ctx.Value(identityKey).(*domain.Identity)
	return id
}

// CartOwnerFromContext returns the cart owner key: the user ID when the
// request is authenticated, otherwise the namespaced session handle. Empty
// when the request carries neither.
func CartOwnerFromContext(ctx context.Context) string {
	owner, _ := ctx.Value(cartOwnerKey).(string)
	return owner
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func withIdentity(r *http.Request, identity *domain.Identity) *http.Request {
	ctx := context.WithValue(r.Context(), identityKey, identity)
	ctx = context.WithValue(ctx, cartOwnerKey, identity.UserID)
	ctx = middleware.ContextWithUserID(ctx, identity.UserID)
	ctx = logger.WithUserID(ctx, identity.UserID)
	return r.WithContext(ctx)
}

// Authenticate requires a valid Bearer token and stores the identity on the
// request context.
func Authenticate(tokens *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeJSON(w, http.StatusUnauthorized, response{
					Error: &errorResponse{Code: "UNAUTHORIZED", Message: "missing or malformed Authorization header"},
				})
				return
			}

			identity, err := tokens.Verify(token)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, response{
					Error: &errorResponse{Code: "UNAUTHORIZED", Message: "invalid or expired token"},
				})
				return
			}

			next.ServeHTTP(w, withIdentity(r, identity))
		})
	}
}

// Identify resolves the requester without demanding a login. A valid Bearer
// token yields the full identity; otherwise the X-Session-ID header names a
// guest cart. An invalid token is still rejected rather than silently
// downgraded to a guest.
func Identify(tokens *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" {
				identity, err := tokens.Verify(token)
				if err != nil {
					writeJSON(w, http.StatusUnauthorized, response{
						Error: &errorResponse{Code: "UNAUTHORIZED", Message: "invalid or expired token"},
					})
					return
				}
				next.ServeHTTP(w, withIdentity(r, identity))
				return
			}

			if session := r.Header.Get(sessionHeader); session != "" {
				ctx := context.WithValue(r.Context(), cartOwnerKey, guestOwnerPrefix+session)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if !strings.HasPrefix(ct, "application/json") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnsupportedMediaType)
				_, _ = w.Write([]byte(`{"error":{"code":"UNSUPPORTED_MEDIA_TYPE","message":"Content-Type must be application/json"}}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// CORSConfig holds configuration for the CORS middleware.
type CORSConfig struct {
	AllowedOrigins []string
	Environment    string
}

// CORS returns a middleware that sets Cross-Origin Resource Sharing headers.
// Development mode (or a "*" entry) allows any origin; otherwise the request
// Origin is validated against the configured list.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	allowWildcard := cfg.Environment == "development"
	originSet := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			allowWildcard = true
		}
		originSet[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if allowWildcard {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else if origin != "" {
				if _, ok := originSet[origin]; ok {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Vary", "Origin")
				}
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Correlation-ID, X-Session-ID")
			w.Header().Set("Access-Control-Max-Age", "3600")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
