package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/splitroom/internal/auth"
)

type contextKey string

const sessionKey contextKey = "session"

// Session identifies the member making a request.
type Session struct {
	GroupID  string
	MemberID string
	Name     string
}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// GetSession extracts the session from the context.
// The second result is false for anonymous requests.
func GetSession(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey).(Session)
	return s, ok
}

// GetMemberID extracts the member ID from the context.
// Returns empty string if not found.
func GetMemberID(ctx context.Context) string {
	s, _ := GetSession(ctx)
	return s.MemberID
}

// RoomSession returns an interceptor that validates a Bearer token if present
// and stores the session in the request context. Requests without a valid
// token pass through anonymously; handlers decide whether a session is needed.
func RoomSession(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if token, ok := bearerToken(req.Header().Get("Authorization")); ok {
				if claims, err := jwtManager.Validate(token); err == nil {
					ctx = WithSession(ctx, Session{
						GroupID:  claims.GroupID,
						MemberID: claims.MemberID,
						Name:     claims.Name,
					})
				}
			}
			return next(ctx, req)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}
