package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"ptcmobile/services"
)

type contextKey string

const WorkspaceIDKey contextKey = "workspaceID"

// GetWorkspaceID extracts the session's workspace id from the request context.
func GetWorkspaceID(r *http.Request) string {
	if val, ok := r.Context().Value(WorkspaceIDKey).(string); ok {
		return val
	}
	return ""
}

// WorkspaceMiddleware resolves the session cookie to a live workspace,
// creating a fresh one (and a new cookie) when the cookie is missing or its
// workspace has been swept. The id is stored in the request context.
func WorkspaceMiddleware(store *services.WorkspaceStore, cookieName string, now func() time.Time) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var id string

		cookie, err := e.Request.Cookie(cookieName)
		if err == nil && cookie.Value != "" {
			if _, err := store.Get(cookie.Value); err == nil {
				id = cookie.Value
			} else {
				zap.L().Debug("middleware: workspace expired, starting a new one",
					zap.String("workspace", cookie.Value))
			}
		}

		if id == "" {
			id = store.Create(now()).ID
			http.SetCookie(e.Response, &http.Cookie{
				Name:     cookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(e.Request.Context(), WorkspaceIDKey, id)
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}
