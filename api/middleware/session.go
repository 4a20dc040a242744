package middleware

import (
	"net/http"
	"time"

	"github.com/skbags/storefront/internal/session"
	"github.com/skbags/storefront/pkg/config"
	"github.com/skbags/storefront/pkg/logger"
)

// Session resolves the shopper session from the cookie, creating one on first
// contact, and makes it available to handlers through the request context.
func Session(mgr *session.Manager, cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = "sk_session"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if cookie, err := r.Cookie(cookieName); err == nil {
				id = cookie.Value
			}

			sess, created := mgr.GetOrCreate(id)
			if created {
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sess.ID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					Expires:  time.Now().Add(cfg.TTL),
				})
			}

			ctx := WithSession(r.Context(), sess)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sess.ID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
