package middlewares

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gamectrl/storefront/app/helpers"
	"github.com/gamectrl/storefront/app/repositories"
	"github.com/gamectrl/storefront/app/utils/sessions"
	"github.com/google/uuid"
)

// RequestIDMiddleware tags each request with a uuid so log lines from one
// request can be correlated.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		ctx := context.WithValue(r.Context(), helpers.RequestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserSessionMiddleware resolves the session's user id into the request
// context, along with the user row when it still exists.
func UserSessionMiddleware(sessionStore sessions.SessionStore, userRepo repositories.UserRepositoryImpl) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sessionStore.GetUserID(r)
			if userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				log.Printf("UserSessionMiddleware: Error finding user %d: %v", userID, err)
				next.ServeHTTP(w, r)
				return
			}
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyUserID, user.ID)
			ctx = context.WithValue(ctx, helpers.ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLoginMiddleware redirects anonymous requests to the login page.
func RequireLoginMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(helpers.ContextKeyUserID).(uint)
		if !ok || userID == 0 {
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.Path), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CartCountMiddleware exposes the logged-in user's summed cart quantity to
// the layout template.
func CartCountMiddleware(cartRepo repositories.CartRepositoryImpl) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := r.Context().Value(helpers.ContextKeyUserID).(uint)
			if !ok || userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			count, err := cartRepo.GetItemCount(r.Context(), userID)
			if err != nil {
				log.Printf("CartCountMiddleware: Error getting cart item count for user %d: %v", userID, err)
				count = 0
			}

			ctx := context.WithValue(r.Context(), helpers.CartCountKey, count)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func MethodOverrideMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_ = r.ParseForm()
			override := r.Form.Get("_method")
			if override != "" {
				r.Method = strings.ToUpper(override)
			}
		}
		next.ServeHTTP(w, r)
	})
}
