package middlewares

import (
	"log"
	"net/http"
	"net/url"

	"github.com/gamectrl/storefront/app/helpers"
	"github.com/gamectrl/storefront/app/models"
)

func AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userVal := r.Context().Value(helpers.ContextKeyUser)
		user, ok := userVal.(*models.User)
		if !ok || user == nil {
			http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("You must log in to access the admin panel."), http.StatusFound)
			return
		}

		if user.Role != models.RoleAdmin {
			log.Printf("AdminAuthMiddleware: User %d (%s) attempted to access admin panel without admin role.", user.ID, helpers.SanitizeInput(user.Username))
			http.Redirect(w, r, "/?status=error&message="+url.QueryEscape("You do not have permission to access this page."), http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}
