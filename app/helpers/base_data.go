package helpers

import (
	"net/http"

	"github.com/gamectrl/storefront/app/models"
	"github.com/gamectrl/storefront/app/utils/breadcrumb"
	"github.com/gorilla/csrf"
)

// GetBaseData folds the layout-wide template values (current user, cart
// badge count, flash message from the query string, CSRF field) into the
// page-specific map.
func GetBaseData(r *http.Request, pageSpecificData map[string]interface{}) map[string]interface{} {
	if pageSpecificData == nil {
		pageSpecificData = make(map[string]interface{})
	}

	if _, exists := pageSpecificData["Title"]; !exists {
		pageSpecificData["Title"] = "GameCtrl Store"
	}
	if _, exists := pageSpecificData["CartCount"]; !exists {
		pageSpecificData["CartCount"] = 0
	}
	if _, exists := pageSpecificData["IsLoggedIn"]; !exists {
		pageSpecificData["IsLoggedIn"] = false
	}
	if _, exists := pageSpecificData["User"]; !exists {
		pageSpecificData["User"] = nil
	}
	if _, exists := pageSpecificData["Breadcrumbs"]; !exists {
		pageSpecificData["Breadcrumbs"] = []breadcrumb.Breadcrumb{}
	}

	if cartCountVal := r.Context().Value(CartCountKey); cartCountVal != nil {
		if count, ok := cartCountVal.(int); ok {
			pageSpecificData["CartCount"] = count
		}
	}

	if userVal := r.Context().Value(ContextKeyUser); userVal != nil {
		if user, ok := userVal.(*models.User); ok && user != nil {
			pageSpecificData["User"] = user
			pageSpecificData["IsLoggedIn"] = true
			pageSpecificData["IsAdmin"] = user.Role == models.RoleAdmin
		}
	}

	pageSpecificData["MessageStatus"] = r.URL.Query().Get("status")
	pageSpecificData["Message"] = r.URL.Query().Get("message")
	pageSpecificData["CSRFField"] = csrf.TemplateField(r)

	return pageSpecificData
}
