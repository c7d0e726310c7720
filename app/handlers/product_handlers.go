package handlers

import (
	"log"
	"net/http"

	"github.com/gamectrl/storefront/app/helpers"
	"github.com/gamectrl/storefront/app/repositories"
	"github.com/gamectrl/storefront/app/utils/breadcrumb"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type ProductHandler struct {
	ctrlRepo     repositories.ControllerRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	render       *render.Render
}

func NewProductHandler(ctrlRepo repositories.ControllerRepositoryImpl, categoryRepo repositories.CategoryRepositoryImpl, render *render.Render) *ProductHandler {
	return &ProductHandler{ctrlRepo, categoryRepo, render}
}

const featuredHomeLimit = 6

func (h *ProductHandler) Home(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("ProductHandler.Home: failed to load categories: %v", err)
		http.Error(w, "Failed to load catalog", http.StatusInternalServerError)
		return
	}

	featured, err := h.ctrlRepo.GetFeatured(r.Context(), featuredHomeLimit)
	if err != nil {
		log.Printf("ProductHandler.Home: failed to load featured controllers: %v", err)
		http.Error(w, "Failed to load catalog", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":               "GameCtrl Store",
		"Categories":          categories,
		"FeaturedControllers": featured,
	})

	_ = h.render.HTML(w, http.StatusOK, "home", data)
}

func (h *ProductHandler) CategoryDetail(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	category, err := h.categoryRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		log.Printf("ProductHandler.CategoryDetail: failed to load category %q: %v", helpers.SanitizeInput(slug), err)
		http.Error(w, "Failed to load category", http.StatusInternalServerError)
		return
	}
	if category == nil {
		http.NotFound(w, r)
		return
	}

	controllers, err := h.ctrlRepo.GetByCategoryID(r.Context(), category.ID)
	if err != nil {
		log.Printf("ProductHandler.CategoryDetail: failed to load controllers for category %d: %v", category.ID, err)
		http.Error(w, "Failed to load category", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":       category.Name,
		"Category":    category,
		"Controllers": controllers,
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Home", URL: "/"},
			{Name: category.Name, URL: "/category/" + category.Slug},
		},
	})

	_ = h.render.HTML(w, http.StatusOK, "category", data)
}

func (h *ProductHandler) ControllerDetail(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	controller, err := h.ctrlRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		log.Printf("ProductHandler.ControllerDetail: failed to load controller %q: %v", helpers.SanitizeInput(slug), err)
		http.Error(w, "Failed to load controller", http.StatusInternalServerError)
		return
	}
	if controller == nil {
		http.NotFound(w, r)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":      controller.Name,
		"Controller": controller,
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Home", URL: "/"},
			{Name: controller.Category.Name, URL: "/category/" + controller.Category.Slug},
			{Name: controller.Name, URL: "/controller/" + controller.Slug},
		},
	})

	_ = h.render.HTML(w, http.StatusOK, "controller", data)
}
