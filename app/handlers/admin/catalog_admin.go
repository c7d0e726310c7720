package admin

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gamectrl/storefront/app/helpers"
	"github.com/gamectrl/storefront/app/models"
	"github.com/gamectrl/storefront/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type CatalogAdminHandler struct {
	ctrlRepo     repositories.ControllerRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	render       *render.Render
	validator    *validator.Validate
}

func NewCatalogAdminHandler(
	ctrlRepo repositories.ControllerRepositoryImpl,
	categoryRepo repositories.CategoryRepositoryImpl,
	render *render.Render,
	validate *validator.Validate,
) *CatalogAdminHandler {
	return &CatalogAdminHandler{
		ctrlRepo:     ctrlRepo,
		categoryRepo: categoryRepo,
		render:       render,
		validator:    validate,
	}
}

type CategoryForm struct {
	Name        string `form:"name" validate:"required,min=2,max=200"`
	Description string `form:"description" validate:"max=2000"`
}

type ControllerForm struct {
	Name        string `form:"name" validate:"required,min=2,max=200"`
	CategoryID  string `form:"category_id" validate:"required,numeric"`
	Description string `form:"description" validate:"max=5000"`
	Price       string `form:"price" validate:"required"`
}

func (h *CatalogAdminHandler) ListControllers(w http.ResponseWriter, r *http.Request) {
	controllers, err := h.ctrlRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("CatalogAdminHandler.ListControllers: failed to load controllers: %v", err)
		http.Error(w, "Failed to load controllers", http.StatusInternalServerError)
		return
	}

	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("CatalogAdminHandler.ListControllers: failed to load categories: %v", err)
		http.Error(w, "Failed to load categories", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":       "Manage Controllers",
		"Controllers": controllers,
		"Categories":  categories,
	})

	_ = h.render.HTML(w, http.StatusOK, "admin/controllers", data)
}

func (h *CatalogAdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithError(w, r, "Could not read form data.")
		return
	}

	form := CategoryForm{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
	}
	if err := h.validator.Struct(form); err != nil {
		h.redirectWithError(w, r, "Category name is required.")
		return
	}

	category := &models.Category{
		Name:        form.Name,
		Slug:        slug.Make(form.Name),
		Description: form.Description,
	}
	if err := h.categoryRepo.Create(r.Context(), category); err != nil {
		log.Printf("CatalogAdminHandler.CreateCategory: failed to create category %q: %v", helpers.SanitizeInput(form.Name), err)
		h.redirectWithError(w, r, "Failed to create category.")
		return
	}

	log.Printf("CatalogAdminHandler.CreateCategory: created category %d (%s)", category.ID, category.Slug)
	http.Redirect(w, r, "/admin/controllers?status=success&message="+url.QueryEscape("Category created."), http.StatusSeeOther)
}

func (h *CatalogAdminHandler) CreateController(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithError(w, r, "Could not read form data.")
		return
	}

	form := ControllerForm{
		Name:        r.FormValue("name"),
		CategoryID:  r.FormValue("category_id"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
	}
	if err := h.validator.Struct(form); err != nil {
		h.redirectWithError(w, r, "Please fill in name, category and price.")
		return
	}

	categoryID, err := strconv.ParseUint(form.CategoryID, 10, 32)
	if err != nil {
		h.redirectWithError(w, r, "Invalid category.")
		return
	}
	category, err := h.categoryRepo.GetByID(r.Context(), uint(categoryID))
	if err != nil || category == nil {
		h.redirectWithError(w, r, "Category not found.")
		return
	}

	price, err := decimal.NewFromString(form.Price)
	if err != nil || price.LessThan(decimal.NewFromFloat(0.01)) {
		h.redirectWithError(w, r, "Price must be at least 0.01.")
		return
	}

	controller := &models.Controller{
		CategoryID:  category.ID,
		Name:        form.Name,
		Slug:        slug.Make(form.Name),
		Description: form.Description,
		Price:       price,
		Available:   r.FormValue("available") == "on",
		IsFeatured:  r.FormValue("is_featured") == "on",
	}
	if err := h.ctrlRepo.Create(r.Context(), controller); err != nil {
		log.Printf("CatalogAdminHandler.CreateController: failed to create controller %q: %v", helpers.SanitizeInput(form.Name), err)
		h.redirectWithError(w, r, "Failed to create controller.")
		return
	}

	log.Printf("CatalogAdminHandler.CreateController: created controller %d (%s)", controller.ID, controller.Slug)
	http.Redirect(w, r, "/admin/controllers?status=success&message="+url.QueryEscape("Controller created."), http.StatusSeeOther)
}

// UpdateController edits price and availability, the two fields the store
// tooling actually touches after creation.
func (h *CatalogAdminHandler) UpdateController(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithError(w, r, "Could not read form data.")
		return
	}

	id, err := strconv.ParseUint(r.FormValue("id"), 10, 32)
	if err != nil || id == 0 {
		h.redirectWithError(w, r, "Invalid controller id.")
		return
	}

	controller, err := h.ctrlRepo.GetByID(r.Context(), uint(id))
	if err != nil {
		log.Printf("CatalogAdminHandler.UpdateController: failed to load controller %d: %v", id, err)
		h.redirectWithError(w, r, "Failed to load controller.")
		return
	}
	if controller == nil {
		http.NotFound(w, r)
		return
	}

	if rawPrice := r.FormValue("price"); rawPrice != "" {
		price, err := decimal.NewFromString(rawPrice)
		if err != nil || price.LessThan(decimal.NewFromFloat(0.01)) {
			h.redirectWithError(w, r, "Price must be at least 0.01.")
			return
		}
		controller.Price = price
	}
	controller.Available = r.FormValue("available") == "on"
	controller.IsFeatured = r.FormValue("is_featured") == "on"

	if err := h.ctrlRepo.Update(r.Context(), controller); err != nil {
		log.Printf("CatalogAdminHandler.UpdateController: failed to update controller %d: %v", controller.ID, err)
		h.redirectWithError(w, r, "Failed to update controller.")
		return
	}

	log.Printf("CatalogAdminHandler.UpdateController: updated controller %d (available=%t, price=%s)", controller.ID, controller.Available, controller.Price)
	http.Redirect(w, r, "/admin/controllers?status=success&message="+url.QueryEscape("Controller updated."), http.StatusSeeOther)
}

func (h *CatalogAdminHandler) redirectWithError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, fmt.Sprintf("/admin/controllers?status=error&message=%s", url.QueryEscape(msg)), http.StatusSeeOther)
}
