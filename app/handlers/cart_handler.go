package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gamectrl/storefront/app/helpers"
	"github.com/gamectrl/storefront/app/services"
	"github.com/gamectrl/storefront/app/utils/breadcrumb"
	"github.com/gamectrl/storefront/app/validators"
	"github.com/unrolled/render"
)

// CartHandler translates cart requests into service calls. Failure policy:
// not-found surfaces as 404; every other failure is logged and collapses
// into a redirect back to the cart view with no state change. The user is
// never told why an add or update was dropped.
type CartHandler struct {
	cartSvc   *services.CartService
	validator *validators.CartValidator
	render    *render.Render
}

func NewCartHandler(cartSvc *services.CartService, validator *validators.CartValidator, render *render.Render) *CartHandler {
	return &CartHandler{
		cartSvc:   cartSvc,
		validator: validator,
		render:    render,
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(helpers.ContextKeyUserID).(uint)
	if !ok || userID == 0 {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	cart, err := h.cartSvc.GetUserCart(r.Context(), userID)
	if err != nil {
		log.Printf("CartHandler.GetCart: failed to load cart for user %d: %v", userID, err)
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}

	log.Printf("CartHandler.GetCart: cart viewed by user %d (%d items)", userID, cart.TotalQuantity())

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":         "Your Cart",
		"Cart":          cart,
		"TotalPrice":    cart.TotalPrice(),
		"TotalQuantity": cart.TotalQuantity(),
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Home", URL: "/"},
			{Name: "Cart", URL: "/cart"},
		},
	})

	_ = h.render.HTML(w, http.StatusOK, "carts", data)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(helpers.ContextKeyUserID).(uint)
	if !ok || userID == 0 {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Printf("CartHandler.AddItem: failed to parse form for user %d: %v", userID, err)
		h.redirectToCart(w, r)
		return
	}

	if err := h.validator.RequestOrigin(r); err != nil {
		h.logValidationFailure("AddItem", userID, err)
		h.redirectToCart(w, r)
		return
	}

	controllerID, err := h.validator.ControllerID(r.FormValue("controller_id"))
	if err != nil {
		h.logValidationFailure("AddItem", userID, err)
		h.redirectToCart(w, r)
		return
	}

	rawQty := r.FormValue("quantity")
	if rawQty == "" {
		rawQty = "1"
	}
	qty, err := h.validator.Quantity(rawQty)
	if err != nil {
		h.logValidationFailure("AddItem", userID, err)
		h.redirectToCart(w, r)
		return
	}

	if err := h.cartSvc.AddItem(r.Context(), userID, controllerID, qty); err != nil {
		h.handleMutationError(w, r, "AddItem", userID, err)
		return
	}

	log.Printf("CartHandler.AddItem: user %d added controller %d (quantity %d)", userID, controllerID, qty)
	h.redirectToCart(w, r)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(helpers.ContextKeyUserID).(uint)
	if !ok || userID == 0 {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Printf("CartHandler.UpdateItem: failed to parse form for user %d: %v", userID, err)
		h.redirectToCart(w, r)
		return
	}

	itemID, err := h.validator.ItemID(r.FormValue("item_id"))
	if err != nil {
		h.logValidationFailure("UpdateItem", userID, err)
		h.redirectToCart(w, r)
		return
	}

	rawQty := r.FormValue("quantity")
	if rawQty == "" {
		rawQty = "0"
	}
	qty, err := h.validator.Quantity(rawQty)
	if err != nil {
		h.logValidationFailure("UpdateItem", userID, err)
		h.redirectToCart(w, r)
		return
	}

	if err := h.cartSvc.UpdateItem(r.Context(), userID, itemID, qty); err != nil {
		h.handleMutationError(w, r, "UpdateItem", userID, err)
		return
	}

	if qty > 0 {
		log.Printf("CartHandler.UpdateItem: user %d set item %d to quantity %d", userID, itemID, qty)
	} else {
		log.Printf("CartHandler.UpdateItem: user %d removed item %d", userID, itemID)
	}
	h.redirectToCart(w, r)
}

// GetCartCount serves the header badge.
func (h *CartHandler) GetCartCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(helpers.ContextKeyUserID).(uint)
	if !ok || userID == 0 {
		_, _ = w.Write([]byte("0"))
		return
	}

	cart, err := h.cartSvc.GetUserCart(r.Context(), userID)
	if err != nil {
		log.Printf("CartHandler.GetCartCount: failed to load cart for user %d: %v", userID, err)
		_, _ = w.Write([]byte("0"))
		return
	}

	_, _ = w.Write([]byte(strconv.Itoa(cart.TotalQuantity())))
}

func (h *CartHandler) handleMutationError(w http.ResponseWriter, r *http.Request, op string, userID uint, err error) {
	switch {
	case validators.IsNotFound(err):
		log.Printf("CartHandler.%s: not found for user %d: %s", op, userID, helpers.SanitizeInput(err.Error()))
		http.NotFound(w, r)
	case validators.IsValidation(err):
		h.logValidationFailure(op, userID, err)
		h.redirectToCart(w, r)
	default:
		log.Printf("CartHandler.%s: unexpected cart error for user %d: %s", op, userID, helpers.SanitizeInput(err.Error()))
		h.redirectToCart(w, r)
	}
}

func (h *CartHandler) logValidationFailure(op string, userID uint, err error) {
	log.Printf("CartHandler.%s: validation error for user %d: %s", op, userID, helpers.SanitizeInput(err.Error()))
}

func (h *CartHandler) redirectToCart(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/cart", http.StatusFound)
}
