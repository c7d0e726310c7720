package validators

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gamectrl/storefront/app/configs"
	"github.com/gamectrl/storefront/app/models"
)

// CartValidator checks proposed cart mutations against the configured limits
// before anything is committed. It only reads state, never writes it.
type CartValidator struct {
	limits       configs.CartLimits
	allowedHosts []string
}

func NewCartValidator(limits configs.CartLimits, allowedHosts []string) *CartValidator {
	return &CartValidator{
		limits:       limits,
		allowedHosts: allowedHosts,
	}
}

// Quantity parses raw into a validated quantity. Negative values and values
// above the per-operation cap are rejected.
func (v *CartValidator) Quantity(raw string) (int, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, raw)
	}
	if err := v.QuantityInRange(qty); err != nil {
		return 0, err
	}
	return qty, nil
}

// QuantityInRange applies the per-operation bounds to an already-parsed
// quantity. Merging an add into an existing item re-checks the combined
// quantity through this.
func (v *CartValidator) QuantityInRange(qty int) error {
	if qty < 0 || qty > v.limits.MaxQuantityPerOp {
		return fmt.Errorf("%w: %d", ErrQuantityOutOfRange, qty)
	}
	return nil
}

// Controller decides whether the controller may enter a cart at all.
func (v *CartValidator) Controller(controller *models.Controller) error {
	if !controller.Available {
		return fmt.Errorf("%w: %s", ErrControllerUnavailable, controller.Slug)
	}
	if controller.Price.GreaterThan(v.limits.MaxItemPrice) {
		return fmt.Errorf("%w: %s costs %s", ErrPriceExceedsLimit, controller.Slug, controller.Price)
	}
	if controller.Stock != nil && *controller.Stock <= 0 {
		return fmt.Errorf("%w: %s", ErrOutOfStock, controller.Slug)
	}
	return nil
}

// CartLimits checks the cart-wide caps for a proposed addition. The quantity
// cap counts the persisted items plus additional; the price cap looks at the
// currently persisted total only, without the pending addition's contribution.
// That price-check timing mirrors the long-standing store behavior and is
// kept as-is.
func (v *CartValidator) CartLimits(cart *models.Cart, additional int) error {
	totalItems := cart.TotalQuantity() + additional
	if totalItems > v.limits.MaxCartItems {
		return fmt.Errorf("%w: cart cannot exceed %d items", ErrTooManyItems, v.limits.MaxCartItems)
	}

	if cart.TotalPrice().GreaterThan(v.limits.MaxTotalPrice) {
		return fmt.Errorf("%w: cart total cannot exceed %s", ErrTotalPriceExceeded, v.limits.MaxTotalPrice)
	}
	return nil
}

// RequestOrigin rejects requests whose referer does not mention one of the
// allowed hosts. Substring containment, not exact host match; a known-loose
// guard carried over unchanged.
func (v *CartValidator) RequestOrigin(r *http.Request) error {
	referer := r.Header.Get("Referer")
	if referer == "" {
		return ErrMissingReferer
	}
	for _, host := range v.allowedHosts {
		if host != "" && strings.Contains(referer, host) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUntrustedOrigin, referer)
}

// ControllerID parses a raw controller id form value.
func (v *CartValidator) ControllerID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidControllerID, raw)
	}
	return uint(id), nil
}

// ItemID parses a raw cart item id form value.
func (v *CartValidator) ItemID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidItemID, raw)
	}
	return uint(id), nil
}
