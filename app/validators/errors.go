package validators

import (
	"errors"
)

// Input errors: the request carried something unparseable or out of range.
var (
	ErrInvalidQuantity     = errors.New("invalid quantity format")
	ErrQuantityOutOfRange  = errors.New("quantity out of range")
	ErrInvalidControllerID = errors.New("invalid controller id")
	ErrInvalidItemID       = errors.New("invalid item id")
)

// Policy errors: the request was well-formed but a cart rule rejects it.
var (
	ErrControllerUnavailable = errors.New("product is not available")
	ErrPriceExceedsLimit     = errors.New("item price exceeds limit")
	ErrOutOfStock            = errors.New("item is out of stock")
	ErrTooManyItems          = errors.New("cart item limit exceeded")
	ErrTotalPriceExceeded    = errors.New("cart total price limit exceeded")
	ErrMissingReferer        = errors.New("missing referer")
	ErrUntrustedOrigin       = errors.New("untrusted request origin")
)

// Not-found errors: the target entity is absent or owned by someone else.
// These surface as 404 instead of the usual log-and-redirect.
var (
	ErrControllerNotFound = errors.New("controller not found")
	ErrItemNotFound       = errors.New("cart item not found")
)

var inputErrs = []error{
	ErrInvalidQuantity,
	ErrQuantityOutOfRange,
	ErrInvalidControllerID,
	ErrInvalidItemID,
}

var policyErrs = []error{
	ErrControllerUnavailable,
	ErrPriceExceedsLimit,
	ErrOutOfStock,
	ErrTooManyItems,
	ErrTotalPriceExceeded,
	ErrMissingReferer,
	ErrUntrustedOrigin,
}

// IsValidation reports whether err is a recoverable input or policy error.
// Handlers log these at warning level and fall back to the cart redirect.
func IsValidation(err error) bool {
	for _, target := range inputErrs {
		if errors.Is(err, target) {
			return true
		}
	}
	for _, target := range policyErrs {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err names a missing or foreign-owned entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrControllerNotFound) || errors.Is(err, ErrItemNotFound)
}
