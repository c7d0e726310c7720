package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

// CartLimits carries the cart policy knobs. They are passed into the cart
// validator at construction so tests can vary them instead of patching
// package globals.
type CartLimits struct {
	// MaxCartItems caps the summed quantity across a cart's items.
	MaxCartItems int
	// MaxQuantityPerOp caps a single add/update quantity.
	MaxQuantityPerOp int
	// MaxItemPrice is the highest unit price that may enter a cart.
	MaxItemPrice decimal.Decimal
	// MaxTotalPrice caps the cart's summed price*quantity.
	MaxTotalPrice decimal.Decimal
}

func DefaultCartLimits() CartLimits {
	return CartLimits{
		MaxCartItems:     20,
		MaxQuantityPerOp: 10,
		MaxItemPrice:     decimal.NewFromInt(10000),
		MaxTotalPrice:    decimal.NewFromInt(20000),
	}
}

// LoadCartLimits reads overrides from the environment, falling back to the
// defaults for anything unset or unparseable.
func LoadCartLimits() CartLimits {
	limits := DefaultCartLimits()

	if raw := os.Getenv("MAX_CART_ITEMS"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limits.MaxCartItems = v
		} else {
			log.Printf("LoadCartLimits: ignoring invalid MAX_CART_ITEMS %q", raw)
		}
	}
	if raw := os.Getenv("MAX_QUANTITY_PER_OP"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limits.MaxQuantityPerOp = v
		} else {
			log.Printf("LoadCartLimits: ignoring invalid MAX_QUANTITY_PER_OP %q", raw)
		}
	}
	if raw := os.Getenv("MAX_ITEM_PRICE"); raw != "" {
		if v, err := decimal.NewFromString(raw); err == nil && v.IsPositive() {
			limits.MaxItemPrice = v
		} else {
			log.Printf("LoadCartLimits: ignoring invalid MAX_ITEM_PRICE %q", raw)
		}
	}
	if raw := os.Getenv("MAX_TOTAL_PRICE"); raw != "" {
		if v, err := decimal.NewFromString(raw); err == nil && v.IsPositive() {
			limits.MaxTotalPrice = v
		} else {
			log.Printf("LoadCartLimits: ignoring invalid MAX_TOTAL_PRICE %q", raw)
		}
	}

	return limits
}
