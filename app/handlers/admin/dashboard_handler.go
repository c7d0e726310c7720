package admin

import (
	"log"
	"net/http"
	"time"

	"github.com/gamectrl/storefront/app/helpers"
	"github.com/gamectrl/storefront/app/repositories"
	"github.com/unrolled/render"
)

type DashboardHandler struct {
	ctrlRepo repositories.ControllerRepositoryImpl
	render   *render.Render
}

func NewDashboardHandler(ctrlRepo repositories.ControllerRepositoryImpl, render *render.Render) *DashboardHandler {
	return &DashboardHandler{ctrlRepo: ctrlRepo, render: render}
}

// Dashboard shows catalog monitoring numbers: total controllers, how many
// were created in the last 24 hours, and the summed price of those.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	yesterday := time.Now().Add(-24 * time.Hour)

	total, err := h.ctrlRepo.Count(ctx)
	if err != nil {
		log.Printf("DashboardHandler.Dashboard: failed to count controllers: %v", err)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	last24h, err := h.ctrlRepo.CountSince(ctx, yesterday)
	if err != nil {
		log.Printf("DashboardHandler.Dashboard: failed to count recent controllers: %v", err)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	priceSum24h, err := h.ctrlRepo.SumPriceSince(ctx, yesterday)
	if err != nil {
		log.Printf("DashboardHandler.Dashboard: failed to sum recent prices: %v", err)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":       "Admin Dashboard",
		"Total":       total,
		"Last24h":     last24h,
		"PriceSum24h": priceSum24h,
	})

	_ = h.render.HTML(w, http.StatusOK, "admin/dashboard", data)
}
