package handlers

import (
	"net/http"

	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db     *gorm.DB
	render *render.Render
}

func NewHealthHandler(db *gorm.DB, render *render.Render) *HealthHandler {
	return &HealthHandler{db: db, render: render}
}

// Check reports dependency health as JSON; 503 when any check fails.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	checks := map[string]bool{
		"database": h.checkDatabase(),
	}

	status := http.StatusOK
	for _, ok := range checks {
		if !ok {
			status = http.StatusServiceUnavailable
			break
		}
	}

	_ = h.render.JSON(w, status, map[string]interface{}{"status": checks})
}

func (h *HealthHandler) checkDatabase() bool {
	sqlDB, err := h.db.DB()
	if err != nil {
		return false
	}
	return sqlDB.Ping() == nil
}
