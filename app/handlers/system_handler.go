package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Rakhulsr/go-catalog/app/utils/format"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type SystemHandler struct {
	db       *gorm.DB
	currency *format.Currency
	render   *render.Render
}

func NewSystemHandler(db *gorm.DB, currency *format.Currency, r *render.Render) *SystemHandler {
	return &SystemHandler{db: db, currency: currency, render: r}
}

func (h *SystemHandler) Currency(w http.ResponseWriter, r *http.Request) {
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"code":      h.currency.Code,
		"symbol":    h.currency.Symbol,
		"precision": h.currency.Precision,
		"example":   h.currency.Format(decimal.NewFromFloat(1234.5)),
	})
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		status, code = "unavailable", http.StatusServiceUnavailable
	}
	_ = h.render.JSON(w, code, map[string]string{"status": status, "database": status})
}
