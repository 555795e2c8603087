package handlers

import (
	"fmt"
	"net/http"

	"github.com/Rakhulsr/go-catalog/app/services"
	"github.com/unrolled/render"
)

type OrderHandler struct {
	svc    *services.OrderService
	render *render.Render
}

func NewOrderHandler(svc *services.OrderService, r *render.Render) *OrderHandler {
	return &OrderHandler{svc: svc, render: r}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateOrderInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondError(h.render, w, r, err)
		return
	}
	order, err := h.svc.CreateOrder(r.Context(), input)
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/orders/%d", order.ID))
	_ = h.render.JSON(w, http.StatusCreated, map[string]interface{}{"order": order})
}

func (h *OrderHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	detail, err := h.svc.GetOrder(r.Context(), id)
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, detail)
}

func (h *OrderHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	var input services.RecordPaymentInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondError(h.render, w, r, err)
		return
	}
	payment, err := h.svc.RecordPayment(r.Context(), id, input)
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, map[string]interface{}{"payment": payment})
}
