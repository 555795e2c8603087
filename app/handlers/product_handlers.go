package handlers

import (
	"fmt"
	"net/http"

	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/services"
	"github.com/Rakhulsr/go-catalog/app/utils/format"
	"github.com/unrolled/render"
)

type ProductHandler struct {
	svc      *services.ProductService
	currency *format.Currency
	render   *render.Render
}

func NewProductHandler(svc *services.ProductService, currency *format.Currency, r *render.Render) *ProductHandler {
	return &ProductHandler{svc: svc, currency: currency, render: r}
}

type productView struct {
	models.Product
	PriceFormatted string `json:"price_formatted"`
}

type productListResponse struct {
	Products []productView `json:"products"`
	services.PageInfo
}

func (h *ProductHandler) view(p models.Product) productView {
	return productView{Product: p, PriceFormatted: h.currency.Format(p.Price)}
}

func (h *ProductHandler) Products(w http.ResponseWriter, r *http.Request) {
	q := services.ProductQuery{
		Type:       r.URL.Query().Get("type"),
		Brands:     queryList(r, "brand"),
		Colors:     queryList(r, "color"),
		Collection: r.URL.Query().Get("collection"),
		Search:     r.URL.Query().Get("q"),
	}

	var err error
	if q.PriceMin, err = queryDecimal(r, "priceMin"); err != nil {
		respondError(h.render, w, r, err)
		return
	}
	if q.PriceMax, err = queryDecimal(r, "priceMax"); err != nil {
		respondError(h.render, w, r, err)
		return
	}
	if q.IsNew, err = queryBool(r, "isNew"); err != nil {
		respondError(h.render, w, r, err)
		return
	}
	if q.IsFeatured, err = queryBool(r, "isFeatured"); err != nil {
		respondError(h.render, w, r, err)
		return
	}
	if q.IndexFrom, err = queryInt(r, "indexFrom"); err != nil {
		respondError(h.render, w, r, err)
		return
	}
	if q.Limit, err = queryInt(r, "limit"); err != nil {
		respondError(h.render, w, r, err)
		return
	}

	page, err := h.svc.ListProducts(r.Context(), q)
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}

	resp := productListResponse{Products: make([]productView, 0, len(page.Products)), PageInfo: page.PageInfo}
	for _, p := range page.Products {
		resp.Products = append(resp.Products, h.view(p))
	}
	_ = h.render.JSON(w, http.StatusOK, resp)
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

func (h *ProductHandler) Brands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.svc.Brands(r.Context())
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"brands": brands})
}

func (h *ProductHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	product, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"product": h.view(*product)})
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateProductInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondError(h.render, w, r, err)
		return
	}
	product, err := h.svc.Create(r.Context(), input)
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/products/%d", product.ID))
	_ = h.render.JSON(w, http.StatusCreated, map[string]interface{}{"product": h.view(*product)})
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	var input services.UpdateProductInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondError(h.render, w, r, err)
		return
	}
	product, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"product": h.view(*product)})
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		respondError(h.render, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) SetFeatured(w http.ResponseWriter, r *http.Request) {
	var input services.SetFeaturedInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondError(h.render, w, r, err)
		return
	}
	updated, err := h.svc.SetFeatured(r.Context(), input)
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"updated": updated})
}
