package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Rakhulsr/go-catalog/app/apperrors"
	"github.com/Rakhulsr/go-catalog/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type CollectionHandler struct {
	svc    *services.CollectionService
	render *render.Render
}

func NewCollectionHandler(svc *services.CollectionService, r *render.Render) *CollectionHandler {
	return &CollectionHandler{svc: svc, render: r}
}

func (h *CollectionHandler) Collections(w http.ResponseWriter, r *http.Request) {
	opts := services.ListCollectionsOptions{
		CollectionType: r.URL.Query().Get("collection_type"),
		Search:         r.URL.Query().Get("search"),
	}

	switch raw := strings.TrimSpace(r.URL.Query().Get("parent_id")); raw {
	case "":
	case "null":
		opts.RootsOnly = true
	default:
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			respondError(h.render, w, r, apperrors.FieldInvalid("parent_id", "parent_id must be a collection id or null."))
			return
		}
		parentID := uint(id)
		opts.ParentID = &parentID
	}

	includeInactive, err := queryBool(r, "include_inactive")
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	opts.IncludeInactive = includeInactive != nil && *includeInactive

	flat, err := queryBool(r, "flat")
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	opts.Flat = flat != nil && *flat

	listing, err := h.svc.ListCollections(r.Context(), opts)
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	if listing.Flat {
		_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"collections": listing.Collections})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"collections": listing.Tree})
}

func (h *CollectionHandler) CollectionBySlug(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetBySlugWithProducts(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, result)
}

func (h *CollectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateCollectionInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondError(h.render, w, r, err)
		return
	}
	collection, err := h.svc.Create(r.Context(), input)
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/collections/%s", collection.Slug))
	_ = h.render.JSON(w, http.StatusCreated, map[string]interface{}{"collection": collection})
}

func (h *CollectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	var input services.UpdateCollectionInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondError(h.render, w, r, err)
		return
	}
	collection, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"collection": collection})
}

func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	removed, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"deleted": removed})
}

func (h *CollectionHandler) AttachProducts(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	var input services.ProductIDsInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondError(h.render, w, r, err)
		return
	}
	if err := h.svc.AttachProducts(r.Context(), id, input); err != nil {
		respondError(h.render, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CollectionHandler) DetachProducts(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	var input services.ProductIDsInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondError(h.render, w, r, err)
		return
	}
	removed, err := h.svc.DetachProducts(r.Context(), id, input)
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"detached": removed})
}
