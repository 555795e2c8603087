package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-catalog/app/services"
	"github.com/unrolled/render"
)

type MegaMenuHandler struct {
	svc    *services.MegaMenuService
	render *render.Render
}

func NewMegaMenuHandler(svc *services.MegaMenuService, r *render.Render) *MegaMenuHandler {
	return &MegaMenuHandler{svc: svc, render: r}
}

func (h *MegaMenuHandler) Active(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListActive(r.Context())
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

func (h *MegaMenuHandler) All(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListAll(r.Context())
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

func (h *MegaMenuHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	collectionID, err := pathID(r, "collectionId")
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	var input services.MegaMenuEntryInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondError(h.render, w, r, err)
		return
	}
	entry, err := h.svc.UpsertEntry(r.Context(), collectionID, input)
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"entry": entry})
}

func (h *MegaMenuHandler) Remove(w http.ResponseWriter, r *http.Request) {
	collectionID, err := pathID(r, "collectionId")
	if err != nil {
		respondError(h.render, w, r, err)
		return
	}
	if err := h.svc.RemoveEntry(r.Context(), collectionID); err != nil {
		respondError(h.render, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
