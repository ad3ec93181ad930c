package handler

import "net/http"

// TreasureHuntHandler handles GET /deals/treasure-hunt.
func (h *Handler) TreasureHuntHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, h.deals.TreasureHunt(r.Context()))
}

// WhatsHotHandler handles GET /deals/whats-hot.
func (h *Handler) WhatsHotHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, h.deals.WhatsHot(r.Context()))
}
