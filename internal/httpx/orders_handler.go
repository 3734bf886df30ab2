package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/AndhiniDev/dapur-azka-backend/internal/orders"
	"github.com/go-chi/chi/v5"
)

type OrdersHandler struct {
	Registry *orders.Registry
}

type UpdateStatusReq struct {
	Status orders.Status `json:"status"`
}

func (h *OrdersHandler) Register(r *chi.Mux, mw *Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireUser)
		r.Get("/orders", h.listMine)
		r.Get("/orders/latest", h.latest)
		r.Get("/orders/{id}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAdmin)
		r.Get("/admin/orders", h.listAll)
		r.Put("/admin/orders/{id}/status", h.updateStatus)
	})
}

func (h *OrdersHandler) listMine(w http.ResponseWriter, r *http.Request) {
	out, err := h.Registry.ListByUser(r.Context(), claimsFrom(r).UserID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *OrdersHandler) latest(w http.ResponseWriter, r *http.Request) {
	o, err := h.Registry.Latest(r.Context(), claimsFrom(r).UserID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) get(w http.ResponseWriter, r *http.Request) {
	o, err := h.Registry.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	claims := claimsFrom(r)
	// Pesanan milik orang lain tidak kelihatan, kecuali admin.
	if o.UserID != claims.UserID && claims.Role != "admin" {
		writeErr(w, http.StatusNotFound, orders.ErrNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) listAll(w http.ResponseWriter, r *http.Request) {
	out, err := h.Registry.ListAll(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	o, err := h.Registry.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}
