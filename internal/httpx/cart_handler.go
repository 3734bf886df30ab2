package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/AndhiniDev/dapur-azka-backend/internal/cart"
	"github.com/AndhiniDev/dapur-azka-backend/internal/catalog"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	Carts    *cart.Service
	Catalog  *catalog.Service
	Validate *validator.Validate
}

type AddItemReq struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type SetQuantityReq struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// CartResp carries the lines plus the derived totals the pages render.
type CartResp struct {
	Items     []cart.Line `json:"items"`
	Subtotal  int         `json:"subtotal"`
	ItemCount int         `json:"itemCount"`
}

func (h *CartHandler) Register(r *chi.Mux, mw *Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireUser)
		r.Get("/cart", h.get)
		r.Post("/cart/items", h.add)
		r.Put("/cart/items/{productID}", h.setQuantity)
		r.Delete("/cart/items/{productID}", h.remove)
		r.Delete("/cart", h.clear)
	})
}

func cartResp(lines []cart.Line) CartResp {
	if lines == nil {
		lines = []cart.Line{}
	}
	return CartResp{Items: lines, Subtotal: cart.Subtotal(lines), ItemCount: cart.ItemCount(lines)}
}

func (h *CartHandler) get(w http.ResponseWriter, r *http.Request) {
	lines, err := h.Carts.Get(r.Context(), claimsFrom(r).UserID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartResp(lines))
}

func (h *CartHandler) add(w http.ResponseWriter, r *http.Request) {
	var req AddItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.Catalog.Get(r.Context(), req.ProductID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	lines, err := h.Carts.Add(r.Context(), claimsFrom(r).UserID, p, req.Quantity)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartResp(lines))
}

func (h *CartHandler) setQuantity(w http.ResponseWriter, r *http.Request) {
	var req SetQuantityReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	lines, err := h.Carts.SetQuantity(r.Context(), claimsFrom(r).UserID, chi.URLParam(r, "productID"), req.Quantity)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartResp(lines))
}

func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request) {
	lines, err := h.Carts.Remove(r.Context(), claimsFrom(r).UserID, chi.URLParam(r, "productID"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartResp(lines))
}

func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Carts.Clear(r.Context(), claimsFrom(r).UserID); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
