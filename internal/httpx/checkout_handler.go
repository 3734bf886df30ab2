package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/AndhiniDev/dapur-azka-backend/internal/auth"
	"github.com/AndhiniDev/dapur-azka-backend/internal/checkout"
	"github.com/AndhiniDev/dapur-azka-backend/internal/orders"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type CheckoutHandler struct {
	Checkout *checkout.Service
	Auth     *auth.Service
	Validate *validator.Validate
}

type CheckoutReq struct {
	DeliveryDetails orders.DeliveryDetails `json:"deliveryDetails"`
	DeliveryMethod  string                 `json:"deliveryMethod" validate:"required"`
	PaymentMethod   string                 `json:"paymentMethod" validate:"required"`
	OrderNotes      string                 `json:"orderNotes"`
}

func (h *CheckoutHandler) Register(r *chi.Mux, mw *Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireUser)
		r.Post("/checkout", h.submit)
	})
}

func (h *CheckoutHandler) submit(w http.ResponseWriter, r *http.Request) {
	var req CheckoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	userID := claimsFrom(r).UserID

	// Isi field kosong dari profil tersimpan, seperti form checkout.
	delivery := req.DeliveryDetails
	if p, err := h.Auth.Profile(r.Context(), userID); err == nil {
		if delivery.Name == "" {
			delivery.Name = p.Name
		}
		if delivery.Phone == "" {
			delivery.Phone = p.Phone
		}
		if delivery.Address == "" {
			delivery.Address = p.Address
		}
		if delivery.City == "" {
			delivery.City = p.City
		}
		if delivery.PostalCode == "" {
			delivery.PostalCode = p.PostalCode
		}
	}

	o, err := h.Checkout.Submit(r.Context(), userID, delivery, req.DeliveryMethod, req.PaymentMethod, req.OrderNotes)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}
