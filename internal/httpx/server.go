package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/AndhiniDev/dapur-azka-backend/internal/auth"
	"github.com/AndhiniDev/dapur-azka-backend/internal/cart"
	"github.com/AndhiniDev/dapur-azka-backend/internal/catalog"
	"github.com/AndhiniDev/dapur-azka-backend/internal/chat"
	"github.com/AndhiniDev/dapur-azka-backend/internal/checkout"
	"github.com/AndhiniDev/dapur-azka-backend/internal/orders"
	"github.com/AndhiniDev/dapur-azka-backend/internal/reviews"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeDomainErr maps domain errors onto status codes. Anything unmapped is
// a 500 (storage trouble and the like).
func writeDomainErr(w http.ResponseWriter, err error) {
	var transition *orders.ErrInvalidTransition
	switch {
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, orders.ErrNotFound),
		errors.Is(err, reviews.ErrNotFound),
		errors.Is(err, cart.ErrLineNotFound),
		errors.Is(err, auth.ErrAccountNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, auth.ErrBadCredentials):
		writeErr(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, checkout.ErrNotAuthenticated):
		writeErr(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrEmailTaken):
		writeErr(w, http.StatusConflict, err.Error())
	case errors.Is(err, reviews.ErrAlreadyVoted):
		writeErr(w, http.StatusConflict, err.Error())
	case errors.As(err, &transition):
		writeErr(w, http.StatusConflict, err.Error())
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrProfileIncomplete),
		errors.Is(err, checkout.ErrUnknownDeliveryMethod),
		errors.Is(err, checkout.ErrUnknownPaymentMethod),
		errors.Is(err, orders.ErrUnknownStatus),
		errors.Is(err, auth.ErrPasswordTooShort),
		errors.Is(err, auth.ErrPasswordMismatch),
		errors.Is(err, reviews.ErrInvalidRating),
		errors.Is(err, reviews.ErrEmptyComment),
		errors.Is(err, reviews.ErrMissingProduct),
		errors.Is(err, reviews.ErrTooManyPhotos),
		errors.Is(err, chat.ErrEmptyMessage):
		writeErr(w, http.StatusBadRequest, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}
