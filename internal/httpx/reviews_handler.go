package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/AndhiniDev/dapur-azka-backend/internal/auth"
	"github.com/AndhiniDev/dapur-azka-backend/internal/catalog"
	"github.com/AndhiniDev/dapur-azka-backend/internal/reviews"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type ReviewsHandler struct {
	Reviews  *reviews.Service
	Catalog  *catalog.Service
	Auth     *auth.Service
	Validate *validator.Validate
}

type AddReviewReq struct {
	ProductID string   `json:"productId" validate:"required"`
	Rating    int      `json:"rating" validate:"required,min=1,max=5"`
	Comment   string   `json:"comment" validate:"required"`
	Photos    []string `json:"photos" validate:"max=3"`
}

type ReviewListResp struct {
	Summary reviews.Summary  `json:"summary"`
	Reviews []reviews.Review `json:"reviews"`
}

func (h *ReviewsHandler) Register(r *chi.Mux, mw *Middleware) {
	r.Get("/reviews", h.list)
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireUser)
		r.Post("/reviews", h.add)
		r.Post("/reviews/{id}/helpful", h.vote)
	})
}

func (h *ReviewsHandler) list(w http.ResponseWriter, r *http.Request) {
	rating, _ := strconv.Atoi(r.URL.Query().Get("rating"))
	out, err := h.Reviews.List(r.Context(), rating, r.URL.Query().Get("sort"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	sum, err := h.Reviews.Summarize(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	// Voter ids are internal bookkeeping, not a public field.
	for i := range out {
		out[i].VoterIDs = nil
	}
	writeJSON(w, http.StatusOK, ReviewListResp{Summary: sum, Reviews: out})
}

func (h *ReviewsHandler) add(w http.ResponseWriter, r *http.Request) {
	var req AddReviewReq
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
	userID := claimsFrom(r).UserID
	rev := reviews.Review{
		UserID:      userID,
		ProductID:   p.ID,
		ProductName: p.Name,
		Rating:      req.Rating,
		Comment:     req.Comment,
		Photos:      req.Photos,
	}
	if profile, err := h.Auth.Profile(r.Context(), userID); err == nil {
		rev.UserName = profile.Name
		rev.UserAvatar = profile.Avatar
		rev.UserProfile = profile.ProfileStatus
	}
	created, err := h.Reviews.Add(r.Context(), rev)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	created.VoterIDs = nil
	writeJSON(w, http.StatusCreated, created)
}

func (h *ReviewsHandler) vote(w http.ResponseWriter, r *http.Request) {
	rev, err := h.Reviews.Vote(r.Context(), chi.URLParam(r, "id"), claimsFrom(r).UserID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	rev.VoterIDs = nil
	writeJSON(w, http.StatusOK, rev)
}
