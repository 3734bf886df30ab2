package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/AndhiniDev/dapur-azka-backend/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	Auth     *auth.Service
	Tokens   *auth.TokenManager
	Validate *validator.Validate
}

type RegisterReq struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SessionResp struct {
	Token string       `json:"token"`
	User  auth.Profile `json:"user"`
}

type ChangePasswordReq struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

func (h *AuthHandler) Register(r *chi.Mux, mw *Middleware) {
	r.Post("/auth/register", h.register)
	r.Post("/auth/login", h.login)
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireUser)
		r.Post("/auth/logout", h.logout)
		r.Get("/auth/me", h.me)
		r.Put("/auth/profile", h.updateProfile)
		r.Put("/auth/password", h.changePassword)
		r.Delete("/auth/account", h.deleteAccount)
	})
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAdmin)
		r.Get("/admin/users", h.adminListUsers)
		r.Put("/admin/users/{id}", h.adminUpdateUser)
		r.Delete("/admin/users/{id}", h.adminDeleteUser)
	})
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.Auth.Register(r.Context(), req.Name, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	h.session(w, http.StatusCreated, p)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	h.session(w, http.StatusOK, p)
}

func (h *AuthHandler) session(w http.ResponseWriter, code int, p auth.Profile) {
	token, err := h.Tokens.Issue(p.ID, p.Role)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, code, SessionResp{Token: token, User: p})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Logout(r.Context(), claimsFrom(r).UserID); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	p, err := h.Auth.Profile(r.Context(), claimsFrom(r).UserID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *AuthHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var upd auth.Profile
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	p, err := h.Auth.UpdateProfile(r.Context(), claimsFrom(r).UserID, upd)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *AuthHandler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Auth.ChangePassword(r.Context(), claimsFrom(r).UserID, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.DeleteAccount(r.Context(), claimsFrom(r).UserID); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) adminListUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Auth.ListAccounts(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (h *AuthHandler) adminUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		Role   string `json:"role"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	a, err := h.Auth.UpdateAccount(r.Context(), chi.URLParam(r, "id"), req.Name, req.Role, req.Status)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AuthHandler) adminDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.RemoveAccount(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
