package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/AndhiniDev/dapur-azka-backend/internal/chat"
	"github.com/go-chi/chi/v5"
)

type ChatHandler struct {
	Chats *chat.Service
}

type SendMessageReq struct {
	Text string `json:"text"`
}

func (h *ChatHandler) Register(r *chi.Mux, mw *Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireUser)
		r.Get("/chat", h.conversation)
		r.Post("/chat", h.send)
	})
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAdmin)
		r.Post("/admin/chat/{userID}", h.reply)
	})
}

func (h *ChatHandler) conversation(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.Chats.Conversation(r.Context(), claimsFrom(r).UserID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (h *ChatHandler) send(w http.ResponseWriter, r *http.Request) {
	var req SendMessageReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	m, err := h.Chats.Append(r.Context(), claimsFrom(r).UserID, chat.SenderCustomer, req.Text)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *ChatHandler) reply(w http.ResponseWriter, r *http.Request) {
	var req SendMessageReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	m, err := h.Chats.Append(r.Context(), chi.URLParam(r, "userID"), chat.SenderAdmin, req.Text)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}
