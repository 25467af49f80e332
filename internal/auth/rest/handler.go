package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/solestride/shoe-shop/internal/auth/app"
	"github.com/solestride/shoe-shop/internal/auth/identity"
	"github.com/solestride/shoe-shop/pkg/httpx"
)

type Handler struct {
	svc *app.Service
	log *slog.Logger
}

func NewHandler(svc *app.Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// RegisterPublic mounts register/login, which issue the tokens everything
// else requires.
func (h *Handler) RegisterPublic(r *mux.Router) {
	r.HandleFunc("/auth/register", h.register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
}

// RegisterProtected mounts the profile routes on an authenticated router.
func (h *Handler) RegisterProtected(r *mux.Router) {
	r.HandleFunc("/auth/profile", h.profile).Methods(http.MethodGet)
	r.HandleFunc("/auth/profile", h.updateProfile).Methods(http.MethodPut)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password, req.Address)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, authResponse{User: toUserJSON(user), Token: token})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authResponse{User: toUserJSON(user), Token: token})
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	user, err := h.svc.Profile(r.Context(), userID)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserJSON(user))
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req updateProfileRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.svc.UpdateProfile(r.Context(), userID, req.Name, req.Address)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserJSON(user))
}

func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrEmailTaken):
		httpx.WriteError(w, http.StatusBadRequest, "email already registered")
	case errors.Is(err, app.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, app.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "user not found")
	default:
		h.log.Error("auth request failed", slog.Any("err", err))
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
