package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/DivyanshuSingh0/HabitSphere/internal/api/respond"
	"github.com/DivyanshuSingh0/HabitSphere/internal/api/validate"
	"github.com/DivyanshuSingh0/HabitSphere/internal/model"
	"github.com/DivyanshuSingh0/HabitSphere/internal/services"
)

type UserHandler struct {
	svc    *services.UserService
	badges *services.BadgeService
}

func NewUserHandler(svc *services.UserService, badges *services.BadgeService) *UserHandler {
	return &UserHandler{svc: svc, badges: badges}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.Register(in.Username, in.Password); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	u, err := h.svc.Register(r.Context(), in.Username, in.Password)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, u)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.Username == "" || in.Password == "" {
		respond.WriteBadRequest(w, "username and password are required")
		return
	}
	u, err := h.svc.Login(r.Context(), in.Username, in.Password)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, u)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		respond.WriteBadRequest(w, "userId required")
		return
	}
	u, err := h.svc.GetUser(r.Context(), userID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, u)
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	p, err := h.svc.GetProfile(r.Context(), userID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, p)
}

func (h *UserHandler) ListBadges(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if _, err := h.svc.GetUser(r.Context(), userID); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	badges, err := h.badges.ListBadges(r.Context(), userID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	if badges == nil {
		badges = []*model.Badge{}
	}
	respond.WriteJSON(w, http.StatusOK, badges)
}
