package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/DivyanshuSingh0/HabitSphere/internal/api/respond"
	"github.com/DivyanshuSingh0/HabitSphere/internal/api/validate"
	"github.com/DivyanshuSingh0/HabitSphere/internal/habits"
	"github.com/DivyanshuSingh0/HabitSphere/internal/model"
	"github.com/DivyanshuSingh0/HabitSphere/internal/services"
)

type HabitHandler struct {
	svc *services.HabitService
}

func NewHabitHandler(svc *services.HabitService) *HabitHandler { return &HabitHandler{svc: svc} }

func (h *HabitHandler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	var in struct {
		Name        string  `json:"name"`
		Description *string `json:"description,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.CreateHabit(in.Name, in.Description); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	out, err := h.svc.CreateHabit(r.Context(), services.CreateHabitRequest{
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

func (h *HabitHandler) ListHabits(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	list, err := h.svc.ListHabits(r.Context(), userID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	if list == nil {
		list = []*model.Habit{}
	}
	respond.WriteJSON(w, http.StatusOK, list)
}

func (h *HabitHandler) GetHabit(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	out, err := h.svc.GetHabit(r.Context(), vars["userId"], vars["habitId"])
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *HabitHandler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.svc.DeleteHabit(r.Context(), vars["userId"], vars["habitId"]); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HabitHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var in struct {
		Note     *string `json:"note,omitempty"`
		LoggedAt string  `json:"loggedAt,omitempty"`
	}
	// an empty body logs "now" with no note
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil && r.ContentLength > 0 {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.LogEntry(in.Note, in.LoggedAt); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	req := services.LogEntryRequest{
		UserID:  vars["userId"],
		HabitID: vars["habitId"],
		Note:    in.Note,
	}
	if in.LoggedAt != "" {
		t, _ := time.Parse(time.RFC3339, in.LoggedAt)
		req.LoggedAt = &t
	}
	res, err := h.svc.LogEntry(r.Context(), req)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, res)
}

func (h *HabitHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	list, err := h.svc.ListEntries(r.Context(), vars["userId"], vars["habitId"])
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	if list == nil {
		list = []*model.Entry{}
	}
	respond.WriteJSON(w, http.StatusOK, list)
}

// predictResponse is the wire shape for GET .../predict. Probability and the
// display string are present only when status is "ok".
type predictResponse struct {
	Status      string   `json:"status"`
	Probability *float64 `json:"probability,omitempty"`
	Prediction  string   `json:"prediction,omitempty"`
}

func (h *HabitHandler) Predict(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	p, err := h.svc.Predict(r.Context(), vars["userId"], vars["habitId"])
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	out := predictResponse{Status: p.Status}
	if p.Status == habits.StatusOK {
		prob := p.Probability
		out.Probability = &prob
		out.Prediction = p.Display()
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *HabitHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	report, err := h.svc.Analytics(r.Context(), vars["userId"], vars["habitId"])
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, report)
}
