package api

import (
	"github.com/gorilla/mux"

	"github.com/DivyanshuSingh0/HabitSphere/internal/api/recovery"
	"github.com/DivyanshuSingh0/HabitSphere/internal/services"
	"github.com/DivyanshuSingh0/HabitSphere/internal/store"
)

// NewRouter creates the HTTP router with all API routes.
func NewRouter(st store.Store) *mux.Router {
	router := mux.NewRouter()

	router.Use(recovery.Middleware)

	badgeService := services.NewBadgeService(st)
	userService := services.NewUserService(st, badgeService)
	habitService := services.NewHabitService(st, badgeService)

	healthHandler := NewHealthHandler(st)
	userHandler := NewUserHandler(userService, badgeService)
	habitHandler := NewHabitHandler(habitService)

	// Health endpoints
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	router.HandleFunc("/api/health/db", healthHandler.CheckStorageHealth).Methods("GET")

	// Account endpoints
	router.HandleFunc("/api/users", userHandler.Register).Methods("POST")
	router.HandleFunc("/api/login", userHandler.Login).Methods("POST")
	router.HandleFunc("/api/users/{userId}", userHandler.GetUser).Methods("GET")
	router.HandleFunc("/api/users/{userId}/profile", userHandler.GetProfile).Methods("GET")
	router.HandleFunc("/api/users/{userId}/badges", userHandler.ListBadges).Methods("GET")

	// Habit endpoints
	router.HandleFunc("/api/users/{userId}/habits", habitHandler.CreateHabit).Methods("POST")
	router.HandleFunc("/api/users/{userId}/habits", habitHandler.ListHabits).Methods("GET")
	router.HandleFunc("/api/users/{userId}/habits/{habitId}", habitHandler.GetHabit).Methods("GET")
	router.HandleFunc("/api/users/{userId}/habits/{habitId}", habitHandler.DeleteHabit).Methods("DELETE")

	// Entry, prediction, and analytics endpoints
	router.HandleFunc("/api/users/{userId}/habits/{habitId}/entries", habitHandler.CreateEntry).Methods("POST")
	router.HandleFunc("/api/users/{userId}/habits/{habitId}/entries", habitHandler.ListEntries).Methods("GET")
	router.HandleFunc("/api/users/{userId}/habits/{habitId}/predict", habitHandler.Predict).Methods("GET")
	router.HandleFunc("/api/users/{userId}/habits/{habitId}/analytics", habitHandler.Analytics).Methods("GET")

	return router
}
