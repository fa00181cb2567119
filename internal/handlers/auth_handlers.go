package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/eventlink/marketplace/internal/middleware"
	"github.com/eventlink/marketplace/internal/models"
	"github.com/eventlink/marketplace/internal/services"
	"github.com/eventlink/marketplace/internal/utils"
)

// AuthHandler - структура для обработки запросов регистрации и входа.
type AuthHandler struct {
	Service *services.AuthService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewAuthHandler создает новый экземпляр AuthHandler.
func NewAuthHandler(service *services.AuthService, logger *log.Logger, timeout time.Duration) *AuthHandler {
	return &AuthHandler{Service: service, Logger: logger, Timeout: timeout}
}

// Register обрабатывает запросы на регистрацию профиля.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var input models.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokenResponse, err := h.Service.Register(ctx, input)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to register")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(tokenResponse); err != nil {
		h.Logger.Println(err)
	}
}

// Login обрабатывает запросы на вход.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var input models.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokenResponse, err := h.Service.Login(ctx, input)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to login")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(tokenResponse); err != nil {
		h.Logger.Println(err)
	}
}

// GetProfile обрабатывает запросы на получение собственного профиля.
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	profile, err := h.Service.GetProfile(ctx, actor.ID)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to fetch profile")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(profile); err != nil {
		h.Logger.Println(err)
	}
}
