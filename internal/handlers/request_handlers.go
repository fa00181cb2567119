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

// RequestHandler - структура для обработки запросов к заявкам.
type RequestHandler struct {
	Service *services.RequestService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewRequestHandler создает новый экземпляр RequestHandler.
func NewRequestHandler(service *services.RequestService, logger *log.Logger, timeout time.Duration) *RequestHandler {
	return &RequestHandler{Service: service, Logger: logger, Timeout: timeout}
}

// CreateRequest обрабатывает запросы на создание заявки.
func (h *RequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var input models.RequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	request, err := h.Service.CreateRequest(ctx, actor, input)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to create request")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(request); err != nil {
		h.Logger.Println(err)
	}
}

// GetMyRequests обрабатывает запросы заказчика на список своих заявок.
func (h *RequestHandler) GetMyRequests(w http.ResponseWriter, r *http.Request) {
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

	requests, err := h.Service.GetMyRequests(ctx, actor)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to fetch requests")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(requests); err != nil {
		h.Logger.Println(err)
	}
}

// GetAvailableRequests обрабатывает запросы исполнителя на ленту открытых
// заявок, пересекающихся с его категориями.
func (h *RequestHandler) GetAvailableRequests(w http.ResponseWriter, r *http.Request) {
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

	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	requests, err := h.Service.GetAvailableRequests(ctx, actor, limitStr, offsetStr)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to fetch requests")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(requests); err != nil {
		h.Logger.Println(err)
	}
}
