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

// BidHandler - структура для обработки запросов к предложениям.
type BidHandler struct {
	Service *services.BidService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewBidHandler создает новый экземпляр BidHandler.
func NewBidHandler(service *services.BidService, logger *log.Logger, timeout time.Duration) *BidHandler {
	return &BidHandler{Service: service, Logger: logger, Timeout: timeout}
}

// CreateBid обрабатывает запросы на подачу предложения.
func (h *BidHandler) CreateBid(w http.ResponseWriter, r *http.Request) {
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

	var input models.BidInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bid, err := h.Service.CreateBid(ctx, actor, input)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to submit bid")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(bid); err != nil {
		h.Logger.Println(err)
	}
}

// GetRequestBids обрабатывает запросы заказчика на список предложений по заявке.
func (h *BidHandler) GetRequestBids(w http.ResponseWriter, r *http.Request) {
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

	requestId := r.PathValue("requestId")

	bids, err := h.Service.GetRequestBids(ctx, actor, requestId)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to fetch bids")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(bids); err != nil {
		h.Logger.Println(err)
	}
}

// GetMyBids обрабатывает запросы исполнителя на список своих предложений.
func (h *BidHandler) GetMyBids(w http.ResponseWriter, r *http.Request) {
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

	bids, err := h.Service.GetMyBids(ctx, actor)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to fetch bids")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(bids); err != nil {
		h.Logger.Println(err)
	}
}

// WithdrawBid обрабатывает запросы на отзыв предложения.
func (h *BidHandler) WithdrawBid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PUT is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	bidId := r.PathValue("bidId")

	bid, err := h.Service.WithdrawBid(ctx, actor, bidId)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to withdraw bid")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(bid); err != nil {
		h.Logger.Println(err)
	}
}

// AwardBid обрабатывает запросы заказчика на выбор предложения.
func (h *BidHandler) AwardBid(w http.ResponseWriter, r *http.Request) {
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

	bidId := r.PathValue("bidId")

	bid, err := h.Service.AwardBid(ctx, actor, bidId)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to award bid")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(bid); err != nil {
		h.Logger.Println(err)
	}
}
