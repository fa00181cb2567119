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

// CatalogHandler - структура для обработки запросов к категориям и услугам.
type CatalogHandler struct {
	Service *services.CatalogService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewCatalogHandler создает новый экземпляр CatalogHandler.
func NewCatalogHandler(service *services.CatalogService, logger *log.Logger, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{Service: service, Logger: logger, Timeout: timeout}
}

func (h *CatalogHandler) writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.Logger.Println(err)
	}
}

func (h *CatalogHandler) sendError(w http.ResponseWriter, err error, fallback string) {
	h.Logger.Println(err)
	if errorResponse, ok := err.(*models.ErrorResponse); ok {
		utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
		return
	}
	utils.SendErrorResponse(w, http.StatusInternalServerError, fallback)
}

// GetCategories обрабатывает запросы на получение справочника категорий.
func (h *CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	categories, err := h.Service.FetchCategories(ctx)
	if err != nil {
		h.sendError(w, err, "failed to fetch categories")
		return
	}
	h.writeJSON(w, categories)
}

// BrowseServices обрабатывает запросы витрины доступных услуг.
func (h *CatalogHandler) BrowseServices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")
	categoryId := r.URL.Query().Get("category_id")

	servicesList, err := h.Service.BrowseServices(ctx, limitStr, offsetStr, categoryId)
	if err != nil {
		h.sendError(w, err, "failed to fetch services")
		return
	}
	h.writeJSON(w, servicesList)
}

// GetMyServices обрабатывает запросы исполнителя на список своих услуг.
func (h *CatalogHandler) GetMyServices(w http.ResponseWriter, r *http.Request) {
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

	servicesList, err := h.Service.GetVendorServices(ctx, actor)
	if err != nil {
		h.sendError(w, err, "failed to fetch services")
		return
	}
	h.writeJSON(w, servicesList)
}

// CreateService обрабатывает запросы на создание услуги.
func (h *CatalogHandler) CreateService(w http.ResponseWriter, r *http.Request) {
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

	var input models.ServiceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	service, err := h.Service.CreateService(ctx, actor, input)
	if err != nil {
		h.sendError(w, err, "failed to create service")
		return
	}
	h.writeJSON(w, service)
}

// EditService обрабатывает запросы на изменение услуги.
func (h *CatalogHandler) EditService(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PATCH is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	serviceId := r.PathValue("serviceId")

	var updateFields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updateFields); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	service, err := h.Service.EditService(ctx, actor, serviceId, updateFields)
	if err != nil {
		h.sendError(w, err, "failed to update service")
		return
	}
	h.writeJSON(w, service)
}

// SetAvailability обрабатывает запросы на переключение доступности услуги.
func (h *CatalogHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
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

	serviceId := r.PathValue("serviceId")

	var input struct {
		IsAvailable bool `json:"isAvailable"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	service, err := h.Service.SetAvailability(ctx, actor, serviceId, input.IsAvailable)
	if err != nil {
		h.sendError(w, err, "failed to update service")
		return
	}
	h.writeJSON(w, service)
}

// DeleteService обрабатывает запросы на удаление услуги.
func (h *CatalogHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only DELETE is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	serviceId := r.PathValue("serviceId")

	if err := h.Service.DeleteService(ctx, actor, serviceId); err != nil {
		h.sendError(w, err, "failed to delete service")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
