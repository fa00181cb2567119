package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/eventlink/marketplace/internal/models"
	"github.com/eventlink/marketplace/internal/repository"
	"github.com/eventlink/marketplace/internal/utils"
)

// RequestService отвечает за создание и просмотр заявок.
type RequestService struct {
	Requests   repository.RequestRepository
	Categories repository.CategoryRepository
	Services   repository.ServiceRepository
}

// NewRequestService создает новый экземпляр RequestService.
func NewRequestService(requests repository.RequestRepository, categories repository.CategoryRepository, services repository.ServiceRepository) *RequestService {
	return &RequestService{Requests: requests, Categories: categories, Services: services}
}

// CreateRequest создает открытую заявку с набором категорий. Все проверки
// выполняются до единственной записи в хранилище.
func (s *RequestService) CreateRequest(ctx context.Context, actor models.Actor, input models.RequestInput) (*models.ServiceRequest, error) {
	if actor.Role != models.RoleClient {
		return nil, models.NewErrorResponse(http.StatusForbidden, "only clients can create requests")
	}
	if len(input.CategoryIDs) == 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "select at least one service category")
	}
	if strings.TrimSpace(input.EventLocation) == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "event location is required")
	}

	eventDate, err := utils.ParseEventDate(input.EventDate)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}
	if eventDate.Before(utils.Today()) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "event date must be today or later")
	}

	if input.BudgetMin != nil && *input.BudgetMin < 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "budget must be non-negative")
	}
	if input.BudgetMax != nil && *input.BudgetMax < 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "budget must be non-negative")
	}
	if input.BudgetMin != nil && input.BudgetMax != nil && *input.BudgetMin > *input.BudgetMax {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "minimum budget exceeds maximum budget")
	}

	exists, err := s.Categories.CategoriesExist(ctx, input.CategoryIDs)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !exists {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "one or more categories do not exist")
	}

	return s.Requests.CreateRequest(ctx, actor.ID, eventDate, input)
}

// GetMyRequests возвращает заявки заказчика.
func (s *RequestService) GetMyRequests(ctx context.Context, actor models.Actor) ([]models.ServiceRequest, error) {
	if actor.Role != models.RoleClient {
		return nil, models.NewErrorResponse(http.StatusForbidden, "only clients have their own requests")
	}
	return s.Requests.GetClientRequests(ctx, actor.ID)
}

// GetAvailableRequests возвращает открытые заявки, видимые исполнителю:
// заявка видна, если хотя бы одна из ее категорий пересекается с
// категориями услуг исполнителя. Доступность услуги на видимость не влияет.
func (s *RequestService) GetAvailableRequests(ctx context.Context, actor models.Actor, limitStr, offsetStr string) ([]models.ServiceRequest, error) {
	if actor.Role != models.RoleVendor {
		return nil, models.NewErrorResponse(http.StatusForbidden, "only vendors can browse open requests")
	}

	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	openRequests, err := s.Requests.GetOpenRequests(ctx)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch requests")
	}

	vendorCategories, err := s.Services.GetVendorCategoryIDs(ctx, actor.ID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}

	visible := FilterVisibleRequests(openRequests, vendorCategories)
	if offset >= len(visible) {
		return nil, nil
	}
	if offset+limit > len(visible) {
		return visible[offset:], nil
	}
	return visible[offset : offset+limit], nil
}

// FilterVisibleRequests оставляет заявки, чьи категории пересекаются с
// категориями исполнителя.
func FilterVisibleRequests(requests []models.ServiceRequest, vendorCategoryIds []string) []models.ServiceRequest {
	vendorCategories := make(map[string]bool, len(vendorCategoryIds))
	for _, id := range vendorCategoryIds {
		vendorCategories[id] = true
	}

	var visible []models.ServiceRequest
	for _, request := range requests {
		for _, item := range request.Items {
			if vendorCategories[item.CategoryID] {
				visible = append(visible, request)
				break
			}
		}
	}
	return visible
}
