package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/eventlink/marketplace/internal/models"
	"github.com/eventlink/marketplace/internal/repository"
	"github.com/eventlink/marketplace/internal/utils"

	"github.com/jackc/pgx/v5"
)

// CatalogService отвечает за справочник категорий и услуги исполнителей.
type CatalogService struct {
	Services   repository.ServiceRepository
	Categories repository.CategoryRepository
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(services repository.ServiceRepository, categories repository.CategoryRepository) *CatalogService {
	return &CatalogService{Services: services, Categories: categories}
}

// FetchCategories возвращает справочник категорий.
func (s *CatalogService) FetchCategories(ctx context.Context) ([]models.ServiceCategory, error) {
	return s.Categories.GetCategories(ctx)
}

// BrowseServices возвращает доступные услуги для витрины заказчика.
func (s *CatalogService) BrowseServices(ctx context.Context, limitStr, offsetStr, categoryId string) ([]models.Service, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}
	return s.Services.GetAvailableServices(ctx, limit, offset, categoryId)
}

// GetVendorServices возвращает услуги исполнителя.
func (s *CatalogService) GetVendorServices(ctx context.Context, actor models.Actor) ([]models.Service, error) {
	if actor.Role != models.RoleVendor {
		return nil, models.NewErrorResponse(http.StatusForbidden, "only vendors can manage services")
	}
	return s.Services.GetVendorServices(ctx, actor.ID)
}

// CreateService создает услугу исполнителя.
func (s *CatalogService) CreateService(ctx context.Context, actor models.Actor, input models.ServiceInput) (*models.Service, error) {
	if actor.Role != models.RoleVendor {
		return nil, models.NewErrorResponse(http.StatusForbidden, "only vendors can manage services")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "title is required")
	}
	if input.CategoryID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "category is required")
	}
	if input.Price <= 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "price must be positive")
	}
	if strings.TrimSpace(input.PriceUnit) == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "price unit is required")
	}

	exists, err := s.Categories.CategoriesExist(ctx, []string{input.CategoryID})
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !exists {
		return nil, models.NewErrorResponsef(http.StatusBadRequest, "unknown category: %s", input.CategoryID)
	}

	return s.Services.CreateService(ctx, actor.ID, input)
}

// EditService меняет поля услуги. Исполнитель может править только свои услуги.
func (s *CatalogService) EditService(ctx context.Context, actor models.Actor, serviceId string, updateFields map[string]interface{}) (*models.Service, error) {
	if _, err := s.ownService(ctx, actor, serviceId); err != nil {
		return nil, err
	}
	return s.Services.EditService(ctx, serviceId, updateFields)
}

// SetAvailability включает или выключает доступность услуги.
func (s *CatalogService) SetAvailability(ctx context.Context, actor models.Actor, serviceId string, available bool) (*models.Service, error) {
	if _, err := s.ownService(ctx, actor, serviceId); err != nil {
		return nil, err
	}
	return s.Services.SetServiceAvailability(ctx, serviceId, available)
}

// DeleteService удаляет услугу исполнителя.
func (s *CatalogService) DeleteService(ctx context.Context, actor models.Actor, serviceId string) error {
	if _, err := s.ownService(ctx, actor, serviceId); err != nil {
		return err
	}
	return s.Services.DeleteService(ctx, serviceId)
}

// ownService проверяет, что услуга существует и принадлежит исполнителю.
func (s *CatalogService) ownService(ctx context.Context, actor models.Actor, serviceId string) (*models.Service, error) {
	if actor.Role != models.RoleVendor {
		return nil, models.NewErrorResponse(http.StatusForbidden, "only vendors can manage services")
	}
	service, err := s.Services.GetServiceByID(ctx, serviceId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewErrorResponse(http.StatusNotFound, "service not found")
		}
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if service.VendorID != actor.ID {
		return nil, models.NewErrorResponse(http.StatusForbidden, "you can only manage your own services")
	}
	return service, nil
}
