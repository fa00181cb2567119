package services

import (
	"context"
	"time"

	"github.com/eventlink/marketplace/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Фейковые реализации репозиториев для юнит-тестов сервисов.

type fakeProfileRepo struct {
	profiles map[string]*models.Profile
	hashes   map[string]string
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		profiles: make(map[string]*models.Profile),
		hashes:   make(map[string]string),
	}
}

func (f *fakeProfileRepo) CreateProfile(_ context.Context, input models.RegisterInput, passwordHash string) (*models.Profile, error) {
	now := time.Now().UTC()
	profile := &models.Profile{
		ID:        uuid.New().String(),
		Email:     input.Email,
		FullName:  input.FullName,
		Role:      input.Role,
		Phone:     input.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.profiles[profile.ID] = profile
	f.hashes[profile.Email] = passwordHash
	return profile, nil
}

func (f *fakeProfileRepo) GetProfileByEmail(_ context.Context, email string) (*models.Profile, string, error) {
	for _, profile := range f.profiles {
		if profile.Email == email {
			return profile, f.hashes[email], nil
		}
	}
	return nil, "", pgx.ErrNoRows
}

func (f *fakeProfileRepo) GetProfileByID(_ context.Context, id string) (*models.Profile, error) {
	profile, ok := f.profiles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return profile, nil
}

func (f *fakeProfileRepo) EmailTaken(_ context.Context, email string) (bool, error) {
	for _, profile := range f.profiles {
		if profile.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeCategoryRepo struct {
	categories []models.ServiceCategory
}

func (f *fakeCategoryRepo) GetCategories(_ context.Context) ([]models.ServiceCategory, error) {
	return f.categories, nil
}

func (f *fakeCategoryRepo) CategoriesExist(_ context.Context, categoryIds []string) (bool, error) {
	known := make(map[string]bool, len(f.categories))
	for _, category := range f.categories {
		known[category.ID] = true
	}
	for _, id := range categoryIds {
		if !known[id] {
			return false, nil
		}
	}
	return true, nil
}

type fakeServiceRepo struct {
	services map[string]*models.Service
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[string]*models.Service)}
}

func (f *fakeServiceRepo) add(service *models.Service) {
	if service.ID == "" {
		service.ID = uuid.New().String()
	}
	f.services[service.ID] = service
}

func (f *fakeServiceRepo) GetAvailableServices(_ context.Context, limit, offset int, categoryId string) ([]models.Service, error) {
	var result []models.Service
	for _, service := range f.services {
		if !service.IsAvailable {
			continue
		}
		if categoryId != "" && service.CategoryID != categoryId {
			continue
		}
		result = append(result, *service)
	}
	if offset >= len(result) {
		return nil, nil
	}
	if offset+limit > len(result) {
		return result[offset:], nil
	}
	return result[offset : offset+limit], nil
}

func (f *fakeServiceRepo) GetVendorServices(_ context.Context, vendorId string) ([]models.Service, error) {
	var result []models.Service
	for _, service := range f.services {
		if service.VendorID == vendorId {
			result = append(result, *service)
		}
	}
	return result, nil
}

func (f *fakeServiceRepo) GetServiceByID(_ context.Context, serviceId string) (*models.Service, error) {
	service, ok := f.services[serviceId]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return service, nil
}

func (f *fakeServiceRepo) CreateService(_ context.Context, vendorId string, input models.ServiceInput) (*models.Service, error) {
	now := time.Now().UTC()
	service := &models.Service{
		ID:          uuid.New().String(),
		VendorID:    vendorId,
		CategoryID:  input.CategoryID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		PriceUnit:   input.PriceUnit,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.services[service.ID] = service
	return service, nil
}

func (f *fakeServiceRepo) EditService(_ context.Context, serviceId string, updateFields map[string]interface{}) (*models.Service, error) {
	service, ok := f.services[serviceId]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if title, ok := updateFields["title"].(string); ok {
		service.Title = title
	}
	if description, ok := updateFields["description"].(string); ok {
		service.Description = description
	}
	if price, ok := updateFields["price"].(float64); ok {
		service.Price = price
	}
	if priceUnit, ok := updateFields["priceUnit"].(string); ok {
		service.PriceUnit = priceUnit
	}
	service.UpdatedAt = time.Now().UTC()
	return service, nil
}

func (f *fakeServiceRepo) SetServiceAvailability(_ context.Context, serviceId string, available bool) (*models.Service, error) {
	service, ok := f.services[serviceId]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	service.IsAvailable = available
	service.UpdatedAt = time.Now().UTC()
	return service, nil
}

func (f *fakeServiceRepo) DeleteService(_ context.Context, serviceId string) error {
	delete(f.services, serviceId)
	return nil
}

func (f *fakeServiceRepo) GetVendorCategoryIDs(_ context.Context, vendorId string) ([]string, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, service := range f.services {
		if service.VendorID == vendorId && !seen[service.CategoryID] {
			seen[service.CategoryID] = true
			ids = append(ids, service.CategoryID)
		}
	}
	return ids, nil
}

type fakeRequestRepo struct {
	requests map[string]*models.ServiceRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*models.ServiceRequest)}
}

func (f *fakeRequestRepo) add(request *models.ServiceRequest) {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	f.requests[request.ID] = request
}

func (f *fakeRequestRepo) CreateRequest(_ context.Context, clientId string, eventDate time.Time, input models.RequestInput) (*models.ServiceRequest, error) {
	now := time.Now().UTC()
	request := &models.ServiceRequest{
		ID:            uuid.New().String(),
		ClientID:      clientId,
		EventDate:     eventDate,
		EventLocation: input.EventLocation,
		Notes:         input.Notes,
		BudgetMin:     input.BudgetMin,
		BudgetMax:     input.BudgetMax,
		Status:        models.OpenRequest,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, categoryId := range input.CategoryIDs {
		request.Items = append(request.Items, models.RequestItem{
			ID:         uuid.New().String(),
			RequestID:  request.ID,
			CategoryID: categoryId,
			CreatedAt:  now,
		})
	}
	f.requests[request.ID] = request
	return request, nil
}

func (f *fakeRequestRepo) GetClientRequests(_ context.Context, clientId string) ([]models.ServiceRequest, error) {
	var result []models.ServiceRequest
	for _, request := range f.requests {
		if request.ClientID == clientId {
			result = append(result, *request)
		}
	}
	return result, nil
}

func (f *fakeRequestRepo) GetOpenRequests(_ context.Context) ([]models.ServiceRequest, error) {
	var result []models.ServiceRequest
	for _, request := range f.requests {
		if request.Status == models.OpenRequest {
			result = append(result, *request)
		}
	}
	return result, nil
}

func (f *fakeRequestRepo) GetRequestByID(_ context.Context, requestId string) (*models.ServiceRequest, error) {
	request, ok := f.requests[requestId]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return request, nil
}

// fakeBidRepo повторяет семантику AwardBid: предложение выбирается,
// заявка закрывается, остальные предложения отклоняются.
type fakeBidRepo struct {
	bids     []*models.Bid
	requests *fakeRequestRepo
}

func newFakeBidRepo(requests *fakeRequestRepo) *fakeBidRepo {
	return &fakeBidRepo{requests: requests}
}

func (f *fakeBidRepo) add(bid *models.Bid) {
	if bid.ID == "" {
		bid.ID = uuid.New().String()
	}
	f.bids = append(f.bids, bid)
}

func (f *fakeBidRepo) CreateBid(_ context.Context, vendorId string, input models.BidInput) (*models.Bid, error) {
	now := time.Now().UTC()
	bid := &models.Bid{
		ID:           uuid.New().String(),
		RequestID:    input.RequestID,
		VendorID:     vendorId,
		ServiceID:    input.ServiceID,
		BidAmount:    input.BidAmount,
		DeliveryDays: input.DeliveryDays,
		Message:      input.Message,
		Status:       models.PendingBid,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.bids = append(f.bids, bid)
	return bid, nil
}

func (f *fakeBidRepo) GetRequestBids(_ context.Context, requestId string) ([]models.Bid, error) {
	var result []models.Bid
	for _, bid := range f.bids {
		if bid.RequestID == requestId {
			result = append(result, *bid)
		}
	}
	return result, nil
}

func (f *fakeBidRepo) GetVendorBids(_ context.Context, vendorId string) ([]models.Bid, error) {
	var result []models.Bid
	for _, bid := range f.bids {
		if bid.VendorID == vendorId {
			result = append(result, *bid)
		}
	}
	return result, nil
}

func (f *fakeBidRepo) GetBidByID(_ context.Context, bidId string) (*models.Bid, error) {
	for _, bid := range f.bids {
		if bid.ID == bidId {
			return bid, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeBidRepo) HasVendorBid(_ context.Context, requestId, vendorId string) (bool, error) {
	for _, bid := range f.bids {
		if bid.RequestID == requestId && bid.VendorID == vendorId {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBidRepo) HasAwardedBid(_ context.Context, requestId string) (bool, error) {
	for _, bid := range f.bids {
		if bid.RequestID == requestId && bid.Status == models.AwardedBid {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBidRepo) WithdrawBid(_ context.Context, bidId string) (*models.Bid, error) {
	for _, bid := range f.bids {
		if bid.ID == bidId {
			bid.Status = models.WithdrawnBid
			bid.UpdatedAt = time.Now().UTC()
			return bid, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeBidRepo) AwardBid(_ context.Context, bid *models.Bid) error {
	now := time.Now().UTC()
	for _, other := range f.bids {
		if other.RequestID != bid.RequestID {
			continue
		}
		if other.ID == bid.ID {
			other.Status = models.AwardedBid
			other.AwardedAt = &now
		} else {
			other.Status = models.RejectedBid
		}
		other.UpdatedAt = now
	}
	if request, ok := f.requests.requests[bid.RequestID]; ok {
		request.Status = models.ClosedRequest
		request.AwardedVendorID = &bid.VendorID
		request.UpdatedAt = now
	}
	bid.Status = models.AwardedBid
	bid.AwardedAt = &now
	bid.UpdatedAt = now
	return nil
}

type fakeConversationRepo struct {
	upserts []string
}

func (f *fakeConversationRepo) UpsertConversation(_ context.Context, requestId, clientId, vendorId string) error {
	f.upserts = append(f.upserts, requestId+"/"+clientId+"/"+vendorId)
	return nil
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
