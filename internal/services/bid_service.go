package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/eventlink/marketplace/internal/models"
	"github.com/eventlink/marketplace/internal/repository"

	"github.com/jackc/pgx/v5"
)

// BidService отвечает за подачу, отзыв и выбор предложений.
type BidService struct {
	Bids          repository.BidRepository
	Requests      repository.RequestRepository
	Services      repository.ServiceRepository
	Conversations repository.ConversationRepository
}

// NewBidService создает новый экземпляр BidService.
func NewBidService(bids repository.BidRepository, requests repository.RequestRepository, services repository.ServiceRepository, conversations repository.ConversationRepository) *BidService {
	return &BidService{Bids: bids, Requests: requests, Services: services, Conversations: conversations}
}

// CreateBid подает предложение исполнителя по открытой заявке. Все проверки
// выполняются до записи; вместе с предложением upsert-ом создается тред
// переписки по ключу (заявка, заказчик, исполнитель).
func (s *BidService) CreateBid(ctx context.Context, actor models.Actor, input models.BidInput) (*models.Bid, error) {
	if actor.Role != models.RoleVendor {
		return nil, models.NewErrorResponse(http.StatusForbidden, "only vendors can submit bids")
	}
	if input.ServiceID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "select a service")
	}
	if input.BidAmount <= 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "bid amount must be positive")
	}
	if strings.TrimSpace(input.Message) == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "proposal message is required")
	}
	if input.DeliveryDays != nil && *input.DeliveryDays < 1 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "delivery days must be at least 1")
	}

	request, err := s.Requests.GetRequestByID(ctx, input.RequestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewErrorResponse(http.StatusNotFound, "request not found")
		}
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if request.Status != models.OpenRequest {
		return nil, models.NewErrorResponse(http.StatusConflict, "request is no longer open")
	}

	service, err := s.Services.GetServiceByID(ctx, input.ServiceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewErrorResponse(http.StatusNotFound, "service not found")
		}
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if service.VendorID != actor.ID {
		return nil, models.NewErrorResponse(http.StatusForbidden, "you can only bid with your own service")
	}
	if !service.IsAvailable {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "selected service is not available")
	}

	alreadyBid, err := s.Bids.HasVendorBid(ctx, input.RequestID, actor.ID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if alreadyBid {
		return nil, models.NewErrorResponse(http.StatusConflict, "you have already submitted a bid on this request")
	}

	bid, err := s.Bids.CreateBid(ctx, actor.ID, input)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to submit bid")
	}

	if err := s.Conversations.UpsertConversation(ctx, request.ID, request.ClientID, actor.ID); err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to open conversation")
	}
	return bid, nil
}

// GetRequestBids возвращает предложения по заявке владельцу-заказчику и
// помечает минимальное по сумме.
func (s *BidService) GetRequestBids(ctx context.Context, actor models.Actor, requestId string) ([]models.Bid, error) {
	request, err := s.Requests.GetRequestByID(ctx, requestId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewErrorResponse(http.StatusNotFound, "request not found")
		}
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if request.ClientID != actor.ID {
		return nil, models.NewErrorResponse(http.StatusForbidden, "you can only view bids on your own requests")
	}

	bids, err := s.Bids.GetRequestBids(ctx, requestId)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch bids")
	}
	MarkLowestBid(bids)
	return bids, nil
}

// GetMyBids возвращает предложения исполнителя.
func (s *BidService) GetMyBids(ctx context.Context, actor models.Actor) ([]models.Bid, error) {
	if actor.Role != models.RoleVendor {
		return nil, models.NewErrorResponse(http.StatusForbidden, "only vendors have their own bids")
	}
	return s.Bids.GetVendorBids(ctx, actor.ID)
}

// WithdrawBid отзывает собственное ожидающее предложение по открытой заявке.
func (s *BidService) WithdrawBid(ctx context.Context, actor models.Actor, bidId string) (*models.Bid, error) {
	bid, err := s.Bids.GetBidByID(ctx, bidId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewErrorResponse(http.StatusNotFound, "bid not found")
		}
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if bid.VendorID != actor.ID {
		return nil, models.NewErrorResponse(http.StatusForbidden, "you can only withdraw your own bids")
	}
	if bid.Status != models.PendingBid {
		return nil, models.NewErrorResponsef(http.StatusConflict, "cannot withdraw a bid with status %s", bid.Status)
	}

	request, err := s.Requests.GetRequestByID(ctx, bid.RequestID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if request.Status != models.OpenRequest {
		return nil, models.NewErrorResponse(http.StatusConflict, "request is no longer open")
	}

	return s.Bids.WithdrawBid(ctx, bidId)
}

// AwardBid выбирает предложение: оно становится awarded, заявка закрывается
// с выбранным исполнителем, остальные предложения отклоняются.
func (s *BidService) AwardBid(ctx context.Context, actor models.Actor, bidId string) (*models.Bid, error) {
	bid, err := s.Bids.GetBidByID(ctx, bidId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewErrorResponse(http.StatusNotFound, "bid not found")
		}
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}

	request, err := s.Requests.GetRequestByID(ctx, bid.RequestID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if request.ClientID != actor.ID {
		return nil, models.NewErrorResponse(http.StatusForbidden, "you can only award bids on your own requests")
	}
	if request.Status != models.OpenRequest {
		return nil, models.NewErrorResponse(http.StatusConflict, "request is already closed")
	}

	awarded, err := s.Bids.HasAwardedBid(ctx, bid.RequestID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if awarded {
		return nil, models.NewErrorResponse(http.StatusConflict, "a bid has already been awarded on this request")
	}

	if err := s.Bids.AwardBid(ctx, bid); err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to award bid")
	}
	return bid, nil
}

// MarkLowestBid помечает предложение с минимальной суммой. Подсказка
// действует только пока ни одно предложение не выбрано; при равных суммах
// помечается первое по порядку списка.
func MarkLowestBid(bids []models.Bid) {
	hasAwarded := false
	for i := range bids {
		bids[i].IsLowest = false
		if bids[i].Status == models.AwardedBid {
			hasAwarded = true
		}
	}
	if hasAwarded || len(bids) == 0 {
		return
	}

	lowest := 0
	for i := 1; i < len(bids); i++ {
		if bids[i].BidAmount < bids[lowest].BidAmount {
			lowest = i
		}
	}
	bids[lowest].IsLowest = true
}
