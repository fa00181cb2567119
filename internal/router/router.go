package router

import (
	"net/http"

	"github.com/eventlink/marketplace/internal/handlers"
	"github.com/eventlink/marketplace/internal/middleware"
)

// InitRoutes собирает маршруты приложения. Регистрация и вход открыты,
// остальные маршруты требуют токен сессии.
func InitRoutes(
	authHandler *handlers.AuthHandler,
	catalogHandler *handlers.CatalogHandler,
	requestHandler *handlers.RequestHandler,
	bidHandler *handlers.BidHandler,
	authMW *middleware.AuthMiddleware,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/ping", handlers.PingHandler)
	mux.HandleFunc("/api/auth/register", authHandler.Register)
	mux.HandleFunc("/api/auth/login", authHandler.Login)

	mux.HandleFunc("/api/profile", authMW.WithAuth(authHandler.GetProfile))
	mux.HandleFunc("/api/categories", authMW.WithAuth(catalogHandler.GetCategories))

	mux.HandleFunc("/api/services", authMW.WithAuth(catalogHandler.BrowseServices))
	mux.HandleFunc("/api/services/my", authMW.WithAuth(catalogHandler.GetMyServices))
	mux.HandleFunc("/api/services/new", authMW.WithAuth(catalogHandler.CreateService))
	mux.HandleFunc("/api/services/{serviceId}/edit", authMW.WithAuth(catalogHandler.EditService))
	mux.HandleFunc("/api/services/{serviceId}/availability", authMW.WithAuth(catalogHandler.SetAvailability))
	mux.HandleFunc("/api/services/{serviceId}", authMW.WithAuth(catalogHandler.DeleteService))

	mux.HandleFunc("/api/requests/new", authMW.WithAuth(requestHandler.CreateRequest))
	mux.HandleFunc("/api/requests/my", authMW.WithAuth(requestHandler.GetMyRequests))
	mux.HandleFunc("/api/requests/available", authMW.WithAuth(requestHandler.GetAvailableRequests))

	mux.HandleFunc("/api/bids/new", authMW.WithAuth(bidHandler.CreateBid))
	mux.HandleFunc("/api/bids/my", authMW.WithAuth(bidHandler.GetMyBids))
	mux.HandleFunc("/api/bids/{requestId}/list", authMW.WithAuth(bidHandler.GetRequestBids))
	mux.HandleFunc("/api/bids/{bidId}/withdraw", authMW.WithAuth(bidHandler.WithdrawBid))
	mux.HandleFunc("/api/bids/{bidId}/award", authMW.WithAuth(bidHandler.AwardBid))

	return mux
}
