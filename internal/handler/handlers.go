package handler

import (
	"github.com/omkar2446/LootDukan/internal/config"
	"github.com/omkar2446/LootDukan/internal/service"
	"github.com/omkar2446/LootDukan/pkg/logger"
)

type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	User      *UserHandler
	Product   *ProductHandler
	Chat      *ChatHandler
	Payment   *PaymentHandler
	Stats     *StatsHandler
	WebSocket *WebSocketHandler
}

func NewHandlers(services *service.Services, cfg *config.Config, log logger.Logger) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(cfg),
		Auth:      NewAuthHandler(services.Auth, log),
		User:      NewUserHandler(services.User, log),
		Product:   NewProductHandler(services.Catalog, log),
		Chat:      NewChatHandler(services.Chat, services.Quota, log),
		Payment:   NewPaymentHandler(services.Payment, log),
		Stats:     NewStatsHandler(services.Stats, log),
		WebSocket: NewWebSocketHandler(services.Chat, log),
	}
}
