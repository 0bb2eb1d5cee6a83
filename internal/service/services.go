package service

import (
	"github.com/omkar2446/LootDukan/internal/config"
	"github.com/omkar2446/LootDukan/internal/hub"
	"github.com/omkar2446/LootDukan/internal/repository"
	"github.com/omkar2446/LootDukan/pkg/logger"
)

type Services struct {
	Auth      AuthService
	User      UserService
	Catalog   CatalogService
	Chat      ChatService
	Quota     QuotaService
	Payment   PaymentService
	Stats     StatsService
	Audit     AuditService
	RateLimit RateLimitService
}

func NewServices(repos *repository.Repositories, messageHub *hub.Hub, cfg *config.Config, log logger.Logger) *Services {
	audit := NewAuditService(repos.Audit, log)
	quota := NewQuotaService(repos.Quota, cfg.Chat.DailyMessageLimit, log)

	return &Services{
		Auth:      NewAuthService(repos.User, cfg.JWT, log),
		User:      NewUserService(repos.User, log),
		Catalog:   NewCatalogService(repos.Product, audit, log),
		Chat:      NewChatService(repos.ChatRequest, repos.Message, repos.Product, quota, messageHub, audit, log),
		Quota:     quota,
		Payment:   NewPaymentService(repos.Payment, repos.Product, audit, cfg.Razorpay, log),
		Stats:     NewStatsService(repos.Stats, repos.ChatRequest, quota, log),
		Audit:     audit,
		RateLimit: NewRateLimitService(repos.RateLimit, log),
	}
}
