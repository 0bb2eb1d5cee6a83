package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/omkar2446/LootDukan/pkg/logger"
)

type Repositories struct {
	User        UserRepository
	Product     ProductRepository
	ChatRequest ChatRequestRepository
	Message     MessageRepository
	Quota       QuotaRepository
	Payment     PaymentRepository
	Stats       StatsRepository
	Audit       AuditRepository
	RateLimit   RateLimitRepository
}

func NewRepositories(db *pgxpool.Pool, redis *redis.Client, log logger.Logger) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db, log),
		Product:     NewProductRepository(db, log),
		ChatRequest: NewChatRequestRepository(db, log),
		Message:     NewMessageRepository(db, log),
		Quota:       NewQuotaRepository(db, log),
		Payment:     NewPaymentRepository(db, log),
		Stats:       NewStatsRepository(db, log),
		Audit:       NewAuditRepository(db, log),
		RateLimit:   NewRateLimitRepository(redis, log),
	}
}
