package middleware

import (
	"sync"
	"time"

	"github.com/futig/interview-bot/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	warningInterval   = 30 * time.Second
	cleanupInterval   = 10 * time.Minute
	inactiveThreshold = time.Hour
)

// userLimit tracks rate limit state for a single user
type userLimit struct {
	mu            sync.Mutex
	tokens        float64
	lastRefill    time.Time
	lastWarningAt time.Time
}

// RateLimiterMiddleware implements token bucket rate limiting per user.
// The bucket holds burst tokens and refills at requestsPerMinute.
type RateLimiterMiddleware struct {
	mu         sync.Mutex
	limits     map[int64]*userLimit
	maxTokens  float64
	refillRate float64 // tokens per second
	logger     *zap.Logger
	api        Sender
	now        func() time.Time
	done       chan struct{}
	closeOnce  sync.Once
}

func NewRateLimiterMiddleware(requestsPerMinute, burst int, logger *zap.Logger, api Sender) *RateLimiterMiddleware {
	rl := &RateLimiterMiddleware{
		limits:     make(map[int64]*userLimit),
		maxTokens:  float64(burst),
		refillRate: float64(requestsPerMinute) / 60.0,
		logger:     logger,
		api:        api,
		now:        time.Now,
		done:       make(chan struct{}),
	}

	go rl.cleanupInactiveUsers()

	return rl
}

func (rl *RateLimiterMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	userID, chatID := updateIDs(update)
	if userID == 0 {
		next(update)
		return
	}

	if !rl.allowRequest(userID, chatID) {
		rl.logger.Warn("rate limit exceeded",
			zap.Int64("user_id", userID),
			zap.Int64("chat_id", chatID),
		)
		return
	}

	next(update)
}

// Close stops the cleanup goroutine.
func (rl *RateLimiterMiddleware) Close() {
	rl.closeOnce.Do(func() { close(rl.done) })
}

func (rl *RateLimiterMiddleware) allowRequest(userID, chatID int64) bool {
	now := rl.now()

	rl.mu.Lock()
	limit, exists := rl.limits[userID]
	if !exists {
		limit = &userLimit{tokens: rl.maxTokens, lastRefill: now}
		rl.limits[userID] = limit
	}
	rl.mu.Unlock()

	limit.mu.Lock()
	defer limit.mu.Unlock()

	limit.tokens += now.Sub(limit.lastRefill).Seconds() * rl.refillRate
	if limit.tokens > rl.maxTokens {
		limit.tokens = rl.maxTokens
	}
	limit.lastRefill = now

	if limit.tokens >= 1.0 {
		limit.tokens -= 1.0
		return true
	}

	if now.Sub(limit.lastWarningAt) > warningInterval {
		limit.lastWarningAt = now
		if _, err := rl.api.Send(tgbotapi.NewMessage(chatID, render.MsgRateLimited)); err != nil {
			rl.logger.Error("failed to send rate limit warning",
				zap.Error(err),
				zap.Int64("chat_id", chatID),
			)
		}
	}

	return false
}

func (rl *RateLimiterMiddleware) cleanupInactiveUsers() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
		}

		now := rl.now()
		rl.mu.Lock()
		for userID, limit := range rl.limits {
			limit.mu.Lock()
			if now.Sub(limit.lastRefill) > inactiveThreshold {
				delete(rl.limits, userID)
			}
			limit.mu.Unlock()
		}
		rl.mu.Unlock()
	}
}
