package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/redis/go-redis/v9"
)

// TicketListKey is the single key holding the persisted ticket list. The
// watch-list lives under its own key and is never touched here.
const TicketListKey = "cinema_tickets"

// RedisTicketRepository stores the whole ticket list as one JSON array,
// newest first. Saving is a read-modify-write with no locking; last-write-wins
// is accepted for this single-agent store.
type RedisTicketRepository struct {
	rdb    redis.UniversalClient
	logger *slog.Logger
}

func NewRedisTicketRepository(rdb redis.UniversalClient, logger *slog.Logger) *RedisTicketRepository {
	return &RedisTicketRepository{
		rdb:    rdb,
		logger: logger,
	}
}

// GetAll returns the persisted list, newest first. A missing key or an
// unparseable value degrades to an empty list rather than an error; only
// transport failures surface.
func (r *RedisTicketRepository) GetAll(ctx context.Context) ([]domain.Ticket, error) {
	data, err := r.rdb.Get(ctx, TicketListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.Ticket{}, nil
		}

		return nil, err
	}

	var tickets []domain.Ticket
	if err := json.Unmarshal(data, &tickets); err != nil {
		r.logger.Warn("ticket list is corrupt, treating as empty", "key", TicketListKey, "error", err)
		return []domain.Ticket{}, nil
	}

	return tickets, nil
}

// Save prepends the ticket and writes the whole list back.
func (r *RedisTicketRepository) Save(ctx context.Context, ticket domain.Ticket) error {
	existing, err := r.GetAll(ctx)
	if err != nil {
		return err
	}

	updated := append([]domain.Ticket{ticket}, existing...)

	data, err := json.Marshal(updated)
	if err != nil {
		return err
	}

	return r.rdb.Set(ctx, TicketListKey, data, 0).Err()
}
