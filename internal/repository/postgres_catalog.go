package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinex-booking/internal/domain"
)

// PostgresCatalogRepository adapts the external movie metadata catalog. The
// booking flow only ever reads the display fields it stamps onto showtimes
// and tickets.
type PostgresCatalogRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCatalogRepository(db *pgxpool.Pool) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{
		db: db,
	}
}

func (p *PostgresCatalogRepository) GetById(ctx context.Context, id int) (*domain.CatalogItem, error) {
	query := `SELECT id, title, poster_path, backdrop_path, media_type
		FROM catalog_items
		WHERE id = $1`

	var item domain.CatalogItem

	err := p.db.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.Title,
		&item.PosterPath,
		&item.BackdropPath,
		&item.MediaType,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &item, nil
}
