package domain

import "context"

type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// CatalogItem is the projection of the external movie metadata catalog the
// booking flow consumes. Only the fields stamped onto showtimes and tickets
// are carried; the catalog itself is owned by another service.
type CatalogItem struct {
	ID           int
	Title        string
	PosterPath   string
	BackdropPath string
	MediaType    MediaType
}

type CatalogRepository interface {
	GetById(ctx context.Context, id int) (*CatalogItem, error)
}
