package domain

import (
	"context"
	"time"
)

// Ticket is the immutable record of a completed mock purchase. The JSON shape
// matches the list stored under the cinema_tickets key, so tickets written by
// earlier clients of the store remain readable.
type Ticket struct {
	ID           string         `json:"id"`
	MovieID      int            `json:"movieId"`
	MovieTitle   string         `json:"movieTitle"`
	PosterPath   string         `json:"posterPath"`
	BackdropPath string         `json:"backdropPath"`
	Showtime     TicketShowtime `json:"showtime"`
	Seats        []TicketSeat   `json:"seats"`
	TotalPrice   int            `json:"totalPrice"`
	PurchaseDate time.Time      `json:"purchaseDate"`
}

type TicketShowtime struct {
	Date string `json:"date"`
	Time string `json:"time"`
	Hall string `json:"hall"`
	Tech string `json:"tech,omitempty"`
}

type TicketSeat struct {
	Row   string `json:"row"`
	Col   int    `json:"col"`
	Price int    `json:"price"`
}

// TicketRepository is append-only from the application's perspective: tickets
// are prepended (newest first) and never updated or deleted.
type TicketRepository interface {
	GetAll(ctx context.Context) ([]Ticket, error)
	Save(ctx context.Context, ticket Ticket) error
}
