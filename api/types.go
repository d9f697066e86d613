// Package api defines the transport types of the booking HTTP API.
package api

import "time"

// ErrorResponse defines a standard error payload.
type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ValidationError describes one field-level validation failure.
type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// ValidationErrorResponse is returned when request or form validation fails.
type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type CreateBookingRequest struct {
	MovieId int `json:"movieId" validate:"required,gt=0"`
}

type SelectShowtimeRequest struct {
	ShowtimeId string `json:"showtimeId" validate:"required,max=64"`
}

type StepRequest struct {
	Target string `json:"target" validate:"required,booking_step"`
}

type AdjustSnackRequest struct {
	SnackId string `json:"snackId" validate:"required,max=32"`
	Delta   int    `json:"delta"`
}

type PaymentInputRequest struct {
	Field string `json:"field" validate:"required,card_field"`
	Value string `json:"value" validate:"max=32"`
}

type CheckoutRequest struct {
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

type MovieSummary struct {
	Id           int    `json:"id"`
	Title        string `json:"title"`
	PosterPath   string `json:"posterPath,omitempty"`
	BackdropPath string `json:"backdropPath,omitempty"`
	MediaType    string `json:"mediaType,omitempty"`
}

type Showtime struct {
	Id         string `json:"id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	HallName   string `json:"hallName"`
	Technology string `json:"technology,omitempty"`
}

type Seat struct {
	Id             string `json:"id"`
	Row            string `json:"row"`
	Column         int    `json:"column"`
	Type           string `json:"type"`
	Status         string `json:"status"`
	Price          int    `json:"price"`
	PriceFormatted string `json:"priceFormatted"`
}

type SeatRow struct {
	Row   string `json:"row"`
	Seats []Seat `json:"seats"`
}

type SnackLine struct {
	Id             string `json:"id"`
	Name           string `json:"name"`
	Icon           string `json:"icon"`
	Price          int    `json:"price"`
	PriceFormatted string `json:"priceFormatted"`
	Quantity       int    `json:"quantity"`
}

type PaymentFormErrors struct {
	CardNumber string `json:"cardNumber,omitempty"`
	Expiry     string `json:"expiry,omitempty"`
	Cvv        string `json:"cvv,omitempty"`
}

type PaymentForm struct {
	CardNumber string            `json:"cardNumber"`
	Expiry     string            `json:"expiry"`
	Cvv        string            `json:"cvv"`
	Errors     PaymentFormErrors `json:"errors"`
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

type Ticket struct {
	Id                  string         `json:"id"`
	MovieId             int            `json:"movieId"`
	MovieTitle          string         `json:"movieTitle"`
	PosterPath          string         `json:"posterPath,omitempty"`
	BackdropPath        string         `json:"backdropPath,omitempty"`
	Showtime            TicketShowtime `json:"showtime"`
	Seats               []TicketSeat   `json:"seats"`
	TotalPrice          int            `json:"totalPrice"`
	TotalPriceFormatted string         `json:"totalPriceFormatted"`
	PurchaseDate        time.Time      `json:"purchaseDate"`
}

type Booking struct {
	Step                     string       `json:"step"`
	Movie                    MovieSummary `json:"movie"`
	Showtimes                []Showtime   `json:"showtimes"`
	SelectedShowtime         *Showtime    `json:"selectedShowtime,omitempty"`
	SeatRows                 []SeatRow    `json:"seatRows,omitempty"`
	Snacks                   []SnackLine  `json:"snacks,omitempty"`
	PaymentForm              *PaymentForm `json:"paymentForm,omitempty"`
	SeatsSubtotal            int          `json:"seatsSubtotal"`
	SeatsSubtotalFormatted   string       `json:"seatsSubtotalFormatted"`
	SnacksSubtotal           int          `json:"snacksSubtotal"`
	SnacksSubtotalFormatted  string       `json:"snacksSubtotalFormatted"`
	TotalPrice               int          `json:"totalPrice"`
	TotalPriceFormatted      string       `json:"totalPriceFormatted"`
	Processing               bool         `json:"processing"`
	Ticket                   *Ticket      `json:"ticket,omitempty"`
}

type BookingResponse struct {
	Booking Booking `json:"booking"`
}

type TicketListResponse struct {
	Tickets []Ticket `json:"tickets"`
}

type WatchlistResponse struct {
	Movies []MovieSummary `json:"movies"`
}
