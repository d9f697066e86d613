package domain

type Technology string

const (
	Tech2D   Technology = "2D"
	Tech3D   Technology = "3D"
	TechIMAX Technology = "IMAX"
)

// Showtime is one bookable screening slot. Showtimes are generated in bulk
// when a booking session starts and are never persisted.
type Showtime struct {
	ID         string
	Date       string
	Time       string
	HallName   string
	Technology Technology
}
