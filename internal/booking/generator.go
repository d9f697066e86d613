package booking

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/metinatakli/cinex-booking/internal/domain"
)

const (
	StandardSeatPrice = 45
	VIPSeatPrice      = 75

	seatRows    = "ABCDEFGH"
	seatsPerRow = 12
	hallCount   = 12

	slotKeepChance = 0.7
	showtimeDays   = 3
)

var dailySlots = []string{"14:30", "17:00", "20:15", "22:45"}

// Generator derives showtimes and seat maps for a booking session. Occupancy
// is re-rolled on every call; there is no caching and no persistence. The
// rand source and clock are injected so tests can pin both.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

func NewGenerator(rng *rand.Rand, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}

	return &Generator{rng: rng, now: now}
}

// NewSeededGenerator seeds from the given value, or from process-wide entropy
// when seed is zero.
func NewSeededGenerator(seed uint64, now func() time.Time) *Generator {
	if seed == 0 {
		seed = rand.Uint64()
	}

	return NewGenerator(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), now)
}

// Showtimes returns the bookable slots for a catalog item over the next three
// days. Each daily slot survives independently with probability 0.7, so an
// empty result is a valid outcome callers must render, not an error.
func (g *Generator) Showtimes(catalogItemID int) []domain.Showtime {
	showtimes := []domain.Showtime{}
	today := g.now()

	for day := 0; day < showtimeDays; day++ {
		date := today.AddDate(0, 0, day)
		dateLabel := date.Format("Monday, 2 Jan")

		for slot, startTime := range dailySlots {
			if g.rng.Float64() >= slotKeepChance {
				continue
			}

			showtimes = append(showtimes, domain.Showtime{
				ID:         fmt.Sprintf("%d-%d-%d", catalogItemID, day, slot),
				Date:       dateLabel,
				Time:       startTime,
				HallName:   fmt.Sprintf("Hall %d", g.rng.IntN(hallCount)+1),
				Technology: g.technology(),
			})
		}
	}

	return showtimes
}

func (g *Generator) technology() domain.Technology {
	p := g.rng.Float64()

	switch {
	case p > 0.8:
		return domain.TechIMAX
	case p > 0.6:
		return domain.Tech3D
	default:
		return domain.Tech2D
	}
}

// SeatMap returns the fixed-shape grid for a showtime: rows A-H, columns 1-12,
// row-major order. Rows G and H are VIP. Middle rows (D, E, F) are occupied
// with probability 0.6, the rest with 0.2. Regenerating for the same showtime
// produces a new occupancy pattern.
func (g *Generator) SeatMap(showtimeID string) []domain.Seat {
	seats := make([]domain.Seat, 0, len(seatRows)*seatsPerRow)

	for rowIdx := 0; rowIdx < len(seatRows); rowIdx++ {
		row := string(seatRows[rowIdx])

		seatType := domain.SeatTypeStandard
		price := StandardSeatPrice
		if row == "G" || row == "H" {
			seatType = domain.SeatTypeVIP
			price = VIPSeatPrice
		}

		occupancyChance := 0.2
		if rowIdx >= 3 && rowIdx <= 5 {
			occupancyChance = 0.6
		}

		for col := 1; col <= seatsPerRow; col++ {
			status := domain.SeatAvailable
			if g.rng.Float64() < occupancyChance {
				status = domain.SeatOccupied
			}

			seats = append(seats, domain.Seat{
				ID:     fmt.Sprintf("%s-%s%d", showtimeID, row, col),
				Row:    row,
				Col:    col,
				Type:   seatType,
				Status: status,
				Price:  price,
			})
		}
	}

	return seats
}

const ticketIDCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ticketID mints a 9-character uppercase alphanumeric code. Collisions are
// accepted; the persisted list is never checked.
func (g *Generator) ticketID() string {
	code := make([]byte, 9)
	for i := range code {
		code[i] = ticketIDCharset[g.rng.IntN(len(ticketIDCharset))]
	}

	return string(code)
}
