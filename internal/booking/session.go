package booking

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/metinatakli/cinex-booking/internal/payment"
)

// Step identifies a stage of the booking flow. Forward transitions are gated
// (seats -> snacks needs a selection, payment -> ticket needs a valid form)
// and steps are never skipped.
type Step string

const (
	StepShowtime Step = "showtime"
	StepSeats    Step = "seats"
	StepSnacks   Step = "snacks"
	StepPayment  Step = "payment"
	StepTicket   Step = "ticket"
)

const persistTimeout = 3 * time.Second

type Options struct {
	Generator       *Generator
	TicketRepo      domain.TicketRepository
	Logger          *slog.Logger
	ProcessingDelay time.Duration
	Now             func() time.Time

	// OnIssued runs after a ticket is issued, outside the session lock.
	OnIssued func(ticket domain.Ticket, email string)
}

// Session holds the in-memory state of one in-progress booking flow for one
// catalog item. Nothing here is persisted until ticket issuance; closing the
// session discards all of it.
type Session struct {
	mu sync.Mutex

	id      string
	movie   domain.CatalogItem
	gen     *Generator
	tickets domain.TicketRepository
	logger  *slog.Logger
	delay   time.Duration
	now     func() time.Time
	issued  func(domain.Ticket, string)

	step       Step
	showtimes  []domain.Showtime
	showtime   *domain.Showtime
	seats      []domain.Seat
	snacks     map[string]int
	form       payment.Form
	email      string
	processing bool
	closed     bool
	ticket     *domain.Ticket
}

func NewSession(movie domain.CatalogItem, opts Options) *Session {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Session{
		id:      uuid.New().String(),
		movie:   movie,
		gen:     opts.Generator,
		tickets: opts.TicketRepo,
		logger:  logger,
		delay:   opts.ProcessingDelay,
		now:     now,
		issued:  opts.OnIssued,
		step:    StepShowtime,
		snacks:  make(map[string]int),
	}

	s.showtimes = s.gen.Showtimes(movie.ID)

	return s
}

func (s *Session) ID() string {
	return s.id
}

// SelectShowtime picks a slot and generates a fresh seat map scoped to it.
// Re-selecting always regenerates: no seat selections survive the switch.
func (s *Session) SelectShowtime(showtimeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrBookingClosed
	}

	if s.step != StepShowtime {
		return domain.ErrInvalidStep
	}

	var showtime *domain.Showtime
	for i := range s.showtimes {
		if s.showtimes[i].ID == showtimeID {
			showtime = &s.showtimes[i]
			break
		}
	}

	if showtime == nil {
		return domain.ErrShowtimeNotFound
	}

	s.showtime = showtime
	s.seats = s.gen.SeatMap(showtime.ID)
	s.step = StepSeats

	return nil
}

// ToggleSeat flips a seat between available and selected. Toggling an
// occupied seat is a no-op, not an error.
func (s *Session) ToggleSeat(seatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrBookingClosed
	}

	if s.step != StepSeats {
		return domain.ErrInvalidStep
	}

	for i := range s.seats {
		if s.seats[i].ID != seatID {
			continue
		}

		switch s.seats[i].Status {
		case domain.SeatAvailable:
			s.seats[i].Status = domain.SeatSelected
		case domain.SeatSelected:
			s.seats[i].Status = domain.SeatAvailable
		}

		return nil
	}

	return domain.ErrSeatNotFound
}

// AdjustSnack adds delta to a snack quantity, clamping at zero. Unknown snack
// ids are tracked but contribute nothing to the subtotal.
func (s *Session) AdjustSnack(snackID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrBookingClosed
	}

	if s.step != StepSnacks {
		return domain.ErrInvalidStep
	}

	next := s.snacks[snackID] + delta
	if next < 0 {
		next = 0
	}
	s.snacks[snackID] = next

	return nil
}

// GoTo moves between adjacent steps. Backward moves (seats -> showtime,
// snacks -> seats, payment -> snacks) are always allowed; forward moves honor
// their gates. Entering the ticket step is only possible through Checkout.
func (s *Session) GoTo(target Step) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrBookingClosed
	}

	if s.processing {
		return domain.ErrCheckoutPending
	}

	switch {
	case s.step == StepSeats && target == StepShowtime,
		s.step == StepSnacks && target == StepSeats,
		s.step == StepPayment && target == StepSnacks:
		s.step = target
		return nil

	case s.step == StepSeats && target == StepSnacks:
		if s.countSelected() == 0 {
			return domain.ErrNoSeatsSelected
		}
		s.step = target
		return nil

	case s.step == StepSnacks && target == StepPayment:
		s.step = target
		return nil
	}

	return domain.ErrInvalidTransition
}

// EditPaymentField feeds one raw input into the card form editor. Inputs that
// break the formatting rules are silently ignored and the previous value kept.
func (s *Session) EditPaymentField(field payment.Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrBookingClosed
	}

	if s.processing {
		return domain.ErrCheckoutPending
	}

	if s.step != StepPayment {
		return domain.ErrInvalidStep
	}

	s.form.Input(field, value)

	return nil
}

// Checkout validates the payment form and, on success, schedules the
// simulated processing delay. The delayed continuation is not cancellable;
// it re-checks session liveness before touching any state, so a session
// closed while processing never issues a ticket.
func (s *Session) Checkout(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrBookingClosed
	}

	if s.step != StepPayment {
		return domain.ErrInvalidStep
	}

	if s.processing {
		return domain.ErrCheckoutPending
	}

	if !s.form.Validate(s.now()) {
		return domain.ErrInvalidPayment
	}

	s.processing = true
	s.email = email

	time.AfterFunc(s.delay, s.completeCheckout)

	return nil
}

func (s *Session) completeCheckout() {
	s.mu.Lock()

	if s.closed || !s.processing || s.step != StepPayment {
		s.mu.Unlock()
		return
	}

	ticket := s.issueTicket()

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	// Persistence is best-effort: a failed write is logged and swallowed, and
	// the flow still reaches the ticket step.
	if err := s.tickets.Save(ctx, ticket); err != nil {
		s.logger.Error("failed to persist ticket", "ticket_id", ticket.ID, "error", err)
	}

	s.ticket = &ticket
	s.step = StepTicket
	s.processing = false

	issued, email := s.issued, s.email
	s.mu.Unlock()

	if issued != nil {
		issued(ticket, email)
	}
}

// issueTicket assembles the immutable purchase record. Selected seats are
// snapshotted in seat-map order; concession cost folds into TotalPrice
// without a line-item breakdown. Zero selected seats is tolerated and yields
// an empty seat list. Callers must hold s.mu.
func (s *Session) issueTicket() domain.Ticket {
	var seats []domain.TicketSeat
	for _, seat := range s.seats {
		if seat.Status == domain.SeatSelected {
			seats = append(seats, domain.TicketSeat{Row: seat.Row, Col: seat.Col, Price: seat.Price})
		}
	}

	ticket := domain.Ticket{
		ID:           s.gen.ticketID(),
		MovieID:      s.movie.ID,
		MovieTitle:   s.movie.Title,
		PosterPath:   s.movie.PosterPath,
		BackdropPath: s.movie.BackdropPath,
		Seats:        seats,
		TotalPrice:   s.seatsSubtotal() + s.snacksSubtotal(),
		PurchaseDate: s.now(),
	}

	if s.showtime != nil {
		ticket.Showtime = domain.TicketShowtime{
			Date: s.showtime.Date,
			Time: s.showtime.Time,
			Hall: s.showtime.HallName,
			Tech: string(s.showtime.Technology),
		}
	}

	return ticket
}

// Close marks the session dead. A pending checkout continuation observes the
// flag and leaves the discarded state alone.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
}

func (s *Session) countSelected() int {
	n := 0
	for _, seat := range s.seats {
		if seat.Status == domain.SeatSelected {
			n++
		}
	}

	return n
}

func (s *Session) seatsSubtotal() int {
	total := 0
	for _, seat := range s.seats {
		if seat.Status == domain.SeatSelected {
			total += seat.Price
		}
	}

	return total
}

func (s *Session) snacksSubtotal() int {
	total := 0
	for id, qty := range s.snacks {
		if snack := domain.SnackByID(id); snack != nil {
			total += snack.Price * qty
		}
	}

	return total
}

// Snapshot is a consistent copy of the session state for rendering.
type Snapshot struct {
	ID              string
	Step            Step
	Movie           domain.CatalogItem
	Showtimes       []domain.Showtime
	Showtime        *domain.Showtime
	Seats           []domain.Seat
	SnackQuantities map[string]int
	SeatsSubtotal   int
	SnacksSubtotal  int
	TotalPrice      int
	Form            payment.Form
	Processing      bool
	Ticket          *domain.Ticket
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:              s.id,
		Step:            s.step,
		Movie:           s.movie,
		Showtimes:       make([]domain.Showtime, len(s.showtimes)),
		Seats:           make([]domain.Seat, len(s.seats)),
		SnackQuantities: make(map[string]int, len(s.snacks)),
		SeatsSubtotal:   s.seatsSubtotal(),
		SnacksSubtotal:  s.snacksSubtotal(),
		Form:            s.form,
		Processing:      s.processing,
	}

	copy(snap.Showtimes, s.showtimes)
	copy(snap.Seats, s.seats)

	for id, qty := range s.snacks {
		snap.SnackQuantities[id] = qty
	}

	snap.TotalPrice = snap.SeatsSubtotal + snap.SnacksSubtotal

	if s.showtime != nil {
		showtime := *s.showtime
		snap.Showtime = &showtime
	}

	if s.ticket != nil {
		ticket := *s.ticket
		snap.Ticket = &ticket
	}

	return snap
}

// SelectedSeats returns the selected subset in seat-map order.
func (s *Session) SelectedSeats() []domain.Seat {
	s.mu.Lock()
	defer s.mu.Unlock()

	var selected []domain.Seat
	for _, seat := range s.seats {
		if seat.Status == domain.SeatSelected {
			selected = append(selected, seat)
		}
	}

	return selected
}

// SeatsSubtotal returns the sum of prices over the selected seats.
func (s *Session) SeatsSubtotal() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.seatsSubtotal()
}

// SnacksSubtotal returns quantity times unit price over the snack catalog.
func (s *Session) SnacksSubtotal() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snacksSubtotal()
}
