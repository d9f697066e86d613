package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/cinex-booking/api"
	"github.com/metinatakli/cinex-booking/internal/booking"
	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/metinatakli/cinex-booking/internal/payment"
	"github.com/shopspring/decimal"
)

func (app *Application) CreateBookingHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreateBookingRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	token := app.sessionManager.Token(r.Context())

	if app.bookings.Get(token) != nil {
		logger.Warn("booking creation attempt rejected: a booking already exists for this session")
		app.badRequestResponse(w, r, fmt.Errorf("cannot start a new booking while one is already in progress"))
		return
	}

	movie, err := app.catalogRepo.GetById(r.Context(), input.MovieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, fmt.Errorf("movie %d not found in the catalog", input.MovieId))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	session := booking.NewSession(*movie, booking.Options{
		Generator:       booking.NewSeededGenerator(app.config.Booking.Seed, nil),
		TicketRepo:      app.ticketRepo,
		Logger:          logger,
		ProcessingDelay: app.config.Booking.ProcessingDelay,
		OnIssued:        app.ticketIssued,
	})

	app.bookings.Put(token, session)

	resp := api.BookingResponse{
		Booking: toApiBooking(session.Snapshot()),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetBookingHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := app.currentBooking(w, r)
	if !ok {
		return
	}

	resp := api.BookingResponse{
		Booking: toApiBooking(session.Snapshot()),
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// DeleteBookingHandler abandons the in-progress booking. All in-memory state
// is discarded; a pending checkout continuation finds the session closed and
// never issues.
func (app *Application) DeleteBookingHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := app.currentBooking(w, r)
	if !ok {
		return
	}

	session.Close()
	app.bookings.Delete(app.sessionManager.Token(r.Context()))

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) SelectShowtimeHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := app.currentBooking(w, r)
	if !ok {
		return
	}

	var input api.SelectShowtimeRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	err = session.SelectShowtime(input.ShowtimeId)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	app.writeBooking(w, r, session)
}

func (app *Application) ToggleSeatHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := app.currentBooking(w, r)
	if !ok {
		return
	}

	seatID := chi.URLParam(r, "seatId")
	if seatID == "" {
		app.badRequestResponse(w, r, fmt.Errorf("seat ID must not be empty"))
		return
	}

	err := session.ToggleSeat(seatID)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	app.writeBooking(w, r, session)
}

func (app *Application) AdjustSnackHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := app.currentBooking(w, r)
	if !ok {
		return
	}

	var input api.AdjustSnackRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	err = session.AdjustSnack(input.SnackId, input.Delta)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	app.writeBooking(w, r, session)
}

func (app *Application) StepHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := app.currentBooking(w, r)
	if !ok {
		return
	}

	var input api.StepRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	err = session.GoTo(booking.Step(input.Target))
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	app.writeBooking(w, r, session)
}

func (app *Application) PaymentInputHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := app.currentBooking(w, r)
	if !ok {
		return
	}

	var input api.PaymentInputRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	err = session.EditPaymentField(payment.Field(input.Field), input.Value)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	app.writeBooking(w, r, session)
}

// CheckoutHandler validates the payment form and starts the simulated
// processing delay. A successful response only means "processing"; the
// ticket shows up on the booking once the delay elapses.
func (app *Application) CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	session, ok := app.currentBooking(w, r)
	if !ok {
		return
	}

	var input api.CheckoutRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	email := ""
	if input.Email != nil {
		email = *input.Email
	}

	err = session.Checkout(email)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPayment) {
			logger.Warn("checkout rejected: payment details failed validation")
			app.validationErrorResponse(w, r, toApiFormErrors(session.Snapshot().Form.Errors))
			return
		}

		app.bookingErrorResponse(w, r, err)
		return
	}

	resp := api.BookingResponse{
		Booking: toApiBooking(session.Snapshot()),
	}

	err = app.writeJSON(w, http.StatusAccepted, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// ticketIssued runs outside the session lock after issuance: it records
// metrics and, when the guest left an address, sends the confirmation mail.
func (app *Application) ticketIssued(ticket domain.Ticket, email string) {
	ctx := context.Background()

	if app.ticketsIssued != nil {
		app.ticketsIssued.Add(ctx, 1)
	}
	if app.ticketTotals != nil {
		app.ticketTotals.Record(ctx, int64(ticket.TotalPrice))
	}

	if email == "" {
		return
	}

	defer func() {
		if err := recover(); err != nil {
			app.logger.Error("panic occurred during sending ticket confirmation mail", "panic", err)
		}
	}()

	seatLabels := make([]string, len(ticket.Seats))
	for i, seat := range ticket.Seats {
		seatLabels[i] = fmt.Sprintf("%s%d", seat.Row, seat.Col)
	}

	data := map[string]any{
		"ticketId":   ticket.ID,
		"movieTitle": ticket.MovieTitle,
		"date":       ticket.Showtime.Date,
		"time":       ticket.Showtime.Time,
		"hall":       ticket.Showtime.Hall,
		"seats":      strings.Join(seatLabels, ", "),
		"total":      formatPrice(ticket.TotalPrice),
	}

	err := app.mailer.Send(email, "ticket_confirmation.tmpl", data)
	if err != nil {
		app.logger.Error("failed to send ticket confirmation email", "error", err)
	}
}

func (app *Application) currentBooking(w http.ResponseWriter, r *http.Request) (*booking.Session, bool) {
	token := app.sessionManager.Token(r.Context())

	session := app.bookings.Get(token)
	if session == nil {
		app.notFoundResponseWithErr(w, r, fmt.Errorf("there is no booking in progress for the current session"))
		return nil, false
	}

	return session, true
}

func (app *Application) writeBooking(w http.ResponseWriter, r *http.Request, session *booking.Session) {
	resp := api.BookingResponse{
		Booking: toApiBooking(session.Snapshot()),
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) bookingErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrShowtimeNotFound),
		errors.Is(err, domain.ErrSeatNotFound),
		errors.Is(err, domain.ErrBookingClosed):
		app.notFoundResponseWithErr(w, r, err)

	case errors.Is(err, domain.ErrInvalidStep),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrNoSeatsSelected),
		errors.Is(err, domain.ErrCheckoutPending):
		app.editConflictResponseWithErr(w, r, err)

	default:
		app.serverErrorResponse(w, r, err)
	}
}

func formatPrice(amount int) string {
	return "₪" + decimal.NewFromInt(int64(amount)).StringFixed(2)
}

func toApiBooking(snap booking.Snapshot) api.Booking {
	b := api.Booking{
		Step: string(snap.Step),
		Movie: api.MovieSummary{
			Id:           snap.Movie.ID,
			Title:        snap.Movie.Title,
			PosterPath:   snap.Movie.PosterPath,
			BackdropPath: snap.Movie.BackdropPath,
			MediaType:    string(snap.Movie.MediaType),
		},
		Showtimes:               toApiShowtimes(snap.Showtimes),
		SeatRows:                toApiSeatRows(snap.Seats),
		Snacks:                  toApiSnackLines(snap.SnackQuantities),
		SeatsSubtotal:           snap.SeatsSubtotal,
		SeatsSubtotalFormatted:  formatPrice(snap.SeatsSubtotal),
		SnacksSubtotal:          snap.SnacksSubtotal,
		SnacksSubtotalFormatted: formatPrice(snap.SnacksSubtotal),
		TotalPrice:              snap.TotalPrice,
		TotalPriceFormatted:     formatPrice(snap.TotalPrice),
		Processing:              snap.Processing,
	}

	if snap.Showtime != nil {
		showtime := toApiShowtime(*snap.Showtime)
		b.SelectedShowtime = &showtime
	}

	if snap.Step == booking.StepPayment {
		b.PaymentForm = &api.PaymentForm{
			CardNumber: snap.Form.CardNumber,
			Expiry:     snap.Form.Expiry,
			Cvv:        snap.Form.CVV,
			Errors:     toApiPaymentFormErrors(snap.Form.Errors),
		}
	}

	if snap.Ticket != nil {
		ticket := toApiTicket(*snap.Ticket)
		b.Ticket = &ticket
	}

	return b
}

func toApiShowtime(showtime domain.Showtime) api.Showtime {
	return api.Showtime{
		Id:         showtime.ID,
		Date:       showtime.Date,
		Time:       showtime.Time,
		HallName:   showtime.HallName,
		Technology: string(showtime.Technology),
	}
}

func toApiShowtimes(showtimes []domain.Showtime) []api.Showtime {
	apiShowtimes := make([]api.Showtime, len(showtimes))

	for i, v := range showtimes {
		apiShowtimes[i] = toApiShowtime(v)
	}

	return apiShowtimes
}

func toApiSeatRows(seats []domain.Seat) []api.SeatRow {
	if len(seats) == 0 {
		return nil
	}

	// Seats arrive in row-major generation order, so one pass suffices.
	var seatRows []api.SeatRow
	currentRow := api.SeatRow{Row: seats[0].Row}

	for _, v := range seats {
		if v.Row != currentRow.Row {
			seatRows = append(seatRows, currentRow)
			currentRow = api.SeatRow{Row: v.Row}
		}

		currentRow.Seats = append(currentRow.Seats, api.Seat{
			Id:             v.ID,
			Row:            v.Row,
			Column:         v.Col,
			Type:           string(v.Type),
			Status:         string(v.Status),
			Price:          v.Price,
			PriceFormatted: formatPrice(v.Price),
		})
	}

	seatRows = append(seatRows, currentRow)

	return seatRows
}

func toApiSnackLines(quantities map[string]int) []api.SnackLine {
	lines := make([]api.SnackLine, len(domain.Snacks))

	for i, snack := range domain.Snacks {
		lines[i] = api.SnackLine{
			Id:             snack.ID,
			Name:           snack.Name,
			Icon:           string(snack.Icon),
			Price:          snack.Price,
			PriceFormatted: formatPrice(snack.Price),
			Quantity:       quantities[snack.ID],
		}
	}

	return lines
}

func toApiPaymentFormErrors(errs payment.Errors) api.PaymentFormErrors {
	return api.PaymentFormErrors{
		CardNumber: errs.CardNumber,
		Expiry:     errs.Expiry,
		Cvv:        errs.CVV,
	}
}

func toApiFormErrors(errs payment.Errors) []api.ValidationError {
	var apiErrors []api.ValidationError

	if errs.CardNumber != "" {
		apiErrors = append(apiErrors, api.ValidationError{Field: string(payment.FieldCardNumber), Issue: errs.CardNumber})
	}
	if errs.Expiry != "" {
		apiErrors = append(apiErrors, api.ValidationError{Field: string(payment.FieldExpiry), Issue: errs.Expiry})
	}
	if errs.CVV != "" {
		apiErrors = append(apiErrors, api.ValidationError{Field: string(payment.FieldCVV), Issue: errs.CVV})
	}

	return apiErrors
}

func toApiTicket(ticket domain.Ticket) api.Ticket {
	seats := make([]api.TicketSeat, len(ticket.Seats))
	for i, seat := range ticket.Seats {
		seats[i] = api.TicketSeat{
			Row:   seat.Row,
			Col:   seat.Col,
			Price: seat.Price,
		}
	}

	return api.Ticket{
		Id:           ticket.ID,
		MovieId:      ticket.MovieID,
		MovieTitle:   ticket.MovieTitle,
		PosterPath:   ticket.PosterPath,
		BackdropPath: ticket.BackdropPath,
		Showtime: api.TicketShowtime{
			Date: ticket.Showtime.Date,
			Time: ticket.Showtime.Time,
			Hall: ticket.Showtime.Hall,
			Tech: ticket.Showtime.Tech,
		},
		Seats:               seats,
		TotalPrice:          ticket.TotalPrice,
		TotalPriceFormatted: formatPrice(ticket.TotalPrice),
		PurchaseDate:        ticket.PurchaseDate,
	}
}
