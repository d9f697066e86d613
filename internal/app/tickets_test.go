package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/metinatakli/cinex-booking/api"
	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/metinatakli/cinex-booking/internal/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TicketsTestSuite struct {
	suite.Suite
	app        *Application
	ticketRepo *mocks.MockTicketRepo
}

func (s *TicketsTestSuite) SetupTest() {
	s.ticketRepo = new(mocks.MockTicketRepo)

	s.app = newTestApplication(func(a *Application) {
		a.ticketRepo = s.ticketRepo
	})
}

func TestTicketsSuite(t *testing.T) {
	suite.Run(t, new(TicketsTestSuite))
}

func (s *TicketsTestSuite) TestGetMyTicketsHandler() {
	storedTickets := []domain.Ticket{
		{
			ID:           "NEW111NEW",
			MovieID:      42,
			MovieTitle:   "Blade Runner",
			Showtime:     domain.TicketShowtime{Date: "Monday, 16 Mar", Time: "20:15", Hall: "Hall 3", Tech: "IMAX"},
			Seats:        []domain.TicketSeat{{Row: "G", Col: 5, Price: 75}},
			TotalPrice:   75,
			PurchaseDate: time.Date(2026, time.March, 16, 20, 0, 0, 0, time.UTC),
		},
		{
			ID:         "OLD000OLD",
			MovieID:    7,
			MovieTitle: "Alien",
			TotalPrice: 45,
		},
	}

	tests := []struct {
		name       string
		setupMocks func()
		wantCount  int
	}{
		{
			name: "should return empty list when the store has no tickets",
			setupMocks: func() {
				s.ticketRepo.On("GetAll", mock.Anything).Return([]domain.Ticket{}, nil)
			},
			wantCount: 0,
		},
		{
			name: "should degrade to empty list when the store fails",
			setupMocks: func() {
				s.ticketRepo.On("GetAll", mock.Anything).Return(nil, errors.New("store is down"))
			},
			wantCount: 0,
		},
		{
			name: "should return stored tickets newest first",
			setupMocks: func() {
				s.ticketRepo.On("GetAll", mock.Anything).Return(storedTickets, nil)
			},
			wantCount: 2,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			tt.setupMocks()

			w, r := executeRequest(s.T(), s.app, http.MethodGet, "/tickets", nil, "")
			s.app.GetMyTicketsHandler(w, r)

			s.Require().Equal(http.StatusOK, w.Code)

			var resp api.TicketListResponse
			s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))

			s.Require().Len(resp.Tickets, tt.wantCount)

			if tt.wantCount == 2 {
				s.Equal("NEW111NEW", resp.Tickets[0].Id)
				s.Equal("₪75.00", resp.Tickets[0].TotalPriceFormatted)
				s.Equal("IMAX", resp.Tickets[0].Showtime.Tech)
				s.Equal("OLD000OLD", resp.Tickets[1].Id)
			}
		})
	}
}
