package repository

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/metinatakli/cinex-booking/internal/mocks"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RedisTicketRepoTestSuite struct {
	suite.Suite
	redisClient *mocks.MockRedisClient
	repo        *RedisTicketRepository
}

func (s *RedisTicketRepoTestSuite) SetupTest() {
	s.redisClient = new(mocks.MockRedisClient)
	s.repo = NewRedisTicketRepository(s.redisClient, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRedisTicketRepoSuite(t *testing.T) {
	suite.Run(t, new(RedisTicketRepoTestSuite))
}

func testTicket(id string) domain.Ticket {
	return domain.Ticket{
		ID:         id,
		MovieID:    42,
		MovieTitle: "Blade Runner",
		Showtime:   domain.TicketShowtime{Date: "Monday, 16 Mar", Time: "20:15", Hall: "Hall 3"},
		Seats: []domain.TicketSeat{
			{Row: "A", Col: 1, Price: 45},
		},
		TotalPrice:   45,
		PurchaseDate: time.Date(2026, time.March, 16, 20, 0, 0, 0, time.UTC),
	}
}

func (s *RedisTicketRepoTestSuite) TestGetAll() {
	stored, err := json.Marshal([]domain.Ticket{testTicket("AAA111BBB"), testTicket("CCC222DDD")})
	s.Require().NoError(err)

	tests := []struct {
		name        string
		setupMocks  func()
		wantTickets []domain.Ticket
		wantErr     bool
	}{
		{
			name: "should return empty list when key is missing",
			setupMocks: func() {
				s.redisClient.On("Get", mock.Anything, TicketListKey).
					Return(redis.NewStringResult("", redis.Nil))
			},
			wantTickets: []domain.Ticket{},
		},
		{
			name: "should return empty list when stored value is corrupt",
			setupMocks: func() {
				s.redisClient.On("Get", mock.Anything, TicketListKey).
					Return(redis.NewStringResult("{not json", nil))
			},
			wantTickets: []domain.Ticket{},
		},
		{
			name: "should surface transport errors",
			setupMocks: func() {
				s.redisClient.On("Get", mock.Anything, TicketListKey).
					Return(redis.NewStringResult("", mocks.MockRedisError{Msg: "connection refused"}))
			},
			wantErr: true,
		},
		{
			name: "should return the stored list in order",
			setupMocks: func() {
				s.redisClient.On("Get", mock.Anything, TicketListKey).
					Return(redis.NewStringResult(string(stored), nil))
			},
			wantTickets: []domain.Ticket{testTicket("AAA111BBB"), testTicket("CCC222DDD")},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			tt.setupMocks()

			tickets, err := s.repo.GetAll(context.Background())

			if tt.wantErr {
				s.Error(err)
				return
			}

			s.Require().NoError(err)
			s.Equal(tt.wantTickets, tickets)
		})
	}
}

func (s *RedisTicketRepoTestSuite) TestSavePrependsNewestTicket() {
	stored, err := json.Marshal([]domain.Ticket{testTicket("OLD000OLD")})
	s.Require().NoError(err)

	s.redisClient.On("Get", mock.Anything, TicketListKey).
		Return(redis.NewStringResult(string(stored), nil))

	s.redisClient.On("Set", mock.Anything, TicketListKey, mock.MatchedBy(func(value []byte) bool {
		var tickets []domain.Ticket
		if err := json.Unmarshal(value, &tickets); err != nil {
			return false
		}

		return len(tickets) == 2 && tickets[0].ID == "NEW111NEW" && tickets[1].ID == "OLD000OLD"
	}), time.Duration(0)).Return(redis.NewStatusResult("OK", nil))

	err = s.repo.Save(context.Background(), testTicket("NEW111NEW"))

	s.Require().NoError(err)
	s.redisClient.AssertExpectations(s.T())
}

func (s *RedisTicketRepoTestSuite) TestSaveStartsFreshListWhenKeyMissing() {
	s.redisClient.On("Get", mock.Anything, TicketListKey).
		Return(redis.NewStringResult("", redis.Nil))

	s.redisClient.On("Set", mock.Anything, TicketListKey, mock.MatchedBy(func(value []byte) bool {
		var tickets []domain.Ticket
		if err := json.Unmarshal(value, &tickets); err != nil {
			return false
		}

		return len(tickets) == 1 && tickets[0].ID == "NEW111NEW"
	}), time.Duration(0)).Return(redis.NewStatusResult("OK", nil))

	err := s.repo.Save(context.Background(), testTicket("NEW111NEW"))

	s.Require().NoError(err)
	s.redisClient.AssertExpectations(s.T())
}

func (s *RedisTicketRepoTestSuite) TestSaveSurfacesReadFailure() {
	s.redisClient.On("Get", mock.Anything, TicketListKey).
		Return(redis.NewStringResult("", mocks.MockRedisError{Msg: "connection refused"}))

	err := s.repo.Save(context.Background(), testTicket("NEW111NEW"))

	assert.Error(s.T(), err)
	s.redisClient.AssertNotCalled(s.T(), "Set")
}
