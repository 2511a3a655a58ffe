//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"experience-booking/internal/handler/api"
	resdto "experience-booking/internal/handler/dto/response"
	"experience-booking/internal/usecase/commands"
	"experience-booking/internal/usecase/queries"
	"experience-booking/tests/common/builder"
	"experience-booking/tests/common/httptest"
	commandsmock "experience-booking/tests/mock/commands"
	queriesmock "experience-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/bookings", s.handler.CreateBooking)
	s.router.GET("/bookings/:id", s.handler.GetBooking)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func sampleResult(input commands.CreateBookingInput) *commands.CreateBookingResult {
	id := uuid.New()
	return &commands.CreateBookingResult{
		Booking: &queries.BookingView{
			ID:           id,
			ExperienceID: input.ExperienceID,
			SlotID:       input.SlotID,
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			Email:        input.Email,
			Phone:        input.Phone,
			Participants: input.Participants,
			Subtotal:     5000,
			TotalPrice:   5000,
		},
		ConfirmationID: id,
	}
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"

	s.Run("success", func() {
		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		input := reqBody.ToInput()
		result := sampleResult(input)

		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), input, gomock.Nil()).
			Return(result, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.CreateBookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &response)
		s.Equal(result.ConfirmationID, response.ConfirmationID)
		s.Equal(result.Booking.ID, response.Booking.ID)
	})

	s.Run("passes idempotency key header", func() {
		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		key := uuid.New()
		result := sampleResult(reqBody.ToInput())

		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), reqBody.ToInput(), &key).
			Return(result, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, key.String())
		s.Equal(http.StatusCreated, w.Code)
	})

	s.Run("replayed request returns 200", func() {
		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		key := uuid.New()
		result := sampleResult(reqBody.ToInput())
		result.IsReplayed = true

		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), reqBody.ToInput(), &key).
			Return(result, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, key.String())
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("malformed idempotency key", func() {
		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "not-a-uuid")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid idempotency key")
	})

	s.Run("validation failure short-circuits before the use case", func() {
		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		reqBody.Email = "nope"
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error mapping", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
			expectMsg  string
		}{
			{name: "experience not found", err: commands.ErrExperienceNotFound, expectCode: http.StatusNotFound, expectMsg: "Experience not found"},
			{name: "invalid slot", err: commands.ErrInvalidSlot, expectCode: http.StatusBadRequest, expectMsg: "Invalid slot"},
			{name: "insufficient capacity", err: commands.ErrInsufficientCapacity, expectCode: http.StatusConflict, expectMsg: "Not enough spots"},
			{name: "duplicate booking", err: commands.ErrDuplicateBooking, expectCode: http.StatusConflict, expectMsg: "Duplicate booking"},
			{name: "in progress", err: commands.ErrIdempotencyInProgress, expectCode: http.StatusConflict, expectMsg: "being processed"},
			{name: "domain validation", err: commands.ErrDomainValidation, expectCode: http.StatusUnprocessableEntity, expectMsg: "Domain validation"},
			{name: "storage failure", err: commands.ErrDatabaseOperationFailed, expectCode: http.StatusInternalServerError, expectMsg: "Internal server error"},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
				s.mockCommands.EXPECT().
					CreateBooking(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.err)

				w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), w, tc.expectCode, tc.expectMsg)
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	s.Run("success", func() {
		view := &queries.BookingView{ID: uuid.New(), Participants: 2, Subtotal: 5000, TotalPrice: 5000}

		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), view.ID).
			Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, "")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &response)
		s.Equal(view.ID, response.ID)
	})

	s.Run("not found", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), id).
			Return(nil, queries.ErrBookingNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Booking not found")
	})

	s.Run("malformed id", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/abc", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid booking ID")
	})
}
