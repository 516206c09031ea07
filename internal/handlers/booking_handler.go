package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/melvink/api/internal/middleware"
	"github.com/melvink/api/internal/models"
	"github.com/melvink/api/internal/services"
)

type createBookingRequest struct {
	services.CreateBookingInput
	// client profile fields captured on the same form
	PreferredContact  string `json:"preferred_contact"`
	Allergies         string `json:"allergies"`
	MedicalConditions string `json:"medical_conditions"`
	PreviousTattoos   string `json:"previous_tattoos"`
}

// CreateBookingHandler runs the whole submission flow: upsert the client
// profile, create the booking, then link the booking into the client's
// history. The history link is best-effort; the booking stands without it.
func CreateBookingHandler(bookingService *services.BookingService, clientService *services.ClientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		client, err := clientService.CreateOrUpdateClient(c.Request.Context(), services.ClientInput{
			Name:              req.Name,
			Email:             req.Email,
			Phone:             req.Phone,
			PreferredContact:  req.PreferredContact,
			Allergies:         req.Allergies,
			MedicalConditions: req.MedicalConditions,
			PreviousTattoos:   req.PreviousTattoos,
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		input := req.CreateBookingInput
		input.ClientID = &client.ID
		booking, err := bookingService.CreateBooking(c.Request.Context(), input)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		if _, err := clientService.AddBookingToHistory(c.Request.Context(), client.ID, booking.ID); err != nil {
			_ = c.Error(err)
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(booking, "Booking request submitted"))
	}
}

func MyBookingsHandler(bookingService *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		bookings, err := bookingService.GetUserBookings(c.Request.Context(), user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(bookings, ""))
	}
}

func parseBookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid booking ID format"))
		return uuid.Nil, false
	}
	return id, true
}

func CancelBookingHandler(bookingService *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseBookingID(c)
		if !ok {
			return
		}
		var body struct {
			Reason string `json:"reason"`
		}
		_ = c.ShouldBindJSON(&body)

		booking, err := bookingService.CancelBooking(c.Request.Context(), id, body.Reason)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(booking, "Booking cancelled"))
	}
}

func RequestModificationHandler(bookingService *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseBookingID(c)
		if !ok {
			return
		}
		var body struct {
			Request string `json:"request"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		booking, err := bookingService.RequestModification(c.Request.Context(), id, body.Request)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(booking, "Modification requested"))
	}
}

func GetAllBookingsHandler(bookingService *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := bookingService.GetAllBookings(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(bookings, ""))
	}
}

func GetBookingByIDHandler(bookingService *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseBookingID(c)
		if !ok {
			return
		}
		booking, err := bookingService.GetBookingByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if booking == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("booking not found"))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(booking, ""))
	}
}

func GetBookingsByStatusHandler(bookingService *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := models.BookingStatus(c.Param("status"))
		bookings, err := bookingService.GetBookingsByStatus(c.Request.Context(), status)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(bookings, ""))
	}
}

func GetBookingsByDateHandler(bookingService *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Query("date")
		bookings, err := bookingService.GetBookingsByDate(c.Request.Context(), date)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(bookings, ""))
	}
}

func UpcomingBookingsHandler(bookingService *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := bookingService.GetUpcomingBookings(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(bookings, ""))
	}
}

func AvailableTimeSlotsHandler(bookingService *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Query("date")
		slots, err := bookingService.AvailableTimeSlots(c.Request.Context(), date)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(slots, ""))
	}
}

func UpdateBookingStatusHandler(bookingService *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseBookingID(c)
		if !ok {
			return
		}
		var body struct {
			Status models.BookingStatus `json:"status"`
			Notes  string               `json:"notes"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		booking, err := bookingService.UpdateStatus(c.Request.Context(), id, body.Status, body.Notes)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(booking, "Booking status updated"))
	}
}

func ConfirmBookingHandler(bookingService *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseBookingID(c)
		if !ok {
			return
		}
		var body struct {
			Notes string `json:"notes"`
		}
		_ = c.ShouldBindJSON(&body)

		booking, err := bookingService.ConfirmBooking(c.Request.Context(), id, body.Notes)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(booking, "Booking confirmed"))
	}
}

func RemoveReferenceImageHandler(bookingService *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseBookingID(c)
		if !ok {
			return
		}
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid image index"))
			return
		}

		booking, err := bookingService.RemoveReferenceImage(c.Request.Context(), id, index)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(booking, "Reference image removed"))
	}
}

func BookingAuditTrailHandler(bookingService *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseBookingID(c)
		if !ok {
			return
		}
		entries, err := bookingService.GetAuditTrail(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if entries == nil {
			entries = []*models.AuditEntry{}
		}
		c.JSON(http.StatusOK, models.SuccessResponse(entries, ""))
	}
}
