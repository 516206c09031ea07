package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/melvink/api/internal/middleware"
	"github.com/melvink/api/internal/models"
	"github.com/melvink/api/internal/schedule"
	"github.com/melvink/api/internal/services"
)

// CalendarHandler renders the availability grid for a month. The month query
// parameter is zero-based; both default to the current month.
func CalendarHandler(cal *schedule.Calendar) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		year := now.Year()
		month := int(now.Month()) - 1

		if y := c.Query("year"); y != "" {
			parsed, err := strconv.Atoi(y)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid year parameter"))
				return
			}
			year = parsed
		}
		if m := c.Query("month"); m != "" {
			parsed, err := strconv.Atoi(m)
			if err != nil || parsed < 0 || parsed > 11 {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid month parameter"))
				return
			}
			month = parsed
		}

		days := cal.Generate(year, month)
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"year":  year,
			"month": month,
			"days":  days,
		}, ""))
	}
}

// sessionKey identifies the handoff slot owner: the logged-in user's ID.
func sessionKey(c *gin.Context) string {
	if user := middleware.CurrentUser(c); user != nil {
		return user.ID
	}
	return ""
}

// The selected-date handlers are the consume-once handoff between the
// calendar and the booking form: POST stores the tapped date, GET
// returns-and-clears it.
func PutSelectedDateHandler(handoffService *services.HandoffService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := sessionKey(c)
		if user == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("no session"))
			return
		}
		var body struct {
			Date string `json:"date"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		if err := handoffService.Put(c.Request.Context(), user, body.Date); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Selected date stored"))
	}
}

func ConsumeSelectedDateHandler(handoffService *services.HandoffService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := sessionKey(c)
		if user == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("no session"))
			return
		}
		date, err := handoffService.Consume(c.Request.Context(), user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"date": date}, ""))
	}
}
