package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/melvink/api/internal/models"
	"github.com/melvink/api/internal/services"
)

func ListClientsHandler(clientService *services.ClientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if term := c.Query("q"); term != "" {
			clients, err := clientService.SearchClients(c.Request.Context(), term)
			if err != nil {
				c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
				return
			}
			c.JSON(http.StatusOK, models.SuccessResponse(clients, ""))
			return
		}

		clients, err := clientService.GetAllClients(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(clients, ""))
	}
}

func GetClientByIDHandler(clientService *services.ClientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid client ID format"))
			return
		}
		client, err := clientService.GetClientByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if client == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("client not found"))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(client, ""))
	}
}

func GetClientBookingsHandler(clientService *services.ClientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid client ID format"))
			return
		}
		bookings, err := clientService.GetClientBookings(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(bookings, ""))
	}
}

func UpdateClientPreferencesHandler(clientService *services.ClientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid client ID format"))
			return
		}
		var body struct {
			Preferences string `json:"preferences"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		client, err := clientService.UpdatePreferences(c.Request.Context(), id, body.Preferences)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(client, "Preferences updated"))
	}
}
