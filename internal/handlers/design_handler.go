package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/melvink/api/internal/middleware"
	"github.com/melvink/api/internal/models"
	"github.com/melvink/api/internal/services"
)

// ListDesignsHandler returns available designs; pass ?all=true to include
// ones marked unavailable.
func ListDesignsHandler(designService *services.DesignService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			designs []*models.Design
			err     error
		)
		switch {
		case c.Query("all") == "true":
			designs, err = designService.GetAllDesigns(c.Request.Context())
		case c.Query("category") != "":
			designs, err = designService.GetDesignsByCategory(c.Request.Context(), c.Query("category"))
		default:
			designs, err = designService.GetAvailableDesigns(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(designs, ""))
	}
}

func GetDesignByIDHandler(designService *services.DesignService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid design ID format"))
			return
		}
		design, err := designService.GetDesignByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if design == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("design not found"))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(design, ""))
	}
}

func SearchDesignsHandler(designService *services.DesignService) gin.HandlerFunc {
	return func(c *gin.Context) {
		designs, err := designService.SearchDesigns(c.Request.Context(), c.Query("q"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(designs, ""))
	}
}

// GalleryHandler merges persisted designs with booking-reference
// pseudo-designs into the public display list.
func GalleryHandler(designService *services.DesignService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := designService.Gallery(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(items, ""))
	}
}

// MyGalleryHandler is the gallery scoped to the logged-in identity.
func MyGalleryHandler(designService *services.DesignService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		email := ""
		if user != nil {
			email = user.Email
			if email == "" {
				email = user.Username
			}
		}
		items, err := designService.UserGallery(c.Request.Context(), email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(items, ""))
	}
}

func CreateDesignHandler(designService *services.DesignService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.DesignInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		if user := middleware.CurrentUser(c); user != nil && input.SubmittedByEmail == "" {
			input.SubmittedByEmail = user.Email
		}

		design, err := designService.CreateDesign(c.Request.Context(), input)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(design, "Design created"))
	}
}

func UpdateDesignAvailabilityHandler(designService *services.DesignService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid design ID format"))
			return
		}
		var body struct {
			Available *bool `json:"available"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		design, err := designService.UpdateAvailability(c.Request.Context(), id, body.Available)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(design, "Design availability updated"))
	}
}

func DeleteDesignHandler(designService *services.DesignService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid design ID format"))
			return
		}
		if err := designService.DeleteDesign(c.Request.Context(), id); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Design deleted"))
	}
}
