package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/melvink/api/internal/models"
	"github.com/melvink/api/internal/services"
)

func FAQHandler(contentService *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		faqs, err := contentService.FAQs()
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(faqs, ""))
	}
}

func BookingContentHandler(contentService *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		content, err := contentService.BookingPageContent()
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(content, ""))
	}
}

func SeedDesignsHandler(contentService *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		designs, err := contentService.SeedDesigns()
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(designs, ""))
	}
}
