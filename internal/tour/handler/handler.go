package handler

import (
	"net/http"

	"tour-booking-api/internal/tour/model"
	"tour-booking-api/internal/tour/service"
	appErrors "tour-booking-api/pkg/errors"
	"tour-booking-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TourHandler struct {
	service *service.TourService
}

func NewHandler(service *service.TourService) *TourHandler {
	return &TourHandler{service: service}
}

func (h *TourHandler) RegisterRoutes(router *gin.RouterGroup) {
	tours := router.Group("/tours")
	{
		tours.GET("", h.List)
		tours.GET("/top-5-cheap", topToursAlias, h.List)
		tours.GET("/stats", h.Stats)
		tours.GET("/:id", h.Get)
	}
}

// RegisterManagementRoutes wires the mutating catalogue operations; the
// caller composes these behind authentication and role restriction.
func (h *TourHandler) RegisterManagementRoutes(router *gin.RouterGroup) {
	tours := router.Group("/tours")
	{
		tours.POST("", h.Create)
		tours.PATCH("/:id", h.Update)
		tours.DELETE("/:id", h.Delete)
	}
}

// topToursAlias presets the query for the five cheapest best-rated tours.
func topToursAlias(c *gin.Context) {
	query := c.Request.URL.Query()
	query.Set("limit", "5")
	query.Set("sort", "-ratingsAverage,price")
	c.Request.URL.RawQuery = query.Encode()
	c.Next()
}

func (h *TourHandler) List(c *gin.Context) {
	opts := model.ParseListOptions(c.Request.URL.Query())

	tours, err := h.service.List(c.Request.Context(), opts)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(tours),
		"data":    gin.H{"tours": tours},
	})
}

func (h *TourHandler) Get(c *gin.Context) {
	tourID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(appErrors.Validation("invalid tour id", err))
		c.Abort()
		return
	}

	tour, err := h.service.Get(c.Request.Context(), tourID)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"tour": tour})
}

func (h *TourHandler) Create(c *gin.Context) {
	var request model.CreateTourRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		_ = c.Error(appErrors.Validation("invalid request body", err))
		c.Abort()
		return
	}

	tour, err := h.service.Create(c.Request.Context(), &request)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	utils.Success(c, http.StatusCreated, gin.H{"tour": tour})
}

func (h *TourHandler) Update(c *gin.Context) {
	tourID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(appErrors.Validation("invalid tour id", err))
		c.Abort()
		return
	}

	var request model.UpdateTourRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		_ = c.Error(appErrors.Validation("invalid request body", err))
		c.Abort()
		return
	}

	tour, err := h.service.Update(c.Request.Context(), tourID, &request)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"tour": tour})
}

func (h *TourHandler) Delete(c *gin.Context) {
	tourID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(appErrors.Validation("invalid tour id", err))
		c.Abort()
		return
	}

	if err := h.service.Delete(c.Request.Context(), tourID); err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func (h *TourHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"stats": stats})
}
