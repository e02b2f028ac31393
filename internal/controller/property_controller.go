package controller

import (
	"net/http"

	"github.com/chinazagideon/alx-travel-app/internal/service"
	"github.com/gin-gonic/gin"
)

type PropertyController struct {
	service *service.PropertyService
}

func NewPropertyController(service *service.PropertyService) *PropertyController {
	return &PropertyController{service: service}
}

type createPropertyRequest struct {
	Name               string `json:"name" binding:"required"`
	Description        string `json:"description"`
	Location           string `json:"location" binding:"required"`
	PricePerNightCents int64  `json:"price_per_night_cents" binding:"required"`
	PropertyType       string `json:"property_type"`
	MaxGuests          int    `json:"max_guests"`
	Bedrooms           int    `json:"bedrooms"`
	Bathrooms          int    `json:"bathrooms"`
}

// Create обрабатывает POST /properties
func (ctrl *PropertyController) Create(c *gin.Context) {
	var req createPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	property, err := ctrl.service.CreateProperty(c.Request.Context(), service.CreatePropertyInput{
		HostID:             actorID(c),
		Name:               req.Name,
		Description:        req.Description,
		Location:           req.Location,
		PricePerNightCents: req.PricePerNightCents,
		PropertyType:       req.PropertyType,
		MaxGuests:          req.MaxGuests,
		Bedrooms:           req.Bedrooms,
		Bathrooms:          req.Bathrooms,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, property)
}

// Get обрабатывает GET /properties/:id
func (ctrl *PropertyController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	property, err := ctrl.service.GetProperty(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}

// List обрабатывает GET /properties
func (ctrl *PropertyController) List(c *gin.Context) {
	properties, err := ctrl.service.ListProperties(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, properties)
}

type updatePriceRequest struct {
	PricePerNightCents int64 `json:"price_per_night_cents" binding:"required"`
}

// UpdatePrice обрабатывает PUT /properties/:id/price
func (ctrl *PropertyController) UpdatePrice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	err := ctrl.service.UpdatePrice(c.Request.Context(), id, actorID(c), req.PricePerNightCents)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
