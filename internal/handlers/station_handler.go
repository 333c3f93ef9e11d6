package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stationpro-api/internal/services"
)

// StationHandler handles station state and mutation HTTP requests
type StationHandler struct {
	stationService services.StationService
}

// NewStationHandler creates a new station handler
func NewStationHandler(stationService services.StationService) *StationHandler {
	return &StationHandler{
		stationService: stationService,
	}
}

func (h *StationHandler) respondError(c *gin.Context, action string, err error) {
	switch {
	case isNotFoundError(err):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Resource not found",
			Message: err.Error(),
		})
	case isConflictError(err):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "Conflict",
			Message: err.Error(),
		})
	case isValidationError(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   action,
			Message: err.Error(),
		})
	}
}

// @Summary Get station state
// @Description Get the full current station state document
// @Tags station
// @Produce json
// @Success 200 {object} models.StationState
// @Router /station [get]
func (h *StationHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.stationService.State(c.Request.Context()))
}

// @Summary Complete a pump shift
// @Description Record a pump shift from its new end index; volume and amount are derived server-side
// @Tags shifts
// @Accept json
// @Produce json
// @Param shift body services.CompleteShiftRequest true "Shift data"
// @Success 201 {object} models.ShiftRecord
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /shifts [post]
func (h *StationHandler) CompleteShift(c *gin.Context) {
	var req services.CompleteShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	shift, err := h.stationService.CompleteShift(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, "Failed to complete shift", err)
		return
	}
	c.JSON(http.StatusCreated, shift)
}

// @Summary Record a shop sale
// @Description Record a shop sale and decrement the product's stock atomically
// @Tags shop
// @Accept json
// @Produce json
// @Param sale body services.RecordSaleRequest true "Sale data"
// @Success 201 {object} models.Sale
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sales [post]
func (h *StationHandler) RecordSale(c *gin.Context) {
	var req services.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	sale, err := h.stationService.RecordSale(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, "Failed to record sale", err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// @Summary Create a product
// @Tags shop
// @Accept json
// @Produce json
// @Param product body services.ProductRequest true "Product data"
// @Success 201 {object} models.Product
// @Failure 400 {object} ErrorResponse
// @Router /products [post]
func (h *StationHandler) AddProduct(c *gin.Context) {
	var req services.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	product, err := h.stationService.AddProduct(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, "Failed to create product", err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// @Summary Update a product
// @Tags shop
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body services.ProductRequest true "Product data"
// @Success 200 {object} models.Product
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/{id} [put]
func (h *StationHandler) UpdateProduct(c *gin.Context) {
	var req services.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	product, err := h.stationService.UpdateProduct(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, "Failed to update product", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// @Summary Delete a product
// @Description Delete a product; its sale and restock history is kept
// @Tags shop
// @Produce json
// @Param id path string true "Product ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Router /products/{id} [delete]
func (h *StationHandler) DeleteProduct(c *gin.Context) {
	if err := h.stationService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, "Failed to delete product", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Adjust product stock
// @Description Apply a signed stock delta to a product
// @Tags shop
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param adjustment body services.AdjustStockRequest true "Stock delta"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/{id}/stock [post]
func (h *StationHandler) AdjustStock(c *gin.Context) {
	var req services.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	if err := h.stationService.AdjustStock(c.Request.Context(), c.Param("id"), &req); err != nil {
		h.respondError(c, "Failed to adjust stock", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Record a restock
// @Description Record an inbound delivery and increase the product's stock atomically
// @Tags shop
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param restock body services.RestockRequest true "Restock data"
// @Success 201 {object} models.RestockRecord
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/{id}/restocks [post]
func (h *StationHandler) AddRestock(c *gin.Context) {
	var req services.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	record, err := h.stationService.AddRestock(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, "Failed to record restock", err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// @Summary Record an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body services.ExpenseRequest true "Expense data"
// @Success 201 {object} models.Expense
// @Failure 400 {object} ErrorResponse
// @Router /expenses [post]
func (h *StationHandler) AddExpense(c *gin.Context) {
	var req services.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	expense, err := h.stationService.AddExpense(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, "Failed to record expense", err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// @Summary Delete an expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Router /expenses/{id} [delete]
func (h *StationHandler) DeleteExpense(c *gin.Context) {
	if err := h.stationService.DeleteExpense(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, "Failed to delete expense", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Update a fuel price
// @Description Update the unit price of an existing fuel type
// @Tags fuel
// @Accept json
// @Produce json
// @Param fuelType path string true "Fuel type"
// @Param price body services.SetFuelPriceRequest true "New price"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /fuel-prices/{fuelType} [put]
func (h *StationHandler) SetFuelPrice(c *gin.Context) {
	var req services.SetFuelPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	if err := h.stationService.SetFuelPrice(c.Request.Context(), c.Param("fuelType"), &req); err != nil {
		h.respondError(c, "Failed to update fuel price", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Add a fuel type
// @Tags fuel
// @Accept json
// @Produce json
// @Param fuelType body services.AddFuelTypeRequest true "Fuel type data"
// @Success 201 "Created"
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /fuel-types [post]
func (h *StationHandler) AddFuelType(c *gin.Context) {
	var req services.AddFuelTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	if err := h.stationService.AddFuelType(c.Request.Context(), &req); err != nil {
		h.respondError(c, "Failed to add fuel type", err)
		return
	}
	c.Status(http.StatusCreated)
}

// @Summary Delete a fuel type
// @Description Delete a fuel type that is not referenced by any tank or pump
// @Tags fuel
// @Produce json
// @Param fuelType path string true "Fuel type"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /fuel-types/{fuelType} [delete]
func (h *StationHandler) DeleteFuelType(c *gin.Context) {
	if err := h.stationService.DeleteFuelType(c.Request.Context(), c.Param("fuelType")); err != nil {
		h.respondError(c, "Failed to delete fuel type", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Rename a fuel type
// @Description Rename a fuel type across the price list, tanks and pumps in one step
// @Tags fuel
// @Accept json
// @Produce json
// @Param fuelType path string true "Current fuel type"
// @Param rename body services.RenameFuelTypeRequest true "New name"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /fuel-types/{fuelType}/rename [post]
func (h *StationHandler) RenameFuelType(c *gin.Context) {
	var req services.RenameFuelTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	if err := h.stationService.RenameFuelType(c.Request.Context(), c.Param("fuelType"), &req); err != nil {
		h.respondError(c, "Failed to rename fuel type", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Update a tank
// @Description Update a tank's fuel type, capacity or critical level; the current level is preserved
// @Tags fuel
// @Accept json
// @Produce json
// @Param id path string true "Tank ID"
// @Param tank body services.UpdateTankRequest true "Tank data"
// @Success 200 {object} models.Tank
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /tanks/{id} [put]
func (h *StationHandler) UpdateTank(c *gin.Context) {
	var req services.UpdateTankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	tank, err := h.stationService.UpdateTank(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, "Failed to update tank", err)
		return
	}
	c.JSON(http.StatusOK, tank)
}

// @Summary Add a pump
// @Description Attach a new pump to a tank; the pump's fuel type is derived from the tank
// @Tags fuel
// @Accept json
// @Produce json
// @Param pump body services.AddPumpRequest true "Pump data"
// @Success 201 {object} models.Pump
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /pumps [post]
func (h *StationHandler) AddPump(c *gin.Context) {
	var req services.AddPumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	pump, err := h.stationService.AddPump(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, "Failed to add pump", err)
		return
	}
	c.JSON(http.StatusCreated, pump)
}

// @Summary Update a pump
// @Description Update a pump's name, tank or meter index; the fuel type follows the tank
// @Tags fuel
// @Accept json
// @Produce json
// @Param id path string true "Pump ID"
// @Param pump body services.UpdatePumpRequest true "Pump data"
// @Success 200 {object} models.Pump
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /pumps/{id} [put]
func (h *StationHandler) UpdatePump(c *gin.Context) {
	var req services.UpdatePumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	pump, err := h.stationService.UpdatePump(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, "Failed to update pump", err)
		return
	}
	c.JSON(http.StatusOK, pump)
}

// @Summary Update station settings
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body services.SettingsRequest true "Settings data"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Router /settings [put]
func (h *StationHandler) UpdateSettings(c *gin.Context) {
	var req services.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	if err := h.stationService.UpdateSettings(c.Request.Context(), &req); err != nil {
		h.respondError(c, "Failed to update settings", err)
		return
	}
	c.Status(http.StatusNoContent)
}
