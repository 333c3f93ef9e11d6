package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stationpro-api/internal/services"
)

// InsightHandler handles insight generation HTTP requests
type InsightHandler struct {
	insightService services.InsightService
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(insightService services.InsightService) *InsightHandler {
	return &InsightHandler{
		insightService: insightService,
	}
}

// InsightResponse carries a generated insight text.
type InsightResponse struct {
	Insight string `json:"insight"`
}

// InsightStatusResponse reflects the generator's current state.
type InsightStatusResponse struct {
	Generating  bool   `json:"generating"`
	LastInsight string `json:"lastInsight"`
}

// @Summary Generate insights
// @Description Generate performance recommendations from the current station summary
// @Tags insights
// @Produce json
// @Success 200 {object} InsightResponse
// @Failure 409 {object} ErrorResponse
// @Router /insights [post]
func (h *InsightHandler) Generate(c *gin.Context) {
	text, err := h.insightService.Generate(c.Request.Context())
	if err != nil {
		if isConflictError(err) {
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "Generation in progress",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to generate insights",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, InsightResponse{Insight: text})
}

// @Summary Get insight status
// @Description Get whether an insight generation is running and the last generated text
// @Tags insights
// @Produce json
// @Success 200 {object} InsightStatusResponse
// @Router /insights/status [get]
func (h *InsightHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, InsightStatusResponse{
		Generating:  h.insightService.Generating(),
		LastInsight: h.insightService.LastInsight(),
	})
}
