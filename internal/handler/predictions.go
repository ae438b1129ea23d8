package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetPredictions godoc
// @Summary      Get the latest forecast pair
// @Description  Returns the next-day and next-week directional predictions with confidence and explanations
// @Tags         predictions
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]string
// @Router       /api/predictions [get]
func (h *Handler) GetPredictions(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-predictions")
	defer span.End()

	snapshot, err := h.snapshots.Latest(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if snapshot == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no analysis snapshot available yet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"generated_at": snapshot.GeneratedAt,
		"predictions":  snapshot.Predictions,
	})
}
