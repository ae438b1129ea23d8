package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetCorrelations godoc
// @Summary      Get sentiment-to-market correlations
// @Description  Returns same-day and next-day Pearson coefficients, the joined daily rows, and diagnostic views
// @Tags         correlations
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]string
// @Router       /api/correlations [get]
func (h *Handler) GetCorrelations(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-correlations")
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
		"correlations": snapshot.Correlations,
		"diagnostics":  snapshot.Diagnostics,
		"rows":         snapshot.Rows,
	})
}
