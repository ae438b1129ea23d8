package handler

import (
	"net/http"
	"sort"

	"market-mood/internal/domain"

	"github.com/gin-gonic/gin"
)

// GetDailySentiment godoc
// @Summary      Get per-day sentiment summaries
// @Description  Returns one row per calendar day from the latest analysis pass, oldest first
// @Tags         sentiment
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]string
// @Router       /api/sentiment/daily [get]
func (h *Handler) GetDailySentiment(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-daily-sentiment")
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

	days := make([]domain.DailySentiment, 0, len(snapshot.Daily))
	for _, day := range snapshot.Daily {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	c.JSON(http.StatusOK, gin.H{
		"generated_at": snapshot.GeneratedAt,
		"days":         days,
	})
}
