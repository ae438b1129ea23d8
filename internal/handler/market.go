package handler

import (
	"net/http"
	"time"

	"market-mood/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetMarketSeries godoc
// @Summary      Get the tracked index series
// @Description  Returns stored daily closes with day-over-day change between from and to (default last 30 days)
// @Tags         market
// @Produce      json
// @Param        from  query  string  false  "Start date (2006-01-02)"
// @Param        to    query  string  false  "End date (2006-01-02)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/market [get]
func (h *Handler) GetMarketSeries(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-market-series")
	defer span.End()

	now := time.Now().UTC()
	from := c.DefaultQuery("from", now.AddDate(0, 0, -30).Format(domain.DateLayout))
	to := c.DefaultQuery("to", now.Format(domain.DateLayout))
	for _, v := range []string{from, to} {
		if _, err := time.Parse(domain.DateLayout, v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date: " + v})
			return
		}
	}
	span.SetAttributes(attribute.String("from", from), attribute.String("to", to))

	points, err := h.market.GetSeries(ctx, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	latest, err := h.market.GetLatest(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"symbol": h.market.Symbol(),
		"points": points,
		"latest": latest,
	})
}
