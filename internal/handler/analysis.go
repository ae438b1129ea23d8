package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TriggerAnalysisRun godoc
// @Summary      Trigger one analysis cycle manually
// @Description  Fetches headlines and market closes, scores and aggregates them, and returns run counters
// @Tags         analysis
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/analysis/run [post]
func (h *Handler) TriggerAnalysisRun(c *gin.Context) {
	if h.runner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "analysis service unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.trigger-analysis-run")
	defer span.End()

	result, err := h.runner.RunAnalysis(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":              "ok",
		"articles_fetched":    result.ArticlesFetched,
		"articles_scored":     result.ArticlesScored,
		"records_skipped":     result.RecordsSkipped,
		"market_points":       result.MarketPoints,
		"days_aggregated":     result.DaysAggregated,
		"predictions_written": result.PredictionsWritten,
		"errors":              result.Errors,
	})
}
