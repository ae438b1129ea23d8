package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"market-mood/internal/advisor"
	"market-mood/internal/analysis"
	"market-mood/internal/domain"

	tele "gopkg.in/telebot.v3"
)

type SnapshotReader interface {
	Latest(ctx context.Context) (*analysis.Result, error)
}

// StartTelegramBot launches the long-polling bot. advisorService may be
// nil; free-text questions are then answered with a hint instead.
func StartTelegramBot(token string, snapshots SnapshotReader, advisorService *advisor.AdvisorService) {
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/mood", func(c tele.Context) error {
		snapshot, err := snapshots.Latest(context.Background())
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching analysis: %v", err))
		}
		if snapshot == nil {
			return c.Send("No analysis has run yet. Try again in a few minutes.")
		}
		return c.Send(formatMood(snapshot))
	})

	b.Handle("/forecast", func(c tele.Context) error {
		snapshot, err := snapshots.Latest(context.Background())
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching analysis: %v", err))
		}
		if snapshot == nil || len(snapshot.Predictions) == 0 {
			return c.Send("No forecast available yet. Try again in a few minutes.")
		}
		return c.Send(formatForecast(snapshot))
	})

	b.Handle(tele.OnText, func(c tele.Context) error {
		if advisorService == nil {
			return c.Send("Ask me /mood or /forecast. The advisor is not configured.")
		}
		reply, err := advisorService.Ask(context.Background(), c.Chat().ID, c.Text())
		if err != nil {
			return c.Send(fmt.Sprintf("Advisor error: %v", err))
		}
		return c.Send(reply)
	})

	log.Println("Telegram bot started")
	go b.Start()
}

func formatMood(snapshot *analysis.Result) string {
	var sb strings.Builder
	sb.WriteString("Market Mood\n")

	if len(snapshot.Rows) > 0 {
		last := snapshot.Rows[len(snapshot.Rows)-1]
		sb.WriteString(fmt.Sprintf("%s: score %+.2f over %d articles\n", last.Date, last.AverageScore, last.ArticleCount))
	}
	sb.WriteString(fmt.Sprintf("Correlation same-day %.2f, next-day %.2f\n",
		snapshot.Correlations.SameDay, snapshot.Correlations.NextDay))
	sb.WriteString(fmt.Sprintf("Articles analyzed: %d", len(snapshot.Articles)))
	return sb.String()
}

func formatForecast(snapshot *analysis.Result) string {
	var sb strings.Builder
	sb.WriteString("Forecast\n")
	for _, p := range snapshot.Predictions {
		label := "next day"
		if p.Timeframe == domain.TimeframeNextWeek {
			label = "next week"
		}
		sb.WriteString(fmt.Sprintf("%s: %s (confidence %.0f)\n%s\n",
			label, strings.ToUpper(string(p.Direction)), p.Confidence, p.Explanation))
	}
	return strings.TrimRight(sb.String(), "\n")
}
