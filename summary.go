package main

import (
	"database/sql"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/slack-go/slack"
)

// BuildDailySummary renders the business-wide metrics narrative over the
// full table, for posting outside a chat request.
func BuildDailySummary(db *sql.DB) (string, error) {
	rows, err := GetAllTransactions(db)
	if err != nil {
		return "", err
	}
	return FormatBusinessMetrics(rows), nil
}

// StartSummaryScheduler posts the daily business summary to the configured
// Slack channel on a cron schedule. The schedule is a standard 5-field cron
// expression (minute hour day-of-month month day-of-week).
// Examples: "0 9 * * *" (daily 9am), "0 9 * * 1-5" (weekdays 9am).
func StartSummaryScheduler(cfg Config, db *sql.DB, api *slack.Client) {
	schedule := strings.TrimSpace(cfg.SummarySchedule)
	if schedule == "" {
		log.Println("Daily summary disabled (summary_schedule not set)")
		return
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		log.Printf("Invalid summary_schedule '%s': %v, daily summary disabled", schedule, err)
		return
	}

	log.Printf("Daily summary scheduled (cron: %s) to channel %s", schedule, cfg.SummaryChannelID)

	go func() {
		for {
			now := time.Now().In(cfg.Location)
			next := sched.Next(now)
			wait := next.Sub(now)
			log.Printf("Next daily summary at %s (in %s)", next.Format("Mon Jan 2 15:04"), wait.Round(time.Minute))

			time.Sleep(wait)

			summary, err := BuildDailySummary(db)
			if err != nil {
				log.Printf("Daily summary build error: %v", err)
				continue
			}

			_, _, postErr := api.PostMessage(cfg.SummaryChannelID, slack.MsgOptionText(summary, false))
			if postErr != nil {
				log.Printf("Daily summary post error: %v", postErr)
			} else {
				log.Printf("Posted daily summary to %s", cfg.SummaryChannelID)
			}
		}
	}()
}
