package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"focustimer/internal/core/model"
)

var printer = message.NewPrinter(language.English)

func renderStats(w io.Writer, snapshot model.StatisticsSnapshot, days []model.DailyStatistic) error {
	printer.Fprintf(w, "Sessions:        %d\n", snapshot.TotalSessions)
	printer.Fprintf(w, "Focus time:      %s\n", formatMillis(snapshot.TotalFocusTimeMs))
	printer.Fprintf(w, "Average session: %s\n", formatMillis(snapshot.AverageSessionLengthMs))
	printer.Fprintf(w, "Streak:          %d %s\n", snapshot.ConsecutiveDays, plural(snapshot.ConsecutiveDays, "day", "days"))
	if len(days) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tSESSIONS\tFOCUS\tAVERAGE")
	for _, day := range days {
		printer.Fprintf(tw, "%s\t%d\t%s\t%s\n",
			day.Date, day.SessionCount, formatMillis(day.TotalFocusTimeMs), formatMillis(day.AverageSessionLengthMs))
	}
	return tw.Flush()
}

func renderSessions(w io.Writer, records []model.SessionRecord, location *time.Location) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No sessions recorded yet.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tENDED\tTYPE\tLENGTH\tID")
	for _, record := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			record.StartTime.In(location).Format("2006-01-02 15:04"),
			record.EndTime().In(location).Format("15:04"),
			record.Type,
			formatMillis(record.Duration.Milliseconds()),
			record.ID)
	}
	return tw.Flush()
}

func renderSettings(w io.Writer, current model.TimerSettings) error {
	return renderSettingsTo(tabwriter.NewWriter(w, 0, 4, 2, ' ', 0), current)
}

// formatMillis renders whole hours and minutes, or seconds below a minute.
func formatMillis(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	if d < time.Minute {
		return printer.Sprintf("%ds", int64(d/time.Second))
	}
	hours := int64(d / time.Hour)
	minutes := int64(d%time.Hour) / int64(time.Minute)
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return printer.Sprintf("%dh %02dm", hours, minutes)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
