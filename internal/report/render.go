// Package report renders an analyzer summary as a multi-section text
// report. Formatting only; every number is computed upstream.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/parleyhq/parley/internal/analyzer"
	"github.com/parleyhq/parley/internal/style"
)

const bannerWidth = 50

// Render writes the full statistics report for a summary.
func Render(w io.Writer, s *analyzer.Summary) {
	banner := strings.Repeat("=", bannerWidth)

	fmt.Fprintf(w, "\n%s\n", style.BannerStyle.Render(banner))
	fmt.Fprintf(w, "%s\n", style.BannerStyle.Render("Conversation Analysis for "+s.Date))
	fmt.Fprintf(w, "%s\n", style.BannerStyle.Render(banner))

	fmt.Fprintf(w, "\nTotal Conversations: %d\n", s.TotalConversations)
	fmt.Fprintf(w, "Total Messages: %d\n", s.TotalMessages)
	for _, p := range s.Participants {
		fmt.Fprintf(w, "  - %s: %d\n", p.Role, p.Messages)
	}

	renderTimeOfDay(w, s)
	renderFlow(w, s)
	renderLengths(w, s)

	fmt.Fprintf(w, "\n%s\n", style.BannerStyle.Render(banner))

	RenderTopics(w, s.Topics)
}

func renderTimeOfDay(w io.Writer, s *analyzer.Summary) {
	fmt.Fprintf(w, "\n%s\n", style.SectionStyle.Render("--- Time of Day Patterns ---"))
	for _, bucket := range s.TimeOfDay {
		fmt.Fprintf(w, "%-12s %3d messages (%5.1f%%)\n", bucket.Period, bucket.Messages, bucket.Percent)
	}
}

func renderFlow(w io.Writer, s *analyzer.Summary) {
	fmt.Fprintf(w, "\n%s\n", style.SectionStyle.Render("--- Conversation Flow ---"))

	fmt.Fprintf(w, "\nConversations Started:\n")
	for _, p := range s.Participants {
		fmt.Fprintf(w, "  - %s: %d\n", p.Role, p.Started)
	}

	for _, p := range s.Participants {
		if p.Messages == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s's Messages:\n", p.Role)
		fmt.Fprintf(w, "  - Average length: %.0f characters\n", p.AvgLength)
		fmt.Fprintf(w, "  - Longest message: %d characters\n", p.LongestLength)
	}
}

func renderLengths(w io.Writer, s *analyzer.Summary) {
	fmt.Fprintf(w, "\n%s\n", style.SectionStyle.Render("--- Conversation Lengths ---"))

	if s.Shortest != nil {
		fmt.Fprintf(w, "\nShortest Conversation:\n")
		renderConversation(w, s.Shortest)
	}
	if s.Longest != nil {
		fmt.Fprintf(w, "\nLongest Conversation:\n")
		renderConversation(w, s.Longest)
	}

	if s.TotalConversations > 0 {
		fmt.Fprintf(w, "\nAverage messages per conversation: %.1f\n", s.AvgMessages)
	}
}

func renderConversation(w io.Writer, c *analyzer.ConversationStats) {
	duration := "duration unknown"
	if c.DurationKnown {
		duration = fmt.Sprintf("%d minutes", c.DurationMinutes)
	}
	fmt.Fprintf(w, "  Conversation #%d: %d messages, %s\n", c.Index, c.Messages, duration)

	if c.StartTime != "" || c.EndTime != "" {
		span := fmt.Sprintf("(%s - %s)", c.StartTime, c.EndTime)
		if c.Period != "" {
			span += fmt.Sprintf(" [%s]", c.Period)
		}
		fmt.Fprintf(w, "  %s\n", span)
	}
}

// RenderTopics writes the ranked topic list.
func RenderTopics(w io.Writer, topics []analyzer.Topic) {
	banner := strings.Repeat("=", bannerWidth)

	fmt.Fprintf(w, "\n%s\n", style.BannerStyle.Render(banner))
	fmt.Fprintf(w, "%s\n", style.BannerStyle.Render("Main Topics Discussed"))
	fmt.Fprintf(w, "%s\n\n", style.BannerStyle.Render(banner))

	if len(topics) == 0 {
		fmt.Fprintf(w, "%s\n", style.MutedStyle.Render("No topics found."))
	}
	for i, topic := range topics {
		fmt.Fprintf(w, "%2d. %-20s (%3d mentions)\n", i+1, topic.Word, topic.Mentions)
	}

	fmt.Fprintf(w, "\n%s\n\n", style.BannerStyle.Render(banner))
}
