// Package analyzer folds a conversation log into a descriptive statistics
// summary in a single pass.
package analyzer

import (
	"math"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/parleyhq/parley/internal/convlog"
)

// Defaults for topic extraction.
const (
	DefaultTopTopics     = 10
	DefaultMinWordLength = 3
)

// Options configures the accumulator.
type Options struct {
	// TopTopics is how many ranked topics the summary keeps.
	TopTopics int
	// MinWordLength is the shortest token eligible as a topic.
	MinWordLength int
}

// DefaultOptions returns the baseline accumulator configuration.
func DefaultOptions() Options {
	return Options{
		TopTopics:     DefaultTopTopics,
		MinWordLength: DefaultMinWordLength,
	}
}

// Summary is the derived statistics structure. It is built once per run,
// handed to the renderer, and discarded; nothing in it is mutated after
// Analyze returns.
type Summary struct {
	Date               string             `json:"date" yaml:"date"`
	TotalConversations int                `json:"total_conversations" yaml:"total_conversations"`
	TotalMessages      int                `json:"total_messages" yaml:"total_messages"`
	Participants       []ParticipantStats `json:"participants" yaml:"participants"`
	TimeOfDay          []BucketStats      `json:"time_of_day" yaml:"time_of_day"`
	Longest            *ConversationStats `json:"longest_conversation,omitempty" yaml:"longest_conversation,omitempty"`
	Shortest           *ConversationStats `json:"shortest_conversation,omitempty" yaml:"shortest_conversation,omitempty"`
	AvgMessages        float64            `json:"avg_messages_per_conversation" yaml:"avg_messages_per_conversation"`
	Topics             []Topic            `json:"topics" yaml:"topics"`
}

// ParticipantStats aggregates one role's counters. Participants appear in
// the summary in first-seen order.
type ParticipantStats struct {
	Role          string  `json:"role" yaml:"role"`
	Messages      int     `json:"messages" yaml:"messages"`
	Started       int     `json:"conversations_started" yaml:"conversations_started"`
	AvgLength     float64 `json:"avg_message_length" yaml:"avg_message_length"`
	LongestLength int     `json:"longest_message_length" yaml:"longest_message_length"`

	lengthSum int
}

// BucketStats is one time-of-day bucket: how many messages landed in it
// and what share of all messages that is.
type BucketStats struct {
	Period   Period  `json:"period" yaml:"period"`
	Messages int     `json:"messages" yaml:"messages"`
	Percent  float64 `json:"percent" yaml:"percent"`
}

// ConversationStats describes a single conversation for the length
// extremes section.
type ConversationStats struct {
	Index           int    `json:"index" yaml:"index"` // 1-based position in the log
	Messages        int    `json:"messages" yaml:"messages"`
	DurationMinutes int    `json:"duration_minutes" yaml:"duration_minutes"`
	DurationKnown   bool   `json:"duration_known" yaml:"duration_known"`
	StartTime       string `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	EndTime         string `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	Period          Period `json:"period,omitempty" yaml:"period,omitempty"`
}

// Analyze traverses the log once and accumulates every counter the report
// needs. Individually malformed records are skipped for the metrics they
// cannot serve and logged at warn level; they never abort the pass.
func Analyze(clog *convlog.ConversationLog, opts Options) *Summary {
	if opts.TopTopics <= 0 {
		opts.TopTopics = DefaultTopTopics
	}
	if opts.MinWordLength <= 0 {
		opts.MinWordLength = DefaultMinWordLength
	}

	summary := &Summary{
		Date:               clog.Date,
		TotalConversations: len(clog.Conversations),
	}

	byRole := make(map[string]*ParticipantStats)
	var roleOrder []string
	participant := func(role string) *ParticipantStats {
		ps, ok := byRole[role]
		if !ok {
			ps = &ParticipantStats{Role: role}
			byRole[role] = ps
			roleOrder = append(roleOrder, role)
		}
		return ps
	}

	bucketCounts := make(map[Period]int, len(Periods))
	topics := newTopicCounter()

	var longest, shortest *ConversationStats

	for i, conv := range clog.Conversations {
		stats := describeConversation(i, conv)

		if role, ok := conv.Initiator(); ok && role != "" {
			participant(role).Started++
		}

		// Ties go to the earliest conversation.
		if longest == nil || stats.Messages > longest.Messages {
			longest = stats
		}
		if shortest == nil || stats.Messages < shortest.Messages {
			shortest = stats
		}

		counted := 0
		for _, msg := range conv.Messages {
			if msg.Role == "" {
				log.Warn().
					Int("conversation", stats.Index).
					Msg("message without role, skipped")
				continue
			}

			summary.TotalMessages++
			counted++

			ps := participant(msg.Role)
			ps.Messages++

			length := utf8.RuneCountInString(msg.Content)
			ps.lengthSum += length
			if length > ps.LongestLength {
				ps.LongestLength = length
			}

			for _, token := range tokenize(msg.Content, opts.MinWordLength) {
				topics.add(token)
			}
		}

		if period, ok := ClassifyPeriod(conv.StartTime); ok {
			bucketCounts[period] += counted
		} else if conv.StartTime != "" {
			log.Warn().
				Int("conversation", stats.Index).
				Str("start_time", conv.StartTime).
				Msg("unparsable start time, excluded from time-of-day buckets")
		}
	}

	for _, role := range roleOrder {
		ps := byRole[role]
		if ps.Messages > 0 {
			ps.AvgLength = round1(float64(ps.lengthSum) / float64(ps.Messages))
		}
		summary.Participants = append(summary.Participants, *ps)
	}

	summary.TimeOfDay = make([]BucketStats, 0, len(Periods))
	for _, period := range Periods {
		count := bucketCounts[period]
		percent := 0.0
		if summary.TotalMessages > 0 {
			percent = round1(float64(count) / float64(summary.TotalMessages) * 100)
		}
		summary.TimeOfDay = append(summary.TimeOfDay, BucketStats{
			Period:   period,
			Messages: count,
			Percent:  percent,
		})
	}

	summary.Longest = longest
	summary.Shortest = shortest
	if summary.TotalConversations > 0 {
		total := 0
		for _, conv := range clog.Conversations {
			total += len(conv.Messages)
		}
		summary.AvgMessages = round1(float64(total) / float64(summary.TotalConversations))
	}

	summary.Topics = topics.topN(opts.TopTopics)

	return summary
}

func describeConversation(index int, conv convlog.Conversation) *ConversationStats {
	stats := &ConversationStats{
		Index:     index + 1,
		Messages:  conv.MessageCount(),
		StartTime: conv.StartTime,
		EndTime:   conv.EndTime,
	}

	if period, ok := ClassifyPeriod(conv.StartTime); ok {
		stats.Period = period
	}
	if minutes, ok := DurationMinutes(conv.StartTime, conv.EndTime); ok {
		stats.DurationMinutes = minutes
		stats.DurationKnown = true
	}

	return stats
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
