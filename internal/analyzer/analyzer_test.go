package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleyhq/parley/internal/convlog"
	_ "github.com/parleyhq/parley/internal/testhelper"
)

func twoConversationLog() *convlog.ConversationLog {
	return &convlog.ConversationLog{
		Date: "2025-10-25",
		Conversations: []convlog.Conversation{
			{
				StartTime: "09:00 AM",
				EndTime:   "09:05 AM",
				Messages: []convlog.Message{
					{Role: "A", Content: "hello world project"},
					{Role: "B", Content: "project project analysis"},
				},
			},
			{
				StartTime: "11:30 PM",
				EndTime:   "11:45 PM",
			},
		},
	}
}

func bucket(t *testing.T, s *Summary, period Period) BucketStats {
	t.Helper()
	for _, b := range s.TimeOfDay {
		if b.Period == period {
			return b
		}
	}
	t.Fatalf("no bucket for %s", period)
	return BucketStats{}
}

func TestAnalyze_TwoConversations(t *testing.T) {
	summary := Analyze(twoConversationLog(), DefaultOptions())

	assert.Equal(t, "2025-10-25", summary.Date)
	assert.Equal(t, 2, summary.TotalConversations)
	assert.Equal(t, 2, summary.TotalMessages)

	require.Len(t, summary.Participants, 2)
	assert.Equal(t, "A", summary.Participants[0].Role)
	assert.Equal(t, 1, summary.Participants[0].Messages)
	assert.Equal(t, "B", summary.Participants[1].Role)
	assert.Equal(t, 1, summary.Participants[1].Messages)

	// All counted messages started at 09:00 AM.
	assert.Equal(t, 2, bucket(t, summary, Morning).Messages)
	assert.Equal(t, 100.0, bucket(t, summary, Morning).Percent)
	assert.Equal(t, 0, bucket(t, summary, Night).Messages)
	assert.Equal(t, 0.0, bucket(t, summary, Night).Percent)

	// "project" occurs three times, more than any other token.
	require.NotEmpty(t, summary.Topics)
	assert.Equal(t, "project", summary.Topics[0].Word)
	assert.Equal(t, 3, summary.Topics[0].Mentions)

	// A sent the first message of the only non-empty conversation.
	assert.Equal(t, 1, summary.Participants[0].Started)
	assert.Equal(t, 0, summary.Participants[1].Started)

	require.NotNil(t, summary.Longest)
	assert.Equal(t, 1, summary.Longest.Index)
	assert.Equal(t, 2, summary.Longest.Messages)
	require.NotNil(t, summary.Shortest)
	assert.Equal(t, 2, summary.Shortest.Index)
	assert.Equal(t, 0, summary.Shortest.Messages)

	assert.Equal(t, 1.0, summary.AvgMessages)
}

func TestAnalyze_ParticipantCountsSumToTotal(t *testing.T) {
	summary := Analyze(twoConversationLog(), DefaultOptions())

	sum := 0
	for _, p := range summary.Participants {
		sum += p.Messages
	}
	assert.Equal(t, summary.TotalMessages, sum)
}

func TestAnalyze_BucketPercentagesSumToHundred(t *testing.T) {
	summary := Analyze(twoConversationLog(), DefaultOptions())

	total := 0.0
	for _, b := range summary.TimeOfDay {
		total += b.Percent
	}
	assert.InDelta(t, 100.0, total, 0.2)
}

func TestAnalyze_EmptyLog(t *testing.T) {
	summary := Analyze(&convlog.ConversationLog{Date: "2025-10-25"}, DefaultOptions())

	assert.Equal(t, 0, summary.TotalConversations)
	assert.Equal(t, 0, summary.TotalMessages)
	assert.Empty(t, summary.Participants)
	assert.Empty(t, summary.Topics)
	assert.Nil(t, summary.Longest)
	assert.Nil(t, summary.Shortest)
	assert.Equal(t, 0.0, summary.AvgMessages)

	// No division error: every bucket reports 0.0.
	for _, b := range summary.TimeOfDay {
		assert.Equal(t, 0, b.Messages)
		assert.Equal(t, 0.0, b.Percent)
	}
}

func TestAnalyze_MissingStartTimeTolerated(t *testing.T) {
	clog := &convlog.ConversationLog{
		Date: "2025-10-25",
		Conversations: []convlog.Conversation{
			{
				// No start_time: excluded from bucketing, counted elsewhere.
				Messages: []convlog.Message{
					{Role: "A", Content: "quarterly budget forecast"},
				},
			},
		},
	}

	summary := Analyze(clog, DefaultOptions())

	assert.Equal(t, 1, summary.TotalMessages)
	for _, b := range summary.TimeOfDay {
		assert.Equal(t, 0, b.Messages)
	}
	require.NotEmpty(t, summary.Topics)
	assert.Equal(t, "quarterly", summary.Topics[0].Word)
}

func TestAnalyze_UnparsableStartTimeTolerated(t *testing.T) {
	clog := &convlog.ConversationLog{
		Date: "2025-10-25",
		Conversations: []convlog.Conversation{
			{
				StartTime: "about nine-ish",
				Messages:  []convlog.Message{{Role: "A", Content: "budget"}},
			},
		},
	}

	summary := Analyze(clog, DefaultOptions())

	assert.Equal(t, 1, summary.TotalMessages)
	for _, b := range summary.TimeOfDay {
		assert.Equal(t, 0, b.Messages)
	}
}

func TestAnalyze_MessageWithoutRoleSkipped(t *testing.T) {
	clog := &convlog.ConversationLog{
		Date: "2025-10-25",
		Conversations: []convlog.Conversation{
			{
				StartTime: "09:00 AM",
				Messages: []convlog.Message{
					{Content: "orphaned message"},
					{Role: "A", Content: "budget review"},
				},
			},
		},
	}

	summary := Analyze(clog, DefaultOptions())

	assert.Equal(t, 1, summary.TotalMessages)
	require.Len(t, summary.Participants, 1)
	assert.Equal(t, 1, summary.Participants[0].Messages)
	assert.Equal(t, 1, bucket(t, summary, Morning).Messages)

	sum := 0
	for _, p := range summary.Participants {
		sum += p.Messages
	}
	assert.Equal(t, summary.TotalMessages, sum)
}

func TestAnalyze_MessageLengthStats(t *testing.T) {
	clog := &convlog.ConversationLog{
		Date: "2025-10-25",
		Conversations: []convlog.Conversation{
			{
				Messages: []convlog.Message{
					{Role: "A", Content: "1234"},
					{Role: "A", Content: "12345678"},
					{Role: "B", Content: ""},
				},
			},
		},
	}

	summary := Analyze(clog, DefaultOptions())

	require.Len(t, summary.Participants, 2)
	a := summary.Participants[0]
	assert.Equal(t, 6.0, a.AvgLength)
	assert.Equal(t, 8, a.LongestLength)

	// Empty content counts as a message of length zero with no topics.
	b := summary.Participants[1]
	assert.Equal(t, 1, b.Messages)
	assert.Equal(t, 0.0, b.AvgLength)
	assert.Equal(t, 0, b.LongestLength)
}

func TestAnalyze_LengthTiesGoToFirstConversation(t *testing.T) {
	msgs := []convlog.Message{{Role: "A", Content: "one"}}
	clog := &convlog.ConversationLog{
		Date: "2025-10-25",
		Conversations: []convlog.Conversation{
			{Messages: msgs},
			{Messages: msgs},
		},
	}

	summary := Analyze(clog, DefaultOptions())

	assert.Equal(t, 1, summary.Longest.Index)
	assert.Equal(t, 1, summary.Shortest.Index)
}

func TestAnalyze_Duration(t *testing.T) {
	clog := &convlog.ConversationLog{
		Date: "2025-10-25",
		Conversations: []convlog.Conversation{
			{
				StartTime: "11:50 PM",
				EndTime:   "12:10 AM",
				Messages:  []convlog.Message{{Role: "A", Content: "late night deploy"}},
			},
		},
	}

	summary := Analyze(clog, DefaultOptions())

	require.NotNil(t, summary.Longest)
	assert.True(t, summary.Longest.DurationKnown)
	assert.Equal(t, 20, summary.Longest.DurationMinutes)
	assert.Equal(t, Night, summary.Longest.Period)
}

func TestAnalyze_Deterministic(t *testing.T) {
	clog := twoConversationLog()

	first := Analyze(clog, DefaultOptions())
	second := Analyze(clog, DefaultOptions())

	assert.Equal(t, first, second)
}
