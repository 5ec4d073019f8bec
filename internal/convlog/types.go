// Package convlog defines the document model for daily conversation logs.
//
// A log is a single JSON document covering one calendar date. Two encodings
// are accepted on disk: the current object form with a date and a list of
// conversations, and a legacy form that is a bare array of conversations.
package convlog

// ConversationLog is the top-level document: one day of conversations
// between any number of participants.
type ConversationLog struct {
	// Date is the calendar date the log covers, e.g. "2025-10-25".
	Date string `json:"date"`
	// Conversations holds the day's conversations in log order.
	Conversations []Conversation `json:"conversations"`
}

// Conversation is a contiguous exchange of messages. The start and end
// times are 12-hour clock strings such as "9:05 AM" or "11:30 PM"; both
// are optional and a conversation may contain no messages at all.
type Conversation struct {
	// StartTime is when the conversation began, e.g. "09:00 AM".
	StartTime string `json:"start_time,omitempty"`
	// EndTime is when the conversation ended, e.g. "09:45 AM".
	EndTime string `json:"end_time,omitempty"`
	// Messages holds the conversation's messages in order.
	Messages []Message `json:"messages"`
}

// Message is a single utterance by one participant.
type Message struct {
	// Role identifies the speaker. Free-form; the log does not restrict
	// how many distinct roles appear.
	Role string `json:"role"`
	// Content is the text body of the message.
	Content string `json:"content"`
}

// MessageCount returns the number of messages in the conversation.
func (c Conversation) MessageCount() int {
	return len(c.Messages)
}

// Initiator returns the role of the conversation's first message and
// whether the conversation has one.
func (c Conversation) Initiator() (string, bool) {
	if len(c.Messages) == 0 {
		return "", false
	}
	return c.Messages[0].Role, true
}
