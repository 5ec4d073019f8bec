package convlog

import "encoding/json"

// Logs in the wild are not always clean: content occasionally arrives as a
// nested object or number, and roles or times sometimes carry the wrong
// JSON kind. Decoding is lenient so a single sloppy record cannot sink the
// whole document; the analyzer decides what a partially decoded record may
// still contribute.

type rawMessage struct {
	Role    json.RawMessage `json:"role"`
	Content json.RawMessage `json:"content"`
}

// UnmarshalJSON decodes a message, stringifying non-string content and
// blanking a non-string role rather than failing the document.
func (m *Message) UnmarshalJSON(data []byte) error {
	var raw rawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	m.Role = decodeString(raw.Role, true)
	m.Content = decodeString(raw.Content, false)
	return nil
}

type rawConversation struct {
	StartTime json.RawMessage `json:"start_time"`
	EndTime   json.RawMessage `json:"end_time"`
	Messages  []Message       `json:"messages"`
}

// UnmarshalJSON decodes a conversation, treating non-string time fields as
// absent.
func (c *Conversation) UnmarshalJSON(data []byte) error {
	var raw rawConversation
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.StartTime = decodeString(raw.StartTime, true)
	c.EndTime = decodeString(raw.EndTime, true)
	c.Messages = raw.Messages
	return nil
}

// decodeString returns the string value of raw. When strict is false a
// non-string value is kept as its compact JSON text, mirroring how the
// log producers have historically coerced structured content.
func decodeString(raw json.RawMessage, strict bool) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	if strict {
		return ""
	}
	return string(raw)
}
