// Package parser loads conversation log documents from disk.
package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parleyhq/parley/internal/convlog"
)

// maxLogSize caps the input document size.
const maxLogSize = 10 * 1024 * 1024 // 10MB

// unknownDate is used when the legacy array format carries no date and the
// file name does not contain one either.
const unknownDate = "Unknown Date"

// Parser interface defines the contract for conversation log parsing
type Parser interface {
	ParseFile(filename string) (*convlog.ConversationLog, error)
	ParseBytes(data []byte) (*convlog.ConversationLog, error)
	ParseReader(r io.Reader) (*convlog.ConversationLog, error)
}

// LogParser implements the Parser interface using encoding/json.
//
// Two document shapes are accepted: the current object form
// {"date": ..., "conversations": [...]} and the legacy form, a bare array
// of conversations. For legacy input loaded from a file, the log date is
// recovered from the file name when it carries a 20xx-style date token.
type LogParser struct{}

// NewLogParser creates a new conversation log parser
func NewLogParser() *LogParser {
	return &LogParser{}
}

// ParseFile parses a conversation log file
func (p *LogParser) ParseFile(filename string) (*convlog.ConversationLog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		// Unreadable and nonexistent paths report the same way: the path
		// did not resolve to a readable log.
		return nil, &NotFoundError{Path: filename, Err: err}
	}

	if len(data) > maxLogSize {
		return nil, &ParseError{
			Message: fmt.Sprintf("file too large: %d bytes (max 10MB)", len(data)),
		}
	}

	log, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	// Legacy array documents carry no date of their own.
	if log.Date == unknownDate {
		if date, ok := dateFromFilename(filename); ok {
			log.Date = date
		}
	}

	return log, nil
}

// ParseBytes parses a conversation log from bytes
func (p *LogParser) ParseBytes(data []byte) (*convlog.ConversationLog, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, &ParseError{
			Message:    "empty conversation log",
			Suggestion: "Provide a JSON object with date and conversations fields",
		}
	}

	switch trimmed[0] {
	case '{':
		return p.parseObject(data)
	case '[':
		return p.parseLegacyArray(data)
	default:
		// Make sure it is at least valid JSON so the failure kind is
		// reported honestly.
		var probe interface{}
		if err := json.Unmarshal(data, &probe); err != nil {
			return nil, wrapJSONError(err)
		}
		return nil, &SchemaError{
			Message:    fmt.Sprintf("top-level value must be an object or array, got %s", jsonKind(probe)),
			Suggestion: "Provide a JSON object with date and conversations fields",
		}
	}
}

// ParseReader parses a conversation log from a reader
func (p *LogParser) ParseReader(r io.Reader) (*convlog.ConversationLog, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxLogSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading conversation log: %w", err)
	}
	if len(data) > maxLogSize {
		return nil, &ParseError{
			Message: fmt.Sprintf("input too large: exceeds %d bytes", maxLogSize),
		}
	}
	return p.ParseBytes(data)
}

func (p *LogParser) parseObject(data []byte) (*convlog.ConversationLog, error) {
	var raw struct {
		Date          *string                 `json:"date"`
		Conversations *[]convlog.Conversation `json:"conversations"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, wrapJSONError(err)
	}

	if raw.Conversations == nil {
		return nil, &SchemaError{
			Message:    `missing required key "conversations"`,
			Suggestion: "Add a conversations array to the top-level object",
		}
	}
	if raw.Date == nil {
		return nil, &SchemaError{
			Message:    `missing required key "date"`,
			Suggestion: "Add a date field such as \"2025-10-25\" to the top-level object",
		}
	}

	return &convlog.ConversationLog{
		Date:          *raw.Date,
		Conversations: *raw.Conversations,
	}, nil
}

func (p *LogParser) parseLegacyArray(data []byte) (*convlog.ConversationLog, error) {
	var conversations []convlog.Conversation
	if err := json.Unmarshal(data, &conversations); err != nil {
		return nil, wrapJSONError(err)
	}

	return &convlog.ConversationLog{
		Date:          unknownDate,
		Conversations: conversations,
	}, nil
}

// wrapJSONError converts an encoding/json failure into the loader's error
// taxonomy: syntax problems are parse errors, type mismatches mean the JSON
// was well-formed but the wrong shape.
func wrapJSONError(err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ParseError{
			Message: syntaxErr.Error(),
			Offset:  syntaxErr.Offset,
		}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		msg := fmt.Sprintf("unexpected %s", typeErr.Value)
		if typeErr.Field != "" {
			msg = fmt.Sprintf("unexpected %s for %s", typeErr.Value, typeErr.Field)
		}
		return &SchemaError{Message: msg}
	}

	return &ParseError{Message: err.Error()}
}

// dateFromFilename recovers a log date from names like
// daily_conversations_2025-10-25.json.
func dateFromFilename(filename string) (string, bool) {
	base := filepath.Base(filename)
	for _, part := range strings.Split(base, "_") {
		if strings.HasPrefix(part, "20") && strings.HasSuffix(part, ".json") {
			return strings.TrimSuffix(part, ".json"), true
		}
	}
	return "", false
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case string:
		return "a string"
	case float64:
		return "a number"
	case bool:
		return "a boolean"
	case nil:
		return "null"
	default:
		return "an unexpected value"
	}
}
