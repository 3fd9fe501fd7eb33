package chat

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ParseRequest decodes a chat request leniently. A body that is not a JSON
// object yields an empty request; history entries that are not
// [string, string] pairs are dropped one by one.
func ParseRequest(body []byte) Request {
	var raw struct {
		Message json.RawMessage `json:"message"`
		History json.RawMessage `json:"history"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return Request{}
	}

	return Request{
		Message: strings.TrimSpace(parseMessage(raw.Message)),
		History: parseHistory(raw.History),
	}
}

// parseMessage accepts a JSON string, or true and non-zero numbers as their
// literal text. null, false, zero, objects and arrays count as empty.
func parseMessage(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	switch raw[0] {
	case 'n', 'f', '{', '[':
		return ""
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil && n == 0 {
		return ""
	}
	return string(raw)
}

func parseHistory(raw json.RawMessage) []Turn {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}

	history := make([]Turn, 0, len(entries))
	for _, entry := range entries {
		var pair []string
		if err := json.Unmarshal(entry, &pair); err != nil || len(pair) != 2 {
			continue
		}
		history = append(history, Turn{pair[0], pair[1]})
	}
	return history
}
