package chat

import (
	"reflect"
	"testing"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
		wantHistory []Turn
	}{
		{"not json", `hello`, "", nil},
		{"empty body", ``, "", nil},
		{"trimmed message", `{"message": "  Cześć  "}`, "Cześć", []Turn(nil)},
		{"numeric message", `{"message": 42}`, "42", nil},
		{"null message", `{"message": null}`, "", nil},
		{"false message", `{"message": false}`, "", nil},
		{"zero message", `{"message": 0}`, "", nil},
		{"zero float message", `{"message": 0.0}`, "", nil},
		{"true message", `{"message": true}`, "true", nil},
		{"object message", `{"message": {"a": 1}}`, "", nil},
		{
			"history kept",
			`{"message": "x", "history": [["user", "a"], ["assistant", "b"]]}`,
			"x",
			[]Turn{{"user", "a"}, {"assistant", "b"}},
		},
		{
			"malformed entries dropped",
			`{"message": "x", "history": [["user", "a"], ["user"], [1, 2], "oops", ["assistant", "b", "c"], ["assistant", "ok"]]}`,
			"x",
			[]Turn{{"user", "a"}, {"assistant", "ok"}},
		},
		{"history not a list", `{"message": "x", "history": {"a": "b"}}`, "x", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRequest([]byte(tt.body))
			if got.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", got.Message, tt.wantMessage)
			}
			if len(got.History) != len(tt.wantHistory) {
				t.Fatalf("history = %v, want %v", got.History, tt.wantHistory)
			}
			if len(tt.wantHistory) > 0 && !reflect.DeepEqual(got.History, tt.wantHistory) {
				t.Errorf("history = %v, want %v", got.History, tt.wantHistory)
			}
		})
	}
}
