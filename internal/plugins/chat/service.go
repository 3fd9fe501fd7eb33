package chat

import (
	"context"
	"log/slog"
	"time"

	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/metrics"
)

// ChatService answers chat widget messages.
type ChatService interface {
	// Reply answers req. An empty message yields OK=false; everything else
	// gets a reply, from a provider or the fallback text.
	Reply(ctx context.Context, req Request) Response
}

type chatService struct {
	providers []Provider
}

// NewChatService creates a service trying providers in order.
func NewChatService(providers ...Provider) ChatService {
	return &chatService{providers: providers}
}

// Reply implements ChatService.
func (s *chatService) Reply(ctx context.Context, req Request) Response {
	if req.Message == "" {
		return Response{OK: false, Reply: EmptyMessageReply}
	}

	messages := BuildMessages(req)
	reply, source := s.complete(ctx, messages)
	metrics.RecordChatReply(source)

	history := make([]Turn, 0, len(req.History)+2)
	history = append(history, req.History...)
	history = append(history, Turn{RoleUser, req.Message}, Turn{RoleAssistant, reply})

	return Response{
		OK:      true,
		Reply:   reply,
		History: CapHistory(history, MaxHistory),
		Source:  source,
	}
}

// complete walks the provider chain and returns the first reply.
func (s *chatService) complete(ctx context.Context, messages []Message) (string, string) {
	for _, p := range s.providers {
		start := time.Now()
		reply, err := p.Completer.Complete(ctx, messages)
		if err == nil {
			slog.Debug("chat reply",
				slog.String("source", p.Source),
				slog.Duration("took", time.Since(start)),
			)
			return reply, p.Source
		}
		slog.Warn("chat provider failed",
			slog.String("source", p.Source),
			slog.Duration("took", time.Since(start)),
			slog.Any("error", err),
		)
	}
	return FallbackReply, SourceFallback
}

// BuildMessages assembles the forwarded conversation: the system prompt,
// the user/assistant entries among the last MaxContextTurns history entries
// (each truncated), then the truncated new message.
func BuildMessages(req Request) []Message {
	recent := req.History
	if len(recent) > MaxContextTurns {
		recent = recent[len(recent)-MaxContextTurns:]
	}

	messages := make([]Message, 0, len(recent)+2)
	messages = append(messages, Message{Role: RoleSystem, Content: SystemPrompt})
	for _, t := range recent {
		if t.Role() != RoleUser && t.Role() != RoleAssistant {
			continue
		}
		messages = append(messages, Message{Role: t.Role(), Content: truncate(t.Content(), MaxTurnChars)})
	}
	return append(messages, Message{Role: RoleUser, Content: truncate(req.Message, MaxMessageChars)})
}

// CapHistory keeps the most recent limit entries.
func CapHistory(history []Turn, limit int) []Turn {
	if len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
