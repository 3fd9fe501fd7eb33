// Package chat is the backend of the site's chat widget. It forwards the
// visitor's message and a short slice of the conversation to an
// OpenAI-compatible chat completion API and always answers, falling back to
// a fixed reply when no provider is available.
package chat

// Limits applied to what is forwarded and returned.
const (
	// MaxContextTurns is how many trailing history entries are forwarded.
	MaxContextTurns = 8
	// MaxTurnChars caps each forwarded history entry.
	MaxTurnChars = 2000
	// MaxMessageChars caps the new message.
	MaxMessageChars = 4000
	// MaxHistory caps the history returned to the widget.
	MaxHistory = 20
)

// Roles understood by the completion API.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Reply sources, used in logs and metrics.
const (
	SourceSDK      = "sdk"
	SourceHTTP     = "http"
	SourceFallback = "fallback"
)

// EmptyMessageReply is returned with 400 when there is nothing to answer.
const EmptyMessageReply = "Brak wiadomości do przetworzenia."

// FallbackReply is used whenever no provider produced an answer.
const FallbackReply = "Dziękuję za wiadomość! Aktualnie moduł AI jest niedostępny na serwerze. " +
	"Możesz opisać krótko swój projekt lub pytanie – odpiszemy mailowo. " +
	"Kontakt: contact@karlab.com lub formularz Kontakt na stronie."

// SystemPrompt is prepended to every conversation.
const SystemPrompt = "Jesteś profesjonalnym asystentem KARLAB Software. Odpowiadasz uprzejmie i konkretnie, po polsku," +
	" chyba że użytkownik używa innego języka. Zakres: rozwój oprogramowania, Python, AI/ML," +
	" automatyzacje, analityka danych, konsulting techniczny. Jeśli pytanie wykracza poza te tematy," +
	" odpowiadasz krótko i rzeczowo. Kiedy ma to sens, zaproponuj dalsze kroki (np. wycenę, rozmowę)." +
	" Dane kontaktowe: +48 690 125 306, contact@karlab.com, formularz Kontakt na stronie." +
	" Unikaj wrażliwych danych i nie podawaj niezweryfikowanych informacji."

// Turn is one history entry. On the wire it is a two-element array
// [role, content].
type Turn [2]string

// Role returns the turn's role.
func (t Turn) Role() string { return t[0] }

// Content returns the turn's text.
func (t Turn) Content() string { return t[1] }

// Message is one entry of a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a parsed chat request.
type Request struct {
	Message string
	History []Turn
}

// Response is the JSON body returned to the widget.
type Response struct {
	OK      bool   `json:"ok"`
	Reply   string `json:"reply"`
	History []Turn `json:"history,omitempty"`

	// Source tells where Reply came from; not serialized.
	Source string `json:"-"`
}
