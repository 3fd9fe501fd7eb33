// Package newsletter records newsletter sign-ups. Each address is stored
// once; signing up again reports the address as already subscribed.
package newsletter

// Sign-up results, passed to the thank-you page as its status query value.
const (
	StatusSubscribed = "subscribed"
	StatusExists     = "exists"
	StatusInvalid    = "invalid"
)

// Subscription is one row of newsletter_subscriptions.
type Subscription struct {
	Email      string
	SourcePage string
	ClientIP   string
	UserAgent  string
}

// SubscribeInput is the raw sign-up form.
type SubscribeInput struct {
	Email      string
	SourcePage string
	ClientIP   string
	UserAgent  string
}
