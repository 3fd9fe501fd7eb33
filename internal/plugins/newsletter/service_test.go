package newsletter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

// --- Mock Repository ---

type mockSubscriptionRepo struct {
	subscribeFn func(ctx context.Context, sub *Subscription) (bool, error)
}

func (m *mockSubscriptionRepo) Subscribe(ctx context.Context, sub *Subscription) (bool, error) {
	if m.subscribeFn != nil {
		return m.subscribeFn(ctx, sub)
	}
	return true, nil
}

func TestSubscribe_Statuses(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		created bool
		err     error
		want    string
	}{
		{"new address", "jan@example.com", true, nil, "subscribed"},
		{"existing address", "jan@example.com", false, nil, "exists"},
		{"storage failure still thanks", "jan@example.com", false, errors.New("db down"), "subscribed"},
		{"empty", "   ", false, nil, "invalid"},
		{"no at sign", "jan.example.com", false, nil, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockSubscriptionRepo{
				subscribeFn: func(_ context.Context, _ *Subscription) (bool, error) {
					return tt.created, tt.err
				},
			}
			got := NewNewsletterService(repo).Subscribe(context.Background(), SubscribeInput{Email: tt.email})
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSubscribe_NormalizesEmail(t *testing.T) {
	var stored *Subscription
	repo := &mockSubscriptionRepo{
		subscribeFn: func(_ context.Context, sub *Subscription) (bool, error) {
			stored = sub
			return true, nil
		},
	}

	NewNewsletterService(repo).Subscribe(context.Background(), SubscribeInput{
		Email:      "  Jan@Example.COM ",
		SourcePage: "/about.html",
	})

	if stored == nil {
		t.Fatal("expected repository call")
	}
	if stored.Email != "jan@example.com" {
		t.Errorf("expected normalized email, got %q", stored.Email)
	}
	if stored.SourcePage != "/about.html" {
		t.Errorf("unexpected source page %q", stored.SourcePage)
	}
}

func TestSubscribe_InvalidSkipsRepository(t *testing.T) {
	called := false
	repo := &mockSubscriptionRepo{
		subscribeFn: func(context.Context, *Subscription) (bool, error) {
			called = true
			return true, nil
		},
	}
	NewNewsletterService(repo).Subscribe(context.Background(), SubscribeInput{Email: "nope"})
	if called {
		t.Error("invalid address must not be stored")
	}
}

func TestHandler_SubscribeRedirects(t *testing.T) {
	repo := &mockSubscriptionRepo{
		subscribeFn: func(context.Context, *Subscription) (bool, error) { return false, nil },
	}
	e := echo.New()
	RegisterRoutes(e, NewHandler(NewNewsletterService(repo)))

	form := url.Values{"email": {"jan@example.com"}}
	req := httptest.NewRequest(http.MethodPost, "/newsletter/subscribe", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/newsletter/thank-you?status=exists" {
		t.Errorf("unexpected redirect %q", loc)
	}
}
