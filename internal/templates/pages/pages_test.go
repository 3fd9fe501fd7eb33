package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/templates/layouts"
)

func render(t *testing.T, c templ.Component, path string) string {
	t.Helper()
	ctx := layouts.SetCSRFToken(context.Background(), "tok123")
	ctx = layouts.SetActivePath(ctx, path)

	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return buf.String()
}

func TestStaticPagesRender(t *testing.T) {
	tests := []struct {
		name      string
		component templ.Component
		path      string
		heading   string
	}{
		{"home", Home(), "/", "Oprogramowanie szyte na miarę"},
		{"about", About(), "/about.html", "O nas"},
		{"references", References(), "/references.html", "Referencje"},
		{"certs", Certs(), "/certs.html", "Certyfikaty"},
		{"projects", Projects(), "/projects.html", "Projekty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render(t, tt.component, tt.path)
			if !strings.Contains(out, tt.heading) {
				t.Errorf("missing heading %q", tt.heading)
			}
			if !strings.Contains(out, `value="tok123"`) {
				t.Error("newsletter form should carry the CSRF token")
			}
			if !strings.Contains(out, "</head>") {
				t.Error("layout should be rendered")
			}
		})
	}
}

func TestNavigationMarksActivePage(t *testing.T) {
	out := render(t, About(), "/about.html")
	if !strings.Contains(out, `<a href="/about.html" class="active"`) {
		t.Error("about link should be active")
	}
	if strings.Contains(out, `<a href="/projects.html" class="active"`) {
		t.Error("only the current page should be active")
	}

	home := render(t, Home(), "/")
	if !strings.Contains(home, `<a href="/base.html" class="active"`) {
		t.Error("root path should highlight the home link")
	}
}

func TestContact(t *testing.T) {
	if out := render(t, Contact(ContactView{}), "/contact.html"); strings.Contains(out, "Wiadomość została wysłana") {
		t.Error("confirmation shown before submit")
	}
	if out := render(t, Contact(ContactView{Submitted: true}), "/contact.html"); !strings.Contains(out, "Wiadomość została wysłana") {
		t.Error("confirmation missing after submit")
	}
}

func TestInquiry(t *testing.T) {
	out := render(t, Inquiry(InquiryView{
		Errors: []string{"Brak opisu projektu."},
		Values: map[string]string{"name": "<Jan>", "service_type": "Konsultacje"},
	}), "/inquiry.html")

	if !strings.Contains(out, "Brak opisu projektu.") {
		t.Error("validation errors should be listed")
	}
	if !strings.Contains(out, `value="&lt;Jan&gt;"`) {
		t.Error("values should be escaped and refilled")
	}
	if !strings.Contains(out, `<option value="Konsultacje" selected>`) {
		t.Error("selected service type should be kept")
	}

	done := render(t, Inquiry(InquiryView{Submitted: true}), "/inquiry.html")
	if strings.Contains(done, `action="/inquiry.html"`) {
		t.Error("form should be hidden after a successful submit")
	}
}

func TestSubscribeThanks(t *testing.T) {
	if out := render(t, SubscribeThanks(SubscribeThanksView{Duplicate: true}), "/newsletter/thank-you"); !strings.Contains(out, "Już jesteś z nami") {
		t.Error("duplicate message missing")
	}
	if out := render(t, SubscribeThanks(SubscribeThanksView{}), "/newsletter/thank-you"); !strings.Contains(out, "Dziękujemy za zapis") {
		t.Error("thank-you message missing")
	}
}

func TestErrorPage(t *testing.T) {
	out := render(t, ErrorPage(404, "Nie znaleziono"), "/missing")
	if !strings.Contains(out, "<h1>404</h1>") || !strings.Contains(out, "Nie znaleziono") {
		t.Errorf("unexpected error page: %s", out)
	}
}
