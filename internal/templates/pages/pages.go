// Package pages holds the site's page components. Each page is an
// html/template file embedded into the binary, rendered inside the shared
// layout, and exposed as a templ.Component so handlers render every page
// through middleware.Render.
package pages

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/templates/layouts"
)

//go:embed html/*.html
var files embed.FS

// Template names, one per html/<name>.html file besides the layout.
const (
	pageBase            = "base"
	pageAbout           = "about"
	pageReferences      = "references"
	pageCerts           = "certs"
	pageProjects        = "projects"
	pageContact         = "contact"
	pageInquiry         = "inquiry"
	pageSubscribeThanks = "subscribe_thanks"
	pageError           = "error"
)

// navItem is a single entry of the header navigation.
type navItem struct {
	Href   string
	Label  string
	Active bool
}

var navigation = []navItem{
	{Href: "/base.html", Label: "Start"},
	{Href: "/about.html", Label: "O nas"},
	{Href: "/projects.html", Label: "Projekty"},
	{Href: "/references.html", Label: "Referencje"},
	{Href: "/certs.html", Label: "Certyfikaty"},
	{Href: "/inquiry.html", Label: "Zapytanie"},
	{Href: "/contact.html", Label: "Kontakt"},
}

// layoutData is what the layout template sees. Body is the page-specific view.
type layoutData struct {
	CSRFToken  string
	ActivePath string
	Nav        []navItem
	Body       any
}

// templates maps page name to the layout+page template set. Each page gets
// its own set because every page defines "title" and "content".
var templates = mustParse(
	pageBase, pageAbout, pageReferences, pageCerts, pageProjects,
	pageContact, pageInquiry, pageSubscribeThanks, pageError,
)

func mustParse(names ...string) map[string]*template.Template {
	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		out[name] = template.Must(template.New("layout.html").ParseFS(files,
			"html/layout.html",
			"html/"+name+".html",
		))
	}
	return out
}

// page returns a component rendering the named page with body as its view.
// Request data (CSRF token, active path) is read from ctx at render time.
func page(name string, body any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t, ok := templates[name]
		if !ok {
			return fmt.Errorf("unknown page %q", name)
		}

		active := layouts.GetActivePath(ctx)
		if active == "/" {
			active = "/base.html"
		}
		nav := make([]navItem, len(navigation))
		for i, item := range navigation {
			item.Active = item.Href == active
			nav[i] = item
		}

		data := layoutData{
			CSRFToken:  layouts.GetCSRFToken(ctx),
			ActivePath: active,
			Nav:        nav,
			Body:       body,
		}
		return templ.FromGoHTML(t, data).Render(ctx, w)
	})
}

// Home renders the landing page (also served as /base.html).
func Home() templ.Component { return page(pageBase, nil) }

// About renders the company page.
func About() templ.Component { return page(pageAbout, nil) }

// References renders client testimonials.
func References() templ.Component { return page(pageReferences, nil) }

// Certs renders the certifications page.
func Certs() templ.Component { return page(pageCerts, nil) }

// Projects renders the portfolio page.
func Projects() templ.Component { return page(pageProjects, nil) }

// ContactView is the contact page state.
type ContactView struct {
	Submitted bool
}

// Contact renders the contact form, with a confirmation once submitted.
func Contact(v ContactView) templ.Component { return page(pageContact, v) }

// ServiceTypes are the options offered by the inquiry form.
var ServiceTypes = []string{
	"Aplikacja webowa",
	"Aplikacja mobilna",
	"Integracja systemów",
	"Automatyzacja / AI",
	"Konsultacje",
	"Inne",
}

// BudgetRanges are the budget options offered by the inquiry form.
var BudgetRanges = []string{
	"do 10 000 zł",
	"10 000 - 30 000 zł",
	"30 000 - 100 000 zł",
	"powyżej 100 000 zł",
	"Do ustalenia",
}

// InquiryView is the inquiry page state. Values refills the form after a
// failed validation and is keyed by form field name.
type InquiryView struct {
	Submitted    bool
	Errors       []string
	Values       map[string]string
	ServiceTypes []string
	BudgetRanges []string
}

// Inquiry renders the business inquiry form.
func Inquiry(v InquiryView) templ.Component {
	if v.Values == nil {
		v.Values = map[string]string{}
	}
	if v.ServiceTypes == nil {
		v.ServiceTypes = ServiceTypes
	}
	if v.BudgetRanges == nil {
		v.BudgetRanges = BudgetRanges
	}
	return page(pageInquiry, v)
}

// SubscribeThanksView is the newsletter thank-you page state.
type SubscribeThanksView struct {
	Duplicate bool
	Invalid   bool
}

// SubscribeThanks renders the page shown after a newsletter sign-up.
func SubscribeThanks(v SubscribeThanksView) templ.Component {
	return page(pageSubscribeThanks, v)
}

// errorView is the error page state.
type errorView struct {
	Code    int
	Message string
}

// ErrorPage renders a full error page for browser requests.
func ErrorPage(code int, message string) templ.Component {
	return page(pageError, errorView{Code: code, Message: message})
}
