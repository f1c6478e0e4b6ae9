// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

/*
Package view renders the server-side pages (welcome, login, register,
dashboard) from templates embedded in the binary.

# Architecture

Handlers never touch templates directly: they fill a [Data] value and call
[Renderer.Render]. Everything shown to the user — flash messages, the form
error list, echoed field values — arrives through that explicit structure,
never through ambient request state.
*/
package view

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Page names accepted by [Renderer.Render].
const (
	PageWelcome   = "welcome"
	PageLogin     = "login"
	PageRegister  = "register"
	PageDashboard = "dashboard"
)

// Flash is a one-shot notification carried across a redirect.
type Flash struct {
	// Kind selects the styling: "success" or "error".
	Kind string
	// Message is the text shown to the user.
	Message string
}

// Data is the complete input of a page render.
type Data struct {
	// Title is the page title.
	Title string

	// Flashes are the one-shot messages popped from the session.
	Flashes []Flash

	// Errors is the full set of form validation messages, in rule order.
	Errors []string

	// Name and Email echo the submitted registration fields so the user
	// does not retype them. Passwords are deliberately never echoed.
	Name  string
	Email string

	// RedirectURI is threaded through the login form so a failed attempt
	// keeps the caller's origin context.
	RedirectURI string

	// UserName is the display name of the signed-in user (dashboard).
	UserName string
}

// Renderer holds the parsed template set, one entry per page.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded templates. Each page is combined with the
// shared layout.
func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template)

	for _, name := range []string{PageWelcome, PageLogin, PageRegister, PageDashboard} {
		parsed, err := template.ParseFS(templateFiles, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("view: failed to parse %q: %w", name, err)
		}
		pages[name] = parsed
	}

	return &Renderer{pages: pages}, nil
}

// Render writes the named page with the given status code.
func (renderer *Renderer) Render(writer http.ResponseWriter, statusCode int, page string, data Data) error {
	parsed, ok := renderer.pages[page]
	if !ok {
		return fmt.Errorf("view: unknown page %q", page)
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(statusCode)

	if err := parsed.ExecuteTemplate(writer, "layout", data); err != nil {
		return fmt.Errorf("view: failed to render %q: %w", page, err)
	}
	return nil
}
