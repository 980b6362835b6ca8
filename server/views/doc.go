// Package views renders the HTML pages of the web interface. Every page is a
// templ.Component; handlers render it bare for HTMX requests and wrapped in
// Layout otherwise.
package views

//go:generate go run github.com/a-h/templ/cmd/templ@v0.2.793 generate
