// Package web holds the server-rendered HTML pages and their helpers.
package web

import (
	"embed"
	"html/template"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

// Funcs are the helpers available to every page.
var Funcs = template.FuncMap{
	"usd":      USD,
	"datetime": func(t time.Time) string { return t.UTC().Format("2006-01-02 15:04:05") },
}

// Templates parses every embedded page.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(templateFS, "templates/*.html")
}

// MustTemplates is Templates for program start-up and tests.
func MustTemplates() *template.Template {
	return template.Must(Templates())
}

// USD formats an amount in dollars, rounded to cents: 9740 → "$9,740.00".
func USD(amount decimal.Decimal) string {
	cur := *money.New(0, money.USD).Currency()
	cents := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(cents.IntPart())
}
