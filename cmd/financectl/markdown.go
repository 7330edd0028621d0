package main

import (
	"fmt"
	"os"
	"strings"

	"finance/internal/models"
	"finance/internal/quote"
	"finance/internal/services"
	"finance/internal/web"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders md for the terminal, falling back to the raw text.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Fprint(os.Stdout, out)
}

func quoteMarkdown(q *quote.Quote) string {
	return fmt.Sprintf("# %s\n\nA share of **%s** (%s) costs **%s**.\n", q.Symbol, q.Name, q.Symbol, web.USD(q.Price))
}

func holdingsMarkdown(username string, p *services.Portfolio) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Holdings of %s\n\n", username)
	b.WriteString("| Symbol | Name | Shares | Price | Total |\n")
	b.WriteString("|:---|:---|---:|---:|---:|\n")
	for _, h := range p.Holdings {
		fmt.Fprintf(&b, "| %s | %s | %d | %s | %s |\n", h.Symbol, h.Name, h.Shares, web.USD(h.Price), web.USD(h.Value))
	}
	fmt.Fprintf(&b, "| **Cash** | | | | %s |\n", web.USD(p.Cash))
	fmt.Fprintf(&b, "| **TOTAL** | | | | %s |\n", web.USD(p.Total))
	return b.String()
}

func historyMarkdown(username string, entries []services.HistoryEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# History of %s\n\n", username)
	if len(entries) == 0 {
		b.WriteString("No transactions yet.\n")
		return b.String()
	}
	b.WriteString("| Transacted | Type | Symbol | Shares | Price | Total |\n")
	b.WriteString("|:---|:---|:---|---:|---:|---:|\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %s | %s |\n",
			e.Timestamp.UTC().Format("2006-01-02 15:04:05"), e.Kind, e.Symbol, e.Shares, web.USD(e.Price), web.USD(e.Total))
	}
	return b.String()
}

func auditMarkdown(username string, entries []models.AuditLog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Activity of %s\n\n", username)
	if len(entries) == 0 {
		b.WriteString("No activity recorded.\n")
		return b.String()
	}
	b.WriteString("| When | Action | IP | Details |\n")
	b.WriteString("|:---|:---|:---|:---|\n")
	for _, e := range entries {
		details := e.Changes
		if details == "" {
			details = "-"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | `%s` |\n",
			e.CreatedAt.UTC().Format("2006-01-02 15:04:05"), e.Action, e.IPAddress, details)
	}
	return b.String()
}
