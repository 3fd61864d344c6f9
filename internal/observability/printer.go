// Package observability provides formatted output utilities for verbose CLI
// mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/mhewett/cftables/internal/cache"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
)

// Printer handles formatted output for verbose mode.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRefreshOutcome outputs a human-readable summary of a refresh run.
func (p *Printer) PrintRefreshOutcome(outcome *cache.Outcome) {
	if outcome == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Run: %s\n", outcome.RunID))
	sb.WriteString("\n")

	for _, res := range outcome.Results {
		sb.WriteString(fmt.Sprintf("%-16s %s\n", res.Resource.Name, res.Status))
		sb.WriteString(fmt.Sprintf("  → %s\n", res.Resource.CachePath))
		if res.Err != nil {
			sb.WriteString(fmt.Sprintf("  error: %v\n", res.Err))
		}
	}

	if outcome.AnyFailure() {
		sb.WriteString("\nAt least one table could not be refreshed;\n")
		sb.WriteString("checks will use existing local copies.\n")
	}

	p.printBox("Table Refresh", strings.TrimRight(sb.String(), "\n"))
}

// PrintResourceStatus outputs the cache state of one resource without
// touching the network.
func (p *Printer) PrintResourceStatus(res cache.Resource, ageDays float64, exists, fresh bool) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Source: %s\n", res.Source.Source()))
	sb.WriteString(fmt.Sprintf("Cache:  %s\n", res.CachePath))

	switch {
	case !exists:
		sb.WriteString("State:  missing\n")
	case fresh:
		sb.WriteString(fmt.Sprintf("State:  fresh (%.2f days old, limit %.2f)\n", ageDays, res.MaxAgeDays))
	default:
		sb.WriteString(fmt.Sprintf("State:  stale (%.2f days old, limit %.2f)\n", ageDays, res.MaxAgeDays))
	}

	p.printBox(res.Name, strings.TrimRight(sb.String(), "\n"))
}

// PrintCheckResult reports the outcome of one checker invocation.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintCheckResult(inputFile string, err error) {
	if err != nil {
		fmt.Fprintf(p.out, "✗ %s: %v\n", inputFile, err)
		return
	}
	fmt.Fprintf(p.out, "✓ %s\n", inputFile)
}
