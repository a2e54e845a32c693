package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Manjussha/tunecheck/internal/checker"
	"github.com/Manjussha/tunecheck/internal/stats"
)

type styles struct {
	heading lipgloss.Style
	good    lipgloss.Style
	bad     lipgloss.Style
	warn    lipgloss.Style
	dim     lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain}
	}
	return styles{
		heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		good:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		bad:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		dim:     lipgloss.NewStyle().Faint(true),
	}
}

// Text writes the human-readable report. With color off the output is plain text.
func Text(w io.Writer, res *checker.Result, color bool) error {
	st := newStyles(color)
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s %d\n", st.heading.Render("Number of Examples:"), res.Examples)
	if res.Fingerprint != "" {
		fmt.Fprintln(&b, st.dim.Render(fmt.Sprintf("Dataset: %s (blake2b-256 %s, %s)", res.Path, res.Fingerprint, res.Encoding)))
	}

	if res.Empty {
		fmt.Fprintf(&b, "\n%s\n", st.bad.Render("Empty Dataset: nothing to check."))
		return flush(w, b.String())
	}

	if res.Validation.Empty() {
		fmt.Fprintf(&b, "\n%s\n", st.good.Render("No Errors Found!"))
	} else {
		fmt.Fprintf(&b, "\n%s\n\n", st.bad.Render("Errors Found!"))
		for _, c := range res.Validation.Categories() {
			fmt.Fprintf(&b, "%s: %d - Lines: %s\n",
				c, res.Validation.Count(c), formatLines(res.Validation.Lines(c)))
		}
	}

	if len(res.Distributions) == 0 {
		fmt.Fprintf(&b, "\n%s\n", st.warn.Render("No structurally valid examples; distributions skipped."))
	}
	for _, d := range res.Distributions {
		writeDistribution(&b, st, d)
	}

	if est := res.Estimate; est != nil {
		fmt.Fprintf(&b, "\n%s\n", st.warn.Render(fmt.Sprintf(
			"%d examples may be over the %d token limit and will be truncated during fine-tuning",
			est.TooLong, est.MaxTokensPerExample)))
		fmt.Fprintf(&b, "The dataset has ~%d tokens that will be charged for during training\n", est.BilledTokens)
		fmt.Fprintf(&b, "By default, you will train for %d epochs on this dataset\n", est.Epochs)
		fmt.Fprintf(&b, "By default, you will be charged for ~%d tokens\n", est.ChargedTokens)
	}
	b.WriteString("\n")
	return flush(w, b.String())
}

func writeDistribution(b *strings.Builder, st styles, d stats.Distribution) {
	fmt.Fprintf(b, "\n%s\n", st.heading.Render("Distribution of "+d.Label+":"))
	fmt.Fprintf(b, "Min/Max: %d, %d\n", d.Min, d.Max)
	fmt.Fprintf(b, "Mean/Median: %s, %s\n", formatFloat(d.Mean), formatFloat(d.Median))
	fmt.Fprintf(b, "P10/P90: %s, %s\n", formatFloat(d.P10), formatFloat(d.P90))
}

func formatLines(lines []int) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = fmt.Sprint(l)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// formatFloat prints at most two decimals, dropping trailing zeros.
func formatFloat(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func flush(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("report.Text: %w", err)
	}
	return nil
}
