package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/k0kubun/pp"
)

// Run executes the suite and writes a concise summary to w. With debug set,
// the effective config is dumped first; with asJSON set, the full result is
// written as JSON instead of the summary.
func Run(ctx context.Context, cfg SuiteConfig, w io.Writer, debug, asJSON bool) error {
	if debug {
		pp.Fprintln(w, cfg)
	}

	res, err := RunSuite(ctx, cfg)
	if err != nil {
		return err
	}

	if asJSON {
		b, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}

	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	for _, s := range res.Summaries {
		fmt.Fprintln(w, heading.Render(fmt.Sprintf("SCENARIO: %s", s.ScenarioID)))
		fmt.Fprintf(w, "  elapsed p50/p95: %.1f / %.1f us\n", s.ElapsedP50, s.ElapsedP95)
		fmt.Fprintf(w, "  samples/s mean±std: %.0f ± %.0f\n\n", s.SamplesPerSecMean, s.SamplesPerSecStd)
	}
	return nil
}
