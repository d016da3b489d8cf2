package cmd

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/link2itinerary/core"
	"github.com/gaurav-prasanna/link2itinerary/core/output"
	"github.com/gaurav-prasanna/link2itinerary/core/render"
	"github.com/gaurav-prasanna/link2itinerary/metrics"
)

var (
	flagPDF       bool
	flagMarkdown  bool
	flagJSON      bool
	flagStdout    bool
	flagOutputDir string
)

var planCmd = &cobra.Command{
	Use:   "plan <url>",
	Short: "Plan an itinerary for a URL and write it to disk",
	Long: `Plan runs the full pipeline once for a URL: fetch, extract, generate and
validate. The itinerary is rendered as JSON, Markdown or PDF.

Examples:
  link2itinerary plan https://example.com/porto --markdown
  link2itinerary plan https://example.com/porto --json --output_dir ./out
  link2itinerary plan https://example.com/porto --pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	// Output format flags (mutually exclusive).
	planCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	planCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	planCmd.Flags().BoolVar(&flagJSON, "json", false, "Output JSON")

	planCmd.Flags().BoolVar(&flagStdout, "stdout", false, "Write to standard output instead of a file")
	planCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	rawURL := args[0]

	if err := validateFlags(); err != nil {
		return err
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://example.com)", rawURL)
	}

	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	p, err := newPlanner(cmd.Context(), appCfg, appLog, metrics.NoOp{})
	if err != nil {
		return err
	}

	res := p.PlanFromURL(cmd.Context(), rawURL)
	if err := res.Err(); err != nil {
		return err
	}
	if res.Fallback {
		fmt.Fprintf(cmd.ErrOrStderr(), "! %v; using the fallback itinerary\n", res.Failure)
	}

	data, err := renderer.Render(res.Response, res.Page)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if flagStdout {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.Write(rawURL, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	return nil
}

// validateFlags checks that exactly one output format is chosen.
func validateFlags() error {
	formatCount := 0
	for _, set := range []bool{flagPDF, flagMarkdown, flagJSON} {
		if set {
			formatCount++
		}
	}

	if formatCount == 0 {
		return fmt.Errorf("exactly one output format is required: --pdf, --markdown, or --json")
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}
	if flagPDF && flagStdout {
		return fmt.Errorf("--stdout cannot be combined with --pdf")
	}
	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() (core.Renderer, error) {
	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer(), nil
	case flagJSON:
		return render.NewJSONRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("no output format selected")
	}
}
