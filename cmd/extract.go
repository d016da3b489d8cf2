package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/link2itinerary/core"
	"github.com/gaurav-prasanna/link2itinerary/core/clip"
	"github.com/gaurav-prasanna/link2itinerary/core/extract"
	"github.com/gaurav-prasanna/link2itinerary/core/normalize"
)

var flagExtractMarkdown bool

var extractCmd = &cobra.Command{
	Use:   "extract <url>",
	Short: "Print the text the planner would send for a URL",
	Long: `Extract fetches a page and prints its readable text after noise removal
and clipping, exactly as it would appear in the prompt. With --markdown the
main content is printed as Markdown instead, without clipping.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().BoolVar(&flagExtractMarkdown, "markdown", false, "Print the main content as Markdown")
}

func runExtract(cmd *cobra.Command, args []string) error {
	page, err := newFetcher(appCfg.Fetcher).Fetch(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	extractor := extract.New()
	if !flagExtractMarkdown {
		text := clip.New(appCfg.Clipper.MaxChars).Clip(extractor.Extract(page.HTML).Text)
		_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	}

	markdown, err := pageMarkdown(extractor, normalize.NewForPage(page.URL), page.HTML)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), markdown)
	return err
}

// pageMarkdown converts the main content fragment of html with n.
func pageMarkdown(extractor *extract.HTMLExtractor, n core.Normalizer, html string) (string, error) {
	fragment, err := extractor.Fragment(html)
	if err != nil {
		return "", fmt.Errorf("extract: %w", err)
	}
	markdown, err := n.Normalize(fragment)
	if err != nil {
		return "", fmt.Errorf("normalize: %w", err)
	}
	return markdown, nil
}
