package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"impractical.co/sesqui"
	"impractical.co/sesqui/timeline"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	limit          int
	format         string // "text", "json"
	minQueryLength int
}

func newSearchCmd(root *rootOptions) *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <dataset> <query>",
		Short: "Search a timeline dataset",
		Long: `Search a timeline dataset the way the timeline's search box does.

Every word of the query has to start a word in the same field (title,
description, or date) of an event. Results are listed title matches first,
then description matches, then date matches.

The dataset is a local file or an http(s) URL.

Examples:
  sesqui search data/timeline.json moon
  sesqui search data/timeline.json "new wing" --format json
  sesqui search https://example.com/timeline.json libr --limit 5`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := loggingContext(cmd.Context(), cmd, root, "warn", "text")
			return runSearch(ctx, cmd.OutOrStdout(), args[0], strings.Join(args[1:], " "), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of results (0 for all)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")
	cmd.Flags().IntVar(&opts.minQueryLength, "min-query-length", timeline.DefaultMinQueryLength, "Shortest query, in characters, that runs a search")

	return cmd
}

// searchResult is one search hit in JSON output.
type searchResult struct {
	Year  string `json:"year"`
	Date  string `json:"date"`
	Title string `json:"title"`
	Link  string `json:"link,omitempty"`
}

func runSearch(ctx context.Context, out io.Writer, datasetPath, query string, opts searchOptions) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q, want text or json", opts.format)
	}
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < opts.minQueryLength {
		return fmt.Errorf("query %q is shorter than %d characters", query, opts.minQueryLength)
	}

	dataset, err := loadDataset(ctx, datasetPath)
	if err != nil {
		return err
	}
	err = dataset.Validate()
	if err != nil {
		return fmt.Errorf("invalid dataset %s: %w", datasetPath, err)
	}

	index, err := timeline.Build(ctx, dataset.Groups)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := index.Close(); closeErr != nil {
			sesqui.Logger(ctx).WarnContext(ctx, "error closing search index", "error", closeErr)
		}
	}()

	records, err := index.Query(ctx, query)
	if err != nil {
		return err
	}
	if opts.limit > 0 && len(records) > opts.limit {
		records = records[:opts.limit]
	}

	if opts.format == "json" {
		results := make([]searchResult, 0, len(records))
		for _, record := range records {
			results = append(results, searchResult{
				Year:  record.GroupYear,
				Date:  record.Date,
				Title: record.Title,
				Link:  record.Link,
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(records) == 0 {
		_, err = fmt.Fprintln(out, "No events match your search.")
		return err
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, record := range records {
		_, err = fmt.Fprintf(w, "%s\t%s\t%s\n", record.GroupYear, record.Date, record.Title)
		if err != nil {
			return err
		}
	}
	return w.Flush()
}

// loadDataset reads a dataset from a local file or an http(s) URL.
func loadDataset(ctx context.Context, path string) (timeline.Dataset, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return (&timeline.Loader{}).Load(ctx, timeline.URL(path))
	}
	raw, err := os.ReadFile(path) // #nosec G304 -- path is chosen by the operator
	if err != nil {
		return timeline.Dataset{}, fmt.Errorf("error reading dataset: %w", err)
	}
	return timeline.Decode(raw)
}
