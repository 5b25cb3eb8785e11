package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"impractical.co/sesqui"
	"impractical.co/sesqui/components"
	"impractical.co/sesqui/dom"
	"impractical.co/sesqui/internal/config"
	"impractical.co/sesqui/timeline"
)

func newBuildCmd(root *rootOptions) *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build every page in the configuration file",
		Long: `Build renders every page listed in the configuration file into
output_dir.

Each page starts as an empty shell with one container per block whose
selector is an id selector. Blocks are then mounted in order, so a block can
target markup written by an earlier one. Timeline datasets are read from
data_dir unless their source is an http(s) URL.

Examples:
  sesqui build
  sesqui build --config site/sesqui.yaml --jobs 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}
			ctx := loggingContext(cmd.Context(), cmd, root, cfg.LogLevel, cfg.LogFormat)
			return newSiteBuilder(cfg).build(ctx, jobs)
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "Number of pages to build at once")

	return cmd
}

type siteBuilder struct {
	cfg    *config.Config
	loader *timeline.Loader
}

func newSiteBuilder(cfg *config.Config) *siteBuilder {
	return &siteBuilder{
		cfg:    cfg,
		loader: &timeline.Loader{FS: os.DirFS(cfg.DataDir)},
	}
}

func (b *siteBuilder) build(ctx context.Context, jobs int) error {
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for _, page := range b.cfg.Pages {
		g.Go(func() error {
			return b.buildPage(ctx, page)
		})
	}
	err := g.Wait()
	if err != nil {
		return err
	}
	sesqui.Logger(ctx).InfoContext(ctx, "built site", "pages", len(b.cfg.Pages), "output_dir", b.cfg.OutputDir)
	return nil
}

func (b *siteBuilder) buildPage(ctx context.Context, page config.PageConfig) error {
	log := sesqui.Logger(ctx).With("page", page.File)

	// configuration mistakes fail the build before anything is mounted
	blocks := make([]components.Component, len(page.Blocks))
	sources := make([]timeline.Source, len(page.Blocks))
	var uses []sesqui.Component
	stylesheets := slices.Clone(page.Stylesheets)
	for i, block := range page.Blocks {
		if block.Kind == config.KindTimeline {
			src, err := timelineSource(block)
			if err != nil {
				return fmt.Errorf("error configuring timeline %q on %s: %w", block.Selector, page.File, err)
			}
			sources[i] = src
			if !slices.Contains(stylesheets, timeline.Stylesheet) {
				stylesheets = append(stylesheets, timeline.Stylesheet)
			}
			continue
		}
		c, err := components.Decode(block.Kind, components.FromYAML(&block.Config))
		if err != nil {
			return fmt.Errorf("error configuring %s %q on %s: %w", block.Kind, block.Selector, page.File, err)
		}
		blocks[i] = c
		uses = append(uses, c)
	}

	var shell bytes.Buffer
	components.RenderPage(ctx, &shell, &components.Page{
		Title:       page.Title,
		MountPoints: page.MountPoints(),
		Stylesheets: stylesheets,
		Scripts:     page.Scripts,
		Blocks:      uses,
	})
	doc, err := dom.Parse(&shell)
	if err != nil {
		return fmt.Errorf("error parsing page shell for %s: %w", page.File, err)
	}

	var closers []func()
	defer func() {
		for _, closer := range closers {
			closer()
		}
	}()
	for i, block := range page.Blocks {
		if blocks[i] != nil {
			if m := components.Mount(ctx, doc, block.Selector, blocks[i]); m != nil {
				closers = append(closers, m.Close)
			}
			continue
		}
		id := fmt.Sprintf("timeline-%d", i)
		if mountPoint, ok := block.MountPoint(); ok {
			id = "timeline-" + mountPoint
		}
		t := timeline.Mount(ctx, doc, block.Selector, sources[i],
			timeline.WithLoader(b.loader),
			timeline.WithDebounce(b.cfg.Timeline.Debounce),
			timeline.WithMinQueryLength(b.cfg.Timeline.MinQueryLength),
			timeline.WithIDFunc(func() string { return id }),
		)
		if t != nil {
			closers = append(closers, t.Close)
		}
	}

	out := filepath.Join(b.cfg.OutputDir, page.File)
	err = writeDocument(out, doc)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "built page", "path", out, "blocks", len(page.Blocks))
	return nil
}

// timelineSource returns the dataset source of a timeline block: its
// source path or URL, or the dataset inlined in its config.
func timelineSource(block config.BlockConfig) (timeline.Source, error) {
	if block.Source != "" {
		return timeline.URL(block.Source), nil
	}
	var dataset timeline.Dataset
	err := block.Config.Decode(&dataset)
	if err != nil {
		return timeline.Source{}, fmt.Errorf("error decoding inline dataset: %w", err)
	}
	return timeline.Inline(dataset), nil
}

func writeDocument(path string, doc *dom.Document) (err error) {
	err = os.MkdirAll(filepath.Dir(path), 0o750)
	if err != nil {
		return fmt.Errorf("error creating directory for %s: %w", path, err)
	}
	f, err := os.Create(path) // #nosec G304 -- path is inside output_dir
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	defer func() {
		closeErr := f.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("error closing %s: %w", path, closeErr)
		}
	}()
	err = doc.Render(f)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}
