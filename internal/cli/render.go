package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/imagemix/pkg/compose"
	"github.com/matzehuels/imagemix/pkg/errors"
	"github.com/matzehuels/imagemix/pkg/template"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	assets     string // asset location: directory or http(s) base URL (default: template dir)
	output     string // output directory for PNG creatives
	font       string // font file path or system font name (default: embedded Go Regular)
	filter     string // resample filter for image-layer resizing
	background string // canvas fill color as #RRGGBB or #RRGGBBAA
	workers    int    // render worker pool size (0 = number of CPUs)
	noCache    bool   // disable the on-disk cache for downloaded assets
	config     string // TOML config file path
}

// renderCommand creates the render command for composing a template into
// PNG creatives.
//
// Default settings:
//   - output: ./output
//   - filter: lanczos
//   - background: fully transparent white
//   - workers: number of CPUs
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [template-dir]",
		Short: "Render every layout entry of a template to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.config)
			if err != nil {
				return err
			}
			cfg.merge(&opts, cmd.Flags().Changed)
			if opts.assets == "" {
				opts.assets = args[0]
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.assets, "assets", "a", "", "asset directory or http(s) base URL (default: template dir)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "output", "output directory for rendered creatives")
	cmd.Flags().StringVar(&opts.font, "font", "", "font file or system font name for text layers")
	cmd.Flags().StringVar(&opts.filter, "filter", compose.DefaultFilter, "resample filter: lanczos, catmullrom, linear, box, nearest")
	cmd.Flags().StringVar(&opts.background, "background", "", "canvas fill color (#RRGGBB or #RRGGBBAA, default transparent)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "render worker pool size (0 = number of CPUs)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the downloaded asset cache")
	cmd.Flags().StringVar(&opts.config, "config", "", "TOML config file (default: ./imagemix.toml if present)")

	return cmd
}

// runRender loads the template, builds the composer, and renders the batch.
// Per-entry failures are reported but do not stop the batch; the command
// exits non-zero if any entry failed.
func (c *CLI) runRender(ctx context.Context, dir string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	composer, tmpl, err := newComposer(ctx, dir, opts)
	if err != nil {
		return err
	}

	logger.Infof("Loaded template: %d canvases, %d layers, %d layouts",
		len(tmpl.Canvases), len(tmpl.ImageLayers)+len(tmpl.TextLayers), len(tmpl.Layouts))

	prog := newProgress(logger)
	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %d creatives...", len(tmpl.Layouts)))
	spinner.Start()

	result, err := composer.RenderAll(ctx)
	if err != nil {
		if spinner.Cancelled() {
			spinner.StopWithError("Render cancelled")
		} else {
			spinner.StopWithError("Render failed")
		}
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d creatives", result.Rendered))

	for _, entry := range result.Entries {
		if entry.Err != nil {
			printError("%s: [%s] %s", entry.OutputFilename, entry.Code, entry.Error)
		}
	}

	if result.Failed > 0 {
		printWarning("%d of %d entries failed", result.Failed, len(result.Entries))
	} else {
		printSuccess("All %d creatives rendered", result.Rendered)
	}
	printBatchStats(result.Rendered, result.Failed, result.Duration)
	printFile(opts.output)

	if result.Failed > 0 {
		return fmt.Errorf("%d of %d entries failed", result.Failed, len(result.Entries))
	}
	return nil
}

// newComposer assembles the composition engine from CLI options. All
// errors here are run-fatal: bad template, unloadable font, or invalid
// engine settings.
func newComposer(ctx context.Context, dir string, opts *renderOpts) (*compose.Composer, *template.Template, error) {
	tmpl, err := template.Load(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("load template: %s", errors.UserMessage(err))
	}

	fonts, err := compose.LoadFont(opts.font)
	if err != nil {
		return nil, nil, fmt.Errorf("load font: %s", errors.UserMessage(err))
	}

	filter, err := compose.ParseFilter(opts.filter)
	if err != nil {
		return nil, nil, err
	}

	background, err := parseBackground(opts.background)
	if err != nil {
		return nil, nil, err
	}

	writer := compose.NewDirWriter(opts.output)
	composer, err := compose.New(tmpl, newSource(opts.assets, opts.noCache), fonts, writer,
		compose.WithFilter(filter),
		compose.WithBackground(background),
		compose.WithWorkers(opts.workers),
		compose.WithLogger(loggerFromContext(ctx)),
	)
	if err != nil {
		return nil, nil, err
	}
	return composer, tmpl, nil
}
