package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/imagemix/pkg/compose"
	"github.com/matzehuels/imagemix/pkg/template"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address
	assets  string // asset location (default: template dir)
	font    string // font file or system font name
	filter  string // resample filter
	noCache bool   // disable the downloaded asset cache
}

// serveCommand creates the serve command, exposing the composition engine
// over HTTP. The template is loaded once at startup; renders run on demand
// and finished creatives are held in memory for retrieval.
//
// Routes:
//   - GET  /healthz            liveness probe
//   - GET  /layouts            list all layout entries
//   - POST /render             render the full batch, returns the batch report
//   - GET  /creatives/{name}   fetch a rendered PNG by output filename
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve [template-dir]",
		Short: "Serve the composition engine over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.assets == "" {
				opts.assets = args[0]
			}
			return c.runServe(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVarP(&opts.assets, "assets", "a", "", "asset directory or http(s) base URL (default: template dir)")
	cmd.Flags().StringVar(&opts.font, "font", "", "font file or system font name for text layers")
	cmd.Flags().StringVar(&opts.filter, "filter", compose.DefaultFilter, "resample filter: lanczos, catmullrom, linear, box, nearest")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the downloaded asset cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, dir string, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	tmpl, err := template.Load(dir)
	if err != nil {
		return err
	}
	fonts, err := compose.LoadFont(opts.font)
	if err != nil {
		return err
	}
	filter, err := compose.ParseFilter(opts.filter)
	if err != nil {
		return err
	}

	writer := compose.NewMemWriter()
	composer, err := compose.New(tmpl, newSource(opts.assets, opts.noCache), fonts, writer,
		compose.WithFilter(filter),
		compose.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newRouter(tmpl, composer, writer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Listening on %s", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// newRouter wires the HTTP routes for the composition engine.
func newRouter(tmpl *template.Template, composer *compose.Composer, writer *compose.MemWriter) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/layouts", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, layoutList(tmpl))
	})

	r.Post("/render", func(w http.ResponseWriter, req *http.Request) {
		result, err := composer.RenderAll(req.Context())
		if err != nil {
			if errors.Is(err, context.Canceled) {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "render cancelled"})
				return
			}
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	r.Get("/creatives/{name}", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "name")
		data, ok := writer.Get(name)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "creative not rendered: " + name})
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	})

	return r
}

// layoutEntry is the JSON shape of one layout in the /layouts listing.
type layoutEntry struct {
	OutputFilename string   `json:"output_filename"`
	CanvasID       string   `json:"canvas_id"`
	Layers         []string `json:"layers"`
}

func layoutList(tmpl *template.Template) []layoutEntry {
	entries := make([]layoutEntry, 0, len(tmpl.Layouts))
	for _, l := range tmpl.Layouts {
		entries = append(entries, layoutEntry{
			OutputFilename: l.OutputFilename,
			CanvasID:       l.CanvasID,
			Layers:         l.LayerIDs,
		})
	}
	return entries
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
