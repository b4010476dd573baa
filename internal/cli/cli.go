// Package cli implements the imagemix command-line interface.
//
// This package provides commands for validating composition templates,
// rendering them into batches of creatives, serving the engine over HTTP,
// and managing the remote asset cache. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Compose every layout entry of a template into PNG creatives
//   - validate: Check a template directory without rendering anything
//   - serve: Expose the composition engine over HTTP
//   - cache: Manage the downloaded asset cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/imagemix/pkg/buildinfo"
	"github.com/matzehuels/imagemix/pkg/cache"
	"github.com/matzehuels/imagemix/pkg/compose"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "imagemix"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "imagemix",
		Short:        "Imagemix composes templated image batches",
		Long:         `Imagemix is a CLI tool for composing batches of raster creatives from declarative CSV templates, stacking image and text layers onto blank canvases.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Asset Sources
// =============================================================================

// newSource builds the asset source for the given location. Locations with
// an http or https scheme fetch over the network (backed by the on-disk
// byte cache unless disabled); everything else is a local directory.
func newSource(location string, noCache bool) compose.Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return compose.NewHTTPSource(location, newAssetCache(noCache))
	}
	return compose.NewDirSource(location)
}

func newAssetCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return c
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/imagemix/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
