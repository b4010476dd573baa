package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/imagemix/pkg/errors"
	"github.com/matzehuels/imagemix/pkg/template"
)

// validateCommand creates the validate command. It loads a template
// directory and resolves every reference a batch render would touch,
// without fetching assets or rendering anything.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [template-dir]",
		Short: "Check a template directory without rendering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), args[0])
		},
	}
}

func runValidate(ctx context.Context, dir string) error {
	logger := loggerFromContext(ctx)
	logger.Debugf("Validating template in %s", dir)

	tmpl, err := template.Load(dir)
	if err != nil {
		printError("%s", errors.UserMessage(err))
		return fmt.Errorf("template is invalid")
	}

	registry, err := template.NewRegistry(tmpl.ImageLayers, tmpl.TextLayers)
	if err != nil {
		printError("%s", errors.UserMessage(err))
		return fmt.Errorf("template is invalid")
	}

	printKeyValue("canvases", fmt.Sprintf("%d", len(tmpl.Canvases)))
	printKeyValue("layers", fmt.Sprintf("%d", registry.Len()))
	printKeyValue("layouts", fmt.Sprintf("%d", len(tmpl.Layouts)))

	problems := 0
	for _, layout := range tmpl.Layouts {
		if _, err := tmpl.Canvas(layout.CanvasID); err != nil {
			printError("%s: %s", layout.OutputFilename, errors.UserMessage(err))
			problems++
		}
		for _, id := range layout.LayerIDs {
			if _, err := registry.Resolve(id); err != nil {
				printError("%s: %s", layout.OutputFilename, errors.UserMessage(err))
				problems++
			}
		}
	}

	if problems > 0 {
		return fmt.Errorf("template has %d unresolved references", problems)
	}
	printSuccess("Template is valid")
	return nil
}
