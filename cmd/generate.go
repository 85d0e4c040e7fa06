package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/autoform/autoform/internal/catalog"
	"github.com/autoform/autoform/internal/config"
	"github.com/autoform/autoform/internal/form"
	"github.com/autoform/autoform/internal/lock"
	"github.com/autoform/autoform/internal/logging"
	"github.com/autoform/autoform/internal/picker"
	"github.com/autoform/autoform/internal/render"
	"github.com/autoform/autoform/internal/widget"
)

var generateOutput string

var generateCmd = &cobra.Command{
	Use:   "generate [table]",
	Short: "Generate a form configuration for a table",
	Long: `Connect to the configured database, expand the foreign-key graph from the
given table and derive a widget configuration for every column of every table
in the graph. Without a table argument an interactive picker is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := ""
		if len(args) == 1 {
			table = args[0]
		}
		return runGenerate(table)
	},
}

func runGenerate(table string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := logLevel
	if level == "" {
		level = cfg.Logging.Level
	}
	logger, err := logging.Setup(level, cfg.Logging.Directory)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	slog.SetDefault(logger)

	// One generation runs at a time; each invocation owns its catalog
	// connection and forest.
	if err := lock.Acquire(""); err != nil {
		return err
	}
	defer lock.Release("")

	cat, err := catalog.New(&cfg.Source)
	if err != nil {
		var upe *catalog.UnsupportedProviderError
		if errors.As(err, &upe) {
			return fmt.Errorf("%w: configure a postgresql or sqlite source before generating a form", err)
		}
		return err
	}

	ctx := context.Background()

	fmt.Printf("Connecting to %s source...\n", cfg.Source.Type)
	if err := cat.Connect(ctx); err != nil {
		return fmt.Errorf("connecting to source: %w", err)
	}
	defer cat.Close()

	if table == "" {
		tables, err := cat.ListTables(ctx)
		if err != nil {
			return fmt.Errorf("listing tables: %w", err)
		}
		table, err = picker.Run(tables)
		if err != nil {
			return err
		}
		if table == "" {
			fmt.Println("No table selected.")
			return nil
		}
	}

	coord := form.New(cat, widget.DefaultHeuristic{}, logger)
	forest, err := coord.GenerateForm(ctx, table)
	if err != nil {
		return fmt.Errorf("generating form: %w", err)
	}

	layout := render.BuildLayout(forest)
	layout.PruneEmpty()
	fmt.Print(layout.Render())
	fmt.Println(forest.Summary())

	outputPath := generateOutput
	if outputPath == "" {
		outputPath = filepath.Join(cfg.Output.Directory, table+".yaml")
	}
	if err := forest.WriteYAML(outputPath); err != nil {
		return fmt.Errorf("writing form configuration: %w", err)
	}
	fmt.Printf("\nForm configuration written to %s\n", outputPath)

	return nil
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output path for form YAML (default: <output dir>/<table>.yaml)")
	rootCmd.AddCommand(generateCmd)
}
