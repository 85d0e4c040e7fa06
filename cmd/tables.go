package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autoform/autoform/internal/catalog"
	"github.com/autoform/autoform/internal/config"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables of the configured source",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		cat, err := catalog.New(&cfg.Source)
		if err != nil {
			return err
		}

		ctx := context.Background()
		if err := cat.Connect(ctx); err != nil {
			return fmt.Errorf("connecting to source: %w", err)
		}
		defer cat.Close()

		tables, err := cat.ListTables(ctx)
		if err != nil {
			return fmt.Errorf("listing tables: %w", err)
		}

		if len(tables) == 0 {
			fmt.Println("No tables found.")
			return nil
		}
		for _, t := range tables {
			if t.RowEstimate > 0 {
				fmt.Printf("%-40s %12d rows\n", t.Name, t.RowEstimate)
			} else {
				fmt.Println(t.Name)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}
