package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/autoform/autoform/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file interactively",
	Long:  `Walk through prompts to create an autoform configuration file at ~/.autoform/autoform.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(os.Stdin)

		fmt.Println("Autoform Configuration Setup")
		fmt.Println("============================")
		fmt.Println()

		dbType := prompt(reader, "Source type (postgresql/sqlite)", "postgresql")

		src := config.SourceConfig{Type: dbType}
		if dbType == "sqlite" {
			src.Path = prompt(reader, "Database file path", "")
		} else {
			src.Host = prompt(reader, "Host", "localhost")
			portStr := prompt(reader, "Port", "5432")
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return fmt.Errorf("invalid port: %s", portStr)
			}
			src.Port = port
			src.Database = prompt(reader, "Database name", "")
			src.Schema = prompt(reader, "Schema", "public")
			src.Username = prompt(reader, "Username", "")
			src.Password = prompt(reader, "Password (supports ${ENV:X}, ${VAULT:path#key}, ${AWS_SM:name})", "")
		}
		fmt.Println()

		cfg := &config.Config{
			Version: config.CurrentVersion,
			Source:  src,
		}

		path := cfgFile
		if path == "" {
			path = config.ExpandHome(config.DefaultPath)
		}
		if err := cfg.Save(path); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		fmt.Printf("Config written to %s\n", path)
		return nil
	},
}

func prompt(reader *bufio.Reader, label, def string) string {
	if def != "" {
		fmt.Printf("%s [%s]: ", label, def)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

func init() {
	rootCmd.AddCommand(initCmd)
}
