// tilequest is a terminal tile adventure built on levers, doors, portals,
// ice and light.
//
// Usage:
//
//	tilequest play                 - Play the campaign in ./levels
//	tilequest inspect <file>       - Describe a level or map file
//	tilequest convert <in> <out>   - Compile a YAML level to a binary map
//	tilequest saves list           - List save slots
//	tilequest saves browse         - Browse save slots interactively
//	tilequest saves delete <slot>  - Delete a save slot
//
// Global flags:
//
//	--config <path> - Engine config YAML
//	--db <path>     - Save database path (default: ~/.tilequest/saves.db)
//	--fps <rate>    - Tick rate (default: from config)
//	--debug         - Verbose logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilequest/internal/storage"
)

var (
	// Global flags
	flagConfig string
	flagDBPath string
	flagFPS    int
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilequest",
	Short: "TileQuest - a tile puzzle adventure in your terminal",
	Long: `TileQuest is a top-down tile adventure. Pull levers, push blocks,
freeze water, light torches and find the way through every door.

Available commands:
  play     - Play the campaign
  inspect  - Describe a level or map file
  convert  - Compile a YAML level to a binary map
  saves    - Manage save slots

Examples:
  tilequest play
  tilequest play --levels ./my-levels --difficulty hard
  tilequest inspect levels/01-gatehouse.yaml
  tilequest convert levels/01-gatehouse.yaml gatehouse.tqm --compress
  tilequest saves list`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to save database")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = use config)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(savesCmd)
}
