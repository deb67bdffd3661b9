package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilequest/internal/mapfile"
)

var flagCompress bool

var convertCmd = &cobra.Command{
	Use:   "convert <level.yaml> <out.tqm>",
	Short: "Compile a YAML level to a binary map",
	Long: `Build a YAML level and write it as a binary map file. Exits to other
levels in the same directory are resolved to their map indices.

Examples:
  tilequest convert levels/01-gatehouse.yaml build/gatehouse.tqm
  tilequest convert levels/03-armory.yaml build/armory.tqm --compress`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().BoolVar(&flagCompress, "compress", false, "Compress the map with zstd")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadEngineConfig()
	if err != nil {
		return err
	}
	lv, err := openMap(args[0], cfg)
	if err != nil {
		return err
	}
	if err := mapfile.Save(args[1], lv, flagCompress); err != nil {
		return err
	}

	stderrLogger().Info("map written", "map", lv.Name, "index", lv.Index, "path", args[1], "compressed", flagCompress)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d)\n", args[1], lv.Tiles.W, lv.Tiles.H)
	return nil
}
