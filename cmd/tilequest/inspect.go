package main

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/game"
	"github.com/vovakirdan/tilequest/internal/grid"
	"github.com/vovakirdan/tilequest/internal/interactives"
	"github.com/vovakirdan/tilequest/internal/levels"
	"github.com/vovakirdan/tilequest/internal/mapfile"
)

var flagShowGrid bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Describe a level or map file",
	Long: `Print the size, spawn, light and mechanisms of a YAML level or a
compiled binary map (.tqm).

Examples:
  tilequest inspect levels/02-icehall.yaml
  tilequest inspect build/icehall.tqm --grid`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&flagShowGrid, "grid", false, "Also draw the map")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadEngineConfig()
	if err != nil {
		return err
	}
	lv, err := openMap(args[0], cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	describe(out, lv)
	if flagShowGrid {
		fmt.Fprintln(out)
		drawMap(out, lv)
	}
	return nil
}

// openMap loads a binary map or builds a YAML level. A YAML level is built
// with its directory as the campaign so exits to sibling levels resolve.
func openMap(path string, cfg config.EngineConfig) (*mapfile.Level, error) {
	if strings.EqualFold(filepath.Ext(path), mapfile.Extension) {
		return mapfile.Load(path, interactives.New(cfg.Tuning()))
	}

	loader := levels.NewLoader(filepath.Dir(path))
	lvl, err := loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if campaign, err := loader.LoadCampaign(); err == nil {
		if i, ok := campaign.Index(lvl.ID); ok {
			return campaign.Build(i, cfg.Tuning())
		}
	}
	return lvl.Build(0, cfg.Tuning(), nil)
}

func describe(w io.Writer, lv *mapfile.Level) {
	fmt.Fprintf(w, "Map %d: %s\n", lv.Index, lv.Name)
	fmt.Fprintf(w, "  Size:       %dx%d tiles of %d\n", lv.Tiles.W, lv.Tiles.H, lv.Tiles.TileSize)
	fmt.Fprintf(w, "  Spawn:      %v\n", lv.Spawn)
	fmt.Fprintf(w, "  Base light: %d\n", lv.Tiles.BaseLight(lv.Spawn))

	interactive := map[string]int{}
	underneath := map[string]int{}
	var exits []string
	for y := 0; y < lv.Cells.Height(); y++ {
		for x := 0; x < lv.Cells.Width(); x++ {
			loc := grid.L(x, y)
			c := lv.Cells.Cell(loc)
			if t := c.Interactive.Type; t != interactives.InteractiveNone {
				interactive[t.String()]++
			}
			if t := c.Underneath.Type; t != interactives.UnderneathNone {
				underneath[t.String()]++
			}
			if c.Interactive.Type == interactives.InteractiveExit {
				e := c.Interactive.Exit
				exits = append(exits, fmt.Sprintf("%v %s -> map %d at %v", loc, e.State, e.MapIndex, e.Destination))
			}
		}
	}

	printCounts(w, "Interactives", interactive)
	printCounts(w, "Underneath", underneath)
	if len(exits) > 0 {
		fmt.Fprintln(w, "  Exits:")
		for _, e := range exits {
			fmt.Fprintf(w, "    %s\n", e)
		}
	}
}

func printCounts(w io.Writer, title string, counts map[string]int) {
	if len(counts) == 0 {
		fmt.Fprintf(w, "  %s: none\n", title)
		return
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(w, "  %s:\n", title)
	for _, name := range names {
		fmt.Fprintf(w, "    %-16s %d\n", name, counts[name])
	}
}

// drawMap prints the map with the glyphs the game uses, without colors.
func drawMap(w io.Writer, lv *mapfile.Level) {
	var sb strings.Builder
	for y := 0; y < lv.Tiles.H; y++ {
		for x := 0; x < lv.Tiles.W; x++ {
			loc := grid.L(x, y)
			g := game.TileGlyph(lv.Cells.Cell(loc), lv.Tiles.TileSolid(loc))
			sb.WriteRune(g.Left)
			sb.WriteRune(g.Right)
		}
		sb.WriteRune('\n')
	}
	fmt.Fprint(w, sb.String())
}

