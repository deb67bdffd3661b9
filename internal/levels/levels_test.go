package levels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tilequest/internal/element"
	"github.com/vovakirdan/tilequest/internal/grid"
	"github.com/vovakirdan/tilequest/internal/interactives"
	"github.com/vovakirdan/tilequest/internal/levels/formats"
)

const cellarYAML = `
id: "01-cellar"
name: "Cellar"
base_light: 40
rows:
  - "######"
  - "#....#"
  - "#....#"
  - "######"
spawn: {x: 1, y: 1}
interactives:
  - type: lever
    at: {x: 2, y: 1}
    target: {x: 4, y: 2}
  - type: exit
    at: {x: 4, y: 2}
    state: locked
    facing: right
    map: "02-vault"
    destination: {x: 1, y: 1}
  - type: torch
    at: {x: 3, y: 1}
    element: fire
    light: 200
  - type: turret
    at: {x: 1, y: 2}
    facing: up
    automatic: true
underneath:
  - type: pressure_plate
    at: {x: 2, y: 2}
    target: {x: 3, y: 2}
  - type: popup_block
    at: {x: 3, y: 2}
    up: true
  - type: light_detector
    at: {x: 4, y: 1}
    kind: dark
    target: {x: 3, y: 1}
`

const vaultYAML = `
id: "02-vault"
size: {w: 3, h: 3}
spawn: {x: 1, y: 1}
interactives:
  - type: portal
    at: {x: 0, y: 0}
    destination: {x: 2, y: 2}
  - type: pushable_torch
    at: {x: 2, y: 0}
    one_time: true
underneath:
  - type: moving_walkway
    at: {x: 1, y: 0}
    facing: left
  - type: ice_detector
    at: {x: 0, y: 2}
    target: {x: 2, y: 0}
`

func at(x, y int) formats.YAMLPoint {
	return formats.YAMLPoint{X: x, Y: y}
}

func writeLevels(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return dir
}

func TestLoadAllSortsByID(t *testing.T) {
	dir := writeLevels(t, map[string]string{
		"b.yaml":        cellarYAML,
		"nested/a.yml":  vaultYAML,
		"notes.txt":     "not a level",
		"broken.yaml":   "id: [",
		"anonymous.yml": "rows: ['.']",
	})

	loader := NewLoader(dir)
	levels, err := loader.LoadAll()
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, "01-cellar", levels[0].ID)
	assert.Equal(t, "02-vault", levels[1].ID)
	assert.Equal(t, "02-vault", levels[1].Name, "name defaults to id")
	assert.Len(t, loader.Skipped, 2)
}

func TestLoadAllMissingDir(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "nope")).LoadAll()
	assert.Error(t, err)
}

func TestBuildCampaign(t *testing.T) {
	dir := writeLevels(t, map[string]string{"cellar.yaml": cellarYAML, "vault.yaml": vaultYAML})
	campaign, err := NewLoader(dir).LoadCampaign()
	require.NoError(t, err)
	assert.Equal(t, []string{"01-cellar", "02-vault"}, campaign.IDs())

	maps, err := campaign.BuildAll(interactives.DefaultTuning())
	require.NoError(t, err)
	require.Len(t, maps, 2)

	cellar := maps[0]
	assert.Equal(t, 0, cellar.Index)
	assert.Equal(t, "Cellar", cellar.Name)
	assert.Equal(t, grid.L(1, 1), cellar.Spawn)
	assert.True(t, cellar.Tiles.TileSolid(grid.L(0, 0)))
	assert.False(t, cellar.Tiles.TileSolid(grid.L(1, 1)))
	assert.Equal(t, uint8(40), cellar.Tiles.BaseLight(grid.L(1, 1)))
	assert.Same(t, cellar.Tiles, cellar.Cells.Map())

	lever := cellar.Cells.Cell(grid.L(2, 1)).Interactive
	assert.Equal(t, interactives.InteractiveLever, lever.Type)
	assert.Equal(t, grid.L(4, 2), lever.Lever.ActivateTarget)

	exit := cellar.Cells.Cell(grid.L(4, 2)).Interactive.Exit
	assert.Equal(t, interactives.ExitLocked, exit.State)
	assert.Equal(t, grid.DirRight, exit.Facing)
	assert.Equal(t, 1, exit.MapIndex)
	assert.Equal(t, grid.L(1, 1), exit.Destination)

	torch := cellar.Cells.Cell(grid.L(3, 1)).Interactive.Torch
	assert.Equal(t, element.Fire, torch.Element)
	assert.Equal(t, uint8(200), torch.LightValue)

	turret := cellar.Cells.Cell(grid.L(1, 2)).Interactive.Turret
	assert.True(t, turret.Automatic)
	assert.Equal(t, grid.DirUp, turret.Facing)

	assert.Equal(t, grid.L(3, 2), cellar.Cells.Cell(grid.L(2, 2)).Underneath.PressurePlate.ActivateTarget)
	assert.True(t, cellar.Cells.Cell(grid.L(3, 2)).Underneath.PopupBlock.Up)
	detector := cellar.Cells.Cell(grid.L(4, 1)).Underneath.LightDetector
	assert.Equal(t, interactives.LightDark, detector.Kind)
	assert.False(t, detector.BelowThreshold)

	vault := maps[1]
	assert.Equal(t, 1, vault.Index)
	assert.Equal(t, uint8(255), vault.Tiles.BaseLight(grid.L(0, 0)))
	assert.Equal(t, grid.L(2, 2), vault.Cells.Cell(grid.L(0, 0)).Interactive.Portal.Destination)
	ptorch := vault.Cells.Cell(grid.L(2, 0)).Interactive.PushableTorch
	assert.True(t, ptorch.Block.OneTime)
	assert.Equal(t, element.None, ptorch.Torch.Element)
	assert.Equal(t, grid.DirLeft, vault.Cells.Cell(grid.L(1, 0)).Underneath.MovingWalkway.Facing)
	assert.Equal(t, grid.L(2, 0), vault.Cells.Cell(grid.L(0, 2)).Underneath.IceDetector.ActivateTarget)

	_, err = campaign.Build(2, interactives.DefaultTuning())
	assert.Error(t, err)
}

func TestBuildErrors(t *testing.T) {
	base := func() Level {
		return Level{ID: "t", Width: 2, Height: 1, BaseLight: 100, Rows: []string{".."}}
	}
	mech := func(typ string, x int) []formats.YAMLMechanism {
		return []formats.YAMLMechanism{{Type: typ, At: at(x, 0)}}
	}
	off := func() *formats.YAMLPoint {
		p := at(9, 9)
		return &p
	}

	tests := []struct {
		name  string
		setup func(l *Level)
		is    error
	}{
		{"unknown interactive", func(l *Level) { l.Interactives = mech("catapult", 0) }, ErrUnknownType},
		{"none interactive", func(l *Level) { l.Interactives = mech("none", 0) }, ErrUnknownType},
		{"unknown underneath", func(l *Level) { l.Underneath = mech("lava", 0) }, ErrUnknownType},
		{"outside", func(l *Level) { l.Interactives = mech("lever", 5) }, nil},
		{"overlap", func(l *Level) { l.Interactives = append(mech("lever", 1), mech("torch", 1)...) }, nil},
		{"bad glyph", func(l *Level) { l.Rows = []string{".x"} }, nil},
		{"short row", func(l *Level) { l.Rows = []string{"."} }, nil},
		{"spawn in wall", func(l *Level) { l.Rows = []string{"#."} }, nil},
		{"unknown map", func(l *Level) {
			l.Interactives = mech("exit", 1)
			l.Interactives[0].Map = "99-nowhere"
		}, ErrUnknownMap},
		{"bad facing", func(l *Level) {
			l.Interactives = mech("turret", 1)
			l.Interactives[0].Facing = "sideways"
		}, nil},
		{"bad element", func(l *Level) {
			l.Interactives = mech("torch", 1)
			l.Interactives[0].Element = "lightning"
		}, nil},
		{"bad kind", func(l *Level) {
			l.Underneath = mech("light_detector", 1)
			l.Underneath[0].Kind = "dim"
		}, nil},
		{"lever target off map", func(l *Level) {
			l.Interactives = mech("lever", 1)
			l.Interactives[0].Target = off()
		}, nil},
		{"block target off map", func(l *Level) {
			l.Interactives = mech("pushable_block", 1)
			l.Interactives[0].Target = off()
		}, nil},
		{"portal destination off map", func(l *Level) {
			l.Interactives = mech("portal", 1)
			l.Interactives[0].Destination = off()
		}, nil},
		{"own map exit destination off map", func(l *Level) {
			l.Interactives = mech("exit", 1)
			l.Interactives[0].Destination = off()
		}, nil},
		{"plate target off map", func(l *Level) {
			l.Underneath = mech("pressure_plate", 1)
			l.Underneath[0].Target = off()
		}, nil},
		{"detector target off map", func(l *Level) {
			l.Underneath = mech("ice_detector", 1)
			l.Underneath[0].Target = off()
		}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := base()
			tc.setup(&l)
			_, err := l.Build(0, interactives.DefaultTuning(), nil)
			require.Error(t, err)
			if tc.is != nil {
				assert.ErrorIs(t, err, tc.is)
			}
		})
	}
}

func TestBuildExitDefaultsToOwnMap(t *testing.T) {
	l := Level{ID: "t", Width: 2, Height: 1, Rows: []string{".."}, Spawn: grid.L(0, 0)}
	l.Interactives = []formats.YAMLMechanism{{Type: "exit", At: at(1, 0), State: "open"}}

	lv, err := l.Build(3, interactives.DefaultTuning(), nil)
	require.NoError(t, err)
	exit := lv.Cells.Cell(grid.L(1, 0)).Interactive.Exit
	assert.Equal(t, 3, exit.MapIndex)
	assert.Equal(t, interactives.ExitOpen, exit.State)
	assert.Equal(t, grid.DirDown, exit.Facing)
	assert.Equal(t, grid.NoLocation, exit.Destination)
}

func TestBuildAcceptsOtherMapExitDestination(t *testing.T) {
	l := Level{ID: "t", Width: 2, Height: 1, Rows: []string{".."}, Spawn: grid.L(0, 0)}
	dest := at(9, 9)
	l.Interactives = []formats.YAMLMechanism{{Type: "exit", At: at(1, 0), Map: "big", Destination: &dest}}
	resolve := func(id string) (int, bool) { return 1, id == "big" }

	lv, err := l.Build(0, interactives.DefaultTuning(), resolve)
	require.NoError(t, err)
	exit := lv.Cells.Cell(grid.L(1, 0)).Interactive.Exit
	assert.Equal(t, 1, exit.MapIndex)
	assert.Equal(t, grid.L(9, 9), exit.Destination)
}

func TestDuplicateIDs(t *testing.T) {
	_, err := NewCampaign([]Level{{ID: "a"}, {ID: "a"}})
	assert.Error(t, err)
}

func TestShippedLevelsBuild(t *testing.T) {
	campaign, err := NewLoader(filepath.Join("..", "..", "levels")).LoadCampaign()
	require.NoError(t, err)
	_, err = campaign.BuildAll(interactives.DefaultTuning())
	require.NoError(t, err)
}
