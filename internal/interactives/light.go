package interactives

// ContributeLight adds every burning torch to the bound map's lighting pass.
func (g *Grid) ContributeLight() {
	if g.level == nil {
		return
	}
	for i := range g.cells {
		t := g.cells[i].Interactive.TorchPart()
		if t != nil && t.Lit() {
			g.level.Illuminate(g.location(i), t.LightValue)
		}
	}
}

// SampleLight feeds the bound map's light levels to every light detector.
// It runs after the map has finished its lighting pass.
func (g *Grid) SampleLight() {
	if g.level == nil {
		return
	}
	for i := range g.cells {
		c := &g.cells[i]
		if c.Underneath.Type != UnderneathLightDetector {
			continue
		}
		loc := g.location(i)
		g.notify(c.Light(g.level.Light(loc), g.tuning))
	}
}
