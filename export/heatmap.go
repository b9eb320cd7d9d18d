package export

import (
	"bufio"
	"context"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/nicolas-legroux/tcgaExplorer/matrix"
)

// grid adapts a Matrix to plotter.GridXYZ with row 0 drawn at the top.
type grid struct {
	m *matrix.Matrix
}

func (g grid) Dims() (c, r int)   { return g.m.N(), g.m.N() }
func (g grid) Z(c, r int) float64 { return g.m.At(g.m.N()-1-r, c) }
func (g grid) X(c int) float64    { return float64(c) }
func (g grid) Y(r int) float64    { return float64(r) }

// reversed draws a palette from its last colour to its first.
type reversed struct {
	palette.Palette
}

func (r reversed) Colors() []color.Color {
	c := r.Palette.Colors()
	out := make([]color.Color, len(c))
	for i := range c {
		out[i] = c[len(c)-1-i]
	}
	return out
}

// heatPalette maps the most favourable values of t to the hottest colour.
func heatPalette(t matrix.Type) palette.Palette {
	p := palette.Heat(256, 1)
	if t == matrix.Distance {
		return reversed{p}
	}
	return p
}

// HeatMap renders m as a PNG image with one square cell per entry. Favourable
// entries (high similarity, low distance) are drawn hot.
func (w *Writer) HeatMap(ctx context.Context, name string, m *matrix.Matrix) error {
	n := m.N()
	if n == 0 {
		return ErrEmpty
	}

	h := plotter.NewHeatMap(grid{m: m}, heatPalette(m.Type()))
	if h.Min == h.Max {
		h.Max = h.Min + 1
	}

	p := plot.New()
	p.HideAxes()
	p.Add(h)

	side := vg.Length(n*w.opts.cellSize) * vg.Inch / 96
	wt, err := p.WriterTo(side, side, "png")
	if err != nil {
		return fmt.Errorf("export: heat map %s: %w", name, err)
	}
	return w.write(ctx, name, func(bw *bufio.Writer) error {
		_, err := wt.WriteTo(bw)
		return err
	})
}
