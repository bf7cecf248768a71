package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"
	"github.com/spoorzoeker/spoor-cli/internal/geo"
	"github.com/spoorzoeker/spoor-cli/internal/models"
)

type mapCellType int

const (
	mapCellEmpty mapCellType = iota
	mapCellPath
	mapCellPast
	mapCellCurrent
	mapCellFuture
	mapCellVehicle
)

type mapCell struct {
	ch    rune
	ctype mapCellType
}

type gridPoint struct {
	col int
	row int
}

// mapGrid is a character canvas showing a geographic bounding box.
type mapGrid struct {
	cells  [][]mapCell
	width  int
	height int

	minLon, maxLat   float64
	scale            float64
	xOffset, yOffset float64
}

// newMapGrid fits bound into width x height cells. Terminal cells are about
// twice as tall as wide, which the vertical scale corrects for.
func newMapGrid(bound orb.Bound, width, height int) *mapGrid {
	minLat, maxLat := bound.Min.Lat(), bound.Max.Lat()
	minLon, maxLon := bound.Min.Lon(), bound.Max.Lon()

	latSpan := maxLat - minLat
	lonSpan := maxLon - minLon
	if latSpan < 0.01 {
		mid := (minLat + maxLat) / 2
		minLat = mid - 0.005
		maxLat = mid + 0.005
		latSpan = 0.01
	}
	if lonSpan < 0.01 {
		mid := (minLon + maxLon) / 2
		minLon = mid - 0.005
		maxLon = mid + 0.005
		lonSpan = 0.01
	}

	// 10% padding
	latPad := latSpan * 0.1
	lonPad := lonSpan * 0.1
	minLat -= latPad
	maxLat += latPad
	minLon -= lonPad
	maxLon += lonPad
	latSpan = maxLat - minLat
	lonSpan = maxLon - minLon

	xScale := float64(width-1) / lonSpan
	yScale := float64(height-1) / latSpan * 2.0
	scale := xScale
	if yScale < scale {
		scale = yScale
	}

	g := &mapGrid{
		width:   width,
		height:  height,
		minLon:  minLon,
		maxLat:  maxLat,
		scale:   scale,
		xOffset: (float64(width-1) - scale*lonSpan) / 2,
		yOffset: (float64(height-1) - scale*latSpan/2.0) / 2,
	}
	g.cells = make([][]mapCell, height)
	for r := 0; r < height; r++ {
		g.cells[r] = make([]mapCell, width)
		for c := 0; c < width; c++ {
			g.cells[r][c] = mapCell{ch: ' ', ctype: mapCellEmpty}
		}
	}
	return g
}

// project returns the cell for a position, clamped to the grid.
func (g *mapGrid) project(p geo.Position) gridPoint {
	col := int(math.Round((p.Lon-g.minLon)*g.scale + g.xOffset))
	row := int(math.Round((g.maxLat-p.Lat)*g.scale/2.0 + g.yOffset))
	return gridPoint{
		col: int(geo.Clamp(float64(col), 0, float64(g.width-1))),
		row: int(geo.Clamp(float64(row), 0, float64(g.height-1))),
	}
}

// drawPath connects consecutive positions with path dots.
func (g *mapGrid) drawPath(route geo.Route) {
	for i := 0; i < len(route)-1; i++ {
		a, b := g.project(route[i]), g.project(route[i+1])
		bresenhamLine(g.cells, a.col, a.row, b.col, b.row)
	}
}

func (g *mapGrid) set(p gridPoint, ch rune, ct mapCellType) {
	g.cells[p.row][p.col] = mapCell{ch: ch, ctype: ct}
}

// placeStops marks the stops with past, current and future markers.
func (g *mapGrid) placeStops(stops []models.Stop, currentIdx int) {
	for i := range stops {
		if stops[i].Lat == 0 && stops[i].Lon == 0 {
			continue
		}
		p := g.project(stops[i].Position())
		switch {
		case i < currentIdx:
			g.set(p, '○', mapCellPast)
		case i == currentIdx:
			g.set(p, '◉', mapCellCurrent)
		default:
			g.set(p, '●', mapCellFuture)
		}
	}
}

func (g *mapGrid) String() string {
	pathStyle := lipgloss.NewStyle().Foreground(colorGray)
	pastStyle := lipgloss.NewStyle().Foreground(colorGray)
	currentStyle := lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	futureStyle := lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	vehicleStyle := lipgloss.NewStyle().Foreground(colorYellow).Bold(true)

	var b strings.Builder
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			ch := string(g.cells[r][c].ch)
			switch g.cells[r][c].ctype {
			case mapCellPath:
				b.WriteString(pathStyle.Render(ch))
			case mapCellPast:
				b.WriteString(pastStyle.Render(ch))
			case mapCellCurrent:
				b.WriteString(currentStyle.Render(ch))
			case mapCellFuture:
				b.WriteString(futureStyle.Render(ch))
			case mapCellVehicle:
				b.WriteString(vehicleStyle.Render(ch))
			default:
				b.WriteString(ch)
			}
		}
		if r < g.height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderRouteMap renders a dots-only geographic map of the journey route.
func renderRouteMap(stops []models.Stop, currentIdx, width, height int) string {
	if len(stops) == 0 || width < 3 || height < 3 {
		return ""
	}

	route := (&models.Journey{Stops: stops}).Route()
	if len(route) == 0 {
		return ""
	}

	g := newMapGrid(route.Bound(), width, height)
	g.drawPath(route)
	g.placeStops(stops, currentIdx)
	return g.String()
}

// bresenhamLine draws a line between two points on the grid using Bresenham's algorithm.
func bresenhamLine(grid [][]mapCell, x0, y0, x1, y1 int) {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	for {
		if y0 >= 0 && y0 < len(grid) && x0 >= 0 && x0 < len(grid[y0]) {
			if grid[y0][x0].ctype == mapCellEmpty {
				grid[y0][x0] = mapCell{ch: '·', ctype: mapCellPath}
			}
		}

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}
