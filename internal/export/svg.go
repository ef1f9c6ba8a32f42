package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/edyn/internal/physics"
)

var strokeColors = []string{"#00e0ff", "#ff6ad5", "#9dff00", "#ffb000", "#b39dff"}

// TrajectoryToSVG renders particle trajectories as SVG polylines, autoscaled
// to the common bounding box with 10% padding. Degenerate (zero-extent) axes
// expand to a unit range so a stationary particle still renders.
func TrajectoryToSVG(trajectories [][]physics.State, width, height int) string {
	minX, maxX, minY, maxY, ok := bounds(trajectories)
	if !ok {
		return ""
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, traj := range trajectories {
		if len(traj) < 2 {
			continue
		}
		color := strokeColors[i%len(strokeColors)]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for k, s := range traj {
			x := (s.Position.X - minX) / rangeX * float64(width)
			y := float64(height) - (s.Position.Y-minY)/rangeY*float64(height)
			if k == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func bounds(trajectories [][]physics.State) (minX, maxX, minY, maxY float64, ok bool) {
	for _, traj := range trajectories {
		for _, s := range traj {
			if !ok {
				minX, maxX = s.Position.X, s.Position.X
				minY, maxY = s.Position.Y, s.Position.Y
				ok = true
				continue
			}
			if s.Position.X < minX {
				minX = s.Position.X
			}
			if s.Position.X > maxX {
				maxX = s.Position.X
			}
			if s.Position.Y < minY {
				minY = s.Position.Y
			}
			if s.Position.Y > maxY {
				maxY = s.Position.Y
			}
		}
	}
	return minX, maxX, minY, maxY, ok
}
