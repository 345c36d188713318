package export

import (
	"strings"
	"testing"
)

func TestTrajectorySVG(t *testing.T) {
	points := []Point{{0, 0}, {100, 50}, {200, 0}}
	svg := TrajectorySVG(points, 400, 300, "#00ff88")

	if !strings.HasPrefix(svg, `<?xml`) {
		t.Error("missing XML declaration")
	}
	if !strings.Contains(svg, "<polyline") {
		t.Error("missing polyline element")
	}
	if !strings.Contains(svg, "#00ff88") {
		t.Error("stroke color not applied")
	}
}

func TestTrajectorySVGDegenerate(t *testing.T) {
	if svg := TrajectorySVG(nil, 400, 300, "red"); svg != "" {
		t.Error("expected empty output for no points")
	}
	if svg := TrajectorySVG([]Point{{1, 1}}, 400, 300, "red"); svg != "" {
		t.Error("expected empty output for a single point")
	}
	// Collinear points along one axis must not divide by zero.
	svg := TrajectorySVG([]Point{{0, 5}, {10, 5}}, 400, 300, "red")
	if !strings.Contains(svg, "polyline") {
		t.Error("flat trajectory should still render")
	}
}
