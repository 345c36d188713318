package viz

import "strings"

// Canvas is a fixed-size rune grid for the ring-plane view.
type Canvas struct {
	w, h  int
	cells []rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{w: w, h: h, cells: make([]rune, w*h)}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = ' '
	}
}

func (c *Canvas) Set(x, y int, r rune) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = r
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow((c.w + 1) * c.h)
	for y := 0; y < c.h; y++ {
		b.WriteString(string(c.cells[y*c.w : (y+1)*c.w]))
		if y < c.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
