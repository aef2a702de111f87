package ui2d

// Rect is a screen rectangle in pixels, origin at the top-left.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Inset shrinks the rectangle by d on every side.
func (r Rect) Inset(d float32) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// PreviewStrip lays out n square tiles of size pixels in a row along the
// top-left corner, margin pixels apart. Tiles that would leave the screen
// are shrunk to fit the width.
func PreviewStrip(screenWidth, screenHeight int, n int, size, margin float32) []Rect {
	if n <= 0 {
		return nil
	}
	avail := float32(screenWidth) - margin*float32(n+1)
	if fit := avail / float32(n); fit < size {
		size = fit
	}
	if h := float32(screenHeight) - 2*margin; h < size {
		size = h
	}
	if size <= 0 {
		return nil
	}

	out := make([]Rect, n)
	for i := range out {
		out[i] = Rect{X: margin + float32(i)*(size+margin), Y: margin, W: size, H: size}
	}
	return out
}

// orthoMatrix maps pixel coordinates with a top-left origin to clip space.
func orthoMatrix(width, height int) [16]float32 {
	left, right := float32(0), float32(width)
	bottom, top := float32(height), float32(0)
	near, far := float32(-1), float32(1)
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}

// appendQuad appends two triangles of solid vertices: x, y, r, g, b, a.
func appendQuad(dst []float32, r Rect, c Color) []float32 {
	x0, y0, x1, y1 := r.X, r.Y, r.X+r.W, r.Y+r.H
	return append(dst,
		x0, y0, c.R, c.G, c.B, c.A,
		x1, y0, c.R, c.G, c.B, c.A,
		x1, y1, c.R, c.G, c.B, c.A,
		x0, y0, c.R, c.G, c.B, c.A,
		x1, y1, c.R, c.G, c.B, c.A,
		x0, y1, c.R, c.G, c.B, c.A,
	)
}

// appendOutline appends four thin quads framing r.
func appendOutline(dst []float32, r Rect, thickness float32, c Color) []float32 {
	dst = appendQuad(dst, Rect{r.X, r.Y, r.W, thickness}, c)
	dst = appendQuad(dst, Rect{r.X, r.Y + r.H - thickness, r.W, thickness}, c)
	dst = appendQuad(dst, Rect{r.X, r.Y + thickness, thickness, r.H - thickness*2}, c)
	return appendQuad(dst, Rect{r.X + r.W - thickness, r.Y + thickness, thickness, r.H - thickness*2}, c)
}

// texturedQuad returns x, y, u, v vertices for r. V is flipped because
// render target rows start at the bottom.
func texturedQuad(r Rect) []float32 {
	x0, y0, x1, y1 := r.X, r.Y, r.X+r.W, r.Y+r.H
	return []float32{
		x0, y0, 0, 1,
		x1, y0, 1, 1,
		x1, y1, 1, 0,
		x0, y0, 0, 1,
		x1, y1, 1, 0,
		x0, y1, 0, 0,
	}
}
