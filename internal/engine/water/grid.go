package water

import (
	"github.com/Faultbox/waterflow/internal/engine/gfx"
	"github.com/Faultbox/waterflow/pkg/math"
)

// GridVertex is one vertex of the water grid.
type GridVertex struct {
	Position math.Vec3 // Y is the grid centre height, 0 for the surface mesh
	TexCoord math.Vec2
}

// GridLayout is the interleaved layout produced by FlattenGrid:
// position at location 0, texture coordinate at location 1.
var GridLayout = gfx.VertexLayout{
	{Location: 0, Components: 3},
	{Location: 1, Components: 2},
}

// BuildGrid generates a rows x cols vertex grid on the XZ plane centred on
// center, with dx and dz between neighbouring columns and rows.
//
// Vertices are row-major, rows running from +Z to -Z. Texture coordinates are
// (col/cols, row/rows). Each cell (i, j) yields the triangles
// {(i,j), (i,j+1), (i+1,j)} and {(i+1,j), (i,j+1), (i+1,j+1)}.
// Grids with fewer than two rows or columns have no cells and no indices.
func BuildGrid(rows, cols int, dx, dz float32, center math.Vec3) ([]GridVertex, []uint32) {
	if rows < 1 || cols < 1 {
		return nil, nil
	}

	cellRows := rows - 1
	cellCols := cols - 1

	width := float32(cellCols) * dx
	depth := float32(cellRows) * dz
	xOffset := -width * 0.5
	zOffset := depth * 0.5

	vertices := make([]GridVertex, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			vertices = append(vertices, GridVertex{
				Position: math.Vec3{
					X: float32(j)*dx + xOffset + center.X,
					Y: center.Y,
					Z: -float32(i)*dz + zOffset + center.Z,
				},
				TexCoord: math.Vec2{
					X: float32(j) / float32(cols),
					Y: float32(i) / float32(rows),
				},
			})
		}
	}

	if cellRows < 1 || cellCols < 1 {
		return vertices, nil
	}

	indices := make([]uint32, 0, cellRows*cellCols*6)
	stride := uint32(cols)
	for i := uint32(0); i < uint32(cellRows); i++ {
		for j := uint32(0); j < uint32(cellCols); j++ {
			topLeft := i*stride + j
			topRight := topLeft + 1
			bottomLeft := topLeft + stride
			bottomRight := bottomLeft + 1

			indices = append(indices,
				topLeft, topRight, bottomLeft,
				bottomLeft, topRight, bottomRight,
			)
		}
	}

	return vertices, indices
}

// FlattenGrid interleaves vertices as GridLayout for upload.
func FlattenGrid(vertices []GridVertex) []float32 {
	out := make([]float32, 0, len(vertices)*int(GridLayout.Stride()))
	for _, v := range vertices {
		out = append(out,
			v.Position.X, v.Position.Y, v.Position.Z,
			v.TexCoord.X, v.TexCoord.Y,
		)
	}
	return out
}
