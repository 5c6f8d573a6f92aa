package imaging

import "fmt"

// CellSize returns the cell dimensions for a rows x cols split of a
// width x height image: floor(width/cols) by floor(height/rows).
func CellSize(width, height, rows, cols int) (cellW, cellH int) {
	if rows <= 0 || cols <= 0 {
		return 0, 0
	}
	return width / cols, height / rows
}

// SplitImage partitions buf into rows*cols equal cells in row-major order
// (every column of row 0, then row 1, ...).
//
// Cells are floor(Width/cols) x floor(Height/rows). Pixels past cols*cellW on
// the right and rows*cellH at the bottom are dropped, not distributed, so a
// 10x10 image split 3x3 yields nine 3x3 cells.
//
// An error is returned when rows or cols is not positive, or when the grid is
// finer than the image so a cell would be empty.
func SplitImage(buf *Buffer, rows, cols int) ([]*Buffer, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("split %dx%d grid: %w", rows, cols, ErrInvalidDimensions)
	}
	cellW, cellH := CellSize(buf.Width, buf.Height, rows, cols)
	if cellW == 0 || cellH == 0 {
		return nil, fmt.Errorf("split %dx%d image into %dx%d grid leaves empty cells: %w",
			buf.Width, buf.Height, rows, cols, ErrInvalidDimensions)
	}

	cells := make([]*Buffer, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cells = append(cells, copyRegion(buf, c*cellW, r*cellH, cellW, cellH))
		}
	}
	return cells, nil
}
