package format

// CellsFor returns the number of cells needed to hold n bytes, rounding up.
//
// Example:
//
//	CellsFor(1)  = 1
//	CellsFor(8)  = 1
//	CellsFor(9)  = 2
func CellsFor(n uint64) uint64 {
	cells := n / CellSize
	if n&CellAlignmentMask != 0 {
		cells++
	}
	return cells
}

// CellOffset returns the byte offset of cell idx in a page whose cell array
// starts right after a header of headerSize bytes.
func CellOffset(headerSize int, idx uint32, cellSize int) int {
	return headerSize + int(idx)*cellSize
}
