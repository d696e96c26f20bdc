package main

// reservedRows is the fixed chrome height around the row viewport:
// title line, column header line, footer line.
const reservedRows = 3

// cursor owns the selected visible-row index and the scroll offset. No
// other code mutates these two fields; every mutation elsewhere in the
// model is followed by reconcile.
type cursor struct {
	selected int
	offset   int
}

func (c *cursor) moveUp() {
	if c.selected > 0 {
		c.selected--
	}
}

// moveDown leaves clamping to reconcile, which runs after every event.
func (c *cursor) moveDown() {
	c.selected++
}

// displayRows is the number of row lines available in a viewport of the
// given total height.
func displayRows(viewportHeight int) int {
	rows := viewportHeight - reservedRows
	if rows < 1 {
		rows = 1
	}
	return rows
}

// reconcile restores the selection/scroll invariants against the
// current visible-row count and viewport height:
//
//	0 <= selected < total (selected == 0 when total == 0)
//	offset <= selected < offset+displayRows
//	offset >= 0
func (c *cursor) reconcile(total, viewportHeight int) {
	if total <= 0 {
		c.selected = 0
		c.offset = 0
		return
	}
	if c.selected >= total {
		c.selected = total - 1
	}
	if c.selected < 0 {
		c.selected = 0
	}

	rows := displayRows(viewportHeight)
	if c.selected < c.offset {
		c.offset = c.selected
	} else if c.selected >= c.offset+rows {
		c.offset = c.selected - rows + 1
	}
	if c.offset < 0 {
		c.offset = 0
	}
}
