package main

import "testing"

func TestReconcileEmptyList(t *testing.T) {
	c := cursor{selected: 7, offset: 4}
	c.reconcile(0, 24)
	if c.selected != 0 || c.offset != 0 {
		t.Fatalf("empty list must zero the cursor, got %+v", c)
	}
}

func TestReconcileClampsSelection(t *testing.T) {
	tests := []struct {
		name         string
		c            cursor
		total        int
		height       int
		wantSelected int
		wantOffset   int
	}{
		{"within bounds", cursor{selected: 1, offset: 0}, 4, 10, 1, 0},
		{"past end", cursor{selected: 9, offset: 0}, 4, 10, 3, 0},
		{"negative selection", cursor{selected: -2, offset: 0}, 4, 10, 0, 0},
		{"scroll up to selection", cursor{selected: 1, offset: 3}, 8, 10, 1, 1},
		{"scroll down to selection", cursor{selected: 6, offset: 0}, 8, 6, 6, 4},
		{"negative offset floored", cursor{selected: 0, offset: -3}, 4, 10, 0, 0},
		{"tiny viewport", cursor{selected: 2, offset: 0}, 4, 1, 2, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := tc.c
			c.reconcile(tc.total, tc.height)
			if c.selected != tc.wantSelected {
				t.Errorf("selected = %d, want %d", c.selected, tc.wantSelected)
			}
			if c.offset != tc.wantOffset {
				t.Errorf("offset = %d, want %d", c.offset, tc.wantOffset)
			}
		})
	}
}

func TestReconcileInvariants(t *testing.T) {
	// For a sweep of states: after reconcile the selection is in bounds
	// and lies within the display window.
	for total := 0; total <= 12; total++ {
		for height := 1; height <= 10; height++ {
			for sel := -2; sel <= total+2; sel++ {
				for off := -2; off <= total+2; off++ {
					c := cursor{selected: sel, offset: off}
					c.reconcile(total, height)
					if total == 0 {
						if c.selected != 0 || c.offset != 0 {
							t.Fatalf("total=0: cursor %+v", c)
						}
						continue
					}
					if c.selected < 0 || c.selected >= total {
						t.Fatalf("selected %d out of [0,%d)", c.selected, total)
					}
					rows := displayRows(height)
					if c.selected < c.offset || c.selected >= c.offset+rows {
						t.Fatalf("selected %d outside window [%d,%d)", c.selected, c.offset, c.offset+rows)
					}
					if c.offset < 0 {
						t.Fatalf("negative offset %d", c.offset)
					}
				}
			}
		}
	}
}

func TestReconcileScrollScenario(t *testing.T) {
	// A:[r1,r2] expanded plus B collapsed = 4 rows. Selecting index 3
	// (the B header) with 2 display rows scrolls the offset to 2.
	groups := twoGroupFixture()
	expanded := map[string]bool{"A": true}
	total := countVisibleRows(groups, expanded)
	if total != 4 {
		t.Fatalf("fixture should have 4 rows, got %d", total)
	}

	c := cursor{selected: 3, offset: 0}
	c.reconcile(total, reservedRows+2)
	if c.offset != 2 {
		t.Fatalf("expected offset 2, got %d", c.offset)
	}
	if c.selected != 3 {
		t.Fatalf("expected selection 3, got %d", c.selected)
	}
}

func TestMoveUpFloorsAtZero(t *testing.T) {
	c := cursor{}
	c.moveUp()
	if c.selected != 0 {
		t.Fatalf("moveUp at top should stay at 0, got %d", c.selected)
	}
	c.selected = 2
	c.moveUp()
	if c.selected != 1 {
		t.Fatalf("expected 1, got %d", c.selected)
	}
}

func TestMoveDownIsUnclampedUntilReconcile(t *testing.T) {
	c := cursor{selected: 1}
	c.moveDown()
	if c.selected != 2 {
		t.Fatalf("expected 2, got %d", c.selected)
	}
	c.reconcile(2, 10)
	if c.selected != 1 {
		t.Fatalf("reconcile should clamp to 1, got %d", c.selected)
	}
}

func TestDisplayRowsFloor(t *testing.T) {
	if displayRows(0) != 1 {
		t.Errorf("displayRows(0) = %d, want 1", displayRows(0))
	}
	if displayRows(reservedRows) != 1 {
		t.Errorf("displayRows(reservedRows) = %d, want 1", displayRows(reservedRows))
	}
	if displayRows(24) != 24-reservedRows {
		t.Errorf("displayRows(24) = %d", displayRows(24))
	}
}
