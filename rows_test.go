package main

import "testing"

func twoGroupFixture() []Group {
	return groupJobs([]Job{
		jobNamed("r1", "r1", "A"),
		jobNamed("r2", "r2", "A"),
		jobNamed("r3", "r3", "B"),
	})
}

func TestCountVisibleCollapsedByDefault(t *testing.T) {
	groups := twoGroupFixture()
	expanded := map[string]bool{}

	// Collapsed-by-default flatten yields one row per distinct key.
	if got := countVisibleRows(groups, expanded); got != 2 {
		t.Fatalf("expected 2 visible rows, got %d", got)
	}
}

func TestFlattenOrderWithExpandedGroup(t *testing.T) {
	groups := twoGroupFixture()
	expanded := map[string]bool{"A": true}

	if got := countVisibleRows(groups, expanded); got != 4 {
		t.Fatalf("expected 4 visible rows, got %d", got)
	}

	wantKinds := []rowKind{rowHeader, rowMember, rowMember, rowHeader}
	for i, kind := range wantKinds {
		row, ok := visibleRowAt(groups, expanded, i)
		if !ok {
			t.Fatalf("row %d missing", i)
		}
		if row.kind != kind {
			t.Fatalf("row %d kind = %v, want %v", i, row.kind, kind)
		}
	}

	if row, _ := visibleRowAt(groups, expanded, 0); row.group.Key != "A" {
		t.Errorf("row 0 should be A header, got %s", row.group.Key)
	}
	if row, _ := visibleRowAt(groups, expanded, 1); row.job.JobID != "r1" {
		t.Errorf("row 1 should be r1, got %s", row.job.JobID)
	}
	if row, _ := visibleRowAt(groups, expanded, 2); row.job.JobID != "r2" {
		t.Errorf("row 2 should be r2, got %s", row.job.JobID)
	}
	if row, _ := visibleRowAt(groups, expanded, 3); row.group.Key != "B" {
		t.Errorf("row 3 should be B header, got %s", row.group.Key)
	}
}

func TestVisibleRowAtPastEnd(t *testing.T) {
	groups := twoGroupFixture()
	expanded := map[string]bool{}

	// Past-the-end is a valid query result, not an error.
	if _, ok := visibleRowAt(groups, expanded, 2); ok {
		t.Error("index 2 should be past the end when collapsed")
	}
	if _, ok := visibleRowAt(groups, expanded, -1); ok {
		t.Error("negative index should report not found")
	}
	if _, ok := visibleRowAt(nil, expanded, 0); ok {
		t.Error("empty group list has no rows")
	}
}

func TestToggleChangesCountByMemberCount(t *testing.T) {
	groups := twoGroupFixture()
	expanded := map[string]bool{}
	base := countVisibleRows(groups, expanded)

	expanded["A"] = true
	if got := countVisibleRows(groups, expanded); got != base+2 {
		t.Errorf("expanding A should add 2 rows, got %d -> %d", base, got)
	}

	// Toggling B changes the count by B's member count only.
	expanded["B"] = true
	if got := countVisibleRows(groups, expanded); got != base+3 {
		t.Errorf("expanding B should add 1 more row, got %d", got)
	}
	expanded["B"] = false
	if got := countVisibleRows(groups, expanded); got != base+2 {
		t.Errorf("collapsing B should remove exactly 1 row, got %d", got)
	}
	expanded["A"] = false
	if got := countVisibleRows(groups, expanded); got != base {
		t.Errorf("collapsing A should restore the base count, got %d", got)
	}
}

func TestVisibleWindowMatchesFullSequence(t *testing.T) {
	groups := groupJobs([]Job{
		jobNamed("1", "a", "A"),
		jobNamed("2", "b", "A"),
		jobNamed("3", "c", "B"),
		jobNamed("4", "d", "C"),
		jobNamed("5", "e", "C"),
	})
	expanded := map[string]bool{"A": true, "C": true}
	total := countVisibleRows(groups, expanded)

	for start := 0; start <= total; start++ {
		for max := 0; max <= total+1; max++ {
			window := visibleWindow(groups, expanded, start, max)
			for i, row := range window {
				want, ok := visibleRowAt(groups, expanded, start+i)
				if !ok {
					t.Fatalf("window [%d,%d): row %d not addressable", start, start+max, start+i)
				}
				if row.kind != want.kind || row.group.Key != want.group.Key {
					t.Fatalf("window [%d,%d): row %d mismatch", start, start+max, start+i)
				}
				if row.kind == rowMember && row.job.JobID != want.job.JobID {
					t.Fatalf("window [%d,%d): member %d mismatch", start, start+max, start+i)
				}
			}
			wantLen := total - start
			if wantLen > max {
				wantLen = max
			}
			if wantLen < 0 {
				wantLen = 0
			}
			if len(window) != wantLen {
				t.Fatalf("window [%d,+%d) length = %d, want %d", start, max, len(window), wantLen)
			}
		}
	}
}

func TestFlattenIsRestartable(t *testing.T) {
	groups := twoGroupFixture()
	expanded := map[string]bool{"A": true}

	first, _ := visibleRowAt(groups, expanded, 1)
	second, _ := visibleRowAt(groups, expanded, 1)
	if first.job.JobID != second.job.JobID {
		t.Error("repeated queries over unchanged inputs must agree")
	}
}
