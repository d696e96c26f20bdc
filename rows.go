package main

// A visibleRow is one line of the virtual row list: either a group
// header or a member job of an expanded group. The kind is explicit;
// only the matching payload fields are set.
type rowKind int

const (
	rowHeader rowKind = iota
	rowMember
)

type visibleRow struct {
	kind  rowKind
	group *Group // set for both kinds; the owning group for members
	job   *Job   // set for rowMember only
}

// countVisibleRows returns the length of the flattened row list: one
// header per group plus the members of expanded groups. An absent key
// in expanded means collapsed.
func countVisibleRows(groups []Group, expanded map[string]bool) int {
	total := 0
	for i := range groups {
		total++
		if expanded[groups[i].Key] {
			total += len(groups[i].Jobs)
		}
	}
	return total
}

// visibleRowAt returns the row at a 0-based index of the flattened
// sequence without materializing it. The second return is false when
// the index is past the end; that is a valid query, not an error.
func visibleRowAt(groups []Group, expanded map[string]bool, index int) (visibleRow, bool) {
	if index < 0 {
		return visibleRow{}, false
	}
	for gi := range groups {
		g := &groups[gi]
		if index == 0 {
			return visibleRow{kind: rowHeader, group: g}, true
		}
		index--
		if !expanded[g.Key] {
			continue
		}
		if index < len(g.Jobs) {
			return visibleRow{kind: rowMember, group: g, job: &g.Jobs[index]}, true
		}
		index -= len(g.Jobs)
	}
	return visibleRow{}, false
}

// visibleWindow materializes only the rows in [start, start+max), the
// slice the renderer needs for one frame.
func visibleWindow(groups []Group, expanded map[string]bool, start, max int) []visibleRow {
	if max <= 0 {
		return nil
	}
	var rows []visibleRow
	index := 0
	for gi := range groups {
		g := &groups[gi]
		if index >= start+max {
			break
		}
		if index >= start {
			rows = append(rows, visibleRow{kind: rowHeader, group: g})
		}
		index++
		if !expanded[g.Key] {
			continue
		}
		for ji := range g.Jobs {
			if index >= start+max {
				break
			}
			if index >= start {
				rows = append(rows, visibleRow{kind: rowMember, group: g, job: &g.Jobs[ji]})
			}
			index++
		}
	}
	return rows
}
