package main

import (
	"sort"
	"strings"
)

// ungroupedKey is the sentinel bucket for jobs without a group.
const ungroupedKey = "No Group"

// Group is one bucket of jobs sharing a group key. Groups are rebuilt
// from scratch on every refresh; a key with no members simply does not
// exist in the new snapshot.
type Group struct {
	Key  string
	Jobs []Job
}

func (g *Group) Count() int { return len(g.Jobs) }

// groupJobs partitions jobs by group key, ordered by key. Jobs keep
// their input order within each group until sortGroups runs.
func groupJobs(jobs []Job) []Group {
	byKey := make(map[string]*Group)
	var keys []string
	for _, j := range jobs {
		key := j.Group
		if key == "" {
			key = ungroupedKey
		}
		g, ok := byKey[key]
		if !ok {
			g = &Group{Key: key}
			byKey[key] = g
			keys = append(keys, key)
		}
		g.Jobs = append(g.Jobs, j)
	}
	sort.Strings(keys)

	groups := make([]Group, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, *byKey[key])
	}
	return groups
}

// column maps a header cell to a typed field accessor. The registry
// order is the on-screen order and the sort-column cycle order.
type column struct {
	title string
	width int
	field func(Job) string
}

var columns = []column{
	{"JOBID", 8, func(j Job) string { return j.JobID }},
	{"USER", 9, func(j Job) string { return j.User }},
	{"STAT", 6, func(j Job) string { return j.Stat }},
	{"QUEUE", 9, func(j Job) string { return j.Queue }},
	{"FROM_HOST", 10, func(j Job) string { return j.FromHost }},
	{"EXEC_HOST", 10, func(j Job) string { return j.ExecHost }},
	{"JOB_NAME", 18, func(j Job) string { return j.Name }},
	{"SUBMITTED", 13, func(j Job) string { return j.SubmitTime }},
	{"CPU_USED", 9, func(j Job) string { return j.CPUTime }},
	{"MEM", 9, func(j Job) string { return j.Mem }},
}

// colJobName is the designated name column: sorting on it also reorders
// the group list itself.
const colJobName = 6

// compareFields orders two field values case-insensitively as text.
// Every column shares this comparator, so numeric-looking columns
// (JOBID, MEM) sort as text too.
func compareFields(a, b string, descending bool) bool {
	av, bv := strings.ToLower(a), strings.ToLower(b)
	if descending {
		return av > bv
	}
	return av < bv
}

// sortGroups reorders every group's member list by the given column.
// The sort is stable so repeated re-sorts on unchanged data never
// reshuffle tied rows. When the active column is JOB_NAME the group
// list is reordered by key with the same direction; any other column
// keeps group order at the lexicographic key order from groupJobs,
// restoring it if a prior name sort rearranged the list.
func sortGroups(groups []Group, col int, descending bool) {
	if col < 0 || col >= len(columns) {
		return
	}
	field := columns[col].field
	for gi := range groups {
		jobs := groups[gi].Jobs
		sort.SliceStable(jobs, func(i, k int) bool {
			return compareFields(field(jobs[i]), field(jobs[k]), descending)
		})
	}
	if col == colJobName {
		sort.SliceStable(groups, func(i, k int) bool {
			return compareFields(groups[i].Key, groups[k].Key, descending)
		})
	} else {
		sort.SliceStable(groups, func(i, k int) bool {
			return groups[i].Key < groups[k].Key
		})
	}
}
