package main

import "testing"

func TestParseJobsTabDelimited(t *testing.T) {
	output := "1001\talice\tRUN\tnormal\tlogin01\tnode003\talign_chr1\tJan  2 10:15\t12:04\t512 MB\t/genomics/align\n" +
		"1002\tbob\tPEND\tshort\tlogin02\t-\tsleepy\tJan  2 10:20\t0:00\t-\t-"
	jobs := parseJobs(output)

	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].JobID != "1001" {
		t.Errorf("expected job ID 1001, got %s", jobs[0].JobID)
	}
	if jobs[0].Group != "/genomics/align" {
		t.Errorf("expected group /genomics/align, got %s", jobs[0].Group)
	}
	if jobs[0].Status != StatusRunning {
		t.Errorf("expected StatusRunning, got %v", jobs[0].Status)
	}
	if jobs[1].ExecHost != "-" {
		t.Errorf("expected placeholder exec host, got %q", jobs[1].ExecHost)
	}
	if jobs[1].Group != "" {
		t.Errorf("expected '-' group to map to empty, got %q", jobs[1].Group)
	}
}

func TestParseJobsShortLines(t *testing.T) {
	// Missing trailing fields default to empty string; the job is kept.
	jobs := parseJobs("2001\tcarol\tDONE")
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	j := jobs[0]
	if j.JobID != "2001" || j.User != "carol" || j.Stat != "DONE" {
		t.Fatalf("unexpected fields parsed: %+v", j)
	}
	if j.Queue != "" || j.Name != "" || j.Mem != "" || j.Group != "" {
		t.Errorf("expected empty trailing fields, got %+v", j)
	}
	if j.Status != StatusDone {
		t.Errorf("expected StatusDone, got %v", j.Status)
	}
}

func TestParseJobsWhitespaceFallback(t *testing.T) {
	jobs := parseJobs("3001 dave RUN gpu login01 node009 train Jan 0:01 1GB /ml/train")
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if jobs[0].User != "dave" || jobs[0].Queue != "gpu" {
		t.Errorf("whitespace fallback misparsed: %+v", jobs[0])
	}
}

func TestParseJobsSkipsBlankLines(t *testing.T) {
	jobs := parseJobs("\n\n4001\teve\tRUN\n\n")
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
}

func TestParseJobStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected JobStatus
	}{
		{"RUN", StatusRunning},
		{"run", StatusRunning},
		{" PEND ", StatusPending},
		{"DONE", StatusDone},
		{"DONE(0)", StatusDone},
		{"EXIT", StatusExited},
		{"ZOMBI", StatusZombie},
		{"UNKWN", StatusUnknown},
		{"PSUSP", StatusPending},
		{"USUSP", StatusPending},
		{"", StatusUnrecognized},
		{"WIBBLE", StatusUnrecognized},
		{"42", StatusUnrecognized},
	}

	for _, tc := range tests {
		got := ParseJobStatus(tc.input)
		if got != tc.expected {
			t.Errorf("ParseJobStatus(%q) = %v, want %v", tc.input, got, tc.expected)
		}
	}
}

func TestJobStatusString(t *testing.T) {
	if StatusRunning.String() != "RUN" {
		t.Errorf("expected RUN, got %s", StatusRunning.String())
	}
	if StatusUnrecognized.String() != "?" {
		t.Errorf("expected ?, got %s", StatusUnrecognized.String())
	}
	if JobStatus(99).String() != "?" {
		t.Errorf("out-of-range status should stringify as ?, got %s", JobStatus(99).String())
	}
}

func TestDemoSourceVariesBetweenFetches(t *testing.T) {
	src := newDemoSource()
	first, err := src.Fetch(t.Context())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(first) == 0 {
		t.Fatal("expected demo jobs")
	}
	for _, j := range first {
		if j.JobID == "" {
			t.Fatal("demo job without ID")
		}
	}

	second, err := src.Fetch(t.Context())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	// The cycle counter drifts CPU time so refreshes are visible.
	if first[0].CPUTime == second[0].CPUTime {
		t.Error("successive fetches should not report identical CPU time")
	}
}
