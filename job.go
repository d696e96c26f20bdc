package main

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"os/user"
	"strings"
	"time"
)

// Job is one batch job as reported by the scheduler. Fields are kept as
// the text bjobs emitted; a refresh replaces the whole slice, jobs are
// never mutated in place.
type Job struct {
	JobID      string
	User       string
	Stat       string // raw status text as fetched
	Queue      string
	FromHost   string
	ExecHost   string
	Name       string
	SubmitTime string
	CPUTime    string
	Mem        string
	Group      string // empty when the job belongs to no group

	Status JobStatus // derived from Stat at construction
}

// JobStatus classifies the raw status text once, at parse time.
type JobStatus int

const (
	StatusUnrecognized JobStatus = iota
	StatusRunning
	StatusPending
	StatusDone
	StatusExited
	StatusZombie
	StatusUnknown
)

var statusNames = map[JobStatus]string{
	StatusRunning:      "RUN",
	StatusPending:      "PEND",
	StatusDone:         "DONE",
	StatusExited:       "EXIT",
	StatusZombie:       "ZOMBI",
	StatusUnknown:      "UNKWN",
	StatusUnrecognized: "?",
}

func (s JobStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "?"
}

var statusAliases = map[string]JobStatus{
	"RUN":   StatusRunning,
	"PEND":  StatusPending,
	"DONE":  StatusDone,
	"EXIT":  StatusExited,
	"ZOMBI": StatusZombie,
	"UNKWN": StatusUnknown,
}

// ParseJobStatus maps raw status text to a JobStatus. The mapping is
// total: anything it does not recognize is StatusUnrecognized, never a
// silent default. Suspended variants like "PSUSP"/"USUSP" count as
// pending, and trailing qualifiers ("DONE(0)") are tolerated.
func ParseJobStatus(raw string) JobStatus {
	text := strings.ToUpper(strings.TrimSpace(raw))
	if text == "" {
		return StatusUnrecognized
	}
	if st, ok := statusAliases[text]; ok {
		return st
	}
	// Qualified forms: take the leading alpha run.
	head := text
	for i, r := range text {
		if r < 'A' || r > 'Z' {
			head = text[:i]
			break
		}
	}
	if st, ok := statusAliases[head]; ok {
		return st
	}
	if strings.HasSuffix(head, "SUSP") {
		return StatusPending
	}
	return StatusUnrecognized
}

// bjobs field list, tab delimited, matching the order parseJobs expects.
const bjobsFormat = "jobid user stat queue from_host exec_host name submit_time cpu_used mem job_group delimiter='\t'"

// jobSource is anything that can produce a fresh job snapshot.
type jobSource interface {
	Fetch(ctx context.Context) ([]Job, error)
}

// bjobsSource pulls live jobs from the LSF bjobs command.
type bjobsSource struct{}

func (bjobsSource) Fetch(ctx context.Context) ([]Job, error) {
	out, err := runCommand(ctx, []string{"bjobs", "-u", currentUser(), "-noheader", "-o", bjobsFormat})
	if err != nil {
		return nil, err
	}
	return parseJobs(out), nil
}

// fileSource reads the same field layout from a static file, for use
// without the scheduler present.
type fileSource struct {
	path string
}

func (s fileSource) Fetch(ctx context.Context) ([]Job, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read jobs file: %w", err)
	}
	return parseJobs(string(data)), nil
}

// demoSource generates pseudo-random jobs so the dashboard can run
// standalone. Successive fetches drift CPU time and flip the odd status
// so refreshes are visible.
type demoSource struct {
	rng   *rand.Rand
	cycle int
}

func newDemoSource() *demoSource {
	return &demoSource{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

var (
	demoGroups  = []string{"/genomics/align", "/genomics/call", "/ml/train", "/ml/eval", ""}
	demoQueues  = []string{"normal", "short", "gpu", "priority"}
	demoUsers   = []string{"asanchez", "bpetrov", "cwu", "dmoreau"}
	demoStats   = []string{"RUN", "RUN", "RUN", "PEND", "PEND", "DONE", "EXIT", "ZOMBI", "UNKWN"}
	demoScripts = []string{"align.sh", "variant_call.sh", "train_resnet.py", "eval_suite.sh", "cleanup.sh"}
)

func (s *demoSource) Fetch(ctx context.Context) ([]Job, error) {
	s.cycle++
	n := 24 + s.rng.Intn(8)
	jobs := make([]Job, 0, n)
	for i := 0; i < n; i++ {
		stat := demoStats[(i+s.cycle/3)%len(demoStats)]
		execHost := fmt.Sprintf("node%03d", 1+(i*7)%40)
		if stat == "PEND" {
			execHost = "-"
		}
		jobs = append(jobs, newJob(
			fmt.Sprintf("%d", 100000+i),
			demoUsers[i%len(demoUsers)],
			stat,
			demoQueues[i%len(demoQueues)],
			"login01",
			execHost,
			fmt.Sprintf("%s_%d", strings.TrimSuffix(demoScripts[i%len(demoScripts)], ".sh"), i),
			time.Now().Add(-time.Duration(i)*7*time.Minute).Format("Jan _2 15:04"),
			fmt.Sprintf("%d:%02d", (i*3+s.cycle)%60, (i*17)%60),
			fmt.Sprintf("%d MB", 128+(i*97)%4096),
			demoGroups[i%len(demoGroups)],
		))
	}
	return jobs, nil
}

func newJob(fields ...string) Job {
	get := func(i int) string {
		if i < len(fields) {
			return strings.TrimSpace(fields[i])
		}
		return ""
	}
	j := Job{
		JobID:      get(0),
		User:       get(1),
		Stat:       get(2),
		Queue:      get(3),
		FromHost:   get(4),
		ExecHost:   get(5),
		Name:       get(6),
		SubmitTime: get(7),
		CPUTime:    get(8),
		Mem:        get(9),
		Group:      get(10),
	}
	if j.Group == "-" {
		j.Group = ""
	}
	j.Status = ParseJobStatus(j.Stat)
	return j
}

// parseJobs parses line-oriented bjobs output. Fields are tab delimited;
// lines without tabs fall back to whitespace splitting. Short lines
// still yield a job, with the missing trailing fields empty.
func parseJobs(output string) []Job {
	var jobs []Job
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			parts = strings.Fields(line)
		}
		if len(parts) == 0 || strings.TrimSpace(parts[0]) == "" {
			continue
		}
		jobs = append(jobs, newJob(parts...))
	}
	return jobs
}

func currentUser() string {
	u, err := user.Current()
	if err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

// runCommand executes an external command under the given context so a
// hung scheduler never blocks the interactive loop.
func runCommand(ctx context.Context, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("%s timed out: %v", args[0], err)
	}
	if err != nil {
		return "", fmt.Errorf("%s failed: %v, stderr: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// peekJobOutput returns the buffered stdout of an unfinished job via
// bpeek. One-shot; the overlay re-runs it on demand.
func peekJobOutput(ctx context.Context, jobID string) (string, error) {
	return runCommand(ctx, []string{"bpeek", jobID})
}
