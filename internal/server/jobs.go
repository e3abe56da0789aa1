package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/VJd357/Happyplates/internal/menutable"
)

// JobState describes where a conversion job is in its lifecycle.
type JobState string

const (
	JobRunning JobState = "running"
	JobDone    JobState = "done"
	JobFailed  JobState = "failed"
)

// Job tracks one document conversion driven from the web shell. The pipeline
// inside a job is strictly sequential; the mutex only guards the handoff
// between the worker goroutine and HTTP reads.
type Job struct {
	ID       string
	Document string

	mu        sync.Mutex
	state     JobState
	fraction  float64
	status    string
	errMsg    string
	table     *menutable.Table
	tablePath string
}

// JobStatus is the poll-friendly snapshot served to the browser.
type JobStatus struct {
	ID       string  `json:"id"`
	State    string  `json:"state"`
	Fraction float64 `json:"fraction"`
	Status   string  `json:"status"`
	Error    string  `json:"error,omitempty"`
}

func (j *Job) setProgress(done, total int, status string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if total == 0 {
		j.fraction = 1.0
	} else {
		j.fraction = float64(done) / float64(total)
	}
	j.status = status
}

func (j *Job) complete(table *menutable.Table, tablePath string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.state = JobDone
	j.fraction = 1.0
	j.status = "conversion complete"
	j.table = table
	j.tablePath = tablePath
}

func (j *Job) fail(userMessage string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.state = JobFailed
	j.errMsg = userMessage
}

// Snapshot returns a consistent view of the job for polling.
func (j *Job) Snapshot() JobStatus {
	j.mu.Lock()
	defer j.mu.Unlock()
	return JobStatus{
		ID:       j.ID,
		State:    string(j.state),
		Fraction: j.fraction,
		Status:   j.status,
		Error:    j.errMsg,
	}
}

// Result returns the combined table and its path once the job is done.
func (j *Job) Result() (*menutable.Table, string, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.state != JobDone {
		return nil, "", false
	}
	return j.table, j.tablePath, true
}

// JobStore holds in-flight and finished jobs in memory for the session.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewJobStore creates an empty store.
func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[string]*Job)}
}

// Create registers a new running job for a document.
func (s *JobStore) Create(document string) *Job {
	job := &Job{
		ID:       uuid.NewString(),
		Document: document,
		state:    JobRunning,
		status:   "starting",
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()
	return job
}

// Get looks up a job by ID.
func (s *JobStore) Get(id string) (*Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	return job, ok
}
