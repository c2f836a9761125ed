// Package jobs keeps track of commands running in the background.
package jobs

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidPID is returned when registering a job without a real process.
var ErrInvalidPID = errors.New("invalid pid")

// Job is a background process started by the shell.
type Job struct {
	// ID is unique for the lifetime of the shell and never reused.
	ID int `json:"job_id"`
	// PID is the OS process ID.
	PID int `json:"pid"`
	// Command is the line the user typed.
	Command string `json:"command"`
}

// String returns the job the way it is announced to the user.
func (j Job) String() string {
	return fmt.Sprintf("[%d] %d", j.ID, j.PID)
}

// Registry holds the running background jobs.
//
// A Registry is not safe for concurrent use, it must only be mutated by the
// goroutine running the shell loop.
type Registry struct {
	jobs   []*Job
	nextID int
}

// NewRegistry creates an empty registry; the first job gets ID 1.
func NewRegistry() *Registry {
	return &Registry{nextID: 1}
}

// Insert registers a new job and returns it.
func (r *Registry) Insert(pid int, command string) (Job, error) {
	if pid <= 0 {
		return Job{}, fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	if _, ok := r.find(pid); ok {
		return Job{}, fmt.Errorf("pid %d is already a job", pid)
	}

	job := &Job{
		ID:      r.nextID,
		PID:     pid,
		Command: command,
	}
	r.nextID++
	r.jobs = append(r.jobs, job)

	return *job, nil
}

func (r *Registry) find(pid int) (int, bool) {
	// Linear scan, there are never many jobs.
	for i, job := range r.jobs {
		if job.PID == pid {
			return i, true
		}
	}
	return -1, false
}

// Lookup returns the job with the given PID.
func (r *Registry) Lookup(pid int) (Job, bool) {
	if i, ok := r.find(pid); ok {
		return *r.jobs[i], true
	}
	return Job{}, false
}

// RemoveByPID drops the job with the given PID if there is one.
func (r *Registry) RemoveByPID(pid int) (Job, bool) {
	i, ok := r.find(pid)
	if !ok {
		return Job{}, false
	}

	removed := *r.jobs[i]
	r.jobs = append(r.jobs[:i], r.jobs[i+1:]...)
	return removed, true
}

// Jobs returns a copy of the running jobs ordered by ID.
func (r *Registry) Jobs() []Job {
	out := make([]Job, 0, len(r.jobs))
	for _, job := range r.jobs {
		out = append(out, *job)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// Len returns the number of running jobs.
func (r *Registry) Len() int {
	return len(r.jobs)
}

// Clear forgets every job. IDs keep increasing afterwards.
func (r *Registry) Clear() {
	r.jobs = nil
}
