package gui

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// TranslationJob represents one group translation request
type TranslationJob struct {
	ID          int
	GroupID     string
	GroupName   string
	Terms       []string
	Translated  int
	Status      JobStatus
	Error       error
	StartedAt   time.Time
	CompletedAt time.Time
}

// JobStatus represents the current state of a job
type JobStatus int

const (
	StatusQueued JobStatus = iota
	StatusProcessing
	StatusCompleted
	StatusFailed
)

func (s JobStatus) String() string {
	switch s {
	case StatusQueued:
		return "Queued"
	case StatusProcessing:
		return "Processing"
	case StatusCompleted:
		return "Completed"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// TranslationQueue manages pending group translation jobs. The GUI
// pulls jobs with ProcessNextJob and reports back via CompleteJob or
// FailJob; callbacks keep the status bar current.
type TranslationQueue struct {
	jobs       chan *TranslationJob
	results    map[int]*TranslationJob
	processing map[int]*TranslationJob

	nextID int
	mu     sync.RWMutex

	// Callbacks for UI updates
	onStatusUpdate func(job *TranslationJob)
	onJobComplete  func(job *TranslationJob)

	ctx    context.Context
	cancel context.CancelFunc
}

// NewTranslationQueue creates a new translation queue
func NewTranslationQueue(ctx context.Context) *TranslationQueue {
	queueCtx, cancel := context.WithCancel(ctx)

	return &TranslationQueue{
		jobs:       make(chan *TranslationJob, 100),
		results:    make(map[int]*TranslationJob),
		processing: make(map[int]*TranslationJob),
		nextID:     1,
		ctx:        queueCtx,
		cancel:     cancel,
	}
}

// SetCallbacks sets the callback functions for UI updates
func (q *TranslationQueue) SetCallbacks(onStatusUpdate func(*TranslationJob), onJobComplete func(*TranslationJob)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.onStatusUpdate = onStatusUpdate
	q.onJobComplete = onJobComplete
}

// AddGroup queues a translation job for a group's untranslated terms
func (q *TranslationQueue) AddGroup(groupID, groupName string, terms []string) *TranslationJob {
	q.mu.Lock()
	job := &TranslationJob{
		ID:        q.nextID,
		GroupID:   groupID,
		GroupName: groupName,
		Terms:     terms,
		Status:    StatusQueued,
	}
	q.nextID++
	q.results[job.ID] = job
	q.mu.Unlock()

	select {
	case q.jobs <- job:
		q.updateJobStatus(job, StatusQueued)
		return job
	case <-q.ctx.Done():
		job.Status = StatusFailed
		job.Error = fmt.Errorf("queue is shutting down")
		return job
	}
}

// GetQueueStatus returns the current queue statistics
func (q *TranslationQueue) GetQueueStatus() (queued, processing, completed, failed int) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	for _, job := range q.results {
		switch job.Status {
		case StatusQueued:
			queued++
		case StatusProcessing:
			processing++
		case StatusCompleted:
			completed++
		case StatusFailed:
			failed++
		}
	}

	return
}

// Stop gracefully shuts down the queue
func (q *TranslationQueue) Stop() {
	q.cancel()
	close(q.jobs)
}

// CompleteJob marks a job as completed
func (q *TranslationQueue) CompleteJob(jobID, translated int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if job, exists := q.results[jobID]; exists {
		job.Status = StatusCompleted
		job.Translated = translated
		job.CompletedAt = time.Now()

		delete(q.processing, jobID)

		if q.onJobComplete != nil {
			q.onJobComplete(job)
		}
	}
}

// FailJob marks a job as failed with an error
func (q *TranslationQueue) FailJob(jobID int, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if job, exists := q.results[jobID]; exists {
		job.Status = StatusFailed
		job.Error = err
		job.CompletedAt = time.Now()

		delete(q.processing, jobID)

		if q.onJobComplete != nil {
			q.onJobComplete(job)
		}
	}
}

// updateJobStatus updates the status of a job and calls the callback
func (q *TranslationQueue) updateJobStatus(job *TranslationJob, status JobStatus) {
	job.Status = status
	if q.onStatusUpdate != nil {
		q.onStatusUpdate(job)
	}
}

// ProcessNextJob hands the next queued job to the caller, or nil when
// the queue is empty
func (q *TranslationQueue) ProcessNextJob() *TranslationJob {
	select {
	case job := <-q.jobs:
		q.mu.Lock()
		q.processing[job.ID] = job
		job.Status = StatusProcessing
		job.StartedAt = time.Now()
		q.mu.Unlock()

		if q.onStatusUpdate != nil {
			q.onStatusUpdate(job)
		}

		return job

	default:
		return nil
	}
}
