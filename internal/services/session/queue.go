package session

import (
	"time"

	"github.com/dopplerdeck/dopplerdeck/internal/models"
)

// Queue is an ordered FIFO of queued tracks for one guild. It is not
// safe for concurrent use on its own; callers hold the session's entry
// lock.
type Queue struct {
	items []models.QueuedTrack
}

// Enqueue appends a track and returns its 1-based position
func (q *Queue) Enqueue(item models.QueuedTrack) int {
	q.items = append(q.items, item)
	return len(q.items)
}

// DequeueFront pops the oldest entry in FIFO order
func (q *Queue) DequeueFront() (models.QueuedTrack, bool) {
	if len(q.items) == 0 {
		return models.QueuedTrack{}, false
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item, true
}

// Clear removes all entries
func (q *Queue) Clear() {
	q.items = nil
}

// Len returns the number of queued tracks
func (q *Queue) Len() int {
	return len(q.items)
}

// Items returns a copy of the queue in order
func (q *Queue) Items() []models.QueuedTrack {
	out := make([]models.QueuedTrack, len(q.items))
	copy(out, q.items)
	return out
}

// TotalLength sums the durations of all queued tracks; streams count
// as zero
func (q *Queue) TotalLength() time.Duration {
	var total time.Duration
	for _, item := range q.items {
		total += item.Track.Length
	}
	return total
}

// Page returns one page of the queue plus the total page count and the
// queue offset of the page's first entry. The page index is clamped
// into [1, totalPages]; an empty queue yields one empty page.
func (q *Queue) Page(page, pageSize int) ([]models.QueuedTrack, int, int) {
	if pageSize < 1 {
		pageSize = 1
	}

	totalPages := (len(q.items) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(q.items) {
		start = len(q.items)
	}
	if end > len(q.items) {
		end = len(q.items)
	}

	out := make([]models.QueuedTrack, end-start)
	copy(out, q.items[start:end])
	return out, totalPages, start
}
