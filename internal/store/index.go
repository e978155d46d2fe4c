package store

import "github.com/LISSConsulting/LISSTech.Marquee/internal/lifecycle"

// taskRange is the [start, end) byte range of one task in the JSONL file.
// start is the offset of the EventTaskStart line; end is the offset of the
// first byte after the EventTaskStop line.
type taskRange struct {
	start int64
	end   int64
}

// fileIndex keeps byte-offset bookmarks per completed task plus the running
// session totals. It is updated by onAppend as each event is written, or
// rebuilt line by line by Open, and gives O(1) lookup for TaskLog reads via
// file.ReadAt.
type fileIndex struct {
	summaries []TaskSummary          // ordered by stop time
	ranges    map[uint64]taskRange   // TaskID → byte range
	pending   map[uint64]pendingTask // started, not yet stopped

	transitions int
	selected    string
	outcome     string
}

type pendingTask struct {
	startOffset int64
	summary     TaskSummary
}

func newFileIndex() *fileIndex {
	return &fileIndex{
		ranges:  make(map[uint64]taskRange),
		pending: make(map[uint64]pendingTask),
	}
}

// onAppend updates the index after e was written at lineOffset. lineLen
// includes the trailing newline.
func (idx *fileIndex) onAppend(e lifecycle.Event, lineOffset, lineLen int64) {
	switch e.Kind {
	case lifecycle.EventSelect:
		idx.transitions++
	case lifecycle.EventTaskStart:
		idx.pending[e.TaskID] = pendingTask{
			startOffset: lineOffset,
			summary: TaskSummary{
				TaskID:    e.TaskID,
				Index:     e.Index,
				Label:     e.Label,
				StartedAt: e.Timestamp,
			},
		}
	case lifecycle.EventTaskStop:
		p, ok := idx.pending[e.TaskID]
		if !ok {
			return
		}
		delete(idx.pending, e.TaskID)
		s := p.summary
		s.StoppedAt = e.Timestamp
		s.Frames = e.Frames
		s.StopLatency = e.StopLatency
		s.Err = e.Err
		idx.ranges[s.TaskID] = taskRange{start: p.startOffset, end: lineOffset + lineLen}
		idx.summaries = append(idx.summaries, s)
	case lifecycle.EventConfirm:
		idx.selected = e.Label
		idx.outcome = OutcomeConfirmed
	case lifecycle.EventCancel:
		idx.outcome = OutcomeCancelled
	case lifecycle.EventFatal:
		idx.outcome = OutcomeFatal
	}
}

func (idx *fileIndex) session(id string) SessionSummary {
	s := SessionSummary{
		SessionID:   id,
		Transitions: idx.transitions,
		Tasks:       len(idx.summaries),
		Selected:    idx.selected,
		Outcome:     idx.outcome,
	}
	for _, t := range idx.summaries {
		if t.StopLatency > s.MaxLatency {
			s.MaxLatency = t.StopLatency
		}
	}
	return s
}
