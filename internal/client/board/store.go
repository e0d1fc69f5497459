package board

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/hireboard/internal/common"
	"github.com/dmitrijs2005/hireboard/internal/filex"
	"github.com/dmitrijs2005/hireboard/internal/logging"
	"github.com/dmitrijs2005/hireboard/internal/models"
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for fire-and-forget failures.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l.With("module", "board") }
}

// WithNotifier sets where user-facing failures are reported.
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notify = n }
}

// WithRollback makes the store revert an optimistic status move or delete
// when the gateway rejects it.
func WithRollback() Option {
	return func(s *Store) { s.rollback = true }
}

// WithReconcile makes Reconcile reload the collection every interval.
func WithReconcile(interval time.Duration) Option {
	return func(s *Store) { s.reconcileEvery = interval }
}

// Store is the single source of truth for the candidates of the open job.
type Store struct {
	gw             Gateway
	logger         logging.Logger
	notify         Notifier
	rollback       bool
	reconcileEvery time.Duration

	mu         sync.Mutex
	jobID      int64
	job        models.Job
	candidates []models.Candidate
	// revision counts status moves per candidate so a late rollback never
	// clobbers a newer move.
	revision  map[int64]int
	uploading map[int64]struct{}
	hints     map[int64]int
	editor    *Editor
	// journal holds optimistic writes a Load must replay over fetched rows:
	// pending ones, and finished ones issued while a fetch was running.
	journal []*localWrite
	loading int

	inflight sync.WaitGroup
}

// localWrite is one optimistic status move or delete.
type localWrite struct {
	id     int64
	stage  models.Stage
	delete bool
	done   bool
}

// NewStore builds a Store over gw.
func NewStore(gw Gateway, opts ...Option) *Store {
	s := &Store{
		gw:        gw,
		logger:    logging.Nop(),
		revision:  make(map[int64]int),
		uploading: make(map[int64]struct{}),
		hints:     make(map[int64]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notify == nil {
		s.notify = NotifierFunc(func(ctx context.Context, msg string) {
			s.logger.Error(ctx, msg)
		})
	}
	return s
}

// Load fetches the job's candidates and replaces the local collection.
// A failed fetch leaves an empty board; nothing is returned to the caller.
func (s *Store) Load(ctx context.Context, jobID int64) {
	s.mu.Lock()
	s.loading++
	s.mu.Unlock()

	job, err := s.gw.FetchJob(ctx, jobID)
	if err != nil || job == nil {
		s.logger.Warn(ctx, "job fetch failed", "job_id", jobID, "error", err)
		job = &models.Job{ID: jobID}
	}

	candidates, err := s.gw.FetchCandidates(ctx, jobID)
	if err != nil {
		s.logger.Warn(ctx, "candidate fetch failed, showing empty board", "job_id", jobID, "error", err)
		candidates = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading--
	s.jobID = jobID
	s.job = *job
	s.candidates = s.replay(slices.Clone(candidates))
	clear(s.hints)
	if s.loading == 0 {
		s.journal = slices.DeleteFunc(s.journal, func(w *localWrite) bool { return w.done })
	}

	s.logger.Debug(ctx, "board loaded", "job_id", jobID, "count", len(candidates))
}

// Add inserts a new candidate in the "new" stage and reloads the board.
// On failure nothing is added locally and the user is notified.
func (s *Store) Add(ctx context.Context, fields models.NewCandidate) (*models.Candidate, error) {
	s.mu.Lock()
	jobID := s.jobID
	s.mu.Unlock()

	if fields.JobID == 0 {
		fields.JobID = jobID
	}
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	created, err := s.gw.InsertCandidate(ctx, fields)
	if err != nil {
		s.notify.Alert(ctx, fmt.Sprintf("Could not add candidate: %v", err))
		return nil, fmt.Errorf("insert candidate: %w", err)
	}

	s.Load(ctx, fields.JobID)

	return created, nil
}

// Remove deletes a candidate locally right away, closes its open editor and
// then deletes it remotely without waiting.
func (s *Store) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("candidate %d: %w", id, common.ErrorNotFound)
	}

	removed := s.candidates[idx]
	s.candidates = slices.Delete(s.candidates, idx, idx+1)
	delete(s.hints, id)
	if s.editor != nil && s.editor.id == id {
		s.editor.closed = true
		s.editor = nil
	}
	w := s.record(id, "", true)
	s.mu.Unlock()

	s.dispatch(ctx, "delete", w,
		func(ctx context.Context) error { return s.gw.DeleteCandidate(ctx, id) },
		func() { s.restore(removed, idx) },
	)

	return nil
}

// UpdateStatus moves a candidate to stage locally and then updates the
// remote record without waiting.
func (s *Store) UpdateStatus(ctx context.Context, id int64, stage models.Stage) error {
	return s.updateStatus(ctx, id, stage, nil)
}

// updateStatus also records the drop index when hint is set, under the same
// lock as the move so a fast rollback always finds it.
func (s *Store) updateStatus(ctx context.Context, id int64, stage models.Stage, hint *int) error {
	if !stage.Valid() {
		return fmt.Errorf("%w: %q", common.ErrInvalidStage, stage)
	}

	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("candidate %d: %w", id, common.ErrorNotFound)
	}

	previous := s.candidates[idx].Status
	s.candidates[idx].Status = stage
	s.revision[id]++
	rev := s.revision[id]
	if hint != nil {
		s.hints[id] = *hint
	}
	w := s.record(id, stage, false)
	s.mu.Unlock()

	s.dispatch(ctx, "update_status", w,
		func(ctx context.Context) error { return s.gw.UpdateCandidateStatus(ctx, id, stage) },
		func() { s.revertStatus(id, previous, rev) },
	)

	return nil
}

// Transition applies the stage machine: any stage may follow any other.
func (s *Store) Transition(ctx context.Context, id int64, to models.Stage) error {
	return s.transition(ctx, id, to, nil)
}

func (s *Store) transition(ctx context.Context, id int64, to models.Stage, hint *int) error {
	current, ok := s.Get(id)
	if !ok {
		return fmt.Errorf("candidate %d: %w", id, common.ErrorNotFound)
	}
	if !models.CanTransition(current.Status, to) {
		return fmt.Errorf("%w: %s -> %s", common.ErrInvalidStage, current.Status, to)
	}
	return s.updateStatus(ctx, id, to, hint)
}

// SaveDetails writes the editable fields remotely and then overwrites the
// local record with them whatever the gateway answered. A gateway failure
// is reported to the user and returned.
func (s *Store) SaveDetails(ctx context.Context, id int64, details models.CandidateDetails) error {
	if _, ok := s.Get(id); !ok {
		return fmt.Errorf("candidate %d: %w", id, common.ErrorNotFound)
	}

	err := s.gw.UpdateCandidateDetails(ctx, id, details)

	s.mu.Lock()
	if idx := s.indexOf(id); idx >= 0 {
		s.candidates[idx] = s.candidates[idx].WithDetails(details)
	}
	s.mu.Unlock()

	if err != nil {
		s.notify.Alert(ctx, fmt.Sprintf("Could not save candidate: %v", err))
		return fmt.Errorf("update candidate details: %w", err)
	}
	return nil
}

// AttachResume uploads a résumé and points the candidate at it. Only one
// upload per candidate may be in flight; a second one fails with
// common.ErrUploadInProgress.
func (s *Store) AttachResume(ctx context.Context, id int64, fileName string, data []byte) (string, error) {
	if err := filex.CheckResume(fileName, data); err != nil {
		return "", err
	}

	s.mu.Lock()
	if s.indexOf(id) < 0 {
		s.mu.Unlock()
		return "", fmt.Errorf("candidate %d: %w", id, common.ErrorNotFound)
	}
	if _, busy := s.uploading[id]; busy {
		s.mu.Unlock()
		return "", common.ErrUploadInProgress
	}
	s.uploading[id] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.uploading, id)
		s.mu.Unlock()
	}()

	url, err := s.gw.UploadFile(ctx, strconv.FormatInt(id, 10), fileName, data)
	if err != nil {
		s.notify.Alert(ctx, fmt.Sprintf("Upload failed: %v", err))
		return "", fmt.Errorf("upload resume: %w", err)
	}

	setErr := s.gw.SetCandidateResume(ctx, id, url)

	s.mu.Lock()
	if idx := s.indexOf(id); idx >= 0 {
		s.candidates[idx].CVURL = url
	}
	if s.editor != nil && s.editor.id == id {
		s.editor.draft.CVURL = url
	}
	s.mu.Unlock()

	if setErr != nil {
		s.notify.Alert(ctx, fmt.Sprintf("Could not save résumé link: %v", setErr))
		return url, fmt.Errorf("set candidate resume: %w", setErr)
	}
	return url, nil
}

// Uploading reports whether a résumé upload is in flight for id.
func (s *Store) Uploading(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.uploading[id]
	return ok
}

// Job returns the board header.
func (s *Store) Job() models.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.job
}

// JobID returns the job the board was last loaded for.
func (s *Store) JobID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobID
}

// Candidates returns a copy of the collection in store order.
func (s *Store) Candidates() []models.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.candidates)
}

// Get returns the candidate with the given id.
func (s *Store) Get(id int64) (models.Candidate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return models.Candidate{}, false
	}
	return s.candidates[idx], true
}

// Wait blocks until every fire-and-forget write has finished.
func (s *Store) Wait() {
	s.inflight.Wait()
}

// Reconcile reloads the board every reconcile interval until ctx is done.
// It returns at once when no interval was configured.
func (s *Store) Reconcile(ctx context.Context) {
	if s.reconcileEvery <= 0 {
		return
	}

	ticker := time.NewTicker(s.reconcileEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if jobID := s.JobID(); jobID != 0 {
				s.Load(ctx, jobID)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.candidates, func(c models.Candidate) bool { return c.ID == id })
}

// dispatch runs a gateway write in the background. The caller's
// cancellation does not reach it: the write outlives the handler that
// issued it.
func (s *Store) dispatch(ctx context.Context, op string, w *localWrite, call func(context.Context) error, undo func()) {
	ctx = context.WithoutCancel(ctx)

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		err := call(ctx)
		s.settle(w, err)
		if err != nil {
			s.logger.Warn(ctx, "gateway write failed", "op", op, "candidate_id", w.id, "error", err)
			if s.rollback {
				undo()
				s.logger.Info(ctx, "optimistic change reverted", "op", op, "candidate_id", w.id)
			}
		}
	}()
}

// record journals an optimistic write. Callers hold s.mu.
func (s *Store) record(id int64, stage models.Stage, del bool) *localWrite {
	w := &localWrite{id: id, stage: stage, delete: del}
	s.journal = append(s.journal, w)
	return w
}

// settle marks w finished. A failed write leaves the journal at once, so a
// reload shows what the gateway holds; a confirmed one stays until no fetch
// that may predate it is running.
func (s *Store) settle(w *localWrite, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w.done = true
	if err != nil || s.loading == 0 {
		s.journal = slices.DeleteFunc(s.journal, func(x *localWrite) bool { return x == w })
	}
}

// replay applies the journal, oldest first, to freshly fetched rows.
// Callers hold s.mu.
func (s *Store) replay(cands []models.Candidate) []models.Candidate {
	for _, w := range s.journal {
		if w.delete {
			cands = slices.DeleteFunc(cands, func(c models.Candidate) bool { return c.ID == w.id })
			continue
		}
		for i := range cands {
			if cands[i].ID == w.id {
				cands[i].Status = w.stage
			}
		}
	}
	return cands
}

func (s *Store) restore(c models.Candidate, idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.JobID != s.jobID || s.indexOf(c.ID) >= 0 {
		return
	}
	idx = min(idx, len(s.candidates))
	s.candidates = slices.Insert(s.candidates, idx, c)
}

func (s *Store) revertStatus(id int64, previous models.Stage, rev int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.revision[id] != rev {
		return
	}
	if idx := s.indexOf(id); idx >= 0 {
		s.candidates[idx].Status = previous
		// the drop index belonged to the column the card was moved to
		delete(s.hints, id)
	}
}
