package board

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/hireboard/internal/models"
)

var errGateway = errors.New("gateway down")

// fakeGateway is an in-memory Gateway with switchable failures. When
// holdWrites is set, status updates and deletes block until release is
// called, which lets tests look at local state before confirmation.
type fakeGateway struct {
	mu     sync.Mutex
	nextID int64
	jobs   map[int64]models.Job
	rows   []models.Candidate
	calls  []string
	clock  time.Time

	fetchErr   error
	jobErr     error
	insertErr  error
	statusErr  error
	detailsErr error
	deleteErr  error
	uploadErr  error
	resumeErr  error

	holdWrites    bool
	gate          chan struct{}
	uploadGate    chan struct{}
	uploadEntered chan struct{}
	fetchGate     chan struct{}
	fetchEntered  chan struct{}
}

func newFakeGateway(rows ...models.Candidate) *fakeGateway {
	g := &fakeGateway{
		nextID: 100,
		jobs:   map[int64]models.Job{1: {ID: 1, Title: "Backend Engineer", Status: "open"}},
		rows:   slices.Clone(rows),
		clock:  time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		gate:   make(chan struct{}),
	}
	return g
}

func (g *fakeGateway) record(call string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, call)
}

func (g *fakeGateway) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.calls)
}

func (g *fakeGateway) release() { close(g.gate) }

func (g *fakeGateway) wait() {
	g.mu.Lock()
	hold := g.holdWrites
	g.mu.Unlock()
	if hold {
		<-g.gate
	}
}

func (g *fakeGateway) row(id int64) (models.Candidate, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, r := range g.rows {
		if r.ID == id {
			return r, true
		}
	}
	return models.Candidate{}, false
}

func (g *fakeGateway) FetchJob(ctx context.Context, jobID int64) (*models.Job, error) {
	g.record(fmt.Sprintf("fetch_job:%d", jobID))
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.jobErr != nil {
		return nil, g.jobErr
	}
	j, ok := g.jobs[jobID]
	if !ok {
		return nil, errors.New("no such job")
	}
	return &j, nil
}

func (g *fakeGateway) FetchCandidates(ctx context.Context, jobID int64) ([]models.Candidate, error) {
	g.record(fmt.Sprintf("fetch:%d", jobID))
	g.mu.Lock()
	if g.fetchErr != nil {
		g.mu.Unlock()
		return nil, g.fetchErr
	}
	var out []models.Candidate
	for _, r := range g.rows {
		if r.JobID == jobID {
			out = append(out, r)
		}
	}
	gate, entered := g.fetchGate, g.fetchEntered
	g.mu.Unlock()

	slices.SortStableFunc(out, func(a, b models.Candidate) int { return b.CreatedAt.Compare(a.CreatedAt) })

	// the rows are already read: holding here returns a stale snapshot
	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	return out, nil
}

// holdFetch makes the next fetches stop after reading their rows until the
// returned release func is called. entered fires once per held fetch.
func (g *fakeGateway) holdFetch() (entered <-chan struct{}, release func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fetchGate = make(chan struct{})
	g.fetchEntered = make(chan struct{}, 1)
	gate := g.fetchGate
	return g.fetchEntered, func() {
		g.mu.Lock()
		g.fetchGate, g.fetchEntered = nil, nil
		g.mu.Unlock()
		close(gate)
	}
}

func (g *fakeGateway) InsertCandidate(ctx context.Context, f models.NewCandidate) (*models.Candidate, error) {
	g.record("insert:" + f.Name)
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.insertErr != nil {
		return nil, g.insertErr
	}
	g.nextID++
	g.clock = g.clock.Add(time.Minute)
	c := models.Candidate{
		ID: g.nextID, JobID: f.JobID, Name: f.Name, Email: f.Email, LinkedinURL: f.LinkedinURL,
		Status: models.StageNew, CreatedAt: g.clock,
	}
	g.rows = append(g.rows, c)
	return &c, nil
}

func (g *fakeGateway) UpdateCandidateStatus(ctx context.Context, id int64, stage models.Stage) error {
	g.record(fmt.Sprintf("status:%d:%s", id, stage))
	g.wait()
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.statusErr != nil {
		return g.statusErr
	}
	for i := range g.rows {
		if g.rows[i].ID == id {
			g.rows[i].Status = stage
		}
	}
	return nil
}

func (g *fakeGateway) UpdateCandidateDetails(ctx context.Context, id int64, d models.CandidateDetails) error {
	g.record(fmt.Sprintf("details:%d", id))
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.detailsErr != nil {
		return g.detailsErr
	}
	for i := range g.rows {
		if g.rows[i].ID == id {
			g.rows[i] = g.rows[i].WithDetails(d)
		}
	}
	return nil
}

func (g *fakeGateway) DeleteCandidate(ctx context.Context, id int64) error {
	g.record(fmt.Sprintf("delete:%d", id))
	g.wait()
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.deleteErr != nil {
		return g.deleteErr
	}
	g.rows = slices.DeleteFunc(g.rows, func(c models.Candidate) bool { return c.ID == id })
	return nil
}

func (g *fakeGateway) UploadFile(ctx context.Context, scopeID, fileName string, data []byte) (string, error) {
	g.record("upload:" + scopeID + "/" + fileName)
	g.mu.Lock()
	gate, entered, err := g.uploadGate, g.uploadEntered, g.uploadErr
	g.mu.Unlock()
	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	if err != nil {
		return "", err
	}
	return "https://files.example/" + scopeID + "/" + fileName, nil
}

func (g *fakeGateway) SetCandidateResume(ctx context.Context, id int64, url string) error {
	g.record(fmt.Sprintf("resume:%d", id))
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.resumeErr != nil {
		return g.resumeErr
	}
	for i := range g.rows {
		if g.rows[i].ID == id {
			g.rows[i].CVURL = url
		}
	}
	return nil
}

// alerts collects notifier messages.
type alerts struct {
	mu   sync.Mutex
	msgs []string
}

func (a *alerts) Alert(_ context.Context, msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.msgs = append(a.msgs, msg)
}

func (a *alerts) all() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.msgs)
}

func at(minute int) time.Time {
	return time.Date(2025, 1, 1, 8, minute, 0, 0, time.UTC)
}

func seed() []models.Candidate {
	return []models.Candidate{
		{ID: 1, JobID: 1, Name: "Alice Smith", Email: "alice@x.com", Status: models.StageNew, CreatedAt: at(1)},
		{ID: 2, JobID: 1, Name: "Bob Jones", Email: "bob@x.com", Status: models.StageInterview, CreatedAt: at(2)},
		{ID: 3, JobID: 1, Name: "Carol ALICEson", Status: models.StageNew, CreatedAt: at(3), Notes: "strong", CVURL: "https://cv/3.pdf"},
		{ID: 9, JobID: 2, Name: "Other Job", Status: models.StageNew, CreatedAt: at(4)},
	}
}

func loaded(g *fakeGateway, opts ...Option) (*Store, *alerts) {
	a := &alerts{}
	s := NewStore(g, append([]Option{WithNotifier(a)}, opts...)...)
	s.Load(context.Background(), 1)
	return s, a
}

func statuses(s *Store) map[int64]models.Stage {
	out := map[int64]models.Stage{}
	for _, c := range s.Candidates() {
		out[c.ID] = c.Status
	}
	return out
}
