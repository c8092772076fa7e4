package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kube-rca/incident-desk/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore - 서비스 테스트용 in-memory 저장소
type fakeStore struct {
	mu sync.Mutex

	incidents map[string]*model.Incident
	members   map[string]*model.TeamMember
	analyses  []model.AnalysisRecord
	comments  []model.Comment

	rows        []model.IncidentStatusRow
	resolutions []model.IncidentResolution
	services    []model.ServiceHealth

	getLatestErr error
	insertErr    error
	deleteErr    error
	listErr      error

	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		incidents: map[string]*model.Incident{},
		members:   map[string]*model.TeamMember{},
	}
}

func (f *fakeStore) addIncident(title, description string) *model.Incident {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	inc := &model.Incident{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      model.StatusOpen,
		Priority:    model.PriorityMedium,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.incidents[inc.ID] = inc
	return inc
}

func (f *fakeStore) addMember(name string, chatID *string) *model.TeamMember {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := &model.TeamMember{ID: uuid.NewString(), FullName: name, TelegramChatID: chatID}
	f.members[m.ID] = m
	return m
}

func (f *fakeStore) incidentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.incidents)
}

func (f *fakeStore) setTitle(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.incidents[id].Title = title
}

func (f *fakeStore) analysisCount(incidentID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, a := range f.analyses {
		if a.IncidentID == incidentID {
			n++
		}
	}
	return n
}

// --- incidents ---

func (f *fakeStore) GetIncident(_ context.Context, id string) (*model.Incident, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inc, ok := f.incidents[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *inc
	return &cp, nil
}

func (f *fakeStore) ListIncidents(_ context.Context, filter model.IncidentFilter) ([]model.Incident, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	list := []model.Incident{}
	for _, inc := range f.incidents {
		if filter.Status != "" && inc.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && inc.Priority != filter.Priority {
			continue
		}
		list = append(list, *inc)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (f *fakeStore) CreateIncident(_ context.Context, in model.NewIncident) (*model.Incident, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	inc := &model.Incident{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		Category:    in.Category,
		AssignedTo:  in.AssignedTo,
		Resolution:  in.Resolution,
		Source:      in.Source,
		Client:      in.Client,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.incidents[inc.ID] = inc
	cp := *inc
	return &cp, nil
}

func (f *fakeStore) UpdateIncident(_ context.Context, id string, req model.UpdateIncidentRequest, clearAssignee bool) (*model.Incident, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inc, ok := f.incidents[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	apply := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	apply(&inc.Title, req.Title)
	apply(&inc.Description, req.Description)
	apply(&inc.Status, req.Status)
	apply(&inc.Priority, req.Priority)
	if req.Category != nil {
		inc.Category = req.Category
	}
	if clearAssignee {
		inc.AssignedTo = nil
	} else if req.AssignedTo != nil {
		inc.AssignedTo = req.AssignedTo
	}
	inc.UpdatedAt = time.Now().UTC()
	cp := *inc
	return &cp, nil
}

// --- team / comments ---

func (f *fakeStore) GetTeamMember(_ context.Context, id string) (*model.TeamMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *m
	return &cp, nil
}

func (f *fakeStore) ListTeamMembers(_ context.Context) ([]model.TeamMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []model.TeamMember{}
	for _, m := range f.members {
		list = append(list, *m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].FullName < list[j].FullName })
	return list, nil
}

func (f *fakeStore) ListComments(_ context.Context) ([]model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Comment{}, f.comments...), nil
}

func (f *fakeStore) CreateComment(_ context.Context, name, comment string) (*model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := model.Comment{ID: uuid.NewString(), Name: name, Comment: comment, CreatedAt: time.Now().UTC()}
	f.comments = append([]model.Comment{c}, f.comments...)
	return &c, nil
}

// --- analysis ---

func (f *fakeStore) GetLatestAnalysis(_ context.Context, incidentID string) (*model.AnalysisRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getLatestErr != nil {
		return nil, f.getLatestErr
	}
	var latest *model.AnalysisRecord
	for i := range f.analyses {
		a := f.analyses[i]
		if a.IncidentID != incidentID {
			continue
		}
		if latest == nil || !a.CreatedAt.Before(latest.CreatedAt) {
			latest = &a
		}
	}
	return latest, nil
}

func (f *fakeStore) DeleteAnalysis(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	kept := f.analyses[:0]
	for _, a := range f.analyses {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	f.analyses = kept
	return nil
}

func (f *fakeStore) InsertAnalysis(_ context.Context, record model.AnalysisRecord) (*model.AnalysisRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	record.ID = uuid.NewString()
	f.analyses = append(f.analyses, record)
	return &record, nil
}

// --- analytics ---

func (f *fakeStore) ListIncidentStatusRows(_ context.Context) ([]model.IncidentStatusRow, error) {
	return f.rows, f.listErr
}

func (f *fakeStore) ListIncidentResolutions(_ context.Context) ([]model.IncidentResolution, error) {
	return f.resolutions, nil
}

func (f *fakeStore) ListServiceHealth(_ context.Context) ([]model.ServiceHealth, error) {
	return f.services, nil
}

// fakeCompleter - 호출 횟수와 마지막 프롬프트를 기록
type fakeCompleter struct {
	mu         sync.Mutex
	configured bool
	reply      string
	err        error
	calls      int
	lastSystem string
	lastUser   string
}

func (c *fakeCompleter) IsConfigured() bool { return c.configured }

func (c *fakeCompleter) Provider() string { return "fake" }

func (c *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.lastSystem = system
	c.lastUser = user
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

func (c *fakeCompleter) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

type assignment struct {
	member   model.TeamMember
	incident model.Incident
}

type fakeNotifier struct {
	ch chan assignment
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{ch: make(chan assignment, 4)}
}

func (n *fakeNotifier) NotifyAssignment(_ context.Context, member model.TeamMember, incident model.Incident) {
	n.ch <- assignment{member: member, incident: incident}
}
