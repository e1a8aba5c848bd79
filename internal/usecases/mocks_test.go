package usecases_test

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"studio-ops.backend/internal/domain/entities"
	"studio-ops.backend/internal/domain/gateways"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock OfferingRepository
type MockOfferingRepository struct {
	mock.Mock
}

func (m *MockOfferingRepository) Create(ctx context.Context, offering *entities.Offering) error {
	args := m.Called(ctx, offering)
	return args.Error(0)
}

func (m *MockOfferingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Offering, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Offering), args.Error(1)
}

func (m *MockOfferingRepository) GetByThreadID(ctx context.Context, threadID string) (*entities.Offering, error) {
	args := m.Called(ctx, threadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Offering), args.Error(1)
}

func (m *MockOfferingRepository) List(ctx context.Context, filter entities.OfferingFilter) ([]*entities.Offering, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*entities.Offering), args.Error(1)
}

func (m *MockOfferingRepository) LatestForProject(ctx context.Context, projectID uuid.UUID, statuses ...entities.OfferingStatus) (*entities.Offering, error) {
	args := m.Called(ctx, projectID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Offering), args.Error(1)
}

func (m *MockOfferingRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entities.OfferingStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

// Mock ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *entities.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Project), args.Error(1)
}

func (m *MockProjectRepository) List(ctx context.Context, filter entities.ProjectFilter) ([]*entities.Project, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*entities.Project), args.Error(1)
}

func (m *MockProjectRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Project, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*entities.Project), args.Error(1)
}

func (m *MockProjectRepository) ListByPayroll(ctx context.Context, payrollID uuid.UUID) ([]*entities.Project, error) {
	args := m.Called(ctx, payrollID)
	return args.Get(0).([]*entities.Project), args.Error(1)
}

func (m *MockProjectRepository) Update(ctx context.Context, project *entities.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ProjectStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockProjectRepository) SetTotals(ctx context.Context, id uuid.UUID, totals entities.TaskTotals) error {
	args := m.Called(ctx, id, totals)
	return args.Error(0)
}

func (m *MockProjectRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) LinkPayroll(ctx context.Context, payrollID uuid.UUID, projectIDs []uuid.UUID) error {
	args := m.Called(ctx, payrollID, projectIDs)
	return args.Error(0)
}

func (m *MockProjectRepository) UnlinkPayroll(ctx context.Context, payrollID uuid.UUID) error {
	args := m.Called(ctx, payrollID)
	return args.Error(0)
}

func (m *MockProjectRepository) MarkPaidByPayroll(ctx context.Context, payrollID uuid.UUID) error {
	args := m.Called(ctx, payrollID)
	return args.Error(0)
}

// Mock ProjectAttachmentRepository
type MockProjectAttachmentRepository struct {
	mock.Mock
}

func (m *MockProjectAttachmentRepository) Create(ctx context.Context, attachment *entities.ProjectAttachment) error {
	args := m.Called(ctx, attachment)
	return args.Error(0)
}

func (m *MockProjectAttachmentRepository) CreateMany(ctx context.Context, projectID uuid.UUID, urls []string) ([]*entities.ProjectAttachment, error) {
	args := m.Called(ctx, projectID, urls)
	return args.Get(0).([]*entities.ProjectAttachment), args.Error(1)
}

func (m *MockProjectAttachmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ProjectAttachment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ProjectAttachment), args.Error(1)
}

func (m *MockProjectAttachmentRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.ProjectAttachment, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]*entities.ProjectAttachment), args.Error(1)
}

func (m *MockProjectAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock TeamRepository
type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) Create(ctx context.Context, team *entities.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *MockTeamRepository) GetByDiscordUserID(ctx context.Context, discordUserID string) (*entities.Team, error) {
	args := m.Called(ctx, discordUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *MockTeamRepository) List(ctx context.Context, filter entities.TeamFilter) ([]*entities.Team, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*entities.Team), args.Error(1)
}

func (m *MockTeamRepository) Update(ctx context.Context, team *entities.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockTeamRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *entities.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Task), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context, filter entities.TaskFilter) ([]*entities.Task, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*entities.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *entities.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) ReplaceAttachments(ctx context.Context, taskID uuid.UUID, urls []string) ([]*entities.TaskAttachment, error) {
	args := m.Called(ctx, taskID, urls)
	return args.Get(0).([]*entities.TaskAttachment), args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) SumByProject(ctx context.Context, projectID uuid.UUID) (entities.TaskTotals, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(entities.TaskTotals), args.Error(1)
}

// Mock PayrollRepository
type MockPayrollRepository struct {
	mock.Mock
}

func (m *MockPayrollRepository) Create(ctx context.Context, payroll *entities.Payroll) error {
	args := m.Called(ctx, payroll)
	return args.Error(0)
}

func (m *MockPayrollRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payroll, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Payroll), args.Error(1)
}

func (m *MockPayrollRepository) List(ctx context.Context, filter entities.PayrollFilter) ([]*entities.Payroll, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*entities.Payroll), args.Error(1)
}

func (m *MockPayrollRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PayrollStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockPayrollRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock StatisticRepository
type MockStatisticRepository struct {
	mock.Mock
}

func (m *MockStatisticRepository) DoneImageCountByTeam(ctx context.Context, from, to time.Time) (map[uuid.UUID]int, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int), args.Error(1)
}

func (m *MockStatisticRepository) IncrementVisit(ctx context.Context, day time.Time) (*entities.VisitCounter, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VisitCounter), args.Error(1)
}

func (m *MockStatisticRepository) ListVisits(ctx context.Context, from, to time.Time) ([]*entities.VisitCounter, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]*entities.VisitCounter), args.Error(1)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) UpsertVerified(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

// Mock QueryAssistant
type MockQueryAssistant struct {
	mock.Mock
}

func (m *MockQueryAssistant) GenerateQuery(ctx context.Context, question string) (*entities.GeneratedQuery, error) {
	args := m.Called(ctx, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GeneratedQuery), args.Error(1)
}

// Mock QueryRunner
type MockQueryRunner struct {
	mock.Mock
}

func (m *MockQueryRunner) RunSelect(ctx context.Context, query string) (*entities.QueryResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.QueryResult), args.Error(1)
}

// Mock FileStorage
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Save(ctx context.Context, name, contentType string, r io.Reader) (*gateways.StoredFile, error) {
	args := m.Called(ctx, name, contentType, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateways.StoredFile), args.Error(1)
}

// fakeChat records every outbound chat call
type fakeChat struct {
	mu        sync.Mutex
	nextID    int
	threads   map[string]string
	members   map[string][]string
	removed   map[string][]string
	sent      map[string][]*entities.ChatMessage
	reactions map[string][]string
	deleted   []string
	sendErr   error
	threadErr error
	verifyErr error
}

func newFakeChat() *fakeChat {
	return &fakeChat{
		threads:   map[string]string{},
		members:   map[string][]string{},
		removed:   map[string][]string{},
		sent:      map[string][]*entities.ChatMessage{},
		reactions: map[string][]string{},
	}
}

func (f *fakeChat) CreateThread(_ context.Context, channelID, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.threadErr != nil {
		return "", f.threadErr
	}
	f.nextID++
	id := fmt.Sprintf("%s-thread-%d", channelID, f.nextID)
	f.threads[id] = name
	return id, nil
}

func (f *fakeChat) AddThreadMember(_ context.Context, threadID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members[threadID] = append(f.members[threadID], userID)
	return nil
}

func (f *fakeChat) RemoveThreadMember(_ context.Context, threadID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed[threadID] = append(f.removed[threadID], userID)
	return nil
}

func (f *fakeChat) Send(_ context.Context, channelID string, msg *entities.ChatMessage) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return "", f.sendErr
	}
	f.sent[channelID] = append(f.sent[channelID], msg)
	return "msg", nil
}

func (f *fakeChat) ClearComponents(_ context.Context, _, _ string) error { return nil }

func (f *fakeChat) ReactToStarter(_ context.Context, threadID, emoji string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reactions[threadID] = append(f.reactions[threadID], emoji)
	return nil
}

func (f *fakeChat) DeleteChannel(_ context.Context, channelID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, channelID)
	return nil
}

func (f *fakeChat) VerifyThread(_ context.Context, _ string) error {
	return f.verifyErr
}

func (f *fakeChat) contents(channelID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent[channelID]))
	for _, m := range f.sent[channelID] {
		out = append(out, m.Content)
	}
	return out
}

// fakeQueue keeps reminders in memory
type fakeQueue struct {
	mu      sync.Mutex
	jobs    map[string]entities.ReminderJob
	removed []string
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{jobs: map[string]entities.ReminderJob{}}
}

func (q *fakeQueue) Enqueue(_ context.Context, jobs ...entities.ReminderJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, j := range jobs {
		q.jobs[j.ID()] = j
	}
	return nil
}

func (q *fakeQueue) RemoveByPrefix(_ context.Context, prefix string) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.removed = append(q.removed, prefix)
	n := 0
	for id := range q.jobs {
		if len(id) >= len(prefix) && id[:len(prefix)] == prefix {
			delete(q.jobs, id)
			n++
		}
	}
	return n, nil
}

func (q *fakeQueue) ClaimDue(_ context.Context, _ time.Time, _ int) ([]entities.ReminderJob, error) {
	return nil, nil
}

func (q *fakeQueue) has(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.jobs[id]
	return ok
}
