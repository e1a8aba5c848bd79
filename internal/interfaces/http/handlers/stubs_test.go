package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"studio-ops.backend/internal/domain/entities"
	"studio-ops.backend/internal/domain/gateways"
	"studio-ops.backend/pkg/utils"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(b)
		}
		reader = bytes.NewBufferString(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

type teamServiceStub struct {
	lastFilter entities.TeamFilter
	created    *entities.CreateTeamInput
	updated    *entities.UpdateTeamInput
	deleted    uuid.UUID
	err        error
}

func (s *teamServiceStub) List(_ context.Context, filter entities.TeamFilter) ([]*entities.Team, error) {
	s.lastFilter = filter
	return []*entities.Team{{ID: uuid.New(), Name: "Budi", Role: entities.TeamRoleArtist}}, s.err
}

func (s *teamServiceStub) Create(_ context.Context, input *entities.CreateTeamInput) (*entities.Team, error) {
	s.created = input
	if s.err != nil {
		return nil, s.err
	}
	return &entities.Team{ID: uuid.New(), Name: input.Name}, nil
}

func (s *teamServiceStub) Update(_ context.Context, id uuid.UUID, input *entities.UpdateTeamInput) (*entities.Team, error) {
	s.updated = input
	if s.err != nil {
		return nil, s.err
	}
	return &entities.Team{ID: id, Name: *input.Name}, nil
}

func (s *teamServiceStub) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = id
	return s.err
}

type projectServiceStub struct {
	lastFilter   entities.ProjectFilter
	meta         utils.ListMeta
	created      *entities.CreateProjectInput
	updated      *entities.UpdateProjectInput
	deleteThread bool
	err          error
}

func (s *projectServiceStub) List(_ context.Context, filter entities.ProjectFilter) ([]*entities.Project, utils.ListMeta, error) {
	s.lastFilter = filter
	return []*entities.Project{{ID: uuid.New(), Name: "Poster"}}, s.meta, s.err
}

func (s *projectServiceStub) Create(_ context.Context, input *entities.CreateProjectInput) (*entities.Project, error) {
	s.created = input
	if s.err != nil {
		return nil, s.err
	}
	return &entities.Project{ID: uuid.New(), Name: input.Name, Status: entities.ProjectStatusDraft}, nil
}

func (s *projectServiceStub) Update(_ context.Context, id uuid.UUID, input *entities.UpdateProjectInput) (*entities.Project, error) {
	s.updated = input
	if s.err != nil {
		return nil, s.err
	}
	return &entities.Project{ID: id, Status: *input.Status}, nil
}

func (s *projectServiceStub) Delete(_ context.Context, _ uuid.UUID, deleteThread bool) error {
	s.deleteThread = deleteThread
	return s.err
}

type taskServiceStub struct {
	lastFilter entities.TaskFilter
	created    *entities.CreateTaskInput
	updated    *entities.UpdateTaskInput
	err        error
}

func (s *taskServiceStub) List(_ context.Context, filter entities.TaskFilter) ([]*entities.Task, error) {
	s.lastFilter = filter
	return []*entities.Task{}, s.err
}

func (s *taskServiceStub) Create(_ context.Context, input *entities.CreateTaskInput) (*entities.Task, error) {
	s.created = input
	if s.err != nil {
		return nil, s.err
	}
	return &entities.Task{ID: uuid.New(), ProjectID: input.ProjectID, Fee: input.Fee}, nil
}

func (s *taskServiceStub) Update(_ context.Context, id uuid.UUID, input *entities.UpdateTaskInput) (*entities.Task, error) {
	s.updated = input
	if s.err != nil {
		return nil, s.err
	}
	return &entities.Task{ID: id}, nil
}

func (s *taskServiceStub) Delete(_ context.Context, id uuid.UUID) (*entities.Task, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &entities.Task{ID: id}, nil
}

type offeringListerStub struct {
	lastFilter entities.OfferingFilter
}

func (s *offeringListerStub) List(_ context.Context, filter entities.OfferingFilter) ([]*entities.Offering, error) {
	s.lastFilter = filter
	return []*entities.Offering{{ID: uuid.New(), Status: entities.OfferingStatusOffering}}, nil
}

type payrollServiceStub struct {
	lastFilter entities.PayrollFilter
	created    *entities.CreatePayrollInput
	updated    *entities.UpdatePayrollInput
	err        error
}

func (s *payrollServiceStub) List(_ context.Context, filter entities.PayrollFilter) ([]*entities.Payroll, utils.ListMeta, error) {
	s.lastFilter = filter
	return []*entities.Payroll{}, utils.ListMeta{HasNext: true}, s.err
}

func (s *payrollServiceStub) Create(_ context.Context, input *entities.CreatePayrollInput) (*entities.Payroll, error) {
	s.created = input
	if s.err != nil {
		return nil, s.err
	}
	return &entities.Payroll{ID: uuid.New(), Status: input.Status, Amount: 150_000}, nil
}

func (s *payrollServiceStub) Update(_ context.Context, id uuid.UUID, input *entities.UpdatePayrollInput) (*entities.Payroll, error) {
	s.updated = input
	if s.err != nil {
		return nil, s.err
	}
	return &entities.Payroll{ID: id, Status: input.Status}, nil
}

func (s *payrollServiceStub) Delete(_ context.Context, _ uuid.UUID) error {
	return s.err
}

type statisticServiceStub struct {
	month, year int
	from, to    time.Time
	err         error
}

func (s *statisticServiceStub) ImageProductionPerWeek(_ context.Context, monthIndex, year int) ([]entities.WeeklyProduction, error) {
	s.month, s.year = monthIndex, year
	if s.err != nil {
		return nil, s.err
	}
	return []entities.WeeklyProduction{{Teams: []entities.TeamProduction{{Name: "Budi", Count: 3}}}}, nil
}

func (s *statisticServiceStub) RecordVisit(_ context.Context) (*entities.VisitCounter, error) {
	return &entities.VisitCounter{Count: 4}, s.err
}

func (s *statisticServiceStub) ListVisits(_ context.Context, from, to time.Time) ([]*entities.VisitCounter, error) {
	s.from, s.to = from, to
	return []*entities.VisitCounter{{Count: 1}}, s.err
}

type authServiceStub struct {
	err error
}

func (s *authServiceStub) VerifyEmail(_ context.Context, input *entities.VerifyEmailInput) (*entities.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &entities.User{ID: uuid.New(), Email: input.Email, Verified: true}, nil
}

func (s *authServiceStub) Login(_ context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &entities.AuthResponse{User: &entities.User{Email: input.Email}, AccessToken: "token"}, nil
}

type uploadServiceStub struct {
	feature, filename string
	content           []byte
	err               error
}

func (s *uploadServiceStub) Upload(_ context.Context, feature, filename, _ string, r io.Reader) (*gateways.StoredFile, error) {
	s.feature, s.filename = feature, filename
	s.content, _ = io.ReadAll(r)
	if s.err != nil {
		return nil, s.err
	}
	return &gateways.StoredFile{Path: "task_1.png", URL: "http://localhost:8080/uploads/task_1.png"}, nil
}

type attachmentServiceStub struct {
	projectID uuid.UUID
	url       string
	err       error
}

func (s *attachmentServiceStub) List(_ context.Context, projectID uuid.UUID) ([]*entities.ProjectAttachment, error) {
	s.projectID = projectID
	return []*entities.ProjectAttachment{{ID: uuid.New(), ProjectID: projectID, URL: "a.png"}}, s.err
}

func (s *attachmentServiceStub) Create(_ context.Context, projectID uuid.UUID, url string) (*entities.ProjectAttachment, error) {
	s.projectID, s.url = projectID, url
	if s.err != nil {
		return nil, s.err
	}
	return &entities.ProjectAttachment{ID: uuid.New(), ProjectID: projectID, URL: url}, nil
}

func (s *attachmentServiceStub) Delete(_ context.Context, _ uuid.UUID) error {
	return s.err
}
