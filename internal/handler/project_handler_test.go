package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskhub/internal/handler"
	"taskhub/internal/middleware"
	"taskhub/internal/model"
	"taskhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) CreateWithOwner(ctx context.Context, project *model.Project, owner *model.Membership) error {
	args := m.Called(ctx, project, owner)
	return args.Error(0)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) GetGraph(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepository) Update(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) Create(ctx context.Context, membership *model.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepository) Find(ctx context.Context, userID, projectID uuid.UUID) (*model.Membership, error) {
	args := m.Called(ctx, userID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Membership), args.Error(1)
}

func (m *MockMembershipRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Membership, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Membership), args.Error(1)
}

func (m *MockMembershipRepository) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMembershipRepository) Update(ctx context.Context, membership *model.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByParent(ctx context.Context, parentID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) HasDeadlineAfter(ctx context.Context, projectID uuid.UUID, deadline time.Time) (bool, error) {
	args := m.Called(ctx, projectID, deadline)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) HasIncomplete(ctx context.Context, projectID uuid.UUID) (bool, error) {
	args := m.Called(ctx, projectID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type projectTestMocks struct {
	projects    *MockProjectRepository
	memberships *MockMembershipRepository
	tasks       *MockTaskRepository
}

// setupProjectTest wires the routes the way the server does, with the auth
// middleware replaced by a stub that injects the given caller.
func setupProjectTest(userID uuid.UUID) (*gin.Engine, projectTestMocks) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	m := projectTestMocks{
		projects:    new(MockProjectRepository),
		memberships: new(MockMembershipRepository),
		tasks:       new(MockTaskRepository),
	}

	membershipSvc := service.NewMembershipService(m.projects, m.memberships, zap.NewNop())
	projectSvc := service.NewProjectService(m.projects, m.memberships, m.tasks, zap.NewNop())
	projectHandler := handler.NewProjectHandler(membershipSvc, projectSvc)

	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	})

	r.GET("/projects", projectHandler.List)
	r.POST("/projects", projectHandler.Create)
	r.POST("/projects/join", projectHandler.Join)
	r.GET("/projects/:id", projectHandler.Get)
	r.PUT("/projects/:id", projectHandler.Update)
	r.DELETE("/projects/:id", projectHandler.Delete)

	return r, m
}

func TestCreateProject_ReturnsJoinCode(t *testing.T) {
	userID := uuid.New()
	router, m := setupProjectTest(userID)

	m.projects.On("CreateWithOwner", mock.Anything,
		mock.AnythingOfType("*model.Project"), mock.AnythingOfType("*model.Membership")).
		Return(nil)

	resp := postJSON(router, "/projects", handler.CreateProjectRequest{
		Name:     "Platform rewrite",
		Subject:  "Backend",
		Deadline: time.Now().Add(30 * 24 * time.Hour),
	})

	assert.Equal(t, http.StatusCreated, resp.Code)

	var body envelope
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, "Project created successfully", body.Message)

	var data struct {
		Project  model.Project `json:"project"`
		JoinCode uuid.UUID     `json:"join_code"`
	}
	assert.NoError(t, json.Unmarshal(body.Data, &data))
	assert.Equal(t, data.Project.ID, data.JoinCode)

	m.projects.AssertExpectations(t)
}

func TestCreateProject_PastDeadline(t *testing.T) {
	router, m := setupProjectTest(uuid.New())

	resp := postJSON(router, "/projects", handler.CreateProjectRequest{
		Name:     "Platform rewrite",
		Subject:  "Backend",
		Deadline: time.Now().Add(-time.Hour),
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Contains(t, resp.Body.String(), "Deadline must be in the future")
	m.projects.AssertNotCalled(t, "CreateWithOwner", mock.Anything, mock.Anything, mock.Anything)
}

func TestJoinProject_AlreadyMember(t *testing.T) {
	userID := uuid.New()
	router, m := setupProjectTest(userID)

	projectID := uuid.New()
	m.projects.On("GetByID", mock.Anything, projectID).
		Return(&model.Project{ID: projectID, Name: "Platform rewrite"}, nil)
	m.memberships.On("Find", mock.Anything, userID, projectID).
		Return(&model.Membership{ID: uuid.New(), UserID: userID, ProjectID: projectID}, nil)

	resp := postJSON(router, "/projects/join", handler.JoinProjectRequest{
		ProjectID: projectID.String(),
	})

	assert.Equal(t, http.StatusConflict, resp.Code)

	var body envelope
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Status)
	assert.NotEmpty(t, body.Error)
}

func TestGetProject_NotMember(t *testing.T) {
	userID := uuid.New()
	router, m := setupProjectTest(userID)

	projectID := uuid.New()
	m.memberships.On("Find", mock.Anything, userID, projectID).Return(nil, nil)

	req, _ := http.NewRequest("GET", "/projects/"+projectID.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// membership is checked before the project is ever looked up
	assert.Equal(t, http.StatusForbidden, resp.Code)
	m.projects.AssertNotCalled(t, "GetGraph", mock.Anything, projectID)
}

func TestDeleteProject_RequiresOwner(t *testing.T) {
	userID := uuid.New()
	router, m := setupProjectTest(userID)

	projectID := uuid.New()
	m.memberships.On("Find", mock.Anything, userID, projectID).
		Return(&model.Membership{ID: uuid.New(), UserID: userID, ProjectID: projectID, IsOwner: false}, nil)

	req, _ := http.NewRequest("DELETE", "/projects/"+projectID.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
	m.projects.AssertNotCalled(t, "Delete", mock.Anything, projectID)
}
