package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/project-tasks-api/internal/auth"
	"github.com/yukikurage/project-tasks-api/internal/database"
	"github.com/yukikurage/project-tasks-api/internal/handlers"
	"github.com/yukikurage/project-tasks-api/internal/models"
	"github.com/yukikurage/project-tasks-api/internal/repository"
	"github.com/yukikurage/project-tasks-api/internal/routes"
	"github.com/yukikurage/project-tasks-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// apiSuite wires the full router over an in-memory database
type apiSuite struct {
	suite.Suite
	db     *gorm.DB
	tokens *auth.TokenManager
	router *gin.Engine
	opts   handlers.Options
}

func (s *apiSuite) SetupTest() {
	var err error

	s.db, err = gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), database.GormConfig(logger.Silent))
	s.Require().NoError(err)

	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	s.Require().NoError(database.Migrate(s.db))

	store := repository.NewStore(s.db)
	s.tokens = auth.NewTokenManager("test-secret", time.Hour)

	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	routes.Setup(s.router, routes.Handlers{
		Auth:     handlers.NewAuthHandler(services.NewAuthService(store, s.tokens), s.opts),
		Projects: handlers.NewProjectHandler(services.NewProjectService(store), s.opts),
		Tasks:    handlers.NewTaskHandler(services.NewTaskService(store), s.opts),
		Tokens:   s.tokens,
		Identity: services.NewIdentityResolver(store),
	})
}

func (s *apiSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

// createUser inserts an account and returns a bearer token for it
func (s *apiSuite) createUser(name string) (*models.User, string) {
	user := &models.User{
		Email:        name + "@example.com",
		Username:     name,
		PasswordHash: "hashedpassword",
	}
	s.Require().NoError(s.db.Create(user).Error)

	token, err := s.tokens.Issue(user.Email)
	s.Require().NoError(err)
	return user, token
}

func (s *apiSuite) createProject(owner *models.User, title string) *models.Project {
	project := &models.Project{Title: title, UserID: owner.ID}
	s.Require().NoError(s.db.Create(project).Error)
	return project
}

func (s *apiSuite) createTask(projectID uint64, title string, completed bool, createdAt time.Time) *models.Task {
	task := &models.Task{Title: title, ProjectID: projectID, Completed: completed, CreatedAt: createdAt}
	s.Require().NoError(s.db.Create(task).Error)
	return task
}

func (s *apiSuite) request(method, url, token string, body any) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *apiSuite) decode(w *httptest.ResponseRecorder, target any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), target))
}

// errorBody mirrors the JSON error envelope
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type jsonBody map[string]any
