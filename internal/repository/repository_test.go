package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/project-tasks-api/internal/database"
	"github.com/yukikurage/project-tasks-api/internal/models"
	"github.com/yukikurage/project-tasks-api/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RepositoryTestSuite runs the GORM repositories against in-memory SQLite
type RepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	store Store
}

func (suite *RepositoryTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), database.GormConfig(logger.Silent))
	suite.Require().NoError(err)

	// One connection keeps every query on the same in-memory database
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(database.Migrate(suite.db))

	suite.store = NewStore(suite.db)
}

func (suite *RepositoryTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *RepositoryTestSuite) createUser(name string) *models.User {
	user := &models.User{
		Email:        name + "@example.com",
		Username:     name,
		PasswordHash: "hashedpassword",
	}
	suite.Require().NoError(suite.store.Users().Create(user))
	return user
}

func (suite *RepositoryTestSuite) createProject(title string, ownerID uint64) *models.Project {
	project := &models.Project{Title: title, UserID: ownerID}
	suite.Require().NoError(suite.store.Projects().Create(project))
	return project
}

func (suite *RepositoryTestSuite) createTask(projectID uint64, title, description string, completed bool, createdAt time.Time) *models.Task {
	task := &models.Task{
		Title:       title,
		Description: description,
		Completed:   completed,
		ProjectID:   projectID,
		CreatedAt:   createdAt,
	}
	suite.Require().NoError(suite.store.Tasks().Create(task))
	return task
}

func (suite *RepositoryTestSuite) TestFindByIDAndUserID_ScopesToOwner() {
	owner := suite.createUser("owner")
	other := suite.createUser("other")
	project := suite.createProject("Owned", owner.ID)

	found, err := suite.store.Projects().FindByIDAndUserID(project.ID, owner.ID)
	suite.Require().NoError(err)
	suite.Equal("Owned", found.Title)

	_, err = suite.store.Projects().FindByIDAndUserID(project.ID, other.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	_, err = suite.store.Projects().FindByIDAndUserID(project.ID+100, owner.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *RepositoryTestSuite) TestExistsByID() {
	owner := suite.createUser("owner")
	project := suite.createProject("P", owner.ID)

	exists, err := suite.store.Projects().ExistsByID(project.ID)
	suite.Require().NoError(err)
	suite.True(exists)

	exists, err = suite.store.Projects().ExistsByID(project.ID + 1)
	suite.Require().NoError(err)
	suite.False(exists)
}

func (suite *RepositoryTestSuite) TestListByUserID_CreationOrderWithTasks() {
	owner := suite.createUser("owner")
	other := suite.createUser("other")
	first := suite.createProject("First", owner.ID)
	suite.createProject("Foreign", other.ID)
	suite.createProject("Second", owner.ID)
	suite.createTask(first.ID, "t", "", false, time.Now())

	projects, err := suite.store.Projects().ListByUserID(owner.ID)
	suite.Require().NoError(err)
	suite.Require().Len(projects, 2)
	suite.Equal("First", projects[0].Title)
	suite.Equal("Second", projects[1].Title)
	suite.Len(projects[0].Tasks, 1)
	suite.Empty(projects[1].Tasks)
}

func (suite *RepositoryTestSuite) TestPageByUserID() {
	owner := suite.createUser("owner")
	for i := 0; i < 5; i++ {
		suite.createProject(fmt.Sprintf("P%d", i), owner.ID)
	}

	projects, total, err := suite.store.Projects().PageByUserID(owner.ID, utils.PaginationParams{Page: 1, Size: 2})
	suite.Require().NoError(err)
	suite.Equal(int64(5), total)
	suite.Require().Len(projects, 2)
	suite.Equal("P2", projects[0].Title)
	suite.Equal("P3", projects[1].Title)
}

func (suite *RepositoryTestSuite) TestProjectUpdate_KeepsOwner() {
	owner := suite.createUser("owner")
	other := suite.createUser("other")
	project := suite.createProject("Before", owner.ID)

	project.Title = "After"
	project.Description = "changed"
	project.UserID = other.ID
	suite.Require().NoError(suite.store.Projects().Update(project))

	var reloaded models.Project
	suite.Require().NoError(suite.db.First(&reloaded, project.ID).Error)
	suite.Equal("After", reloaded.Title)
	suite.Equal("changed", reloaded.Description)
	suite.Equal(owner.ID, reloaded.UserID)
}

func (suite *RepositoryTestSuite) TestProjectDelete_CascadesToTasks() {
	owner := suite.createUser("owner")
	project := suite.createProject("Doomed", owner.ID)
	keep := suite.createProject("Keep", owner.ID)
	now := time.Now()
	for i := 0; i < 3; i++ {
		suite.createTask(project.ID, fmt.Sprintf("t%d", i), "", false, now)
	}
	suite.createTask(keep.ID, "survivor", "", false, now)

	suite.Require().NoError(suite.store.Projects().Delete(project.ID))

	count, err := suite.store.Tasks().CountByProjectID(project.ID)
	suite.Require().NoError(err)
	suite.Zero(count)

	count, err = suite.store.Tasks().CountByProjectID(keep.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)

	exists, err := suite.store.Projects().ExistsByID(project.ID)
	suite.Require().NoError(err)
	suite.False(exists)
}

func (suite *RepositoryTestSuite) TestTaskList_FiltersAndOrdersNewestFirst() {
	owner := suite.createUser("owner")
	project := suite.createProject("P", owner.ID)
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	suite.createTask(project.ID, "Team MEETING notes", "", true, base.Add(1*time.Hour))
	suite.createTask(project.ID, "Write report", "before the meeting", true, base.Add(3*time.Hour))
	suite.createTask(project.ID, "Meeting prep", "", false, base.Add(2*time.Hour))
	suite.createTask(project.ID, "Unrelated", "nothing here", true, base.Add(4*time.Hour))

	completed := true
	tasks, total, err := suite.store.Tasks().List(TaskFilter{
		ProjectID:  project.ID,
		Search:     "meeting",
		Completed:  &completed,
		Pagination: utils.PaginationParams{Page: 0, Size: 10},
	})
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
	suite.Require().Len(tasks, 2)
	suite.Equal("Write report", tasks[0].Title)
	suite.Equal("Team MEETING notes", tasks[1].Title)
}

func (suite *RepositoryTestSuite) TestTaskList_WildcardsMatchLiterally() {
	owner := suite.createUser("owner")
	project := suite.createProject("P", owner.ID)
	now := time.Now()
	suite.createTask(project.ID, "100% done", "", false, now)
	suite.createTask(project.ID, "1000 items", "", false, now)

	tasks, total, err := suite.store.Tasks().List(TaskFilter{
		ProjectID:  project.ID,
		Search:     "0%",
		Pagination: utils.PaginationParams{Page: 0, Size: 10},
	})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Require().Len(tasks, 1)
	suite.Equal("100% done", tasks[0].Title)
}

func (suite *RepositoryTestSuite) TestTaskList_NonASCIISearch() {
	owner := suite.createUser("owner")
	project := suite.createProject("P", owner.ID)
	suite.createTask(project.ID, "Réunion ÉTÉ", "", false, time.Now())
	suite.createTask(project.ID, "Lunch", "café au lait", false, time.Now())

	for search, want := range map[string]string{
		"ÉTÉ":     "Réunion ÉTÉ",
		"réUNION": "Réunion ÉTÉ",
		"café":    "Lunch",
	} {
		tasks, total, err := suite.store.Tasks().List(TaskFilter{
			ProjectID:  project.ID,
			Search:     search,
			Pagination: utils.PaginationParams{Page: 0, Size: 10},
		})
		suite.Require().NoError(err, search)
		suite.Equal(int64(1), total, search)
		suite.Require().Len(tasks, 1, search)
		suite.Equal(want, tasks[0].Title, search)
	}
}

func (suite *RepositoryTestSuite) TestTaskList_Paginates() {
	owner := suite.createUser("owner")
	project := suite.createProject("P", owner.ID)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		suite.createTask(project.ID, fmt.Sprintf("task %02d", i), "", false, base.Add(time.Duration(i)*time.Minute))
	}

	tasks, total, err := suite.store.Tasks().List(TaskFilter{
		ProjectID:  project.ID,
		Pagination: utils.PaginationParams{Page: 2, Size: 10},
	})
	suite.Require().NoError(err)
	suite.Equal(int64(25), total)
	suite.Require().Len(tasks, 5)
	suite.Equal("task 04", tasks[0].Title)
	suite.Equal("task 00", tasks[4].Title)
}

func (suite *RepositoryTestSuite) TestTaskUpdate_KeepsProject() {
	owner := suite.createUser("owner")
	project := suite.createProject("P", owner.ID)
	other := suite.createProject("Other", owner.ID)
	task := suite.createTask(project.ID, "t", "", false, time.Now())

	task.ProjectID = other.ID
	task.Title = "renamed"
	suite.Require().NoError(suite.store.Tasks().Update(task))

	reloaded, err := suite.store.Tasks().FindByID(task.ID, "Project")
	suite.Require().NoError(err)
	suite.Equal("renamed", reloaded.Title)
	suite.Equal(project.ID, reloaded.ProjectID)
	suite.Equal(owner.ID, reloaded.Project.UserID)
}

func (suite *RepositoryTestSuite) TestTransaction_RollsBackOnError() {
	owner := suite.createUser("owner")
	errBoom := errors.New("boom")

	err := suite.store.Transaction(context.Background(), func(tx Store) error {
		if err := tx.Projects().Create(&models.Project{Title: "ghost", UserID: owner.ID}); err != nil {
			return err
		}
		return errBoom
	})
	suite.ErrorIs(err, errBoom)

	projects, err := suite.store.Projects().ListByUserID(owner.ID)
	suite.Require().NoError(err)
	suite.Empty(projects)
}

func (suite *RepositoryTestSuite) TestUserExistence() {
	suite.createUser("alice")

	exists, err := suite.store.Users().ExistsByEmail("alice@example.com")
	suite.Require().NoError(err)
	suite.True(exists)

	exists, err = suite.store.Users().ExistsByUsername("bob")
	suite.Require().NoError(err)
	suite.False(exists)

	user, err := suite.store.Users().FindByEmail("alice@example.com")
	suite.Require().NoError(err)
	suite.Equal("alice", user.Username)
}

func (suite *RepositoryTestSuite) TestUserCreate_DuplicateIsTranslated() {
	suite.createUser("alice")

	err := suite.store.Users().Create(&models.User{
		Email:        "alice@example.com",
		Username:     "someone-else",
		PasswordHash: "hashedpassword",
	})
	suite.ErrorIs(err, gorm.ErrDuplicatedKey)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
