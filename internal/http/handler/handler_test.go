package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blogapi/internal/model"
	"blogapi/internal/repository"
	"blogapi/internal/service"
	serviceMocks "blogapi/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestRegisterUser(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(serviceMocks.MockUserService)
		svc.On("Register", mock.Anything, "alice", "hash", "").
			Return(&model.User{ID: 1, Username: "alice"}, nil)

		app := fiber.New()
		app.Post("/users", RegisterUser(svc))

		body := bytes.NewBufferString(`{"username":"alice","password_hash":"hash"}`)
		req := httptest.NewRequest(http.MethodPost, "/users", body)
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("conflict on taken username", func(t *testing.T) {
		svc := new(serviceMocks.MockUserService)
		svc.On("Register", mock.Anything, "alice", "hash", "").
			Return(nil, service.ErrUsernameTaken)

		app := fiber.New()
		app.Post("/users", RegisterUser(svc))

		body := bytes.NewBufferString(`{"username":"alice","password_hash":"hash"}`)
		req := httptest.NewRequest(http.MethodPost, "/users", body)
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestGetUser(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := new(serviceMocks.MockUserService)
		svc.On("Get", mock.Anything, int64(7)).Return(&model.User{ID: 7, Username: "bob"}, nil)

		app := fiber.New()
		app.Get("/users/:id", GetUser(svc))

		req := httptest.NewRequest(http.MethodGet, "/users/7", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(serviceMocks.MockUserService)
		svc.On("Get", mock.Anything, int64(99)).Return(nil, service.ErrNotFound)

		app := fiber.New()
		app.Get("/users/:id", GetUser(svc))

		req := httptest.NewRequest(http.MethodGet, "/users/99", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		app := fiber.New()
		app.Get("/users/:id", GetUser(new(serviceMocks.MockUserService)))

		req := httptest.NewRequest(http.MethodGet, "/users/abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetUserByUsername(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := new(serviceMocks.MockUserService)
		svc.On("GetByUsername", mock.Anything, "bob").Return(&model.User{ID: 7, Username: "bob"}, nil)

		app := fiber.New()
		app.Get("/users", GetUserByUsername(svc))

		req := httptest.NewRequest(http.MethodGet, "/users?username=bob", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing query parameter", func(t *testing.T) {
		app := fiber.New()
		app.Get("/users", GetUserByUsername(new(serviceMocks.MockUserService)))

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestListPosts(t *testing.T) {
	t.Run("defaults applied when query omitted", func(t *testing.T) {
		svc := new(serviceMocks.MockPostService)
		svc.On("List", mock.Anything, service.DefaultPostLimit, 0).
			Return([]model.Post{{ID: 2}, {ID: 1}}, nil)

		app := fiber.New()
		app.Get("/posts", ListPosts(svc))

		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var posts []model.Post
		json.NewDecoder(resp.Body).Decode(&posts)
		assert.Len(t, posts, 2)
		svc.AssertExpectations(t)
	})

	t.Run("explicit limit and offset", func(t *testing.T) {
		svc := new(serviceMocks.MockPostService)
		svc.On("List", mock.Anything, 5, 10).Return([]model.Post{}, nil)

		app := fiber.New()
		app.Get("/posts", ListPosts(svc))

		req := httptest.NewRequest(http.MethodGet, "/posts?limit=5&offset=10", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		app := fiber.New()
		app.Get("/posts", ListPosts(new(serviceMocks.MockPostService)))

		req := httptest.NewRequest(http.MethodGet, "/posts?limit=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAddComment(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(serviceMocks.MockPostService)
		svc.On("AddComment", mock.Anything, int64(1), "alice", "hi").
			Return(&model.Comment{ID: 10, PostID: 1, Author: "alice", Body: "hi"}, nil)

		app := fiber.New()
		app.Post("/posts/:id/comments", AddComment(svc))

		body := bytes.NewBufferString(`{"author":"alice","body":"hi"}`)
		req := httptest.NewRequest(http.MethodPost, "/posts/1/comments", body)
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("unknown post", func(t *testing.T) {
		svc := new(serviceMocks.MockPostService)
		svc.On("AddComment", mock.Anything, int64(404), "alice", "hi").
			Return(nil, service.ErrNotFound)

		app := fiber.New()
		app.Post("/posts/:id/comments", AddComment(svc))

		body := bytes.NewBufferString(`{"author":"alice","body":"hi"}`)
		req := httptest.NewRequest(http.MethodPost, "/posts/404/comments", body)
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("store unavailable", func(t *testing.T) {
		svc := new(serviceMocks.MockPostService)
		svc.On("AddComment", mock.Anything, int64(1), "alice", "hi").
			Return(nil, repository.ErrConnection)

		app := fiber.New()
		app.Post("/posts/:id/comments", AddComment(svc))

		body := bytes.NewBufferString(`{"author":"alice","body":"hi"}`)
		req := httptest.NewRequest(http.MethodPost, "/posts/1/comments", body)
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestListEvents(t *testing.T) {
	svc := new(serviceMocks.MockEventService)
	svc.On("Upcoming", mock.Anything, service.DefaultEventLimit).
		Return([]model.Event{
			{ID: 2, Title: "january", EventDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 1, Title: "march", EventDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		}, nil)

	app := fiber.New()
	app.Get("/events", ListEvents(svc))

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var events []model.Event
	json.NewDecoder(resp.Body).Decode(&events)
	require.Len(t, events, 2)
	assert.Equal(t, "january", events[0].Title)
}

func TestStatistics(t *testing.T) {
	t.Run("latest", func(t *testing.T) {
		svc := new(serviceMocks.MockStatsService)
		svc.On("Latest", mock.Anything).
			Return(&model.Statistics{ID: 3, Users: 12, LastUpdated: time.Now()}, nil)

		app := fiber.New()
		app.Get("/statistics", GetStatistics(svc))

		req := httptest.NewRequest(http.MethodGet, "/statistics", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("empty log", func(t *testing.T) {
		svc := new(serviceMocks.MockStatsService)
		svc.On("Latest", mock.Anything).Return(nil, service.ErrNotFound)

		app := fiber.New()
		app.Get("/statistics", GetStatistics(svc))

		req := httptest.NewRequest(http.MethodGet, "/statistics", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("refresh appends", func(t *testing.T) {
		svc := new(serviceMocks.MockStatsService)
		svc.On("Refresh", mock.Anything).
			Return(&model.Statistics{ID: 4, Users: 12, Posts: 30, Comments: 95}, nil)

		app := fiber.New()
		app.Put("/statistics", RefreshStatistics(svc))

		req := httptest.NewRequest(http.MethodPut, "/statistics", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})
}
