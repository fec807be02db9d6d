package handler

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"blogapi/internal/service"
)

// Services bundles the use-case layer injected into the HTTP routes.
type Services struct {
	Users  service.UserService
	Posts  service.PostService
	Events service.EventService
	Stats  service.StatsService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: parse, call the service, translate errors.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	app.Post("/users", RegisterUser(svcs.Users))
	app.Get("/users", GetUserByUsername(svcs.Users))
	app.Get("/users/:id", GetUser(svcs.Users))
	app.Get("/users/:id/posts", ListUserPosts(svcs.Posts))

	app.Get("/posts", ListPosts(svcs.Posts))
	app.Post("/posts", CreatePost(svcs.Posts))
	app.Get("/posts/:id", GetPost(svcs.Posts))
	app.Get("/posts/:id/comments", ListComments(svcs.Posts))
	app.Post("/posts/:id/comments", AddComment(svcs.Posts))
	app.Post("/posts/:id/image", UploadPostImage(svcs.Posts))
	app.Get("/posts/:id/image", GetPostImage(svcs.Posts))

	app.Get("/events", ListEvents(svcs.Events))
	app.Post("/events", CreateEvent(svcs.Events))

	app.Get("/statistics", GetStatistics(svcs.Stats))
	// PUT kept for compatibility with existing clients; it appends a new
	// snapshot rather than mutating the previous one.
	app.Put("/statistics", RefreshStatistics(svcs.Stats))
}

// HealthCheck verifies database connectivity.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// RegisterUser creates a new account.
func RegisterUser(svc service.UserService) fiber.Handler {
	type request struct {
		Username     string `json:"username"`
		PasswordHash string `json:"password_hash"`
		Bio          string `json:"bio"`
	}
	return func(c *fiber.Ctx) error {
		var req request
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		u, err := svc.Register(c.UserContext(), req.Username, req.PasswordHash, req.Bio)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	}
}

// GetUser returns a single user by id.
func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		u, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}

// GetUserByUsername returns a single user by exact username match.
func GetUserByUsername(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username := c.Query("username")
		if username == "" {
			return writeError(c, fiber.StatusBadRequest, "USERNAME_REQUIRED", "username query parameter is required")
		}
		u, err := svc.GetByUsername(c.UserContext(), username)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}

// ListUserPosts returns all posts owned by a user, newest first.
func ListUserPosts(svc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		posts, err := svc.UserPosts(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(posts)
	}
}

// ListPosts returns one page of posts with limit & offset.
func ListPosts(svc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(service.DefaultPostLimit)))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}
		posts, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(posts)
	}
}

// CreatePost publishes a new post.
func CreatePost(svc service.PostService) fiber.Handler {
	type request struct {
		UserID int64  `json:"user_id"`
		Title  string `json:"title"`
		Body   string `json:"body"`
	}
	return func(c *fiber.Ctx) error {
		var req request
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		p, err := svc.Create(c.UserContext(), req.UserID, req.Title, req.Body)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// GetPost returns a single post by id, including its comment counter.
func GetPost(svc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		p, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// ListComments returns all comments on a post, newest first.
func ListComments(svc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		comments, err := svc.Comments(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(comments)
	}
}

// AddComment attaches a comment to a post.
func AddComment(svc service.PostService) fiber.Handler {
	type request struct {
		Author string `json:"author"`
		Body   string `json:"body"`
	}
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req request
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		comment, err := svc.AddComment(c.UserContext(), id, req.Author, req.Body)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(comment)
	}
}

// UploadPostImage stores a cover image for a post (multipart/form-data, field name: file).
func UploadPostImage(svc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		p, err := svc.AttachImage(c.UserContext(), id, f, fh.Filename, ct, fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// GetPostImage redirects to a time-limited download URL for the post's image.
func GetPostImage(svc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		u, err := svc.ImageURL(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Redirect(u, fiber.StatusFound)
	}
}

// ListEvents returns upcoming events, soonest first.
func ListEvents(svc service.EventService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(service.DefaultEventLimit)))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		events, err := svc.Upcoming(c.UserContext(), limit)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(events)
	}
}

// CreateEvent schedules a new event.
func CreateEvent(svc service.EventService) fiber.Handler {
	type request struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Location    string    `json:"location"`
		EventDate   time.Time `json:"event_date"`
	}
	return func(c *fiber.Ctx) error {
		var req request
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		e, err := svc.Create(c.UserContext(), req.Title, req.Description, req.Location, req.EventDate)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(e)
	}
}

// GetStatistics returns the most recent statistics snapshot.
func GetStatistics(svc service.StatsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := svc.Latest(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(s)
	}
}

// RefreshStatistics appends a new statistics snapshot from current row counts.
func RefreshStatistics(svc service.StatsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := svc.Refresh(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(s)
	}
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}
