package httpapi

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. history may be nil.
func RegisterRoutes(app *fiber.App, service *weather.Service, history *store.MemoryStore) {
	v1 := app.Group("/api/v1")

	search := func(c *fiber.Ctx) error {
		var req searchQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		view, err := service.Search(c.UserContext(), req.City)
		if err != nil {
			return fiber.NewError(statusFor(err), weather.Message(err))
		}
		return c.JSON(view)
	}
	v1.Get("/weather/search", search)
	v1.Post("/weather/search", search)

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		return c.JSON(service.View())
	})

	v1.Get("/weather/history", func(c *fiber.Ctx) error {
		if history == nil {
			return fiber.NewError(fiber.StatusNotFound, "search history is disabled")
		}

		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		views, err := history.GetRange(req.City, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no search history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read search history")
		}

		return c.JSON(fiber.Map{
			"city":     req.City,
			"from":     req.From,
			"to":       req.To,
			"searches": views,
		})
	})

	v1.Get("/weather/codes/:code", func(c *fiber.Ctx) error {
		code, err := strconv.Atoi(c.Params("code"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "weather code must be an integer")
		}
		return c.JSON(fiber.Map{
			"code":           code,
			"classification": weather.Classify(code),
			"theme":          weather.ThemeFor(code),
		})
	})
}

// ErrorHandler renders every handler error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, weather.ErrEmptyQuery):
		return fiber.StatusBadRequest
	case errors.Is(err, weather.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, weather.ErrUnavailable):
		return fiber.StatusBadGateway
	case errors.Is(err, weather.ErrSuperseded):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// searchQuery holds the city to look up, from the query string or a form/JSON body.
type searchQuery struct {
	City string `json:"city" form:"city" validate:"required"`
}

func (q *searchQuery) bind(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost && len(c.Body()) > 0 {
		if err := c.BodyParser(q); err != nil {
			return errors.New("invalid request body")
		}
	}
	if q.City == "" {
		q.City = c.Query("city")
	}
	q.City = strings.TrimSpace(q.City)

	if err := validate.Struct(q); err != nil {
		return errors.New("city is required")
	}
	return nil
}

// historyQuery holds query parameters for the history endpoint.
// Missing bounds default to the last 24 hours.
type historyQuery struct {
	City string
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	h.City = strings.TrimSpace(c.Query("city"))

	now := time.Now().UTC()
	h.From = now.Add(-24 * time.Hour)
	h.To = now

	if s := c.Query("from"); s != "" {
		from, err := parseTime(s)
		if err != nil {
			return err
		}
		h.From = from
	}
	if s := c.Query("to"); s != "" {
		to, err := parseTime(s)
		if err != nil {
			return err
		}
		h.To = to
	}
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
