package server

import (
	"errors"
	"strconv"
	"strings"

	"zephyr/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Window holds the parsed skip/limit query parameters.
type Window struct {
	Skip  int
	Limit int
}

// parseID extracts a route parameter as a positive id.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 0)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+strings.ToUpper(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseWindow reads skip and limit. Both must be integers when present; skip
// must not be negative. Limit bounds are left to the caller.
func (s *Server) parseWindow(c *fiber.Ctx, defaultLimit int) (Window, error) {
	skip, err := s.queryInt(c, "skip", 0)
	if err != nil {
		return Window{}, err
	}
	if skip < 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("skip must not be negative"))
		return Window{}, errResponseWritten
	}
	limit, err := s.queryInt(c, "limit", defaultLimit)
	if err != nil {
		return Window{}, err
	}
	return Window{Skip: skip, Limit: limit}, nil
}

// parseListWindow is parseWindow for plain listings, where a limit below one
// is rejected rather than clamped.
func (s *Server) parseListWindow(c *fiber.Ctx, defaultLimit int) (Window, error) {
	w, err := s.parseWindow(c, defaultLimit)
	if err != nil {
		return w, err
	}
	if w.Limit < 1 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("limit must be at least 1"))
		return Window{}, errResponseWritten
	}
	return w, nil
}

// queryInt parses an optional integer query parameter strictly; Fiber's
// QueryInt would silently fall back to the default on garbage.
func (s *Server) queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(key+" must be an integer"))
		return 0, errResponseWritten
	}
	return v, nil
}

// queryID parses an optional id query parameter; an absent value yields 0.
func (s *Server) queryID(c *fiber.Ctx, key string) (uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(key+" must be a positive integer"))
		return 0, errResponseWritten
	}
	return uint(v), nil
}

// parseBody decodes the JSON body into dest, writing a 400 on failure.
func (s *Server) parseBody(c *fiber.Ctx, dest any) error {
	if err := c.BodyParser(dest); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}
