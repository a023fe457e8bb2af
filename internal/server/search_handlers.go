package server

import (
	"zephyr/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SearchUsers godoc
// @Summary Search users
// @Description Case-insensitive substring match on username, full name and bio
// @Tags search
// @Produce json
// @Param q query string true "Search text"
// @Param limit query int false "Maximum rows, clamped to 1..100" default(20)
// @Success 200 {object} models.UserSearchResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /search/users [get]
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	limit, err := s.queryInt(c, "limit", service.DefaultSearchLimit)
	if err != nil {
		return nil
	}

	res, err := s.searchService.SearchUsers(c.UserContext(), c.Query("q"), limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(res)
}

// SearchPosts godoc
// @Summary Search posts
// @Description Case-insensitive substring match on content, newest first
// @Tags search
// @Produce json
// @Param q query string true "Search text"
// @Param limit query int false "Maximum rows, clamped to 1..100" default(20)
// @Success 200 {object} models.PostSearchResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /search/posts [get]
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	limit, err := s.queryInt(c, "limit", service.DefaultSearchLimit)
	if err != nil {
		return nil
	}

	res, err := s.searchService.SearchPosts(c.UserContext(), c.Query("q"), limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(res)
}

// Search godoc
// @Summary Search users and posts
// @Description Returns only the categories selected by type
// @Tags search
// @Produce json
// @Param q query string true "Search text"
// @Param type query string false "users, posts or all" default(all)
// @Param limit query int false "Maximum rows per category, clamped to 1..100" default(20)
// @Success 200 {object} models.SearchResults
// @Failure 400 {object} models.ErrorResponse
// @Router /search [get]
func (s *Server) Search(c *fiber.Ctx) error {
	limit, err := s.queryInt(c, "limit", service.DefaultSearchLimit)
	if err != nil {
		return nil
	}

	res, err := s.searchService.Search(c.UserContext(), c.Query("q"), c.Query("type", service.SearchTypeAll), limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(res)
}
