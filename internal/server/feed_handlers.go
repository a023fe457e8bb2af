package server

import (
	"zephyr/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UserFeed godoc
// @Summary A user's feed
// @Description Posts by the user and their friends, newest first
// @Tags feed
// @Produce json
// @Param id path int true "User ID"
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Maximum rows, clamped to 1..100" default(50)
// @Success 200 {object} models.FeedResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /feed/{id} [get]
func (s *Server) UserFeed(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	w, err := s.parseWindow(c, service.DefaultFeedLimit)
	if err != nil {
		return nil
	}

	feed, err := s.feedService.UserFeed(c.UserContext(), userID, w.Skip, w.Limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}

// PublicFeed godoc
// @Summary The public feed
// @Description All posts, newest first
// @Tags feed
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Maximum rows, clamped to 1..100" default(50)
// @Success 200 {object} models.FeedResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /feed/public [get]
func (s *Server) PublicFeed(c *fiber.Ctx) error {
	w, err := s.parseWindow(c, service.DefaultFeedLimit)
	if err != nil {
		return nil
	}

	feed, err := s.feedService.PublicFeed(c.UserContext(), w.Skip, w.Limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}
