package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clouddevops/devopsapp/internal/metrics"
	"github.com/clouddevops/devopsapp/pkg/types"
)

const notificationSubject = "DevOps App Notification"

func (s *Server) listMessages(c echo.Context) error {
	msgs, err := s.store.List(c.Request().Context())
	if err != nil {
		log.Printf("api: failed to list messages: %v", err)
		return c.JSON(http.StatusInternalServerError, types.APIError{
			Error:   "Could not fetch from DynamoDB",
			Details: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, types.MessageList{
		Message: "Current messages in cloud database",
		Data:    msgs,
	})
}

func (s *Server) createMessage(c echo.Context) error {
	var req types.MessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, types.APIError{
			Error:   "invalid request body",
			Details: err.Error(),
		})
	}
	if req.Text == "" {
		return c.JSON(http.StatusBadRequest, types.APIError{Error: "Text is required"})
	}

	ctx := c.Request().Context()
	msg := types.Message{
		ID:        s.newID(),
		Text:      req.Text,
		Timestamp: formatTimestamp(s.now()),
	}

	if err := s.store.Put(ctx, msg); err != nil {
		metrics.MessagesSavedTotal.WithLabelValues("error").Inc()
		log.Printf("api: failed to save message %s: %v", msg.ID, err)
		return cloudActionFailed(c, err)
	}
	metrics.MessagesSavedTotal.WithLabelValues("success").Inc()

	if s.notifier != nil {
		body := fmt.Sprintf("New message received in DevOps App: \"%s\"", msg.Text)
		if _, err := s.notifier.Publish(ctx, notificationSubject, body); err != nil {
			metrics.NotificationsTotal.WithLabelValues("error").Inc()
			log.Printf("api: failed to publish notification for %s: %v", msg.ID, err)
			return cloudActionFailed(c, err)
		}
		metrics.NotificationsTotal.WithLabelValues("success").Inc()
	}

	return c.JSON(http.StatusCreated, types.MessageCreated{
		Status: "Saved to DynamoDB + SNS Sent",
		Item:   msg,
	})
}

func cloudActionFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusInternalServerError, types.APIError{
		Error:   "Cloud action failed",
		Details: err.Error(),
	})
}
