// Package chats exposes the conversation and message endpoints.
package chats

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/lingopeer/lingopeer-api/internal/platform/auth"
	applog "github.com/lingopeer/lingopeer-api/internal/platform/logging"
	"github.com/lingopeer/lingopeer-api/internal/platform/respond"
	chatsvc "github.com/lingopeer/lingopeer-api/internal/service/chat"
)

// Register wires chat routes into the provided group.
// The group is expected to have auth middleware applied.
func Register(g *echo.Group, svc chatsvc.Service) {
	g.GET("/chats", handleListChats(svc))
	g.POST("/chats", handleCreateChat(svc))
	g.GET("/chats/:chat_id/messages", handleMessages(svc))
	g.POST("/chats/:chat_id/messages", handleSend(svc))
}

// handleListChats godoc
//
//	@Summary		List conversations
//	@Description	Returns the authenticated user's conversations, most recently active first
//	@Tags			chats
//	@Produce		json,application/cbor
//	@Success		200	{object}	ListData
//	@Failure		401	{object}	respond.ErrorBody
//	@Failure		500	{object}	respond.ErrorBody
//	@Security		BearerAuth
//	@Router			/chats [get]
func handleListChats(svc chatsvc.Service) echo.HandlerFunc {
	return func(c *echo.Context) error {
		user, err := auth.UserFromEchoContext(c)
		if err != nil {
			return respond.Error401("unauthorized")
		}

		ctx := c.Request().Context()
		convs, err := svc.ListConversations(ctx, user.UID)
		if err != nil {
			return mapServiceError(ctx, err)
		}

		out := make([]Conversation, 0, len(convs))
		for _, conv := range convs {
			out = append(out, toConversation(conv))
		}
		return respond.Negotiate(c, http.StatusOK, ListData{Conversations: out})
	}
}

// handleCreateChat godoc
//
//	@Summary		Start a conversation
//	@Description	Creates a conversation between the authenticated user and another user
//	@Tags			chats
//	@Accept			json
//	@Produce		json,application/cbor
//	@Param			body	body		CreateInput	true	"Conversation creation request body"
//	@Success		201		{object}	Conversation
//	@Failure		400		{object}	respond.ErrorBody
//	@Failure		401		{object}	respond.ErrorBody
//	@Failure		500		{object}	respond.ErrorBody
//	@Security		BearerAuth
//	@Router			/chats [post]
func handleCreateChat(svc chatsvc.Service) echo.HandlerFunc {
	return func(c *echo.Context) error {
		var input CreateInput
		if err := c.Bind(&input); err != nil {
			return err
		}
		if err := c.Validate(&input); err != nil {
			return err
		}

		user, err := auth.UserFromEchoContext(c)
		if err != nil {
			return respond.Error401("unauthorized")
		}
		if input.Participant == user.UID {
			return respond.Error400("cannot start a conversation with yourself")
		}

		ctx := c.Request().Context()
		conv, err := svc.CreateConversation(ctx, []string{user.UID, input.Participant})
		if err != nil {
			return mapServiceError(ctx, err)
		}

		applog.LogAuditEvent(ctx, "chat.create", user.UID, "conversation", conv.ID, "success", nil)

		c.Response().Header().Set("Location", "/v1/chats/"+conv.ID)
		return respond.Negotiate(c, http.StatusCreated, toConversation(conv))
	}
}

// handleMessages godoc
//
//	@Summary		Read a conversation
//	@Description	Returns the conversation's messages with day dividers and timestamp labels
//	@Tags			chats
//	@Produce		json,application/cbor
//	@Param			chat_id	path		string	true	"Conversation ID"
//	@Param			tz		query		string	false	"IANA time zone for day bucketing, defaults to UTC"
//	@Success		200		{object}	MessagesData
//	@Failure		400		{object}	respond.ErrorBody
//	@Failure		401		{object}	respond.ErrorBody
//	@Failure		404		{object}	respond.ErrorBody
//	@Failure		500		{object}	respond.ErrorBody
//	@Security		BearerAuth
//	@Router			/chats/{chat_id}/messages [get]
func handleMessages(svc chatsvc.Service) echo.HandlerFunc {
	return func(c *echo.Context) error {
		var input MessagesInput
		if err := c.Bind(&input); err != nil {
			return err
		}

		loc := time.UTC
		if input.Timezone != "" {
			var err error
			if loc, err = time.LoadLocation(input.Timezone); err != nil {
				return respond.Error400("unknown time zone")
			}
		}

		user, err := auth.UserFromEchoContext(c)
		if err != nil {
			return respond.Error401("unauthorized")
		}

		ctx := c.Request().Context()
		msgs, err := svc.Messages(ctx, c.Param("chat_id"), user.UID)
		if err != nil {
			return mapServiceError(ctx, err)
		}

		entries := chatsvc.ComposeTimeline(msgs, loc)
		out := make([]TimelineEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, toTimelineEntry(e))
		}
		return respond.Negotiate(c, http.StatusOK, MessagesData{Messages: out})
	}
}

// handleSend godoc
//
//	@Summary		Send a message
//	@Description	Appends a message to the conversation from the authenticated user
//	@Tags			chats
//	@Accept			json
//	@Produce		json,application/cbor
//	@Param			chat_id	path		string		true	"Conversation ID"
//	@Param			body	body		SendInput	true	"Message request body"
//	@Success		201		{object}	Message
//	@Failure		400		{object}	respond.ErrorBody
//	@Failure		401		{object}	respond.ErrorBody
//	@Failure		404		{object}	respond.ErrorBody
//	@Failure		500		{object}	respond.ErrorBody
//	@Security		BearerAuth
//	@Router			/chats/{chat_id}/messages [post]
func handleSend(svc chatsvc.Service) echo.HandlerFunc {
	return func(c *echo.Context) error {
		var input SendInput
		if err := c.Bind(&input); err != nil {
			return err
		}
		if err := c.Validate(&input); err != nil {
			return err
		}

		user, err := auth.UserFromEchoContext(c)
		if err != nil {
			return respond.Error401("unauthorized")
		}

		ctx := c.Request().Context()
		msg, err := svc.Send(ctx, c.Param("chat_id"), user.UID, input.Text)
		if err != nil {
			return mapServiceError(ctx, err)
		}

		return respond.Negotiate(c, http.StatusCreated, toMessage(*msg))
	}
}

func mapServiceError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, chatsvc.ErrNotFound):
		return respond.Error404("Conversation not found")
	default:
		applog.LogError(ctx, "chat backend error", err)
		return respond.Error500("Backend error").
			WithDetails(map[string]any{"backend": err.Error()})
	}
}
