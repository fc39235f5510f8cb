package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-channel-timer/internal/command"
	"github.com/KasumiMercury/primind-channel-timer/internal/config"
	"github.com/KasumiMercury/primind-channel-timer/internal/domain"
	"github.com/KasumiMercury/primind-channel-timer/internal/gateway"
	"github.com/KasumiMercury/primind-channel-timer/internal/observability/metrics"
	timersvc "github.com/KasumiMercury/primind-channel-timer/internal/service/timer"
)

// MessageEvent is the webhook payload for one inbound chat message.
type MessageEvent struct {
	SpaceID     string `json:"space_id"`
	ChannelID   string `json:"channel_id"`
	MessageID   string `json:"message_id"`
	AuthorID    string `json:"author_id"`
	AuthorIsBot bool   `json:"author_is_bot"`
	// ReferenceID is set when the message is a reply to another message;
	// replies never carry commands.
	ReferenceID string `json:"reference_id"`
	Content     string `json:"content"`
}

type messageEventResponse struct {
	Handled bool `json:"handled"`
}

type MessageEventHandler struct {
	controller   *timersvc.Controller
	gateway      gateway.ChatGateway
	timerCfg     *config.TimerConfig
	timerMetrics *metrics.TimerMetrics
}

func NewMessageEventHandler(
	controller *timersvc.Controller,
	gw gateway.ChatGateway,
	timerCfg *config.TimerConfig,
	timerMetrics *metrics.TimerMetrics,
) *MessageEventHandler {
	return &MessageEventHandler{
		controller:   controller,
		gateway:      gw,
		timerCfg:     timerCfg,
		timerMetrics: timerMetrics,
	}
}

// HandleMessageEvent turns a webhook message event into at most one timer
// command and replies to the originating message.
func (h *MessageEventHandler) HandleMessageEvent(c *gin.Context) {
	ctx := c.Request.Context()

	var event MessageEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		slog.WarnContext(ctx, "message event unmarshal failed",
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
		return
	}

	if event.AuthorIsBot || event.SpaceID == "" || event.ChannelID == "" || event.ReferenceID != "" {
		c.JSON(http.StatusOK, messageEventResponse{Handled: false})
		return
	}

	cmd := command.Parse(event.Content, h.timerCfg.CommandPrefix)
	if cmd.Kind == command.KindNone {
		c.JSON(http.StatusOK, messageEventResponse{Handled: false})
		return
	}

	reply := h.dispatch(ctx, event, cmd)
	if reply != "" {
		h.reply(ctx, event, reply)
	}

	c.JSON(http.StatusOK, messageEventResponse{Handled: true})
}

func (h *MessageEventHandler) dispatch(ctx context.Context, event MessageEvent, cmd command.Command) string {
	key := domain.Key{SpaceID: event.SpaceID, ChannelID: event.ChannelID}

	switch cmd.Kind {
	case command.KindUsage:
		return h.usageText(ctx, key, event.AuthorID)
	case command.KindStart:
		return h.startText(ctx, key, event.AuthorID, cmd.Arg)
	case command.KindCancel:
		return h.cancelText(ctx, key, event.AuthorID)
	case command.KindStatus:
		return h.statusText(ctx, key, event.AuthorID)
	default:
		return ""
	}
}

func (h *MessageEventHandler) usageText(ctx context.Context, key domain.Key, askingUserID string) string {
	reply := fmt.Sprintf("Usage: %stimer <seconds | cancel>", h.timerCfg.CommandPrefix)

	status, err := h.controller.Status(ctx, key, askingUserID)
	if err == nil {
		reply += "\n" + runningText(status)
	}

	h.recordCommand(ctx, "usage", "success")
	return reply
}

func (h *MessageEventHandler) startText(ctx context.Context, key domain.Key, askingUserID, rawSeconds string) string {
	result, err := h.controller.Start(ctx, key, askingUserID, rawSeconds)
	if err != nil {
		h.recordCommand(ctx, "start", "rejected")
		switch {
		case errors.Is(err, domain.ErrDurationNotANumber):
			return "Time needs to be a number"
		case errors.Is(err, domain.ErrDurationNotPositive):
			return "Cannot have a negative timer"
		case errors.Is(err, domain.ErrDurationTooLong):
			return fmt.Sprintf("Cannot have a timer longer than %s", timersvc.FormatDuration(h.timerCfg.MaxDuration))
		default:
			slog.ErrorContext(ctx, "unexpected error running timer command",
				slog.String("space_id", key.SpaceID),
				slog.String("channel_id", key.ChannelID),
				slog.String("error", err.Error()),
			)
			return "Unknown error occurred running timer command"
		}
	}

	h.recordCommand(ctx, "start", "success")

	prefix := ""
	if result.Replaced != nil {
		prefix = fmt.Sprintf("**-** Cancelled %s in this channel - it had %s remaining\n",
			result.Replaced.Attribution.Label(false),
			timersvc.FormatDuration(result.Replaced.Remaining),
		)
	}
	return prefix + fmt.Sprintf("Started timer for %s", timersvc.FormatDuration(result.Duration))
}

func (h *MessageEventHandler) cancelText(ctx context.Context, key domain.Key, askingUserID string) string {
	result, err := h.controller.Cancel(ctx, key, askingUserID)
	if err != nil {
		h.recordCommand(ctx, "cancel", "rejected")
		if errors.Is(err, domain.ErrNoActiveTimer) {
			return "No current timer in this channel"
		}
		return "Unknown error occurred running timer command"
	}

	h.recordCommand(ctx, "cancel", "success")
	return fmt.Sprintf("Cancelled %s in this channel - it had %s remaining",
		result.Attribution.Label(false),
		timersvc.FormatDuration(result.Remaining),
	)
}

func (h *MessageEventHandler) statusText(ctx context.Context, key domain.Key, askingUserID string) string {
	result, err := h.controller.Status(ctx, key, askingUserID)
	if err != nil {
		h.recordCommand(ctx, "status", "rejected")
		if errors.Is(err, domain.ErrNoActiveTimer) {
			return "No current timer in this channel"
		}
		return "Unknown error occurred running timer command"
	}

	h.recordCommand(ctx, "status", "success")
	return runningText(result)
}

func runningText(status *timersvc.StatusResult) string {
	return fmt.Sprintf("%s is currently running with %s remaining",
		status.Attribution.Label(true),
		timersvc.FormatDuration(status.Remaining),
	)
}

func (h *MessageEventHandler) reply(ctx context.Context, event MessageEvent, content string) {
	if _, err := h.gateway.SendMessage(ctx, event.ChannelID, event.MessageID, content); err != nil {
		slog.ErrorContext(ctx, "failed to reply to timer command",
			slog.String("channel_id", event.ChannelID),
			slog.String("message_id", event.MessageID),
			slog.String("error", err.Error()),
		)
	}
}

func (h *MessageEventHandler) recordCommand(ctx context.Context, cmd, outcome string) {
	if h.timerMetrics != nil {
		h.timerMetrics.RecordCommand(ctx, cmd, outcome)
	}
}
