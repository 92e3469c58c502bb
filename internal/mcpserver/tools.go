package mcpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/dealdesk/internal/contract"
	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tools holds the MCP tool handlers.
type Tools struct {
	svc   Services
	actor domain.Actor
}

type ProcessMeetingNotesInput struct {
	DealID     string `json:"deal_id" jsonschema:"Deal ID (required)"`
	Notes      string `json:"notes" jsonschema:"Raw meeting notes, 20 to 6000 characters (required)"`
	HappenedAt string `json:"happened_at,omitempty" jsonschema:"When the meeting happened, RFC 3339 (defaults to now)"`
	Source     string `json:"source,omitempty" jsonschema:"Where the notes came from (default mcp)"`
}

func (t *Tools) ProcessMeetingNotes(ctx context.Context, _ *mcp.CallToolRequest, input ProcessMeetingNotesInput) (*mcp.CallToolResult, contract.ProcessNotesResponse, error) {
	req := contract.NewProcessNotesRequest(t.actor, input.DealID, input.Notes)
	req.Source = "mcp"
	if input.Source != "" {
		req.Source = input.Source
	}
	if input.HappenedAt != "" {
		at, err := time.Parse(time.RFC3339, input.HappenedAt)
		if err != nil {
			return nil, contract.ProcessNotesResponse{}, fmt.Errorf("happened_at must be RFC 3339: %w", err)
		}
		req.HappenedAt = &at
	}

	resp, err := t.svc.MeetingNotes.Process(ctx, req)
	if err != nil {
		return nil, contract.ProcessNotesResponse{}, err
	}
	return nil, *resp, nil
}

type DealInput struct {
	DealID string `json:"deal_id" jsonschema:"Deal ID (required)"`
}

func (t *Tools) ListStrategyPlays(ctx context.Context, _ *mcp.CallToolRequest, input DealInput) (*mcp.CallToolResult, contract.PlaysResponse, error) {
	resp, err := t.svc.Strategy.ListPlays(ctx, t.actor, input.DealID)
	if err != nil {
		return nil, contract.PlaysResponse{}, err
	}
	return nil, *resp, nil
}

type ExecuteStrategyPlayInput struct {
	DealID string `json:"deal_id" jsonschema:"Deal ID (required)"`
	PlayID string `json:"play_id" jsonschema:"Play ID from list_strategy_plays (required)"`
}

// ExecuteStrategyPlay reports failures in the result rather than as a tool error.
func (t *Tools) ExecuteStrategyPlay(ctx context.Context, _ *mcp.CallToolRequest, input ExecuteStrategyPlayInput) (*mcp.CallToolResult, contract.ExecutePlayResult, error) {
	return nil, t.svc.Strategy.ExecutePlay(ctx, t.actor, input.PlayID, input.DealID), nil
}

type ListNotificationsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of notifications, 1 to 100 (default 20)"`
}

type ListNotificationsOutput struct {
	Notifications []contract.NotificationView `json:"notifications"`
}

func (t *Tools) ListSignalNotifications(ctx context.Context, _ *mcp.CallToolRequest, input ListNotificationsInput) (*mcp.CallToolResult, ListNotificationsOutput, error) {
	views, err := t.svc.Notifications.List(ctx, t.actor, input.Limit)
	if err != nil {
		return nil, ListNotificationsOutput{}, err
	}
	return nil, ListNotificationsOutput{Notifications: views}, nil
}

type AcknowledgeInput struct {
	ID string `json:"id" jsonschema:"Notification ID (required)"`
}

type AcknowledgeOutput struct {
	ID             string     `json:"id"`
	Status         string     `json:"status"`
	AcknowledgedBy string     `json:"acknowledged_by"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
}

func (t *Tools) AcknowledgeNotification(ctx context.Context, _ *mcp.CallToolRequest, input AcknowledgeInput) (*mcp.CallToolResult, AcknowledgeOutput, error) {
	n, err := t.svc.Notifications.Acknowledge(ctx, t.actor, input.ID)
	if err != nil {
		return nil, AcknowledgeOutput{}, err
	}
	return nil, AcknowledgeOutput{
		ID:             n.ID,
		Status:         string(n.Status),
		AcknowledgedBy: n.AcknowledgedBy,
		AcknowledgedAt: n.AcknowledgedAt,
	}, nil
}
