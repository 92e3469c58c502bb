// Package mcpserver exposes the meeting-notes, strategy, and notification
// use cases as MCP tools over stdio.
package mcpserver

import (
	"context"

	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/service"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverName = "dealdesk"

// Services are the use cases backing the tools.
type Services struct {
	MeetingNotes  service.MeetingNotesService
	Strategy      service.StrategyService
	Notifications service.NotificationService
}

// NewServer registers every tool. All calls run as actor.
func NewServer(svc Services, actor domain.Actor, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: version,
	}, nil)

	h := &Tools{svc: svc, actor: actor}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "process_meeting_notes",
		Description: "Record meeting notes for a deal and derive follow-up tasks, a meeting brief, and a follow-up email draft",
	}, h.ProcessMeetingNotes)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_strategy_plays",
		Description: "List the recommended strategy plays for a deal, ranked by confidence",
	}, h.ListStrategyPlays)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "execute_strategy_play",
		Description: "Turn a strategy play into scheduled tasks and, for outbound steps, a pending approval",
	}, h.ExecuteStrategyPlay)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_signal_notifications",
		Description: "List buying-signal notifications for the workspace, most recent first",
	}, h.ListSignalNotifications)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "acknowledge_notification",
		Description: "Mark a signal notification as acknowledged",
	}, h.AcknowledgeNotification)

	return server
}

// Serve runs the server on stdio until ctx is cancelled or the client disconnects.
func Serve(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
