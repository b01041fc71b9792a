package cli

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/shelf/internal/entities"
)

// HistoryCommand prints the audit log.
type HistoryCommand struct {
	baseCommand
	ID        int
	EventType string
	Limit     int
	Offset    int
	EventID   uint
	Since     time.Duration
	JSON      bool
}

func NewHistoryCommand() *HistoryCommand {
	return &HistoryCommand{}
}

func (cmd *HistoryCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	cmd.registerCommonFlags(fs)
	fs.IntVar(&cmd.ID, "id", 0, "Only events for this publication")
	fs.StringVar(&cmd.EventType, "type", "", "Only events of this type, e.g. rated or export")
	fs.IntVar(&cmd.Limit, "limit", 20, "Maximum number of events")
	fs.IntVar(&cmd.Offset, "offset", 0, "Events to skip")
	fs.UintVar(&cmd.EventID, "event", 0, "Show a single event with its metadata")
	fs.DurationVar(&cmd.Since, "since", 0, "Only events from the last duration, e.g. 24h (ignores -limit)")
	fs.BoolVar(&cmd.JSON, "json", false, "Print events as JSON")
	fs.Usage = usage(fs, "history [options]", "Show the audit log, newest first.")
	return fs.Parse(args)
}

func (cmd *HistoryCommand) Run() error {
	app, err := cmd.open()
	if err != nil {
		return err
	}
	defer app.Close()

	if cmd.EventID > 0 {
		return cmd.showEvent(app.Audit.GetEvent(cmd.EventID))
	}

	var events []entities.AuditEvent
	var total int64
	switch {
	case cmd.Since > 0:
		events, err = app.Audit.GetEventsSince(cmd.Since)
		total = int64(len(events))
	case cmd.ID > 0:
		events, total, err = app.Audit.GetPublicationHistory(cmd.ID, cmd.Limit, cmd.Offset)
	case cmd.EventType != "":
		events, total, err = app.Audit.GetEventsByType(entities.AuditEventType(cmd.EventType), cmd.Limit, cmd.Offset)
	default:
		events, total, err = app.Audit.GetEvents(cmd.Limit, cmd.Offset)
	}
	if err != nil {
		return err
	}

	if cmd.JSON {
		return cmd.writeJSON(events)
	}
	for _, e := range events {
		cmd.printf("%s  %-8s %-20s %s", e.CreatedAt.Local().Format(time.DateTime), e.Status, e.EventType, e.Description)
		if e.ErrorMsg != "" {
			cmd.printf(" (%s)", e.ErrorMsg)
		}
		cmd.printf("\n")
	}
	cmd.printf("\nShowing %d of %d events\n", len(events), total)
	return nil
}

func (cmd *HistoryCommand) showEvent(e *entities.AuditEvent, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("not found: audit event %d", cmd.EventID)
	}
	if err != nil {
		return err
	}
	if cmd.JSON {
		return cmd.writeJSON(e)
	}
	cmd.printf("Event %d (%s)\n", e.ID, e.CreatedAt.Local().Format(time.DateTime))
	cmd.printf("  Type:        %s\n", e.EventType)
	cmd.printf("  Action:      %s\n", e.Action)
	cmd.printf("  Status:      %s\n", e.Status)
	cmd.printf("  Description: %s\n", e.Description)
	if e.EntityID != nil {
		cmd.printf("  Entity:      %s %d\n", e.EntityType, *e.EntityID)
	}
	if e.Metadata != "" {
		cmd.printf("  Metadata:    %s\n", e.Metadata)
	}
	if e.ErrorMsg != "" {
		cmd.printf("  Error:       %s\n", e.ErrorMsg)
	}
	return nil
}
