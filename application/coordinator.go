// Package application provides the application layer for orchestrating
// herd operations.
package application

import (
	"context"
	"fmt"

	"herdly-go/core/command"
	"herdly-go/core/event"
	"herdly-go/core/eventbus"
	"herdly-go/domain/herd"
	"herdly-go/infrastructure/logging"
)

// Coordinator routes operation commands to the herd service and
// publishes an event for every committed mutation. Queries bypass the
// command bus and go straight to the service. Logging goes through the
// context-carried logger so a caller-attached logger is honored.
type Coordinator struct {
	service  *herd.Service
	eventBus eventbus.EventBus
}

// CoordinatorConfig holds configuration for the Coordinator.
type CoordinatorConfig struct {
	Service  *herd.Service
	EventBus eventbus.EventBus
}

// NewCoordinator creates a new herd operation coordinator.
func NewCoordinator(cfg *CoordinatorConfig) *Coordinator {
	return &Coordinator{
		service:  cfg.Service,
		eventBus: cfg.EventBus,
	}
}

// Dispatch routes a command to its handler. The command set is closed;
// an unknown command type is rejected, never silently ignored.
func (c *Coordinator) Dispatch(ctx context.Context, cmd command.Command) error {
	ctx = logging.WithAttrs(ctx, "command", cmd.CommandName())
	logging.From(ctx).Debug("Dispatching command")

	switch cmd := cmd.(type) {
	case *command.CreateHerd:
		return c.handleCreateHerd(ctx, cmd)
	case *command.AddMember:
		return c.handleAddMember(ctx, cmd)
	case *command.RemoveMember:
		return c.handleRemoveMember(ctx, cmd)
	case *command.MoveMember:
		return c.handleMoveMember(ctx, cmd)
	case *command.MergeHerds:
		return c.handleMergeHerds(ctx, cmd)
	case *command.SplitMembers:
		return c.handleSplitMembers(ctx, cmd)
	default:
		return fmt.Errorf("unknown command type: %T", cmd)
	}
}

// ViewComposition returns the sorted members of a herd.
func (c *Coordinator) ViewComposition(ctx context.Context, herdName string) ([]string, error) {
	return c.service.ViewComposition(ctx, herdName)
}

// ListHerds returns summaries of all herds, sorted by name.
func (c *Coordinator) ListHerds(ctx context.Context) ([]herd.Summary, error) {
	return c.service.ListHerds(ctx)
}

func (c *Coordinator) handleCreateHerd(ctx context.Context, cmd *command.CreateHerd) error {
	if _, err := c.service.Create(ctx, cmd.Name, cmd.Description); err != nil {
		return c.failed(ctx, err)
	}
	c.publish(event.NewHerdCreated(cmd.Name, cmd.Description))
	return nil
}

func (c *Coordinator) handleAddMember(ctx context.Context, cmd *command.AddMember) error {
	if err := c.service.AddMember(ctx, cmd.Herd, cmd.Animal); err != nil {
		return c.failed(ctx, err)
	}
	c.publish(event.NewMemberAdded(cmd.Herd, cmd.Animal))
	return nil
}

func (c *Coordinator) handleRemoveMember(ctx context.Context, cmd *command.RemoveMember) error {
	if err := c.service.RemoveMember(ctx, cmd.Herd, cmd.Animal); err != nil {
		return c.failed(ctx, err)
	}
	c.publish(event.NewMemberRemoved(cmd.Herd, cmd.Animal))
	return nil
}

func (c *Coordinator) handleMoveMember(ctx context.Context, cmd *command.MoveMember) error {
	if err := c.service.MoveMember(ctx, cmd.Source, cmd.Target, cmd.Animal); err != nil {
		return c.failed(ctx, err)
	}
	c.publish(event.NewMemberMoved(cmd.Source, cmd.Target, cmd.Animal))
	return nil
}

func (c *Coordinator) handleMergeHerds(ctx context.Context, cmd *command.MergeHerds) error {
	if err := c.service.MergeHerds(ctx, cmd.Keep, cmd.Archive); err != nil {
		return c.failed(ctx, err)
	}
	c.publish(event.NewHerdsMerged(cmd.Keep, cmd.Archive))
	return nil
}

func (c *Coordinator) handleSplitMembers(ctx context.Context, cmd *command.SplitMembers) error {
	if err := c.service.SplitMembers(ctx, cmd.Source, cmd.Target, cmd.Animals); err != nil {
		return c.failed(ctx, err)
	}
	c.publish(event.NewHerdSplit(cmd.Source, cmd.Target, cmd.Animals))
	return nil
}

func (c *Coordinator) publish(e event.Event) {
	if c.eventBus != nil {
		c.eventBus.Publish(e)
	}
}

func (c *Coordinator) failed(ctx context.Context, err error) error {
	logging.From(ctx).Debug("Command failed",
		"kind", string(herd.KindOf(err)),
		"error", err)
	return err
}
