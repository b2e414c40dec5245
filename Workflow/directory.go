package Workflow

import (
	"context"
	"fmt"

	"CareBridge/Models"
)

func (e *Engine) Staff(ctx context.Context) ([]Models.Staff, error) {
	staff, err := e.directory.ListStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	return staff, nil
}

func (e *Engine) Clients(ctx context.Context) ([]Models.Client, error) {
	clients, err := e.directory.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// StaffMember is the strict lookup: unlike report bundles it does not fall
// back to a placeholder.
func (e *Engine) StaffMember(ctx context.Context, id string) (Models.Staff, error) {
	s, ok := e.directory.LookupStaff(ctx, id)
	if !ok {
		return Models.Staff{}, fmt.Errorf("%w: %s", ErrStaffNotFound, id)
	}
	return s, nil
}

func (e *Engine) Client(ctx context.Context, id string) (Models.Client, error) {
	c, ok := e.directory.LookupClient(ctx, id)
	if !ok {
		return Models.Client{}, fmt.Errorf("%w: %s", ErrClientNotFound, id)
	}
	return c, nil
}
