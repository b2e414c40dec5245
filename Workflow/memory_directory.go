package Workflow

import (
	"context"
	"sort"

	"CareBridge/Models"
)

// MemoryDirectory is a fixed Directory built from slices.
type MemoryDirectory struct {
	staff   map[string]Models.Staff
	clients map[string]Models.Client
}

func NewMemoryDirectory(staff []Models.Staff, clients []Models.Client) *MemoryDirectory {
	d := &MemoryDirectory{
		staff:   make(map[string]Models.Staff, len(staff)),
		clients: make(map[string]Models.Client, len(clients)),
	}
	for _, s := range staff {
		d.staff[s.ID] = s
	}
	for _, c := range clients {
		d.clients[c.ID] = c
	}
	return d
}

func (d *MemoryDirectory) LookupStaff(_ context.Context, id string) (Models.Staff, bool) {
	s, ok := d.staff[id]
	return s, ok
}

func (d *MemoryDirectory) LookupClient(_ context.Context, id string) (Models.Client, bool) {
	c, ok := d.clients[id]
	return c, ok
}

func (d *MemoryDirectory) ListStaff(context.Context) ([]Models.Staff, error) {
	out := make([]Models.Staff, 0, len(d.staff))
	for _, s := range d.staff {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (d *MemoryDirectory) ListClients(context.Context) ([]Models.Client, error) {
	out := make([]Models.Client, 0, len(d.clients))
	for _, c := range d.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
