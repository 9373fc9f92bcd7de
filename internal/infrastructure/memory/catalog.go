package memory

import (
	"fmt"

	"github.com/jhoicas/stockmaster/internal/domain"
	"github.com/jhoicas/stockmaster/internal/domain/entity"
)

// catalog agrupa la lógica común de las tablas de referencia (productos y ubicaciones).
type catalog struct {
	kind       string
	table      func(*state) map[string]struct{}
	references func(m *entity.Movement, id string) bool
	rename     func(m *entity.Movement, oldID, newID string)
}

var productCatalog = catalog{
	kind:       "producto",
	table:      func(s *state) map[string]struct{} { return s.products },
	references: func(m *entity.Movement, id string) bool { return m.ProductID == id },
	rename: func(m *entity.Movement, oldID, newID string) {
		if m.ProductID == oldID {
			m.ProductID = newID
		}
	},
}

var locationCatalog = catalog{
	kind:       "ubicación",
	table:      func(s *state) map[string]struct{} { return s.locations },
	references: func(m *entity.Movement, id string) bool { return m.References(id) },
	rename: func(m *entity.Movement, oldID, newID string) {
		if m.FromLocation == oldID {
			m.FromLocation = newID
		}
		if m.ToLocation == oldID {
			m.ToLocation = newID
		}
	},
}

func (c catalog) create(s *state, id string) error {
	t := c.table(s)
	if _, ok := t[id]; ok {
		return fmt.Errorf("%w: %s %q", domain.ErrConflict, c.kind, id)
	}
	t[id] = struct{}{}
	return nil
}

func (c catalog) exists(s *state, id string) bool {
	_, ok := c.table(s)[id]
	return ok
}

// renameInPlace equivale a ON UPDATE CASCADE.
func (c catalog) renameInPlace(s *state, oldID, newID string) error {
	t := c.table(s)
	if _, ok := t[oldID]; !ok {
		return fmt.Errorf("%w: %s %q", domain.ErrNotFound, c.kind, oldID)
	}
	if oldID == newID {
		return nil
	}
	if _, ok := t[newID]; ok {
		return fmt.Errorf("%w: %s %q", domain.ErrConflict, c.kind, newID)
	}
	delete(t, oldID)
	t[newID] = struct{}{}
	for id, m := range s.movements {
		c.rename(&m, oldID, newID)
		s.movements[id] = m
	}
	return nil
}

// remove equivale a ON DELETE RESTRICT.
func (c catalog) remove(s *state, id string) error {
	t := c.table(s)
	if _, ok := t[id]; !ok {
		return fmt.Errorf("%w: %s %q", domain.ErrNotFound, c.kind, id)
	}
	for _, m := range s.movements {
		if c.references(&m, id) {
			return fmt.Errorf("%w: %s %q", domain.ErrReferentialIntegrity, c.kind, id)
		}
	}
	delete(t, id)
	return nil
}

func (c catalog) referenced(s *state, id string) bool {
	for _, m := range s.movements {
		if c.references(&m, id) {
			return true
		}
	}
	return false
}
