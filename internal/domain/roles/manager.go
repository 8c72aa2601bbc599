package roles

import (
	"context"
	"errors"
	"sync"

	"fintalkweb/internal/backend"
)

// RoleClient is the slice of the backend API the admin role screen consumes.
type RoleClient interface {
	ListRoles(ctx context.Context) ([]backend.Role, error)
	ListUserRoles(ctx context.Context, userID int64) ([]backend.Role, error)
	AssignRole(ctx context.Context, userID, roleID int64) error
	RevokeRole(ctx context.Context, userID, roleID int64) error
}

// Manager is the view-model behind the role-management admin screen: the role
// catalog on one side, the selected user's assignments on the other. Whether
// an assignment is allowed is decided entirely server-side; the manager only
// renders outcomes.
type Manager struct {
	client RoleClient

	mu       sync.Mutex
	catalog  []backend.Role
	userID   int64
	assigned []backend.Role
	loaded   bool
	loading  bool
	errMsg   string
	notFound bool
	closed   bool
}

// ManagerState is a render-ready snapshot.
type ManagerState struct {
	Catalog      []backend.Role `json:"catalog"`
	UserID       int64          `json:"user_id"`
	Assigned     []backend.Role `json:"assigned"`
	Loaded       bool           `json:"loaded"`
	Loading      bool           `json:"loading"`
	ErrorMessage string         `json:"error,omitempty"`
	NotFound     bool           `json:"not_found,omitempty"`
}

func NewManager(client RoleClient) *Manager {
	return &Manager{client: client}
}

// LoadCatalog fetches the server-managed role catalog.
func (m *Manager) LoadCatalog(ctx context.Context) {
	m.mu.Lock()
	if m.loading || m.closed {
		m.mu.Unlock()
		return
	}
	m.loading = true
	m.errMsg = ""
	m.notFound = false
	m.mu.Unlock()

	catalog, err := m.client.ListRoles(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.loading = false
	if err != nil {
		m.errMsg = backend.UserMessage(err)
		return
	}
	m.catalog = catalog
}

// LoadUserRoles selects a user and fetches their current assignments.
func (m *Manager) LoadUserRoles(ctx context.Context, userID int64) {
	m.mu.Lock()
	if m.loading || m.closed {
		m.mu.Unlock()
		return
	}
	m.userID = userID
	m.assigned = nil
	m.loaded = false
	m.loading = true
	m.errMsg = ""
	m.notFound = false
	m.mu.Unlock()

	assigned, err := m.client.ListUserRoles(ctx, userID)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.loading = false
	if err != nil {
		m.notFound = errors.Is(err, backend.ErrNotFound)
		m.errMsg = backend.UserMessage(err)
		return
	}
	m.assigned = assigned
	m.loaded = true
}

// Assign grants a role to the selected user. The local assignment list grows
// only after the server confirms.
func (m *Manager) Assign(ctx context.Context, roleID int64) {
	m.mu.Lock()
	if m.loading || m.closed || m.userID == 0 {
		m.mu.Unlock()
		return
	}
	userID := m.userID
	m.loading = true
	m.errMsg = ""
	m.notFound = false
	m.mu.Unlock()

	err := m.client.AssignRole(ctx, userID, roleID)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.loading = false
	if err != nil {
		m.errMsg = backend.UserMessage(err)
		return
	}
	m.assigned = append(m.assigned, m.catalogRole(roleID))
}

// Revoke removes a role from the selected user, preserving the order of the
// remaining assignments. Revoking an unassigned role surfaces as not-found.
func (m *Manager) Revoke(ctx context.Context, roleID int64) {
	m.mu.Lock()
	if m.loading || m.closed || m.userID == 0 {
		m.mu.Unlock()
		return
	}
	userID := m.userID
	m.loading = true
	m.errMsg = ""
	m.notFound = false
	m.mu.Unlock()

	err := m.client.RevokeRole(ctx, userID, roleID)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.loading = false
	if err != nil {
		m.notFound = errors.Is(err, backend.ErrNotFound)
		m.errMsg = backend.UserMessage(err)
		return
	}
	kept := m.assigned[:0]
	for _, role := range m.assigned {
		if role.ID != roleID {
			kept = append(kept, role)
		}
	}
	m.assigned = kept
}

// RetryAfterError clears error state without resubmitting.
func (m *Manager) RetryAfterError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.errMsg = ""
	m.notFound = false
}

// Close tears the screen down; late responses are discarded.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

func (m *Manager) State() ManagerState {
	m.mu.Lock()
	defer m.mu.Unlock()
	catalog := make([]backend.Role, len(m.catalog))
	copy(catalog, m.catalog)
	assigned := make([]backend.Role, len(m.assigned))
	copy(assigned, m.assigned)
	return ManagerState{
		Catalog:      catalog,
		UserID:       m.userID,
		Assigned:     assigned,
		Loaded:       m.loaded,
		Loading:      m.loading,
		ErrorMessage: m.errMsg,
		NotFound:     m.notFound,
	}
}

func (m *Manager) catalogRole(roleID int64) backend.Role {
	for _, role := range m.catalog {
		if role.ID == roleID {
			return role
		}
	}
	return backend.Role{ID: roleID}
}
