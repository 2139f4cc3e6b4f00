package store

import (
	"context"
	"sync"

	"github.com/acmelabs/launchpad/internal/models"
	"github.com/google/uuid"
)

// Memory is an in-memory Store used by tests. It enforces the same
// unique constraints as the Postgres schema and rolls back writes when a
// Transaction callback fails, so service-level atomicity is observable
// without a database.
type Memory struct {
	mu         sync.Mutex
	licenses   map[uuid.UUID]models.License
	tenants    map[uuid.UUID]models.Tenant
	users      map[uuid.UUID]models.User
	identities map[uuid.UUID]models.UserIdentity
}

func NewMemory() *Memory {
	return &Memory{
		licenses:   make(map[uuid.UUID]models.License),
		tenants:    make(map[uuid.UUID]models.Tenant),
		users:      make(map[uuid.UUID]models.User),
		identities: make(map[uuid.UUID]models.UserIdentity),
	}
}

func (m *Memory) FindLicenseByKey(_ context.Context, key string) (*models.License, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.licenses {
		if l.LicenseKey == key {
			out := l
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) CreateLicense(_ context.Context, license *models.License) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.licenses {
		if l.LicenseKey == license.LicenseKey {
			return ErrDuplicate
		}
	}
	if license.ID == uuid.Nil {
		license.ID = uuid.New()
	}
	m.licenses[license.ID] = *license
	return nil
}

func (m *Memory) FindTenantByLicenseID(_ context.Context, licenseID uuid.UUID) (*models.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tenants {
		if t.LicenseID == licenseID {
			out := t
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) CreateTenant(_ context.Context, tenant *models.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tenants {
		if t.LicenseID == tenant.LicenseID || t.Slug == tenant.Slug {
			return ErrDuplicate
		}
	}
	if tenant.ID == uuid.Nil {
		tenant.ID = uuid.New()
	}
	m.tenants[tenant.ID] = *tenant
	return nil
}

func (m *Memory) FindUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := u
	if t, ok := m.tenants[u.TenantID]; ok {
		out.Tenant = t
	}
	return &out, nil
}

func (m *Memory) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.TenantID == user.TenantID && u.Email == user.Email {
			return ErrDuplicate
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = *user
	return nil
}

func (m *Memory) FindIdentityByProvider(_ context.Context, provider, providerID string) (*models.UserIdentity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.identities {
		if id.Provider == provider && id.ProviderID == providerID {
			out := id
			if u, ok := m.users[id.UserID]; ok {
				out.User = u
			}
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) CreateIdentity(_ context.Context, identity *models.UserIdentity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.identities {
		if id.UserID == identity.UserID {
			return ErrDuplicate
		}
		if id.Provider == identity.Provider && id.ProviderID == identity.ProviderID {
			return ErrDuplicate
		}
	}
	if identity.ID == uuid.Nil {
		identity.ID = uuid.New()
	}
	m.identities[identity.ID] = *identity
	return nil
}

func (m *Memory) UpdateIdentityPasswordHash(_ context.Context, identityID uuid.UUID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.identities[identityID]
	if !ok {
		return ErrNotFound
	}
	id.PasswordHash = &hash
	m.identities[identityID] = id
	return nil
}

// Transaction snapshots all tables and restores them if fn fails.
func (m *Memory) Transaction(_ context.Context, fn func(tx Store) error) error {
	m.mu.Lock()
	snapLicenses := cloneMap(m.licenses)
	snapTenants := cloneMap(m.tenants)
	snapUsers := cloneMap(m.users)
	snapIdentities := cloneMap(m.identities)
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.licenses = snapLicenses
		m.tenants = snapTenants
		m.users = snapUsers
		m.identities = snapIdentities
		m.mu.Unlock()
		return err
	}
	return nil
}

// CountTenants reports table size for side-effect assertions in tests.
func (m *Memory) CountTenants() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tenants)
}

func (m *Memory) CountUsers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

func (m *Memory) CountIdentities() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.identities)
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
