package testhelpers

import (
	"context"
	"strconv"
	"sync"
	"time"

	"planit/internal/models"
	"planit/internal/repositories"
)

// MemoryStore is an in-memory ProfileStore that enforces the same unique
// constraints as the real backends and counts writes.
type MemoryStore struct {
	mu       sync.Mutex
	seq      int
	writes   int
	users    map[models.ID]*models.User
	planners map[models.ID]*models.Planner
	vendors  map[models.ID]*models.Vendor

	// PingErr is returned by Ping when set.
	PingErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    map[models.ID]*models.User{},
		planners: map[models.ID]*models.Planner{},
		vendors:  map[models.ID]*models.Vendor{},
	}
}

var _ repositories.ProfileStore = (*MemoryStore)(nil)

// Writes returns how many create and update calls reached the store.
func (s *MemoryStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Planners returns every stored planner.
func (s *MemoryStore) Planners() []models.Planner {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Planner, 0, len(s.planners))
	for _, p := range s.planners {
		out = append(out, *p)
	}
	return out
}

// Vendors returns every stored vendor.
func (s *MemoryStore) Vendors() []models.Vendor {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Vendor, 0, len(s.vendors))
	for _, v := range s.vendors {
		out = append(out, *v)
	}
	return out
}

func (s *MemoryStore) nextID() models.ID {
	s.seq++
	return models.ID(strconv.Itoa(s.seq))
}

func (s *MemoryStore) Ping(context.Context) error  { return s.PingErr }
func (s *MemoryStore) Close(context.Context) error { return nil }

func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	for _, u := range s.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.ID = s.nextID()
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *MemoryStore) GetUserByID(_ context.Context, id models.ID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *MemoryStore) UpdateUser(_ context.Context, id models.ID, patch models.UserPatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	u, ok := s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.Phone != nil {
		phone := *patch.Phone
		u.Phone = &phone
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	u.UpdatedAt = time.Now()
	out := *u
	return &out, nil
}

func (s *MemoryStore) CreatePlanner(_ context.Context, planner *models.Planner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	for _, p := range s.planners {
		if p.UserID == planner.UserID {
			return repositories.ErrDuplicate
		}
	}
	planner.ID = s.nextID()
	stored := *planner
	s.planners[planner.ID] = &stored
	return nil
}

func (s *MemoryStore) GetPlannerByID(_ context.Context, id models.ID) (*models.Planner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.planners[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (s *MemoryStore) FindPlannerByUserID(_ context.Context, userID models.ID) (*models.Planner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.planners {
		if p.UserID == userID {
			out := *p
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *MemoryStore) UpdatePlanner(_ context.Context, id models.ID, patch models.PlannerPatch) (*models.Planner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	p, ok := s.planners[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	patch.Apply(p)
	p.UpdatedAt = time.Now()
	out := *p
	return &out, nil
}

func (s *MemoryStore) CreateVendor(_ context.Context, vendor *models.Vendor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	for _, v := range s.vendors {
		if v.UserID == vendor.UserID {
			return repositories.ErrDuplicate
		}
	}
	vendor.ID = s.nextID()
	stored := *vendor
	s.vendors[vendor.ID] = &stored
	return nil
}

func (s *MemoryStore) GetVendorByID(_ context.Context, id models.ID) (*models.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vendors[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *v
	return &out, nil
}

func (s *MemoryStore) FindVendorByUserID(_ context.Context, userID models.ID) (*models.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.vendors {
		if v.UserID == userID {
			out := *v
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *MemoryStore) UpdateVendor(_ context.Context, id models.ID, patch models.VendorPatch) (*models.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	v, ok := s.vendors[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	patch.Apply(v)
	v.UpdatedAt = time.Now()
	out := *v
	return &out, nil
}
