package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"minitweet/internal/model"
)

// =============================================================================
// IN-MEMORY REPOSITORIES
// =============================================================================
//
// These fakes mirror the storage guarantees the services rely on: unique
// emails, unique follow edges and DELETE reporting missing rows. Each has
// optional error hooks so a test can simulate a failing database.

type mockUserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User

	createFn     func(ctx context.Context, user *model.User) error
	getByEmailFn func(ctx context.Context, email string) (*model.User, error)
	existsErr    error

	createCalls int
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[int64]*model.User)}
}

func (m *mockUserRepository) add(name, email, hash string) *model.User {
	u := &model.User{Name: name, Email: email, PasswordHashed: hash}
	if err := m.Create(context.Background(), u); err != nil {
		panic(err)
	}
	m.createCalls--
	return u
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return model.ErrEmailExists
		}
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.users[id]
	return ok, nil
}

type edge struct{ follower, followee int64 }

type mockFollowRepository struct {
	mu    sync.Mutex
	edges map[edge]time.Time

	createErr error
}

func newMockFollowRepository() *mockFollowRepository {
	return &mockFollowRepository{edges: make(map[edge]time.Time)}
}

func (m *mockFollowRepository) Create(ctx context.Context, followerID, followeeID int64) (*model.Follow, bool, error) {
	if m.createErr != nil {
		return nil, false, m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e := edge{followerID, followeeID}
	if _, ok := m.edges[e]; ok {
		return nil, false, nil
	}
	now := time.Now()
	m.edges[e] = now
	return &model.Follow{FollowerID: followerID, FolloweeID: followeeID, CreatedAt: now}, true, nil
}

func (m *mockFollowRepository) Delete(ctx context.Context, followerID, followeeID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := edge{followerID, followeeID}
	if _, ok := m.edges[e]; !ok {
		return model.ErrNotFollowing
	}
	delete(m.edges, e)
	return nil
}

func (m *mockFollowRepository) Exists(ctx context.Context, followerID, followeeID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.edges[edge{followerID, followeeID}]
	return ok, nil
}

func (m *mockFollowRepository) GetFollowerIDs(ctx context.Context, userID int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []int64
	for e := range m.edges {
		if e.followee == userID {
			ids = append(ids, e.follower)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *mockFollowRepository) GetFolloweeIDs(ctx context.Context, userID int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []int64
	for e := range m.edges {
		if e.follower == userID {
			ids = append(ids, e.followee)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type mockPostRepository struct {
	mu     sync.Mutex
	nextID int64
	posts  []model.Post
	// clock makes created_at deterministic; every post shares the same
	// timestamp unless a test advances it, exercising the id tie-break.
	clock time.Time

	getByAuthorsCalls int
}

func newMockPostRepository() *mockPostRepository {
	return &mockPostRepository{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *mockPostRepository) Create(ctx context.Context, userID int64, content string) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	p := model.Post{ID: m.nextID, UserID: userID, Content: content, CreatedAt: m.clock}
	m.posts = append(m.posts, p)
	return &p, nil
}

func (m *mockPostRepository) GetByAuthors(ctx context.Context, authorIDs []int64) ([]model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getByAuthorsCalls++
	authors := make(map[int64]bool, len(authorIDs))
	for _, id := range authorIDs {
		authors[id] = true
	}
	out := []model.Post{}
	for _, p := range m.posts {
		if authors[p.UserID] {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// =============================================================================
// IN-MEMORY CACHE
// =============================================================================

type mockTimelineCache struct {
	mu          sync.Mutex
	entries     map[int64][]model.Post
	versions    map[int64]int64
	invalidated []int64
	staleWrites int
}

func newMockTimelineCache() *mockTimelineCache {
	return &mockTimelineCache{
		entries:  make(map[int64][]model.Post),
		versions: make(map[int64]int64),
	}
}

func (m *mockTimelineCache) Get(ctx context.Context, userID int64) ([]model.Post, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	posts, ok := m.entries[userID]
	return posts, ok, nil
}

func (m *mockTimelineCache) Version(ctx context.Context, userID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.versions[userID], nil
}

func (m *mockTimelineCache) Set(ctx context.Context, userID, version int64, posts []model.Post) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.versions[userID] != version {
		m.staleWrites++
		return false, nil
	}
	m.entries[userID] = posts
	return true, nil
}

func (m *mockTimelineCache) Invalidate(ctx context.Context, userIDs ...int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range userIDs {
		m.versions[id]++
		delete(m.entries, id)
		m.invalidated = append(m.invalidated, id)
	}
	return nil
}

// interleavingPostRepository runs afterRead once, right after the first
// GetByAuthors has read its rows, to simulate a write racing timeline
// assembly.
type interleavingPostRepository struct {
	*mockPostRepository
	afterRead func()
}

func (r *interleavingPostRepository) GetByAuthors(ctx context.Context, authorIDs []int64) ([]model.Post, error) {
	posts, err := r.mockPostRepository.GetByAuthors(ctx, authorIDs)
	if r.afterRead != nil {
		hook := r.afterRead
		r.afterRead = nil
		hook()
	}
	return posts, err
}
