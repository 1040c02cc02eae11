package actors

import (
	"context"
	"sync"

	"sloboda/internal/models"
	"sloboda/internal/utils"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the database adapter. It mirrors
// the vote toggle and soft-delete semantics of the real one.
type fakeStore struct {
	mu            sync.Mutex
	threads       map[uuid.UUID]*models.Thread
	comments      map[uuid.UUID]*models.Comment
	roles         map[uuid.UUID]*models.UserRole
	votes         map[uuid.UUID]map[uuid.UUID]int // target -> user -> value
	notifications []*models.Notification
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		threads:  make(map[uuid.UUID]*models.Thread),
		comments: make(map[uuid.UUID]*models.Comment),
		roles:    make(map[uuid.UUID]*models.UserRole),
		votes:    make(map[uuid.UUID]map[uuid.UUID]int),
	}
}

func (f *fakeStore) addUser(role models.Role) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.roles[id] = &models.UserRole{UserID: id, Role: role}
	return id
}

func (f *fakeStore) SaveThread(_ context.Context, thread *models.Thread) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.threads[thread.ID] = thread
	return nil
}

func (f *fakeStore) GetThread(_ context.Context, id uuid.UUID, _ uuid.UUID) (*models.Thread, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	thread, ok := f.threads[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrThreadNotFound, "thread not found", nil)
	}
	copied := *thread
	return &copied, nil
}

func (f *fakeStore) UpdateThreadContent(_ context.Context, id uuid.UUID, title, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.threads[id].Title = title
	f.threads[id].Body = body
	return nil
}

func (f *fakeStore) SetThreadPinned(_ context.Context, id uuid.UUID, pinned bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.threads[id].IsPinned = pinned
	return nil
}

func (f *fakeStore) SetThreadLocked(_ context.Context, id uuid.UUID, locked bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.threads[id].IsLocked = locked
	return nil
}

func (f *fakeStore) SoftDeleteThread(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.threads[id].IsDeleted = true
	return nil
}

func (f *fakeStore) SetThreadTags(_ context.Context, id uuid.UUID, tags []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.threads[id].Tags = tags
	return nil
}

func (f *fakeStore) SaveComment(_ context.Context, comment *models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comments[comment.ID] = comment
	if thread, ok := f.threads[comment.ThreadID]; ok {
		thread.CommentCount++
	}
	return nil
}

func (f *fakeStore) GetComment(_ context.Context, id uuid.UUID) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment, ok := f.comments[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrCommentNotFound, "comment not found", nil)
	}
	copied := *comment
	return &copied, nil
}

func (f *fakeStore) UpdateCommentBody(_ context.Context, id uuid.UUID, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comments[id].Body = body
	return nil
}

func (f *fakeStore) SoftDeleteComment(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comments[id].IsDeleted = true
	return nil
}

func (f *fakeStore) GetUserRole(_ context.Context, userID uuid.UUID) (*models.UserRole, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	role, ok := f.roles[userID]
	if !ok {
		return nil, utils.NewAppError(utils.ErrUserNotFound, "user not found", nil)
	}
	copied := *role
	return &copied, nil
}

func (f *fakeStore) SetUserRole(_ context.Context, userID uuid.UUID, role models.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roles[userID].Role = role
	return nil
}

func (f *fakeStore) RecordVote(_ context.Context, userID, targetID uuid.UUID, _ models.VoteTargetType, value int) (*models.VoteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.votes[targetID] == nil {
		f.votes[targetID] = make(map[uuid.UUID]int)
	}
	userVote := value
	if f.votes[targetID][userID] == value {
		delete(f.votes[targetID], userID)
		userVote = models.VoteNone
	} else {
		f.votes[targetID][userID] = value
	}
	count := 0
	for _, v := range f.votes[targetID] {
		count += v
	}
	if thread, ok := f.threads[targetID]; ok {
		thread.VoteCount = count
	}
	if comment, ok := f.comments[targetID]; ok {
		comment.VoteCount = count
	}
	return &models.VoteResult{TargetID: targetID.String(), VoteCount: count, UserVote: userVote}, nil
}

func (f *fakeStore) SaveNotification(_ context.Context, n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, n)
	return nil
}

// fakeNotifier records pushes so tests can assert delivery.
type fakeNotifier struct {
	mu     sync.Mutex
	pushes []uuid.UUID
}

func (f *fakeNotifier) Push(userID uuid.UUID, _ *models.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushes = append(f.pushes, userID)
}
