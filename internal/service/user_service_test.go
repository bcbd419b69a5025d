package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/pennyhq/penny/penny-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserServiceForTest(now time.Time) (*UserService, *testutil.MockUserRepository, *testutil.MockPresenceRepository) {
	users := testutil.NewMockUserRepository()
	presence := testutil.NewMockPresenceRepository()
	svc := NewUserService(users, users, presence, testutil.NewMockFileRepository())
	svc.now = func() time.Time { return now }
	return svc, users, presence
}

func TestUserService_ListUsers_Status(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	svc, users, presence := newUserServiceForTest(now)

	users.AddUser(&domain.User{ID: 1, Email: "a@example.com"}, "Alice")
	users.AddUser(&domain.User{ID: 2, Email: "b@example.com"}, "Bob")
	users.AddUser(&domain.User{ID: 3, Email: "c@example.com"}, "Carol")

	stored := now.Add(-3 * time.Hour)
	users.Profiles[2].LastActive = &stored
	presence.Seen[1] = now.Add(-10 * time.Second)
	presence.Seen[2] = now.Add(-5 * time.Minute)
	key := "1/avatars/x_avatar.jpg"
	users.Profiles[1].AvatarKey = &key

	list, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "Online just now", list[0].Status)
	require.NotNil(t, list[0].AvatarURL)
	assert.Contains(t, *list[0].AvatarURL, key)
	assert.Equal(t, "5 minutes ago", list[1].Status)
	assert.Equal(t, "Offline", list[2].Status)
	assert.Nil(t, list[2].LastActive)
}

func TestUserService_RecordActivity_ThrottlesProfileWrites(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	svc, users, presence := newUserServiceForTest(now)
	users.AddUser(&domain.User{ID: 1, Email: "a@example.com"}, "Alice")

	svc.RecordActivity(1)
	require.NotNil(t, users.Profiles[1].LastActive)
	assert.Equal(t, now, *users.Profiles[1].LastActive)

	later := now.Add(20 * time.Second)
	svc.now = func() time.Time { return later }
	svc.RecordActivity(1)

	assert.Equal(t, now, *users.Profiles[1].LastActive, "profile write should be throttled")
	assert.Equal(t, later, presence.Seen[1], "presence should always be refreshed")

	muchLater := now.Add(2 * time.Minute)
	svc.now = func() time.Time { return muchLater }
	svc.RecordActivity(1)
	assert.Equal(t, muchLater, *users.Profiles[1].LastActive)
}

func TestUserService_RecordActivity_PrunesStaleFlushes(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	svc, users, _ := newUserServiceForTest(now)
	for id := int32(1); id <= 50; id++ {
		users.AddUser(&domain.User{ID: id, Email: fmt.Sprintf("u%d@example.com", id)}, "User")
		svc.RecordActivity(id)
	}
	require.Len(t, svc.lastFlush, 50)

	svc.now = func() time.Time { return now.Add(5 * time.Minute) }
	svc.RecordActivity(1)

	assert.Len(t, svc.lastFlush, 1, "only the user active since the last interval is tracked")
	assert.Contains(t, svc.lastFlush, int32(1))
}

type onlineSet map[int32]bool

func (o onlineSet) Online(userID int32) bool { return o[userID] }

func TestUserService_ListUsers_LiveStreamMeansOnline(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	svc, users, _ := newUserServiceForTest(now)
	svc.SetConnectionTracker(onlineSet{2: true})

	users.AddUser(&domain.User{ID: 1, Email: "a@example.com"}, "Alice")
	users.AddUser(&domain.User{ID: 2, Email: "b@example.com"}, "Bob")
	stale := now.Add(-2 * time.Hour)
	users.Profiles[2].LastActive = &stale

	list, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "Offline", list[0].Status)
	assert.Equal(t, "Online just now", list[1].Status)
	require.NotNil(t, list[1].LastActive)
	assert.Equal(t, now, *list[1].LastActive)
}

func TestUserService_UpdateProfile(t *testing.T) {
	svc, users, _ := newUserServiceForTest(time.Now())
	users.AddUser(&domain.User{ID: 1, Email: "a@example.com"}, "Alice")

	view, err := svc.UpdateProfile(context.Background(), 1, 1, "  Alice Smith ")
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", view.FullName)
	assert.Nil(t, view.AvatarURL)

	_, err = svc.UpdateProfile(context.Background(), 2, 1, "Mallory")
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	_, err = svc.UpdateProfile(context.Background(), 1, 1, " ")
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = svc.GetProfile(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
