package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/pennyhq/penny/penny-backend/internal/repository/storage"
	"github.com/pennyhq/penny/penny-backend/internal/util"
	"github.com/rs/zerolog/log"
)

const (
	// PresignExpiry is how long handed-out file URLs stay valid
	PresignExpiry = time.Hour

	// activityFlushInterval throttles last-active writes to the profiles table
	activityFlushInterval = time.Minute
)

// ProfileView is the public shape of a user's profile
type ProfileView struct {
	ID        int32   `json:"id"`
	Email     string  `json:"email"`
	FullName  string  `json:"fullName"`
	AvatarURL *string `json:"avatarUrl"`
}

// UserSummary is one entry of the user directory
type UserSummary struct {
	ID         int32      `json:"id"`
	Email      string     `json:"email"`
	FullName   string     `json:"fullName"`
	AvatarURL  *string    `json:"avatarUrl"`
	LastActive *time.Time `json:"lastActive"`
	Status     string     `json:"status"`
}

// ConnectionTracker reports users holding a live event stream
type ConnectionTracker interface {
	Online(userID int32) bool
}

// UserService handles the user directory, profiles and presence
type UserService struct {
	userRepo    domain.UserRepository
	profileRepo domain.ProfileRepository
	presence    domain.PresenceRepository
	files       storage.FileRepository
	connections ConnectionTracker
	now         func() time.Time

	mu         sync.Mutex
	lastFlush  map[int32]time.Time
	lastPruned time.Time
}

// NewUserService creates a new UserService. presence and files may be nil.
func NewUserService(userRepo domain.UserRepository, profileRepo domain.ProfileRepository, presence domain.PresenceRepository, files storage.FileRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		presence:    presence,
		files:       files,
		now:         time.Now,
		lastFlush:   make(map[int32]time.Time),
	}
}

// SetConnectionTracker lets users with an open live stream show as online
func (s *UserService) SetConnectionTracker(connections ConnectionTracker) {
	s.connections = connections
}

// RecordActivity marks the user as active now. The presence store is updated
// on every call, the profiles table at most once per flush interval.
func (s *UserService) RecordActivity(userID int32) {
	now := s.now().UTC()

	if s.presence != nil {
		if err := s.presence.Touch(userID, now); err != nil {
			log.Warn().Err(err).Int32("user_id", userID).Msg("Failed to record presence")
		}
	}

	s.mu.Lock()
	s.pruneFlushesLocked(now)
	last, seen := s.lastFlush[userID]
	due := !seen || now.Sub(last) >= activityFlushInterval
	if due {
		s.lastFlush[userID] = now
	}
	s.mu.Unlock()

	if !due {
		return
	}
	if err := s.profileRepo.TouchLastActive(userID, now); err != nil {
		log.Warn().Err(err).Int32("user_id", userID).Msg("Failed to update last active")
	}
}

// pruneFlushesLocked forgets users whose last flush is past the interval.
// Forgetting them only means their next activity is written straight away.
func (s *UserService) pruneFlushesLocked(now time.Time) {
	if now.Sub(s.lastPruned) < activityFlushInterval {
		return
	}
	for id, at := range s.lastFlush {
		if now.Sub(at) >= activityFlushInterval {
			delete(s.lastFlush, id)
		}
	}
	s.lastPruned = now
}

// ListUsers returns every user with a human readable presence status
func (s *UserService) ListUsers(ctx context.Context) ([]*UserSummary, error) {
	users, err := s.userRepo.ListWithProfiles()
	if err != nil {
		return nil, err
	}

	var seen map[int32]time.Time
	if s.presence != nil && len(users) > 0 {
		ids := make([]int32, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		seen, err = s.presence.LastSeen(ids)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to read presence, falling back to stored activity")
			seen = nil
		}
	}

	now := s.now()
	result := make([]*UserSummary, 0, len(users))
	for _, u := range users {
		lastActive := u.Profile.LastActive
		if at, ok := seen[u.ID]; ok && (lastActive == nil || at.After(*lastActive)) {
			at := at
			lastActive = &at
		}
		if s.connections != nil && s.connections.Online(u.ID) {
			at := now
			lastActive = &at
		}

		result = append(result, &UserSummary{
			ID:         u.ID,
			Email:      u.Email,
			FullName:   u.Profile.FullName,
			AvatarURL:  s.avatarURL(ctx, u.Profile.AvatarKey),
			LastActive: lastActive,
			Status:     util.TimeAgo(lastActive, now),
		})
	}
	return result, nil
}

// GetProfile returns the public profile of a user
func (s *UserService) GetProfile(ctx context.Context, userID int32) (*ProfileView, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.toView(ctx, user, profile), nil
}

// UpdateProfile changes the display name. Only the owner may update a profile.
func (s *UserService) UpdateProfile(ctx context.Context, actorID, userID int32, fullName string) (*ProfileView, error) {
	if actorID != userID {
		return nil, domain.ErrForbidden
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, domain.ErrNameRequired
	}
	if len(fullName) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.UpdateFullName(userID, fullName)
	if err != nil {
		return nil, err
	}
	return s.toView(ctx, user, profile), nil
}

func (s *UserService) toView(ctx context.Context, user *domain.User, profile *domain.Profile) *ProfileView {
	return &ProfileView{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  profile.FullName,
		AvatarURL: s.avatarURL(ctx, profile.AvatarKey),
	}
}

func (s *UserService) avatarURL(ctx context.Context, key *string) *string {
	if key == nil || *key == "" || s.files == nil {
		return nil
	}
	url, err := s.files.GeneratePresignedURL(ctx, *key, PresignExpiry)
	if err != nil {
		log.Warn().Err(err).Str("key", *key).Msg("Failed to presign avatar URL")
		return nil
	}
	return &url
}
