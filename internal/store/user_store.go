package store

import (
	"context"
	"sync"

	"auction-client/internal/api"
	"auction-client/internal/models"
	"auction-client/internal/navigation"
	"auction-client/utils"
)

const (
	userStatusPath = "/api/user/status/"
	profilePath    = "/api/profile/"
	logoutPath     = "/logout/"
)

// UserState is a point-in-time copy of the auth container.
type UserState struct {
	User            *models.User
	IsAuthenticated bool
	Loading         bool
	Error           string
}

// UserStore holds the current session's identity. It starts
// unauthenticated and is populated once per app load by FetchUser.
type UserStore struct {
	Observable

	api api.Requester
	nav navigation.Navigator

	mu    sync.RWMutex
	state UserState
}

// NewUserStore creates an unauthenticated UserStore.
func NewUserStore(requester api.Requester, nav navigation.Navigator) *UserStore {
	return &UserStore{api: requester, nav: nav}
}

// State returns a copy of the current state.
func (s *UserStore) State() UserState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state
	if st.User != nil {
		user := *st.User
		st.User = &user
	}
	return st
}

func (s *UserStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

// Username returns the signed-in username, or "Guest".
func (s *UserStore) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return "Guest"
	}
	return s.state.User.Username
}

func (s *UserStore) ProfileImage() *string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return nil
	}
	return s.state.User.ProfileImage
}

func (s *UserStore) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return ""
	}
	return s.state.User.Email
}

// FetchUser loads the session status. Any failure leaves the store
// unauthenticated with no user, whatever a previous fetch returned.
func (s *UserStore) FetchUser(ctx context.Context) {
	s.update(func(st *UserState) {
		st.Loading = true
		st.Error = ""
	})
	defer s.update(func(st *UserState) { st.Loading = false })

	var resp models.UserStatusResponse
	if err := s.api.Get(ctx, userStatusPath, &resp); err != nil {
		msg := errorMessage(err, "Failed to fetch user")
		utils.Warn("FetchUser: failed", map[string]any{"error": msg})
		s.update(func(st *UserState) {
			st.Error = msg
			st.IsAuthenticated = false
			st.User = nil
		})
		return
	}

	s.update(func(st *UserState) {
		st.User = resp.User
		st.IsAuthenticated = resp.Authenticated
	})
}

// UpdateProfile sends the profile form and replaces the stored user with
// the server's copy. With a profile image the request is multipart and only
// set fields are included; otherwise it is JSON.
func (s *UserStore) UpdateProfile(ctx context.Context, form models.UpdateProfileForm) error {
	s.update(func(st *UserState) {
		st.Loading = true
		st.Error = ""
	})
	defer s.update(func(st *UserState) { st.Loading = false })

	var payload any = form
	if form.ProfileImage != nil {
		payload = api.NewForm().
			SetIfNotEmpty("email", form.Email).
			SetIfNotEmpty("date_of_birth", form.DateOfBirth).
			AttachFile("profile_image", *form.ProfileImage)
	}

	var updated models.User
	if err := s.api.Put(ctx, profilePath, payload, &updated); err != nil {
		msg := errorMessage(err, "Failed to update profile")
		utils.Warn("UpdateProfile: failed", map[string]any{"error": msg})
		s.update(func(st *UserState) { st.Error = msg })
		return err
	}

	s.update(func(st *UserState) { st.User = &updated })
	return nil
}

// Logout navigates to the backend's logout page. State is re-derived by the
// next app load, so nothing is cleared here.
func (s *UserStore) Logout() {
	s.nav.Redirect(logoutPath)
}

func (s *UserStore) ClearError() {
	s.update(func(st *UserState) { st.Error = "" })
}

func (s *UserStore) update(fn func(st *UserState)) {
	s.mu.Lock()
	fn(&s.state)
	s.mu.Unlock()
	s.notify()
}
