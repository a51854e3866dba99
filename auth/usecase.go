package auth

import (
	"context"
	"strings"

	"watchtrack/errs"
	"watchtrack/session"
	"watchtrack/user"
)

var (
	ErrInvalidCredentials = errs.Errorf(errs.EUNAUTHORIZED, "invalid credentials")
	ErrEmptyPassword      = errs.Errorf(errs.EINVALID, "new password must not be empty")
)

type Service interface {
	Login(ctx context.Context, username, password string) (LoginResult, error)
	Logout(ctx context.Context) LogoutResult
	ChangePassword(ctx context.Context, username, newPassword string) error
}

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (user.User, error)
	Save(ctx context.Context, u user.User) error
}

// WatchListSummary is the id/name pair reported to the presenter on login.
type WatchListSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type LoginResult struct {
	Username   string             `json:"username"`
	WatchLists []WatchListSummary `json:"watchlists"`
}

type LogoutResult struct {
	// Username is the identity that was active, empty when none was.
	Username string `json:"username"`
}

type Usecase struct {
	users UserRepository
}

func NewUsecase(users UserRepository) *Usecase {
	return &Usecase{users: users}
}

// Login checks the stored password verbatim (case-sensitive, no hashing) and
// returns the user's watchlist ids and names in list order.
func (uc *Usecase) Login(ctx context.Context, username, password string) (LoginResult, error) {
	u, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return LoginResult{}, err
	}

	if u.Password != password {
		return LoginResult{}, ErrInvalidCredentials
	}

	summaries := make([]WatchListSummary, len(u.WatchLists))
	for i, wl := range u.WatchLists {
		summaries[i] = WatchListSummary{ID: wl.ID, Name: wl.Name}
	}

	return LoginResult{Username: u.Username, WatchLists: summaries}, nil
}

// Logout always succeeds. It reports the identity found in the calling
// context, empty when no session was active.
func (uc *Usecase) Logout(ctx context.Context) LogoutResult {
	return LogoutResult{Username: session.Username(ctx)}
}

// ChangePassword replaces the user's credential. The old password is not
// verified; the transport layer gates the endpoint behind an authenticated
// session.
func (uc *Usecase) ChangePassword(ctx context.Context, username, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return ErrEmptyPassword
	}

	u, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	u.Password = newPassword
	return uc.users.Save(ctx, u)
}
