package watchlist

import (
	"context"
	"fmt"

	"watchtrack/errs"
	"watchtrack/movie"
	"watchtrack/user"
)

var (
	ErrWatchListNotFound = errs.Errorf(errs.ENOTFOUND, "watchlist not found")
	ErrUsersMustExist    = errs.Errorf(errs.ENOTFOUND, "Both users must exist before comparing watchlists.")
)

type Service interface {
	Add(ctx context.Context, username string, list ListRef, movieID string) (AddResult, error)
	Compare(ctx context.Context, baseUsername, targetUsername string) (CompareResult, error)
}

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (user.User, error)
	Save(ctx context.Context, u user.User) error
}

// Catalog is the slice of the catalog port this usecase needs.
type Catalog interface {
	FindByID(ctx context.Context, id string) (movie.Movie, error)
}

// ListRef targets one of a user's lists, by id when set, otherwise by name.
type ListRef struct {
	ID   string
	Name string
}

type AddResult struct {
	Message string `json:"message"`
}

// CompareResult partitions two users' aggregated watchlist movies by id
// membership. The three lists are disjoint by id.
type CompareResult struct {
	Common     []movie.Movie `json:"common"`
	BaseOnly   []movie.Movie `json:"base_only"`
	TargetOnly []movie.Movie `json:"target_only"`
}

type Usecase struct {
	users   UserRepository
	catalog Catalog
}

func NewUsecase(users UserRepository, catalog Catalog) *Usecase {
	return &Usecase{users: users, catalog: catalog}
}

// Add puts the movie on the targeted list. Adding a movie already on that
// list is a no-op success.
func (uc *Usecase) Add(ctx context.Context, username string, list ListRef, movieID string) (AddResult, error) {
	u, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return AddResult{}, err
	}

	m, err := uc.catalog.FindByID(ctx, movieID)
	if err != nil {
		return AddResult{}, err
	}

	var wl *user.WatchList
	if list.ID != "" {
		wl = u.WatchListByID(list.ID)
	} else {
		wl = u.WatchListByName(list.Name)
	}
	if wl == nil {
		return AddResult{}, ErrWatchListNotFound
	}

	if wl.Contains(m.ID) {
		return AddResult{Message: fmt.Sprintf("%s is already in %s.", m.Title, wl.Name)}, nil
	}

	wl.Add(m)
	if err := uc.users.Save(ctx, u); err != nil {
		return AddResult{}, err
	}

	return AddResult{Message: fmt.Sprintf("%s added to %s.", m.Title, wl.Name)}, nil
}

// Compare aggregates each user's movies across all of their watchlists and
// partitions them by id membership. The per-user aggregation is a flat
// concatenation, so a movie on two of the base user's own lists shows up
// twice; iteration order follows the base aggregate. No persistence happens.
func (uc *Usecase) Compare(ctx context.Context, baseUsername, targetUsername string) (CompareResult, error) {
	base, err := uc.users.GetByUsername(ctx, baseUsername)
	if err != nil {
		return CompareResult{}, compareLookupError(err)
	}
	target, err := uc.users.GetByUsername(ctx, targetUsername)
	if err != nil {
		return CompareResult{}, compareLookupError(err)
	}

	baseMovies := base.AllWatchListMovies()
	targetMovies := target.AllWatchListMovies()

	baseIDs := idSet(baseMovies)
	targetIDs := idSet(targetMovies)

	result := CompareResult{}
	for _, m := range baseMovies {
		if targetIDs[m.ID] {
			result.Common = append(result.Common, m)
		} else {
			result.BaseOnly = append(result.BaseOnly, m)
		}
	}
	for _, m := range targetMovies {
		if !baseIDs[m.ID] {
			result.TargetOnly = append(result.TargetOnly, m)
		}
	}

	return result, nil
}

// compareLookupError collapses a missing user on either side into one
// combined error that does not say which side was absent.
func compareLookupError(err error) error {
	if errs.ErrorCode(err) == errs.ENOTFOUND {
		return ErrUsersMustExist
	}
	return err
}

func idSet(movies []movie.Movie) map[string]bool {
	set := make(map[string]bool, len(movies))
	for _, m := range movies {
		set[m.ID] = true
	}
	return set
}
