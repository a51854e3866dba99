package httpserver

import (
	"time"

	"watchtrack/history"
	"watchtrack/watchlist"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required,notblank,max=100"`
	Password string `json:"password" validate:"required,max=72"`
}

type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,notblank,max=72"`
}

type AddToWatchListRequest struct {
	MovieID  string `json:"movieId" validate:"required,notblank"`
	ListID   string `json:"listId" validate:"omitempty,uuid4"`
	ListName string `json:"listName" validate:"omitempty,max=100"`
}

func (r AddToWatchListRequest) ToListRef() watchlist.ListRef {
	return watchlist.ListRef{
		ID:   r.ListID,
		Name: r.ListName,
	}
}

type RecordWatchRequest struct {
	MovieID   string     `json:"movieId" validate:"required,notblank"`
	WatchedAt *time.Time `json:"watchedAt" validate:"omitempty"`
}

type EditWatchedMovieRequest struct {
	WatchedAt *time.Time `json:"watchedAt" validate:"omitempty"`
	Rating    *int       `json:"rating" validate:"omitempty,min=1,max=5"`
	Review    *string    `json:"review" validate:"omitempty,max=2000"`
}

func (r EditWatchedMovieRequest) ToEditInput() history.EditInput {
	return history.EditInput{
		WatchedAt: r.WatchedAt,
		Rating:    r.Rating,
		Review:    r.Review,
	}
}

type ReviewMovieRequest struct {
	MovieID string `json:"movieId" validate:"required,notblank"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}
