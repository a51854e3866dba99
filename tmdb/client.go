// Package tmdb implements the movie.Catalog port against the TMDB HTTP API.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"watchtrack/errs"
	"watchtrack/movie"
)

const posterBaseURL = "https://image.tmdb.org/t/p/w500"

// Client is the TMDB API client.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new TMDB API client.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ---- TMDB response types (internal, not exposed to consumers) ----

type searchResponse struct {
	Page         int         `json:"page"`
	Results      []tmdbMovie `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

type tmdbMovie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Popularity  float64 `json:"popularity"`
	PosterPath  string  `json:"poster_path"`
	GenreIDs    []int   `json:"genre_ids"`
}

type tmdbMovieDetail struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Popularity  float64 `json:"popularity"`
	PosterPath  string  `json:"poster_path"`
	Genres      []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

// ---- movie.Catalog implementation ----

// SearchByTitle fetches one page of title matches.
func (c *Client) SearchByTitle(ctx context.Context, query string, page int) (movie.PagedResult, error) {
	endpoint := fmt.Sprintf(
		"%s/search/movie?api_key=%s&query=%s&page=%d",
		c.baseURL, c.apiKey, url.QueryEscape(query), page,
	)

	slog.Debug("fetching TMDB search", "query", query, "page", page)
	body, err := c.doGet(ctx, endpoint)
	if err != nil {
		return movie.PagedResult{}, err
	}
	defer body.Close()

	var result searchResponse
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return movie.PagedResult{}, errs.Errorf(errs.ECATALOGUNKNOWN, "decode search response: %v", err)
	}

	movies := make([]movie.Movie, len(result.Results))
	for i, m := range result.Results {
		movies[i] = toDomainMovie(m)
	}

	return movie.PagedResult{
		Movies:     movies,
		Page:       result.Page,
		TotalPages: result.TotalPages,
	}, nil
}

// FindByID fetches a single movie. A catalog 404 maps to movie.ErrMovieNotFound.
func (c *Client) FindByID(ctx context.Context, id string) (movie.Movie, error) {
	endpoint := fmt.Sprintf("%s/movie/%s?api_key=%s", c.baseURL, url.PathEscape(id), c.apiKey)

	slog.Debug("fetching TMDB movie detail", "movie_id", id)
	body, err := c.doGet(ctx, endpoint)
	if err != nil {
		return movie.Movie{}, err
	}
	defer body.Close()

	var detail tmdbMovieDetail
	if err := json.NewDecoder(body).Decode(&detail); err != nil {
		return movie.Movie{}, errs.Errorf(errs.ECATALOGUNKNOWN, "decode movie detail response: %v", err)
	}

	genreIDs := make([]int, len(detail.Genres))
	for i, g := range detail.Genres {
		genreIDs[i] = g.ID
	}

	return movie.Movie{
		ID:          strconv.Itoa(detail.ID),
		Title:       detail.Title,
		Overview:    detail.Overview,
		GenreIDs:    genreIDs,
		ReleaseDate: detail.ReleaseDate,
		Rating:      detail.VoteAverage,
		Popularity:  detail.Popularity,
		PosterURL:   posterURL(detail.PosterPath),
	}, nil
}

// FilterByGenres fetches catalog movies tagged with all of the given genres.
func (c *Client) FilterByGenres(ctx context.Context, genreIDs []int) ([]movie.Movie, error) {
	ids := make([]string, len(genreIDs))
	for i, id := range genreIDs {
		ids[i] = strconv.Itoa(id)
	}
	endpoint := fmt.Sprintf(
		"%s/discover/movie?api_key=%s&with_genres=%s&sort_by=popularity.desc",
		c.baseURL, c.apiKey, strings.Join(ids, ","),
	)

	slog.Debug("fetching TMDB discover", "genre_ids", genreIDs)
	body, err := c.doGet(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var result searchResponse
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, errs.Errorf(errs.ECATALOGUNKNOWN, "decode discover response: %v", err)
	}

	movies := make([]movie.Movie, len(result.Results))
	for i, m := range result.Results {
		movies[i] = toDomainMovie(m)
	}
	return movies, nil
}

func (c *Client) doGet(ctx context.Context, endpoint string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errs.Errorf(errs.ECATALOGUNKNOWN, "build catalog request: %v", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errs.Errorf(errs.ECATALOGNETWORK, "catalog request failed: %v", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return resp.Body, nil
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, movie.ErrMovieNotFound
	default:
		payload, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, errs.Errorf(errs.ECATALOGTMDB,
			"TMDB API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
}

func toDomainMovie(m tmdbMovie) movie.Movie {
	return movie.Movie{
		ID:          strconv.Itoa(m.ID),
		Title:       m.Title,
		Overview:    m.Overview,
		GenreIDs:    m.GenreIDs,
		ReleaseDate: m.ReleaseDate,
		Rating:      m.VoteAverage,
		Popularity:  m.Popularity,
		PosterURL:   posterURL(m.PosterPath),
	}
}

func posterURL(path string) string {
	if path == "" {
		return ""
	}
	return posterBaseURL + path
}
