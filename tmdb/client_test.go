package tmdb_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"watchtrack/errs"
	"watchtrack/movie"
	"watchtrack/tmdb"
)

func TestSearchByTitle(t *testing.T) {
	t.Run("should map one page of results", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search/movie", r.URL.Path)
			assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
			assert.Equal(t, "batman", r.URL.Query().Get("query"))
			assert.Equal(t, "2", r.URL.Query().Get("page"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"page": 2,
				"total_pages": 5,
				"total_results": 92,
				"results": [{
					"id": 268,
					"title": "Batman",
					"overview": "The Dark Knight of Gotham City.",
					"release_date": "1989-06-23",
					"vote_average": 7.2,
					"popularity": 48.5,
					"poster_path": "/batman.jpg",
					"genre_ids": [14, 28, 80]
				}]
			}`))
		}))
		defer ts.Close()

		client := tmdb.NewClient("test-key", ts.URL)
		result, err := client.SearchByTitle(context.Background(), "batman", 2)

		assert.NoError(t, err)
		assert.Equal(t, 2, result.Page)
		assert.Equal(t, 5, result.TotalPages)
		assert.Len(t, result.Movies, 1)
		m := result.Movies[0]
		assert.Equal(t, "268", m.ID)
		assert.Equal(t, "Batman", m.Title)
		assert.Equal(t, []int{14, 28, 80}, m.GenreIDs)
		assert.Equal(t, 7.2, m.Rating)
		assert.Equal(t, "https://image.tmdb.org/t/p/w500/batman.jpg", m.PosterURL)
	})

	t.Run("should report upstream failures with the original status", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"status_message":"Internal error"}`))
		}))
		defer ts.Close()

		client := tmdb.NewClient("test-key", ts.URL)
		_, err := client.SearchByTitle(context.Background(), "batman", 1)

		assert.Error(t, err)
		assert.Equal(t, errs.ECATALOGTMDB, errs.ErrorCode(err))
		assert.Contains(t, errs.ErrorMessage(err), "status 500")
	})

	t.Run("should report unreachable catalog as a network failure", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		ts.Close() // connection refused from here on

		client := tmdb.NewClient("test-key", ts.URL)
		_, err := client.SearchByTitle(context.Background(), "batman", 1)

		assert.Error(t, err)
		assert.Equal(t, errs.ECATALOGNETWORK, errs.ErrorCode(err))
	})

	t.Run("should report malformed payloads as unknown failures", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer ts.Close()

		client := tmdb.NewClient("test-key", ts.URL)
		_, err := client.SearchByTitle(context.Background(), "batman", 1)

		assert.Error(t, err)
		assert.Equal(t, errs.ECATALOGUNKNOWN, errs.ErrorCode(err))
	})
}

func TestFindByID(t *testing.T) {
	t.Run("should map the movie detail", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/movie/268", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"id": 268,
				"title": "Batman",
				"overview": "The Dark Knight of Gotham City.",
				"release_date": "1989-06-23",
				"vote_average": 7.2,
				"popularity": 48.5,
				"poster_path": "/batman.jpg",
				"genres": [{"id": 14, "name": "Fantasy"}, {"id": 28, "name": "Action"}]
			}`))
		}))
		defer ts.Close()

		client := tmdb.NewClient("test-key", ts.URL)
		m, err := client.FindByID(context.Background(), "268")

		assert.NoError(t, err)
		assert.Equal(t, "268", m.ID)
		assert.Equal(t, []int{14, 28}, m.GenreIDs)
	})

	t.Run("should map a catalog 404 to movie not found", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer ts.Close()

		client := tmdb.NewClient("test-key", ts.URL)
		_, err := client.FindByID(context.Background(), "999999")

		assert.Equal(t, movie.ErrMovieNotFound, err)
	})
}

func TestFilterByGenres(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discover/movie", r.URL.Path)
		assert.Equal(t, "80,53", r.URL.Query().Get("with_genres"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"total_pages":1,"results":[{"id":949,"title":"Heat","genre_ids":[80,53]}]}`))
	}))
	defer ts.Close()

	client := tmdb.NewClient("test-key", ts.URL)
	movies, err := client.FilterByGenres(context.Background(), []int{80, 53})

	assert.NoError(t, err)
	assert.Len(t, movies, 1)
	assert.Equal(t, "949", movies[0].ID)
}
