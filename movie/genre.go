package movie

import (
	"fmt"
	"strings"
)

// genreNames is the fixed catalog genre vocabulary.
var genreNames = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// GenreName returns the display name for a genre id. Ids outside the
// vocabulary render as "Unknown Genre (ID)".
func GenreName(id int) string {
	if name, ok := genreNames[id]; ok {
		return name
	}
	return fmt.Sprintf("Unknown Genre (%d)", id)
}

// genreID resolves a display name back to its id, case-insensitively.
func genreID(name string) (int, bool) {
	name = strings.TrimSpace(name)
	for id, candidate := range genreNames {
		if strings.EqualFold(candidate, name) {
			return id, true
		}
	}
	return 0, false
}
