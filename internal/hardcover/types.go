package hardcover

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Status is a user_book reading status as stored by Hardcover.
type Status int

const (
	StatusWantToRead       Status = 1
	StatusCurrentlyReading Status = 2
	StatusRead             Status = 3
	StatusPaused           Status = 4
	StatusDidNotFinish     Status = 5
	StatusIgnored          Status = 6
)

// Label returns the display name for a status. Out-of-range values are
// labelled rather than rejected, since the service has grown statuses before.
func (s Status) Label() string {
	switch s {
	case StatusWantToRead:
		return "Want to Read"
	case StatusCurrentlyReading:
		return "Currently Reading"
	case StatusRead:
		return "Read"
	case StatusPaused:
		return "Paused"
	case StatusDidNotFinish:
		return "Did Not Finish"
	case StatusIgnored:
		return "Ignored"
	default:
		return "Unknown"
	}
}

// ParseStatus resolves a status from a numeric id or a common name.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "want", "want-to-read", "wanttoread", "tbr":
		return StatusWantToRead, true
	case "2", "reading", "currently-reading", "current":
		return StatusCurrentlyReading, true
	case "3", "read", "finished", "done":
		return StatusRead, true
	case "4", "paused":
		return StatusPaused, true
	case "5", "dnf", "did-not-finish":
		return StatusDidNotFinish, true
	case "6", "ignored":
		return StatusIgnored, true
	}
	return 0, false
}

// Kind selects which entity type a search targets.
type Kind int

const (
	KindBook Kind = iota
	KindAuthor
	KindSeries
	KindList
)

// QueryType returns the value Hardcover's generic search field expects.
func (k Kind) QueryType() string {
	switch k {
	case KindAuthor:
		return "Author"
	case KindSeries:
		return "Series"
	case KindList:
		return "List"
	default:
		return "Book"
	}
}

// PathSegment returns the URL path segment for browse links.
func (k Kind) PathSegment() string {
	switch k {
	case KindAuthor:
		return "authors"
	case KindSeries:
		return "series"
	case KindList:
		return "lists"
	default:
		return "books"
	}
}

func (k Kind) String() string {
	switch k {
	case KindAuthor:
		return "author"
	case KindSeries:
		return "series"
	case KindList:
		return "list"
	default:
		return "book"
	}
}

// Book is a normalized book record.
type Book struct {
	ID          int
	Title       string
	Slug        string
	AuthorNames []string
	ReleaseYear int
	Rating      float64
	ReaderCount int
	CoverURL    string
}

// PrimaryAuthor returns the first listed author, or empty.
func (b *Book) PrimaryAuthor() string {
	if len(b.AuthorNames) == 0 {
		return ""
	}
	return b.AuthorNames[0]
}

// Author is a normalized author record.
type Author struct {
	ID         int
	Name       string
	Slug       string
	BookCount  int
	BookTitles []string
}

// Series is a normalized series record.
type Series struct {
	ID         int
	Name       string
	Slug       string
	AuthorName string
	BookCount  int
	BookTitles []string
}

// List is a normalized user-curated list record.
type List struct {
	ID            int
	Name          string
	Slug          string
	OwnerUsername string
	BookCount     int
	LikeCount     int
	BookTitles    []string
}

// LibraryEntry is a user's tracking record for a book.
type LibraryEntry struct {
	ID     int
	UserID int
	BookID int
	Status Status
	Rating float64
}

// User is the authenticated account returned by the me query.
type User struct {
	ID       int
	Username string
	Name     string
}

// SearchResult is one normalized search hit. Exactly one of the entity
// pointers is set, matching Kind. Raw preserves the source record.
type SearchResult struct {
	Kind   Kind
	Book   *Book
	Author *Author
	Series *Series
	List   *List
	Raw    json.RawMessage
}

// Slug returns the navigable slug of whichever entity is set.
func (r *SearchResult) Slug() string {
	switch r.Kind {
	case KindAuthor:
		if r.Author != nil {
			return r.Author.Slug
		}
	case KindSeries:
		if r.Series != nil {
			return r.Series.Slug
		}
	case KindList:
		if r.List != nil {
			return r.List.Slug
		}
	default:
		if r.Book != nil {
			return r.Book.Slug
		}
	}
	return ""
}

// recordID tolerates the two id encodings the service uses: plain JSON
// numbers from GraphQL and numeric strings from the Typesense index.
// Anything unparseable decodes to zero instead of failing the record.
type recordID int

func (id *recordID) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || string(data) == "null" {
		*id = 0
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		*id = 0
		return nil
	}
	*id = recordID(n)
	return nil
}

// looseInt decodes ints that sometimes arrive as strings or floats.
type looseInt int

func (n *looseInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || string(data) == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = looseInt(int(f))
	return nil
}

// looseFloat decodes floats that sometimes arrive as strings.
type looseFloat float64

func (f *looseFloat) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = looseFloat(v)
	return nil
}

// titleList decodes preview lists that arrive either as plain strings or as
// {title: ...} objects, depending on the entity and envelope.
type titleList []string

func (t *titleList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// A single bare string also shows up occasionally.
		var s string
		if json.Unmarshal(data, &s) == nil && s != "" {
			*t = titleList{s}
		}
		return nil
	}
	out := make(titleList, 0, len(raw))
	for _, entry := range raw {
		var s string
		if json.Unmarshal(entry, &s) == nil {
			if s != "" {
				out = append(out, s)
			}
			continue
		}
		var obj struct {
			Title string `json:"title"`
			Name  string `json:"name"`
		}
		if json.Unmarshal(entry, &obj) == nil {
			if obj.Title != "" {
				out = append(out, obj.Title)
			} else if obj.Name != "" {
				out = append(out, obj.Name)
			}
		}
	}
	*t = out
	return nil
}

// imageURL decodes a cover reference that is either a bare URL string or an
// {url: ...} object.
type imageURL string

func (u *imageURL) UnmarshalJSON(data []byte) error {
	var s string
	if json.Unmarshal(data, &s) == nil {
		*u = imageURL(s)
		return nil
	}
	var obj struct {
		URL string `json:"url"`
	}
	if json.Unmarshal(data, &obj) == nil {
		*u = imageURL(obj.URL)
	}
	return nil
}
