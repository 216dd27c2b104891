package hardcover

import (
	"encoding/json"
	"fmt"
	"log"
)

// The service has exposed three envelope shapes over time: the generic
// search field returns a list of JSON-encoded strings, the Typesense index
// returns {hits: [{document}]}, and direct field queries return typed lists
// under data. Normalize detects which one it was handed and dispatches.

// Normalize extracts uniform records of the given kind from a raw response
// body. A GraphQL errors array short-circuits into a QueryError; partial
// data next to errors is discarded. Individual unparseable entries are
// logged and skipped, never fatal to the batch.
func Normalize(kind Kind, body []byte) ([]SearchResult, error) {
	var probe struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
		Hits []struct {
			Document json.RawMessage `json:"document"`
		} `json:"hits"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if len(probe.Errors) > 0 {
		return nil, &QueryError{Message: probe.Errors[0].Message}
	}

	if probe.Hits != nil {
		results := make([]SearchResult, 0, len(probe.Hits))
		for _, hit := range probe.Hits {
			if len(hit.Document) == 0 {
				continue
			}
			r, err := decodeRecord(kind, hit.Document)
			if err != nil {
				log.Printf("hardcover: skipping unparseable search hit: %v", err)
				continue
			}
			results = append(results, r)
		}
		return results, nil
	}

	if len(probe.Data) == 0 || string(probe.Data) == "null" {
		return nil, ErrMalformedResponse
	}

	var data struct {
		Search *struct {
			Results []json.RawMessage `json:"results"`
		} `json:"search"`
		Books   []json.RawMessage `json:"books"`
		Authors []json.RawMessage `json:"authors"`
		Series  []json.RawMessage `json:"series"`
		Lists   []json.RawMessage `json:"lists"`
	}
	if err := json.Unmarshal(probe.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if data.Search != nil {
		return normalizeEncoded(kind, data.Search.Results), nil
	}

	var direct []json.RawMessage
	switch kind {
	case KindAuthor:
		direct = data.Authors
	case KindSeries:
		direct = data.Series
	case KindList:
		direct = data.Lists
	default:
		direct = data.Books
	}
	if direct == nil {
		return nil, ErrMalformedResponse
	}

	results := make([]SearchResult, 0, len(direct))
	for _, entry := range direct {
		r, err := decodeRecord(kind, entry)
		if err != nil {
			log.Printf("hardcover: skipping unparseable %s record: %v", kind, err)
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

// normalizeEncoded handles the generic search envelope, where each result is
// a JSON document encoded as a string. Entries that fail either decode step
// are skipped; the rest of the batch survives.
func normalizeEncoded(kind Kind, entries []json.RawMessage) []SearchResult {
	results := make([]SearchResult, 0, len(entries))
	for _, entry := range entries {
		record := []byte(nil)
		var encoded string
		if err := json.Unmarshal(entry, &encoded); err == nil {
			record = []byte(encoded)
		} else {
			// Some API revisions returned the objects directly.
			record = entry
		}
		r, err := decodeRecord(kind, record)
		if err != nil {
			log.Printf("hardcover: skipping unparseable search result: %v", err)
			continue
		}
		results = append(results, r)
	}
	return results
}

func decodeRecord(kind Kind, raw []byte) (SearchResult, error) {
	result := SearchResult{Kind: kind, Raw: append(json.RawMessage(nil), raw...)}
	switch kind {
	case KindAuthor:
		var rec authorRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return SearchResult{}, err
		}
		result.Author = rec.toAuthor()
	case KindSeries:
		var rec seriesRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return SearchResult{}, err
		}
		result.Series = rec.toSeries()
	case KindList:
		var rec listRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return SearchResult{}, err
		}
		result.List = rec.toList()
	default:
		var rec bookRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return SearchResult{}, err
		}
		result.Book = rec.toBook()
	}
	return result, nil
}

// Wire records. Every field decodes leniently; a record with nothing but a
// title is still a record.

type bookRecord struct {
	ID             recordID   `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	AuthorNames    titleList  `json:"author_names"`
	ReleaseYear    looseInt   `json:"release_year"`
	Rating         looseFloat `json:"rating"`
	UsersCount     looseInt   `json:"users_count"`
	UsersReadCount looseInt   `json:"users_read_count"`
	Image          imageURL   `json:"image"`
	ImageURL       string     `json:"image_url"`
}

func (r *bookRecord) toBook() *Book {
	readers := int(r.UsersCount)
	if readers == 0 {
		readers = int(r.UsersReadCount)
	}
	cover := string(r.Image)
	if cover == "" {
		cover = r.ImageURL
	}
	return &Book{
		ID:          int(r.ID),
		Title:       r.Title,
		Slug:        r.Slug,
		AuthorNames: r.AuthorNames,
		ReleaseYear: int(r.ReleaseYear),
		Rating:      float64(r.Rating),
		ReaderCount: readers,
		CoverURL:    cover,
	}
}

type authorRecord struct {
	ID        recordID  `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	BookCount looseInt  `json:"books_count"`
	Books     titleList `json:"books"`
}

func (r *authorRecord) toAuthor() *Author {
	return &Author{
		ID:         int(r.ID),
		Name:       r.Name,
		Slug:       r.Slug,
		BookCount:  int(r.BookCount),
		BookTitles: r.Books,
	}
}

type seriesRecord struct {
	ID         recordID  `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	AuthorName string    `json:"author_name"`
	BookCount  looseInt  `json:"books_count"`
	Books      titleList `json:"books"`
}

func (r *seriesRecord) toSeries() *Series {
	return &Series{
		ID:         int(r.ID),
		Name:       r.Name,
		Slug:       r.Slug,
		AuthorName: r.AuthorName,
		BookCount:  int(r.BookCount),
		BookTitles: r.Books,
	}
}

type listRecord struct {
	ID        recordID `json:"id"`
	Name      string   `json:"name"`
	Slug      string   `json:"slug"`
	BookCount looseInt `json:"books_count"`
	LikeCount looseInt `json:"likes_count"`
	User      struct {
		Username string `json:"username"`
	} `json:"user"`
	Books titleList `json:"books"`
}

func (r *listRecord) toList() *List {
	return &List{
		ID:            int(r.ID),
		Name:          r.Name,
		Slug:          r.Slug,
		OwnerUsername: r.User.Username,
		BookCount:     int(r.BookCount),
		LikeCount:     int(r.LikeCount),
		BookTitles:    r.Books,
	}
}
