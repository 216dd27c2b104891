package hardcover

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Library-state operations. Lookup and Upsert are deliberately independent:
// callers that want "already in library" messaging run Lookup first, and
// Upsert never checks. The service deduplicates by user+book on its side.

// Lookup reports whether the user already tracks the book. It returns
// (nil, nil) when the book is untracked, and also when either id is not a
// positive integer, in which case no request is issued at all.
func (c *Client) Lookup(ctx context.Context, userID, bookID int) (*LibraryEntry, error) {
	if userID <= 0 || bookID <= 0 {
		return nil, nil
	}

	body, err := c.execGraphQL(ctx, BuildLibraryLookup(userID, bookID))
	if err != nil {
		return nil, err
	}
	data, err := parseData(body)
	if err != nil {
		return nil, err
	}

	var payload struct {
		UserBooks []libraryEntryRecord `json:"user_books"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(payload.UserBooks) == 0 {
		return nil, nil
	}
	return payload.UserBooks[0].toEntry(), nil
}

// Upsert inserts or updates the user's status for a book. A GraphQL-level
// rejection surfaces as a MutationError carrying the service's message.
func (c *Client) Upsert(ctx context.Context, bookID int, status Status, rating *float64) (*LibraryEntry, error) {
	body, err := c.execGraphQL(ctx, BuildStatusMutation(bookID, status, rating))
	if err != nil {
		return nil, err
	}
	data, err := parseData(body)
	if err != nil {
		var qe *QueryError
		if errors.As(err, &qe) {
			return nil, &MutationError{Message: qe.Message}
		}
		return nil, err
	}

	var payload struct {
		Inserted *libraryEntryRecord `json:"insert_user_book_one"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if payload.Inserted == nil {
		return nil, &MutationError{Message: "no user_book returned"}
	}
	entry := payload.Inserted.toEntry()
	if entry.Status == 0 {
		entry.Status = status
	}
	return entry, nil
}

// Me returns the authenticated account.
func (c *Client) Me(ctx context.Context) (*User, error) {
	body, err := c.execGraphQL(ctx, BuildUserInfo())
	if err != nil {
		return nil, err
	}
	data, err := parseData(body)
	if err != nil {
		return nil, err
	}
	me, err := decodeMe(data)
	if err != nil {
		return nil, err
	}

	var rec struct {
		ID       recordID `json:"id"`
		Username string   `json:"username"`
		Name     string   `json:"name"`
	}
	if err := json.Unmarshal(me, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &User{ID: int(rec.ID), Username: rec.Username, Name: rec.Name}, nil
}

// BookIDBySlug resolves a browse slug to the integer id mutations require.
// Returns zero when the slug is unknown.
func (c *Client) BookIDBySlug(ctx context.Context, slug string) (int, error) {
	body, err := c.execGraphQL(ctx, BuildBookIDBySlug(slug))
	if err != nil {
		return 0, err
	}
	data, err := parseData(body)
	if err != nil {
		return 0, err
	}

	var payload struct {
		Books []struct {
			ID recordID `json:"id"`
		} `json:"books"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(payload.Books) == 0 {
		return 0, nil
	}
	return int(payload.Books[0].ID), nil
}

// ShelfEntry is one book on a user's shelf, with its tracking state.
type ShelfEntry struct {
	Book   Book
	Status Status
	Rating float64
}

// UserBooksByStatus lists the user's most recently updated books in one
// reading status.
func (c *Client) UserBooksByStatus(ctx context.Context, status Status, limit int) ([]ShelfEntry, error) {
	body, err := c.execGraphQL(ctx, BuildUserBooksByStatus(status, limit))
	if err != nil {
		return nil, err
	}
	data, err := parseData(body)
	if err != nil {
		return nil, err
	}
	me, err := decodeMe(data)
	if err != nil {
		return nil, err
	}

	var payload struct {
		UserBooks []struct {
			StatusID looseInt   `json:"status_id"`
			Rating   looseFloat `json:"rating"`
			Book     struct {
				ID            recordID `json:"id"`
				Title         string   `json:"title"`
				Slug          string   `json:"slug"`
				Contributions []struct {
					Author struct {
						Name string `json:"name"`
					} `json:"author"`
				} `json:"contributions"`
			} `json:"book"`
		} `json:"user_books"`
	}
	if err := json.Unmarshal(me, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	entries := make([]ShelfEntry, 0, len(payload.UserBooks))
	for _, ub := range payload.UserBooks {
		var authors []string
		for _, contrib := range ub.Book.Contributions {
			if contrib.Author.Name != "" {
				authors = append(authors, contrib.Author.Name)
			}
		}
		entries = append(entries, ShelfEntry{
			Book: Book{
				ID:          int(ub.Book.ID),
				Title:       ub.Book.Title,
				Slug:        ub.Book.Slug,
				AuthorNames: authors,
			},
			Status: Status(int(ub.StatusID)),
			Rating: float64(ub.Rating),
		})
	}
	return entries, nil
}

// UserLists returns the user's own lists, most recently updated first.
func (c *Client) UserLists(ctx context.Context) ([]List, error) {
	body, err := c.execGraphQL(ctx, BuildUserLists())
	if err != nil {
		return nil, err
	}
	data, err := parseData(body)
	if err != nil {
		return nil, err
	}
	me, err := decodeMe(data)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Lists []listRecord `json:"lists"`
	}
	if err := json.Unmarshal(me, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	lists := make([]List, 0, len(payload.Lists))
	for i := range payload.Lists {
		lists = append(lists, *payload.Lists[i].toList())
	}
	return lists, nil
}

type libraryEntryRecord struct {
	ID       recordID   `json:"id"`
	UserID   recordID   `json:"user_id"`
	BookID   recordID   `json:"book_id"`
	StatusID looseInt   `json:"status_id"`
	Rating   looseFloat `json:"rating"`
}

func (r *libraryEntryRecord) toEntry() *LibraryEntry {
	return &LibraryEntry{
		ID:     int(r.ID),
		UserID: int(r.UserID),
		BookID: int(r.BookID),
		Status: Status(int(r.StatusID)),
		Rating: float64(r.Rating),
	}
}

// parseData applies the shared GraphQL envelope rules: an errors array wins
// over any data, and a missing data container is malformed.
func parseData(body []byte) (json.RawMessage, error) {
	var probe struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(probe.Errors) > 0 {
		return nil, &QueryError{Message: probe.Errors[0].Message}
	}
	if len(probe.Data) == 0 || string(probe.Data) == "null" {
		return nil, ErrMalformedResponse
	}
	return probe.Data, nil
}

// decodeMe unwraps the me field, which Hasura has returned both as an object
// and as a one-element list across schema revisions.
func decodeMe(data json.RawMessage) (json.RawMessage, error) {
	var payload struct {
		Me json.RawMessage `json:"me"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	me := bytes.TrimSpace(payload.Me)
	if len(me) == 0 || string(me) == "null" {
		return nil, ErrMalformedResponse
	}
	if me[0] == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(me, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if len(list) == 0 {
			return nil, ErrMalformedResponse
		}
		return list[0], nil
	}
	return me, nil
}
