package launcher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	"github.com/billmal071/hcq/internal/hardcover"
)

// Handler is the host-independent query/action surface: a launcher runtime
// (or the CLI, or a test) feeds it raw input strings and action payloads and
// renders whatever display items come back.
type Handler struct {
	client    *hardcover.Client
	presenter *Presenter
	limit     int

	// Overlapping queries from rapid retyping are not cancelled, but a
	// query that finishes after a newer one started returns nothing, so
	// stale results never reach the display.
	gen atomic.Uint64
}

// NewHandler creates a handler. A non-positive limit falls back to the
// default page size.
func NewHandler(client *hardcover.Client, baseURL string, limit int) *Handler {
	if limit <= 0 {
		limit = hardcover.DefaultPerPage
	}
	return &Handler{
		client:    client,
		presenter: NewPresenter(baseURL),
		limit:     limit,
	}
}

// Presenter exposes the handler's presenter for callers that render records
// outside the query flow.
func (h *Handler) Presenter() *Presenter {
	return h.presenter
}

// HandleQuery turns one launcher input line into display items. The leading
// word selects the entity kind (author/series/list); anything else is a book
// search. All remote failures are recovered into explanatory items.
func (h *Handler) HandleQuery(ctx context.Context, input string) []DisplayItem {
	gen := h.gen.Add(1)

	if !h.client.HasToken() {
		return []DisplayItem{{
			Title:    "API Token Required",
			Subtitle: "Set your Hardcover API token with: hcq config set hardcover.api_token <token>",
		}}
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return helpItems()
	}

	kind, text, hinted := parseCommand(input)
	if hinted {
		return []DisplayItem{{
			Title:    fmt.Sprintf("Type a %s name to search", kind),
			Subtitle: fmt.Sprintf("Example: hcq %s <name>", kind),
		}}
	}

	results, err := h.client.Search(ctx, kind, text, h.limit, 1)
	if err != nil {
		return errorItems(err)
	}

	items := make([]DisplayItem, 0, len(results))
	for _, r := range results {
		item := h.presenter.Present(r)
		if r.Kind == hardcover.KindBook && r.Book != nil {
			h.annotateBook(ctx, &item, r.Book)
		}
		items = append(items, item)
	}

	if h.gen.Load() != gen {
		// A newer query superseded this one while it was in flight.
		return nil
	}

	if len(items) == 0 {
		return []DisplayItem{{
			Title:    "No results found",
			Subtitle: fmt.Sprintf("No results for %q", text),
		}}
	}
	return items
}

// annotateBook checks the user's library for one displayed book. This is a
// sequential per-result lookup on top of the search call (N+1); with the
// default page size of 10 that is tolerable, and it only runs when a user id
// is configured.
func (h *Handler) annotateBook(ctx context.Context, item *DisplayItem, book *hardcover.Book) {
	userID := h.client.UserID()
	if userID <= 0 || book.ID <= 0 {
		return
	}

	entry, err := h.client.Lookup(ctx, userID, book.ID)
	if err != nil {
		log.Printf("launcher: library lookup for book %d failed: %v", book.ID, err)
		return
	}
	if entry != nil {
		item.Subtitle = item.Subtitle + subtitleSep + "In library: " + entry.Status.Label()
		return
	}
	item.Action = &ActionPayload{
		Action: ActionAddToLibrary,
		BookID: book.ID,
		Status: int(hardcover.StatusWantToRead),
		Title:  book.Title,
	}
}

// HandleAction runs a secondary action the host routed back.
func (h *Handler) HandleAction(ctx context.Context, payload ActionPayload) []DisplayItem {
	switch payload.Action {
	case ActionAddToLibrary:
		return h.addToLibrary(ctx, payload)
	case ActionListBooks:
		return h.listBooks(ctx, payload)
	default:
		return []DisplayItem{{
			Title:    "Unknown action",
			Subtitle: payload.Action,
		}}
	}
}

func (h *Handler) addToLibrary(ctx context.Context, payload ActionPayload) []DisplayItem {
	status := hardcover.Status(payload.Status)
	if status == 0 {
		status = hardcover.StatusWantToRead
	}

	entry, err := h.client.Upsert(ctx, payload.BookID, status, nil)
	if err != nil {
		var me *hardcover.MutationError
		if errors.As(err, &me) {
			return []DisplayItem{{
				Title:    "Error Adding Book",
				Subtitle: me.Message,
			}}
		}
		return errorItems(err)
	}

	title := payload.Title
	if title == "" {
		title = fmt.Sprintf("Book #%d", entry.BookID)
	}
	return []DisplayItem{{
		Title:    "Added to " + entry.Status.Label(),
		Subtitle: title,
	}}
}

func (h *Handler) listBooks(ctx context.Context, payload ActionPayload) []DisplayItem {
	status := hardcover.Status(payload.Status)
	if status == 0 {
		status = hardcover.StatusCurrentlyReading
	}

	entries, err := h.client.UserBooksByStatus(ctx, status, h.limit)
	if err != nil {
		return errorItems(err)
	}
	if len(entries) == 0 {
		return []DisplayItem{{
			Title:    "Nothing here yet",
			Subtitle: fmt.Sprintf("No books with status %q", status.Label()),
		}}
	}

	items := make([]DisplayItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, h.presenter.PresentShelfEntry(e))
	}
	return items
}

// parseCommand splits a leading kind keyword off the input. hinted is true
// when a keyword was given with no search text after it.
func parseCommand(input string) (kind hardcover.Kind, text string, hinted bool) {
	parts := strings.SplitN(input, " ", 2)
	command := strings.ToLower(parts[0])

	switch command {
	case "author", "authors":
		kind = hardcover.KindAuthor
	case "series":
		kind = hardcover.KindSeries
	case "list", "lists":
		kind = hardcover.KindList
	default:
		return hardcover.KindBook, input, false
	}

	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		return kind, "", true
	}
	return kind, strings.TrimSpace(parts[1]), false
}

func helpItems() []DisplayItem {
	return []DisplayItem{
		{Title: "Search Hardcover", Subtitle: "Type to search for books, authors, series, or lists"},
		{Title: "Search Books (default)", Subtitle: "hcq <book name>"},
		{Title: "Search Authors", Subtitle: "hcq author <author name>"},
		{Title: "Search Series", Subtitle: "hcq series <series name>"},
		{Title: "Search Lists", Subtitle: "hcq list <list name>"},
	}
}

// errorItems maps the client error taxonomy into user-visible items. A
// GraphQL rejection is shown distinctly from transport trouble, since it
// means the connection worked but the query did not.
func errorItems(err error) []DisplayItem {
	switch {
	case errors.Is(err, hardcover.ErrNoToken):
		return []DisplayItem{{
			Title:    "API Token Required",
			Subtitle: "Set your Hardcover API token with: hcq config set hardcover.api_token <token>",
		}}
	default:
		var qe *hardcover.QueryError
		if errors.As(err, &qe) {
			log.Printf("launcher: query rejected: %s", qe.Message)
			return []DisplayItem{{
				Title:    "Hardcover rejected the query",
				Subtitle: qe.Message,
			}}
		}
		log.Printf("launcher: request failed: %v", err)
		return []DisplayItem{{
			Title:    "Hardcover unavailable",
			Subtitle: "Check your network connection and API token",
		}}
	}
}
