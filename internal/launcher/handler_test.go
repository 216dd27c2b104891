package launcher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billmal071/hcq/internal/hardcover"
)

// stubHandler routes stub responses by the GraphQL operation in the request.
type stubHandler struct {
	t        *testing.T
	onSearch func(vars map[string]any) string
	onLookup func(vars map[string]any) string
	onMutate func(vars map[string]any) string
	onShelf  func(vars map[string]any) string
}

func (s *stubHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req hardcover.GraphQLRequest
	require.NoError(s.t, json.NewDecoder(r.Body).Decode(&req))

	switch {
	case strings.Contains(req.Query, "search("):
		w.Write([]byte(s.onSearch(req.Variables)))
	case strings.Contains(req.Query, "insert_user_book_one"):
		w.Write([]byte(s.onMutate(req.Variables)))
	case strings.Contains(req.Query, "me"):
		w.Write([]byte(s.onShelf(req.Variables)))
	case strings.Contains(req.Query, "user_books"):
		w.Write([]byte(s.onLookup(req.Variables)))
	default:
		s.t.Errorf("unexpected query: %s", req.Query)
	}
}

func newStubbedHandler(t *testing.T, stub *stubHandler, userID, limit int) *Handler {
	t.Helper()
	stub.t = t
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	client := hardcover.NewClient(hardcover.Options{
		Token:      "tok",
		UserID:     userID,
		GraphQLURL: srv.URL,
	})
	return NewHandler(client, "", limit)
}

// encodedSearch wraps records as the generic search envelope of
// JSON-encoded strings.
func encodedSearch(t *testing.T, records ...any) string {
	t.Helper()
	results := make([]string, 0, len(records))
	for _, rec := range records {
		b, err := json.Marshal(rec)
		require.NoError(t, err)
		results = append(results, string(b))
	}
	body, err := json.Marshal(map[string]any{
		"data": map[string]any{"search": map[string]any{"results": results}},
	})
	require.NoError(t, err)
	return string(body)
}

func TestHandleQueryNoToken(t *testing.T) {
	client := hardcover.NewClient(hardcover.Options{})
	h := NewHandler(client, "", 10)

	items := h.HandleQuery(context.Background(), "earthsea")
	require.Len(t, items, 1)
	assert.Equal(t, "API Token Required", items[0].Title)
	assert.Contains(t, items[0].Subtitle, "hcq config set")
}

func TestHandleQueryEmptyInputShowsHelp(t *testing.T) {
	client := hardcover.NewClient(hardcover.Options{Token: "tok"})
	h := NewHandler(client, "", 10)

	items := h.HandleQuery(context.Background(), "   ")
	require.Len(t, items, 5)
	assert.Equal(t, "Search Hardcover", items[0].Title)
	assert.Contains(t, items[2].Subtitle, "hcq author")
}

func TestHandleQueryKeywordWithoutText(t *testing.T) {
	client := hardcover.NewClient(hardcover.Options{Token: "tok"})
	h := NewHandler(client, "", 10)

	items := h.HandleQuery(context.Background(), "author")
	require.Len(t, items, 1)
	assert.Equal(t, "Type a author name to search", items[0].Title)

	items = h.HandleQuery(context.Background(), "series  ")
	require.Len(t, items, 1)
	assert.Equal(t, "Type a series name to search", items[0].Title)
}

func TestHandleQueryAuthorSearch(t *testing.T) {
	stub := &stubHandler{
		onSearch: func(vars map[string]any) string {
			assert.Equal(t, "tolkien", vars["query"])
			assert.Equal(t, "Author", vars["query_type"])
			assert.Equal(t, float64(5), vars["per_page"])
			return encodedSearch(t,
				map[string]any{"id": 1, "name": "J. R. R. Tolkien", "slug": "j-r-r-tolkien", "books_count": 30},
				map[string]any{"id": 2, "name": "Christopher Tolkien", "slug": "christopher-tolkien"},
			)
		},
	}
	h := newStubbedHandler(t, stub, 0, 5)

	items := h.HandleQuery(context.Background(), "author tolkien")
	require.Len(t, items, 2)
	assert.Equal(t, "J. R. R. Tolkien", items[0].Title)
	assert.Equal(t, "https://hardcover.app/authors/j-r-r-tolkien", items[0].URL)
	assert.Equal(t, "https://hardcover.app/authors/christopher-tolkien", items[1].URL)
}

func TestHandleQueryNoResults(t *testing.T) {
	stub := &stubHandler{
		onSearch: func(map[string]any) string { return encodedSearch(t) },
	}
	h := newStubbedHandler(t, stub, 0, 10)

	items := h.HandleQuery(context.Background(), "zxqvwk")
	require.Len(t, items, 1)
	assert.Equal(t, "No results found", items[0].Title)
	assert.Contains(t, items[0].Subtitle, `"zxqvwk"`)
}

func TestHandleQueryAnnotatesUntrackedBook(t *testing.T) {
	stub := &stubHandler{
		onSearch: func(map[string]any) string {
			return encodedSearch(t, map[string]any{"id": 42, "title": "The Dispossessed", "slug": "the-dispossessed"})
		},
		onLookup: func(vars map[string]any) string {
			assert.Equal(t, float64(7), vars["user_id"])
			assert.Equal(t, float64(42), vars["book_id"])
			return `{"data": {"user_books": []}}`
		},
	}
	h := newStubbedHandler(t, stub, 7, 10)

	items := h.HandleQuery(context.Background(), "dispossessed")
	require.Len(t, items, 1)

	action := items[0].Action
	require.NotNil(t, action)
	assert.Equal(t, ActionAddToLibrary, action.Action)
	assert.Equal(t, 42, action.BookID)
	assert.Equal(t, int(hardcover.StatusWantToRead), action.Status)
	assert.Equal(t, "The Dispossessed", action.Title)
}

func TestHandleQueryAnnotatesTrackedBook(t *testing.T) {
	stub := &stubHandler{
		onSearch: func(map[string]any) string {
			return encodedSearch(t, map[string]any{"id": 42, "title": "The Dispossessed", "slug": "the-dispossessed"})
		},
		onLookup: func(map[string]any) string {
			return `{"data": {"user_books": [{"id": 900, "user_id": 7, "book_id": 42, "status_id": 2}]}}`
		},
	}
	h := newStubbedHandler(t, stub, 7, 10)

	items := h.HandleQuery(context.Background(), "dispossessed")
	require.Len(t, items, 1)
	assert.Contains(t, items[0].Subtitle, "In library: Currently Reading")
	assert.Nil(t, items[0].Action)
}

func TestHandleQueryNoUserIDSkipsLookup(t *testing.T) {
	stub := &stubHandler{
		onSearch: func(map[string]any) string {
			return encodedSearch(t, map[string]any{"id": 42, "title": "X", "slug": "x"})
		},
		onLookup: func(map[string]any) string {
			t.Error("lookup issued without a configured user id")
			return "{}"
		},
	}
	h := newStubbedHandler(t, stub, 0, 10)

	items := h.HandleQuery(context.Background(), "x")
	require.Len(t, items, 1)
	assert.Nil(t, items[0].Action)
}

func TestHandleQueryErrorRecovery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors": [{"message": "field 'search' not found"}]}`))
	}))
	t.Cleanup(srv.Close)

	client := hardcover.NewClient(hardcover.Options{Token: "tok", GraphQLURL: srv.URL})
	h := NewHandler(client, "", 10)

	items := h.HandleQuery(context.Background(), "anything")
	require.Len(t, items, 1)
	assert.Equal(t, "Hardcover rejected the query", items[0].Title)
	assert.Equal(t, "field 'search' not found", items[0].Subtitle)
}

func TestHandleQueryUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := hardcover.NewClient(hardcover.Options{Token: "tok", GraphQLURL: srv.URL})
	h := NewHandler(client, "", 10)

	items := h.HandleQuery(context.Background(), "anything")
	require.Len(t, items, 1)
	assert.Equal(t, "Hardcover unavailable", items[0].Title)
}

func TestHandleActionAdd(t *testing.T) {
	stub := &stubHandler{
		onMutate: func(vars map[string]any) string {
			assert.Equal(t, float64(42), vars["book_id"])
			assert.Equal(t, float64(1), vars["status_id"])
			return `{"data": {"insert_user_book_one": {"id": 900, "book_id": 42, "status_id": 1}}}`
		},
	}
	h := newStubbedHandler(t, stub, 7, 10)

	items := h.HandleAction(context.Background(), ActionPayload{
		Action: ActionAddToLibrary,
		BookID: 42,
		Title:  "The Dispossessed",
	})
	require.Len(t, items, 1)
	assert.Equal(t, "Added to Want to Read", items[0].Title)
	assert.Equal(t, "The Dispossessed", items[0].Subtitle)
}

func TestHandleActionAddRejected(t *testing.T) {
	stub := &stubHandler{
		onMutate: func(map[string]any) string {
			return `{"errors": [{"message": "permission denied for table user_books"}]}`
		},
	}
	h := newStubbedHandler(t, stub, 7, 10)

	items := h.HandleAction(context.Background(), ActionPayload{Action: ActionAddToLibrary, BookID: 42})
	require.Len(t, items, 1)
	assert.Equal(t, "Error Adding Book", items[0].Title)
	assert.Equal(t, "permission denied for table user_books", items[0].Subtitle)
}

func TestHandleActionListBooks(t *testing.T) {
	stub := &stubHandler{
		onShelf: func(vars map[string]any) string {
			assert.Equal(t, float64(2), vars["status"])
			return `{"data": {"me": {"user_books": [
				{"status_id": 2, "book": {"id": 42, "title": "The Dispossessed", "slug": "the-dispossessed"}}
			]}}}`
		},
	}
	h := newStubbedHandler(t, stub, 7, 10)

	items := h.HandleAction(context.Background(), ActionPayload{Action: ActionListBooks})
	require.Len(t, items, 1)
	assert.Equal(t, "The Dispossessed", items[0].Title)
	assert.Contains(t, items[0].Subtitle, "Currently Reading")
}

func TestHandleActionListBooksEmpty(t *testing.T) {
	stub := &stubHandler{
		onShelf: func(map[string]any) string {
			return `{"data": {"me": {"user_books": []}}}`
		},
	}
	h := newStubbedHandler(t, stub, 7, 10)

	items := h.HandleAction(context.Background(), ActionPayload{Action: ActionListBooks, Status: int(hardcover.StatusRead)})
	require.Len(t, items, 1)
	assert.Equal(t, "Nothing here yet", items[0].Title)
	assert.Contains(t, items[0].Subtitle, "Read")
}

func TestHandleActionUnknown(t *testing.T) {
	client := hardcover.NewClient(hardcover.Options{Token: "tok"})
	h := NewHandler(client, "", 10)

	items := h.HandleAction(context.Background(), ActionPayload{Action: "explode"})
	require.Len(t, items, 1)
	assert.Equal(t, "Unknown action", items[0].Title)
}

func TestStaleQueryReturnsNothing(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	stub := &stubHandler{
		onSearch: func(map[string]any) string {
			close(started)
			<-release
			return encodedSearch(t, map[string]any{"id": 1, "title": "Slow", "slug": "slow"})
		},
	}
	h := newStubbedHandler(t, stub, 0, 10)

	done := make(chan []DisplayItem)
	go func() {
		done <- h.HandleQuery(context.Background(), "first")
	}()

	// A newer query arrives while the first is blocked in flight. Bumping
	// the generation directly keeps the stub single-threaded.
	<-started
	h.gen.Add(1)
	close(release)

	assert.Nil(t, <-done)
}

func TestParseCommand(t *testing.T) {
	kind, text, hinted := parseCommand("author le guin")
	assert.Equal(t, hardcover.KindAuthor, kind)
	assert.Equal(t, "le guin", text)
	assert.False(t, hinted)

	kind, text, hinted = parseCommand("LISTS hugo winners")
	assert.Equal(t, hardcover.KindList, kind)
	assert.Equal(t, "hugo winners", text)
	assert.False(t, hinted)

	kind, text, hinted = parseCommand("the dispossessed")
	assert.Equal(t, hardcover.KindBook, kind)
	assert.Equal(t, "the dispossessed", text)
	assert.False(t, hinted)

	_, _, hinted = parseCommand("series")
	assert.True(t, hinted)
}
