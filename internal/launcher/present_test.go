package launcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/billmal071/hcq/internal/hardcover"
)

func TestPresentBook(t *testing.T) {
	p := NewPresenter("")
	item := p.PresentBook(&hardcover.Book{
		ID:          42,
		Title:       "The Dispossessed",
		Slug:        "the-dispossessed",
		AuthorNames: []string{"Ursula K. Le Guin"},
		ReleaseYear: 1974,
		Rating:      4.28,
		ReaderCount: 1234,
	})

	assert.Equal(t, "The Dispossessed", item.Title)
	assert.Equal(t, "By Ursula K. Le Guin | 1974 | ★ 4.3 | 1234 readers", item.Subtitle)
	assert.Equal(t, "https://hardcover.app/books/the-dispossessed", item.URL)
	assert.Nil(t, item.Action)
}

func TestPresentBookFallbacks(t *testing.T) {
	p := NewPresenter("")

	item := p.PresentBook(&hardcover.Book{Slug: "mystery"})
	assert.Equal(t, "Unknown Title", item.Title)
	assert.Equal(t, "Book", item.Subtitle)

	item = p.PresentBook(nil)
	assert.Equal(t, "Unknown Title", item.Title)
	assert.Equal(t, "Book", item.Subtitle)
	assert.Empty(t, item.URL)
}

func TestPresentBookNoSlugNoURL(t *testing.T) {
	p := NewPresenter("")
	item := p.PresentBook(&hardcover.Book{Title: "Orphan"})
	assert.Empty(t, item.URL)
}

func TestPresentAuthor(t *testing.T) {
	p := NewPresenter("")
	item := p.Present(hardcover.SearchResult{
		Kind: hardcover.KindAuthor,
		Author: &hardcover.Author{
			Name:       "Ursula K. Le Guin",
			Slug:       "ursula-k-le-guin",
			BookCount:  23,
			BookTitles: []string{"A Wizard of Earthsea", "The Dispossessed"},
		},
	})

	assert.Equal(t, "Ursula K. Le Guin", item.Title)
	assert.Equal(t, "23 books | A Wizard of Earthsea, The Dispossessed", item.Subtitle)
	assert.Equal(t, "https://hardcover.app/authors/ursula-k-le-guin", item.URL)
}

func TestPresentAuthorFallback(t *testing.T) {
	p := NewPresenter("")
	item := p.Present(hardcover.SearchResult{Kind: hardcover.KindAuthor, Author: &hardcover.Author{Name: "Nobody"}})
	assert.Equal(t, "Author", item.Subtitle)
}

func TestPresentSeries(t *testing.T) {
	p := NewPresenter("")
	item := p.Present(hardcover.SearchResult{
		Kind: hardcover.KindSeries,
		Series: &hardcover.Series{
			Name:       "Earthsea Cycle",
			Slug:       "earthsea-cycle",
			AuthorName: "Ursula K. Le Guin",
			BookCount:  6,
		},
	})

	assert.Equal(t, "By Ursula K. Le Guin | 6 books", item.Subtitle)
	assert.Equal(t, "https://hardcover.app/series/earthsea-cycle", item.URL)
}

func TestPresentListAlwaysHasOwner(t *testing.T) {
	p := NewPresenter("")

	item := p.Present(hardcover.SearchResult{
		Kind: hardcover.KindList,
		List: &hardcover.List{
			Name:          "Hugo Winners",
			Slug:          "hugo-winners",
			OwnerUsername: "shevek",
			BookCount:     50,
			LikeCount:     12,
		},
	})
	assert.Equal(t, "By @shevek | 50 books | 12 likes", item.Subtitle)
	assert.Equal(t, "https://hardcover.app/lists/hugo-winners", item.URL)

	// No owner recorded still renders an attribution line
	item = p.Present(hardcover.SearchResult{Kind: hardcover.KindList, List: &hardcover.List{Name: "Anon"}})
	assert.Equal(t, "By @unknown", item.Subtitle)
}

func TestPreviewTruncation(t *testing.T) {
	p := NewPresenter("")
	item := p.Present(hardcover.SearchResult{
		Kind: hardcover.KindAuthor,
		Author: &hardcover.Author{
			Name:       "Prolific",
			BookTitles: []string{"One", "Two", "Three", "Four", "Five"},
		},
	})
	assert.Equal(t, "One, Two, Three...", item.Subtitle)
}

func TestPresentShelfEntry(t *testing.T) {
	p := NewPresenter("")
	item := p.PresentShelfEntry(hardcover.ShelfEntry{
		Book: hardcover.Book{
			Title:       "The Dispossessed",
			Slug:        "the-dispossessed",
			AuthorNames: []string{"Ursula K. Le Guin"},
		},
		Status: hardcover.StatusCurrentlyReading,
		Rating: 4.5,
	})

	assert.Equal(t, "By Ursula K. Le Guin | Currently Reading | ★ 4.5", item.Subtitle)
	assert.Equal(t, "https://hardcover.app/books/the-dispossessed", item.URL)
}

func TestCustomBaseURL(t *testing.T) {
	p := NewPresenter("https://example.test/")
	item := p.PresentBook(&hardcover.Book{Title: "X", Slug: "x"})
	assert.Equal(t, "https://example.test/books/x", item.URL)
}
