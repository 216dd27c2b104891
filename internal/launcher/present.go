package launcher

import (
	"fmt"
	"strings"

	"github.com/billmal071/hcq/internal/hardcover"
)

// Action names routed back through HandleAction on activation.
const (
	ActionAddToLibrary = "add_to_library"
	ActionListBooks    = "list_books"
)

// ActionPayload is the structured payload attached to a display item's
// secondary action. The host hands it back verbatim when the user activates
// the item.
type ActionPayload struct {
	Action string `json:"action"`
	BookID int    `json:"book_id,omitempty"`
	Status int    `json:"status,omitempty"`
	Title  string `json:"title,omitempty"`
}

// DisplayItem is one renderable row: title, subtitle, a navigation URL
// (empty when the record has no slug) and an optional secondary action.
type DisplayItem struct {
	Title    string
	Subtitle string
	URL      string
	Action   *ActionPayload
}

// subtitleSep joins subtitle fragments, matching the website's listing rows.
const subtitleSep = " | "

// previewMax caps how many sample titles a subtitle shows.
const previewMax = 3

// Presenter maps normalized records into display items.
type Presenter struct {
	baseURL string
}

// NewPresenter creates a presenter. An empty baseURL falls back to the
// public site.
func NewPresenter(baseURL string) *Presenter {
	if baseURL == "" {
		baseURL = hardcover.DefaultBaseURL
	}
	return &Presenter{baseURL: strings.TrimRight(baseURL, "/")}
}

// Present renders one search result. Subtitles follow a fixed order:
// attribution first, then quantitative facts, then a short title preview.
// A record with no optional fields gets the per-kind fallback string.
func (p *Presenter) Present(r hardcover.SearchResult) DisplayItem {
	switch r.Kind {
	case hardcover.KindAuthor:
		return p.presentAuthor(r.Author)
	case hardcover.KindSeries:
		return p.presentSeries(r.Series)
	case hardcover.KindList:
		return p.presentList(r.List)
	default:
		return p.PresentBook(r.Book)
	}
}

// PresentBook renders a book row.
func (p *Presenter) PresentBook(b *hardcover.Book) DisplayItem {
	if b == nil {
		return DisplayItem{Title: "Unknown Title", Subtitle: "Book"}
	}
	title := b.Title
	if title == "" {
		title = "Unknown Title"
	}

	var parts []string
	if len(b.AuthorNames) > 0 {
		parts = append(parts, "By "+strings.Join(b.AuthorNames, ", "))
	}
	if b.ReleaseYear != 0 {
		parts = append(parts, fmt.Sprintf("%d", b.ReleaseYear))
	}
	if b.Rating != 0 {
		parts = append(parts, fmt.Sprintf("★ %.1f", b.Rating))
	}
	if b.ReaderCount != 0 {
		parts = append(parts, fmt.Sprintf("%d readers", b.ReaderCount))
	}

	return DisplayItem{
		Title:    title,
		Subtitle: joinOrFallback(parts, "Book"),
		URL:      p.entityURL(hardcover.KindBook, b.Slug),
	}
}

func (p *Presenter) presentAuthor(a *hardcover.Author) DisplayItem {
	if a == nil {
		return DisplayItem{Title: "Unknown Author", Subtitle: "Author"}
	}
	title := a.Name
	if title == "" {
		title = "Unknown Author"
	}

	var parts []string
	if a.BookCount > 0 {
		parts = append(parts, fmt.Sprintf("%d books", a.BookCount))
	}
	if preview := previewTitles(a.BookTitles); preview != "" {
		parts = append(parts, preview)
	}

	return DisplayItem{
		Title:    title,
		Subtitle: joinOrFallback(parts, "Author"),
		URL:      p.entityURL(hardcover.KindAuthor, a.Slug),
	}
}

func (p *Presenter) presentSeries(s *hardcover.Series) DisplayItem {
	if s == nil {
		return DisplayItem{Title: "Unknown Series", Subtitle: "Series"}
	}
	title := s.Name
	if title == "" {
		title = "Unknown Series"
	}

	var parts []string
	if s.AuthorName != "" {
		parts = append(parts, "By "+s.AuthorName)
	}
	if s.BookCount > 0 {
		parts = append(parts, fmt.Sprintf("%d books", s.BookCount))
	}
	if preview := previewTitles(s.BookTitles); preview != "" {
		parts = append(parts, preview)
	}

	return DisplayItem{
		Title:    title,
		Subtitle: joinOrFallback(parts, "Series"),
		URL:      p.entityURL(hardcover.KindSeries, s.Slug),
	}
}

func (p *Presenter) presentList(l *hardcover.List) DisplayItem {
	if l == nil {
		return DisplayItem{Title: "Untitled List", Subtitle: "By @unknown"}
	}
	title := l.Name
	if title == "" {
		title = "Untitled List"
	}
	owner := l.OwnerUsername
	if owner == "" {
		owner = "unknown"
	}

	// The owner line is always present; it doubles as the fallback.
	parts := []string{"By @" + owner}
	if l.BookCount > 0 {
		parts = append(parts, fmt.Sprintf("%d books", l.BookCount))
	}
	if l.LikeCount > 0 {
		parts = append(parts, fmt.Sprintf("%d likes", l.LikeCount))
	}
	if preview := previewTitles(l.BookTitles); preview != "" {
		parts = append(parts, preview)
	}

	return DisplayItem{
		Title:    title,
		Subtitle: strings.Join(parts, subtitleSep),
		URL:      p.entityURL(hardcover.KindList, l.Slug),
	}
}

// PresentShelfEntry renders one of the user's own tracked books.
func (p *Presenter) PresentShelfEntry(e hardcover.ShelfEntry) DisplayItem {
	item := p.PresentBook(&e.Book)
	var parts []string
	if item.Subtitle != "Book" {
		parts = append(parts, item.Subtitle)
	}
	parts = append(parts, e.Status.Label())
	if e.Rating != 0 {
		parts = append(parts, fmt.Sprintf("★ %.1f", e.Rating))
	}
	item.Subtitle = strings.Join(parts, subtitleSep)
	return item
}

// PresentList renders one of the user's own lists.
func (p *Presenter) PresentList(l hardcover.List) DisplayItem {
	return p.presentList(&l)
}

// entityURL builds the deterministic browse URL. A record without a slug is
// still renderable but has nowhere to navigate to.
func (p *Presenter) entityURL(kind hardcover.Kind, slug string) string {
	if slug == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", p.baseURL, kind.PathSegment(), slug)
}

func joinOrFallback(parts []string, fallback string) string {
	if len(parts) == 0 {
		return fallback
	}
	return strings.Join(parts, subtitleSep)
}

func previewTitles(titles []string) string {
	if len(titles) == 0 {
		return ""
	}
	if len(titles) <= previewMax {
		return strings.Join(titles, ", ")
	}
	return strings.Join(titles[:previewMax], ", ") + "..."
}
