package hardcover

import (
	"net/url"
	"strconv"
)

// DefaultPerPage is used whenever a caller passes a non-positive page size.
const DefaultPerPage = 10

// GraphQLRequest is a query document plus its variables, ready to POST.
type GraphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

const searchDocument = `
query Search($query: String!, $query_type: String!, $per_page: Int!, $page: Int!) {
  search(query: $query, query_type: $query_type, per_page: $per_page, page: $page) {
    results
    query
    query_type
    page
    per_page
  }
}`

// BuildSearch constructs the generic search request for any entity kind.
// Empty query text is the caller's problem; the builder does not validate.
func BuildSearch(kind Kind, text string, perPage, page int) GraphQLRequest {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if page <= 0 {
		page = 1
	}
	return GraphQLRequest{
		Query: searchDocument,
		Variables: map[string]any{
			"query":      text,
			"query_type": kind.QueryType(),
			"per_page":   perPage,
			"page":       page,
		},
	}
}

// BuildTypeahead constructs the query parameters for the Typesense books
// collection. The sort keeps popular editions first, matching the website.
func BuildTypeahead(text string, perPage int) url.Values {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return url.Values{
		"q":        {text},
		"query_by": {"title,author_names"},
		"sort_by":  {"users_read_count:desc"},
		"per_page": {strconv.Itoa(perPage)},
	}
}

const statusMutationDocument = `
mutation AddBook($book_id: Int!, $status_id: Int!) {
  insert_user_book_one(object: {book_id: $book_id, status_id: $status_id}) {
    id
    book_id
    status_id
  }
}`

const statusMutationWithRatingDocument = `
mutation AddBook($book_id: Int!, $status_id: Int!, $rating: numeric!) {
  insert_user_book_one(object: {book_id: $book_id, status_id: $status_id, rating: $rating}) {
    id
    book_id
    status_id
    rating
  }
}`

// BuildStatusMutation constructs the insert-or-update for a user's book
// status. The service deduplicates by user+book, so the same mutation serves
// both insert and update.
func BuildStatusMutation(bookID int, status Status, rating *float64) GraphQLRequest {
	vars := map[string]any{
		"book_id":   bookID,
		"status_id": int(status),
	}
	doc := statusMutationDocument
	if rating != nil {
		vars["rating"] = *rating
		doc = statusMutationWithRatingDocument
	}
	return GraphQLRequest{Query: doc, Variables: vars}
}

const libraryLookupDocument = `
query LibraryLookup($user_id: Int!, $book_id: Int!) {
  user_books(where: {user_id: {_eq: $user_id}, book_id: {_eq: $book_id}}) {
    id
    user_id
    book_id
    status_id
    rating
  }
}`

// BuildLibraryLookup constructs the existence check for a tracked book.
func BuildLibraryLookup(userID, bookID int) GraphQLRequest {
	return GraphQLRequest{
		Query: libraryLookupDocument,
		Variables: map[string]any{
			"user_id": userID,
			"book_id": bookID,
		},
	}
}

const userInfoDocument = `
query Me {
  me {
    id
    username
    name
  }
}`

// BuildUserInfo constructs the authenticated-account query.
func BuildUserInfo() GraphQLRequest {
	return GraphQLRequest{Query: userInfoDocument}
}

const bookIDBySlugDocument = `
query GetBookID($slug: String!) {
  books(where: {slug: {_eq: $slug}}) {
    id
  }
}`

// BuildBookIDBySlug constructs the slug-to-id resolution query. Needed
// because mutations take the integer id while search results navigate by
// slug.
func BuildBookIDBySlug(slug string) GraphQLRequest {
	return GraphQLRequest{
		Query:     bookIDBySlugDocument,
		Variables: map[string]any{"slug": slug},
	}
}

const userBooksByStatusDocument = `
query GetUserBooks($status: Int!, $limit: Int!) {
  me {
    user_books(where: {status_id: {_eq: $status}}, limit: $limit, order_by: {updated_at: desc}) {
      status_id
      rating
      book {
        id
        title
        slug
        contributions {
          author {
            name
          }
        }
      }
    }
  }
}`

// BuildUserBooksByStatus constructs the shelf listing for one status.
func BuildUserBooksByStatus(status Status, limit int) GraphQLRequest {
	if limit <= 0 {
		limit = DefaultPerPage
	}
	return GraphQLRequest{
		Query: userBooksByStatusDocument,
		Variables: map[string]any{
			"status": int(status),
			"limit":  limit,
		},
	}
}

const userListsDocument = `
query GetMyLists {
  me {
    lists(order_by: {updated_at: desc}) {
      id
      name
      slug
      books_count
    }
  }
}`

// BuildUserLists constructs the query for the user's own lists.
func BuildUserLists() GraphQLRequest {
	return GraphQLRequest{Query: userListsDocument}
}
