package workspace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresToken(t *testing.T) {
	_, err := NewClient("", "", 0)
	require.Error(t, err)

	c, err := NewClient("secret", "", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
}

func TestNewClient_Timeout(t *testing.T) {
	c, err := NewClient("secret", "", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, c.http.Timeout)

	c, err = NewClient("secret", "", 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, c.http.Timeout)
}

// TestQueryCollection_SingleResult verifies filter, sort and auth headers on
// the query request.
func TestQueryCollection_SingleResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/collections/col-1/query", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		filter := req["filter"].(map[string]any)
		assert.Equal(t, "Published", filter["property"])
		sorts := req["sorts"].([]any)
		first := sorts[0].(map[string]any)
		assert.Equal(t, "Date", first["property"])
		assert.Equal(t, "descending", first["direction"])

		fmt.Fprint(w, `{"results":[{"id":"p1"}],"has_more":false}`)
	}))
	defer srv.Close()

	c, err := NewClient("secret", srv.URL, 0)
	require.NoError(t, err)

	pages, err := c.QueryCollection(context.Background(), "col-1")
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "p1", pages[0].ID)
}

// TestQueryCollection_FollowsCursor verifies cursor pagination is followed
// until has_more is false, preserving page order.
func TestQueryCollection_FollowsCursor(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		switch calls {
		case 1:
			assert.Nil(t, req["start_cursor"])
			fmt.Fprint(w, `{"results":[{"id":"p1"},{"id":"p2"}],"has_more":true,"next_cursor":"cur-2"}`)
		case 2:
			assert.Equal(t, "cur-2", req["start_cursor"])
			fmt.Fprint(w, `{"results":[{"id":"p3"}],"has_more":false}`)
		default:
			t.Fatalf("unexpected call %d", calls)
		}
	}))
	defer srv.Close()

	c, err := NewClient("secret", srv.URL, 0)
	require.NoError(t, err)

	pages, err := c.QueryCollection(context.Background(), "col-1")
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, "p1", pages[0].ID)
	assert.Equal(t, "p3", pages[2].ID)
	assert.Equal(t, 2, calls)
}

// TestQueryCollection_ErrorStatus verifies a non-2xx response is a
// query-level error.
func TestQueryCollection_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := NewClient("bad", srv.URL, 0)
	require.NoError(t, err)

	_, err = c.QueryCollection(context.Background(), "col-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

// TestQueryCollection_MalformedResponse verifies bad JSON is an error.
func TestQueryCollection_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [`)
	}))
	defer srv.Close()

	c, err := NewClient("secret", srv.URL, 0)
	require.NoError(t, err)

	_, err = c.QueryCollection(context.Background(), "col-1")
	require.Error(t, err)
}

// TestFetchBlocks_FollowsCursor verifies block pagination via start_cursor
// query parameters.
func TestFetchBlocks_FollowsCursor(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/blocks/page-1/children", r.URL.Path)

		switch calls {
		case 1:
			assert.Empty(t, r.URL.Query().Get("start_cursor"))
			fmt.Fprint(w, `{"results":[{"id":"b1","type":"paragraph","paragraph":{"rich_text":[{"plain_text":"hi"}]}}],"has_more":true,"next_cursor":"c2"}`)
		case 2:
			assert.Equal(t, "c2", r.URL.Query().Get("start_cursor"))
			fmt.Fprint(w, `{"results":[{"id":"b2","type":"divider","divider":{}}],"has_more":false}`)
		default:
			t.Fatalf("unexpected call %d", calls)
		}
	}))
	defer srv.Close()

	c, err := NewClient("secret", srv.URL, 0)
	require.NoError(t, err)

	blocks, err := c.FetchBlocks(context.Background(), "page-1")
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, "paragraph", blocks[0].Type)
	require.NotNil(t, blocks[0].Paragraph)
	assert.Equal(t, "hi", blocks[0].Paragraph.RichText[0].PlainText)
	assert.Equal(t, "divider", blocks[1].Type)
}

// TestFetchBlocks_EscapesCursor verifies a cursor with reserved characters
// survives the round trip intact.
func TestFetchBlocks_EscapesCursor(t *testing.T) {
	cursor := "c2+extra&more=1%zz"
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch calls {
		case 1:
			fmt.Fprintf(w, `{"results":[],"has_more":true,"next_cursor":%q}`, cursor)
		case 2:
			assert.Equal(t, cursor, r.URL.Query().Get("start_cursor"))
			assert.Equal(t, "100", r.URL.Query().Get("page_size"))
			fmt.Fprint(w, `{"results":[],"has_more":false}`)
		default:
			t.Fatalf("unexpected call %d", calls)
		}
	}))
	defer srv.Close()

	c, err := NewClient("secret", srv.URL, 0)
	require.NoError(t, err)

	_, err = c.FetchBlocks(context.Background(), "page-1")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
