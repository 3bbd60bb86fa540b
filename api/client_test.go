package api_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/darshvaidya/go-blog-client/api"
	"github.com/darshvaidya/go-blog-client/rest"
	"github.com/darshvaidya/go-blog-client/session"
)

const testAccessToken = "access-token-1"

// clientFixture wires an api.Client with an authenticated in-memory session
// against a test server
type clientFixture struct {
	store  *session.MemoryStore
	client *api.Client
}

func newClientFixture(t *testing.T, handler http.Handler) *clientFixture {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), session.Session{
		User: &session.User{ID: "user-1", Email: "author@example.com", Role: session.RoleAuthor},
		Tokens: &session.TokenPair{
			AccessToken:  testAccessToken,
			RefreshToken: "refresh-token-1",
			TokenType:    "Bearer",
		},
	}))

	coordinator := rest.NewCoordinator(rest.NewExecutor(server.URL, server.Client()), store, nil)
	return &clientFixture{store: store, client: api.NewClient(coordinator)}
}

func TestListPostsAttachesBearerAndDecodes(t *testing.T) {
	var gotAuth, gotQuery string
	f := newClientFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{
			"data":[{"id":"p1","author_id":"user-1","title":"First","content":"hello","status":"published"}],
			"meta":{"page":1,"limit":10,"total":1,"total_pages":1}
		}`)
	}))

	page, err := f.client.ListPosts(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Equal(t, "Bearer "+testAccessToken, gotAuth)
	require.Equal(t, "limit=10&page=1", gotQuery)
	require.Len(t, page.Data, 1)
	require.Equal(t, "First", page.Data[0].Title)
	require.Equal(t, api.PostStatusPublished, page.Data[0].Status)
	require.Equal(t, int64(1), page.Meta.Total)
}

func TestListPostsOmitsUnsetPageParams(t *testing.T) {
	var gotQuery string
	f := newClientFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"data":[],"meta":{}}`)
	}))

	_, err := f.client.ListPosts(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Empty(t, gotQuery)
}

func TestCreatePostReturnsCreated(t *testing.T) {
	f := newClientFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/posts", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"data":{"id":"p2","title":"Draft","status":"draft"}}`)
	}))

	post, err := f.client.CreatePost(context.Background(), api.PostInput{
		Title: "Draft", Content: "wip", Status: api.PostStatusDraft,
	})
	require.NoError(t, err)
	require.Equal(t, "p2", post.ID)
	require.Equal(t, api.PostStatusDraft, post.Status)
}

func TestDeletePostToleratesEmptyBody(t *testing.T) {
	f := newClientFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/posts/p1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, f.client.DeletePost(context.Background(), "p1"))
}

func TestUpdateUserRoleSuccess(t *testing.T) {
	f := newClientFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/admin/users/user-2/role", r.URL.Path)
		fmt.Fprint(w, `{"data":{"id":"user-2","email":"reader@example.com","role":"admin"}}`)
	}))

	user, err := f.client.UpdateUserRole(context.Background(), "user-2", session.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, session.RoleAdmin, user.Role)
}

func TestUpdateUserRoleSurfacesBusinessRejection(t *testing.T) {
	// A 403 business rejection surfaces error.message verbatim and leaves
	// the session authenticated.
	f := newClientFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"code":"forbidden","message":"cannot demote the last admin"}}`)
	}))

	_, err := f.client.UpdateUserRole(context.Background(), "user-2", session.RoleReader)
	require.Error(t, err)

	var apiErr *rest.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "cannot demote the last admin", apiErr.Message)
	require.Equal(t, http.StatusForbidden, apiErr.Status)

	current, getErr := f.store.Get(context.Background())
	require.NoError(t, getErr)
	require.True(t, current.Authenticated())
}

func TestFacadeFallsBackOnUnstructuredError(t *testing.T) {
	f := newClientFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := f.client.GetPost(context.Background(), "p1")
	require.EqualError(t, err, "API request failed")
}
