package ticketleap

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"ticketleap-bulk/lib/telemetry"

	_ "embed"
)

//go:embed testdata/events.html
var eventsPage []byte

//go:embed testdata/events_reordered.html
var eventsReorderedPage []byte

//go:embed testdata/details.html
var detailsPage []byte

//go:embed testdata/tickets.html
var ticketsPage []byte

// newTestClient skips Login and points a ready client at the fake
// admin server, the way a logged in session would look.
func newTestClient(t *testing.T, server *httptest.Server) *Client {
	client, err := NewClient(context.Background(), ClientOptions{
		BaseUrl: server.URL,
		DumpDir: t.TempDir(),
	})
	require.NoError(t, err)
	client.CsrfToken = "csrf-123"
	client.Http.SetHeader("X-CSRFToken", "csrf-123")
	return client
}

func newLoginMux(t *testing.T, accept bool) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /login/", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "csrf-123", Path: "/"})
		fmt.Fprint(w, "<html><form method=post></form></html>")
	})
	mux.HandleFunc("POST /login/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "csrf-123", r.PostForm.Get("csrfmiddlewaretoken"))
		require.NotEmpty(t, r.PostForm.Get("username"))
		if accept && r.PostForm.Get("password") == "hunter2" {
			http.Redirect(w, r, "/admin/", http.StatusFound)
			return
		}
		// the real panel answers a bad login by bouncing back to the
		// login page with a 200
		http.Redirect(w, r, "/login/", http.StatusFound)
	})
	mux.HandleFunc("GET /admin/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>dashboard</html>")
	})
	return mux
}

func TestLogin(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/ticketleap")
	defer cleanup()

	server := httptest.NewServer(newLoginMux(t, true))
	defer server.Close()

	client, err := NewClient(context.Background(), ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	err = client.Login(context.Background(), "seller@example.com", "hunter2")
	require.NoError(t, err)

	// the client is rebased onto wherever the panel landed, minus the
	// admin suffix
	require.Equal(t, server.URL, client.BaseUrl.String())
	require.Equal(t, "csrf-123", client.CsrfToken)
	require.Equal(t, "csrf-123", client.Http.Header.Get("X-CSRFToken"))
}

func TestLoginRejected(t *testing.T) {
	server := httptest.NewServer(newLoginMux(t, false))
	defer server.Close()

	client, err := NewClient(context.Background(), ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	err = client.Login(context.Background(), "seller@example.com", "wrong")
	require.ErrorIs(t, err, LoginFailed)
	// nothing about the client changes on a failed login
	require.Empty(t, client.CsrfToken)
	require.Equal(t, server.URL, client.BaseUrl.String())
}

func TestLoginNoCsrfCookie(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /login/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>maintenance</html>")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := NewClient(context.Background(), ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	err = client.Login(context.Background(), "seller@example.com", "hunter2")
	require.Error(t, err)
	require.Contains(t, err.Error(), "csrftoken")
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(context.Background(), ClientOptions{})
	require.NoError(t, err)
	require.Equal(t, "https://www.ticketleap.com", client.BaseUrl.String())
	require.Equal(t, browserHeaders["User-Agent"], client.Http.Header.Get("User-Agent"))
}
