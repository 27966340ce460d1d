package ticketleap

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// newPerformanceMux serves the fall gala details page plus its ticket
// table, enough to resolve any date or ticket in the fixtures.
func newPerformanceMux(t *testing.T) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/events/fall-gala/details", func(w http.ResponseWriter, r *http.Request) {
		w.Write(detailsPage)
	})
	mux.HandleFunc("GET /admin/events/fall-gala/performance/{uuid}/tickets/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "true", r.URL.Query().Get("ajax"))
		w.Write(ticketsPage)
	})
	return mux
}

func TestTickets(t *testing.T) {
	server := httptest.NewServer(newPerformanceMux(t))
	defer server.Close()
	client := newTestClient(t, server)

	tickets, err := client.Tickets(context.Background(), "fall-gala", "2019-09-29T13:00")
	require.NoError(t, err)

	// two rows share a name, the later one wins; the row without a
	// saved uuid is dropped
	want := map[string]string{
		"General Admission": "33333333-aaaa-bbbb-cccc-000000000003",
		"VIP Pass":          "33333333-aaaa-bbbb-cccc-000000000002",
	}
	if diff := cmp.Diff(want, tickets); diff != "" {
		t.Fatalf("ticket mapping mismatch (-want +got):\n%s", diff)
	}

	// a performance uuid skips the details lookup entirely
	tickets, err = client.Tickets(context.Background(), "fall-gala", "22222222-aaaa-bbbb-cccc-000000000001")
	require.NoError(t, err)
	require.Len(t, tickets, 2)
}

func TestTicketUUID(t *testing.T) {
	server := httptest.NewServer(newPerformanceMux(t))
	defer server.Close()
	client := newTestClient(t, server)

	uuid, err := client.TicketUUID(context.Background(), "fall-gala", "2019-09-29T13:00", "VIP Pass")
	require.NoError(t, err)
	require.Equal(t, "33333333-aaaa-bbbb-cccc-000000000002", uuid)

	_, err = client.TicketUUID(context.Background(), "fall-gala", "2019-09-29T13:00", "VIP Pas")
	require.ErrorIs(t, err, UnknownTicket)
	require.Contains(t, err.Error(), `"VIP Pass"`)
}

func TestAddTickets(t *testing.T) {
	type addPost struct {
		path string
		form url.Values
	}
	var posts []addPost

	mux := newPerformanceMux(t)
	mux.HandleFunc("POST /admin/events/fall-gala/performance/{uuid}/ticket/add/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		posts = append(posts, addPost{path: r.URL.Path, form: r.PostForm})
		fmt.Fprint(w, "ok")
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	client := newTestClient(t, server)

	err := client.AddTickets(context.Background(), "fall-gala", []string{
		"2019-09-29T13:00",
		"2026-01-01T00:00", // not a performance, skipped with a warning
		"2019-12-31T21:00",
		"2019-09-29T13:00", // duplicate, dropped
	}, []TicketParams{
		{Name: "Door", Price: "10.00"},
		{Name: "Advance", Price: "8.00", Inventory: "100"},
	})
	require.NoError(t, err)

	// one request per ticket, not one per date
	require.Len(t, posts, 2)
	for _, p := range posts {
		// every post is addressed to the first resolved performance,
		// the dates field carries the full list and the panel fans out
		require.Equal(t,
			"/admin/events/fall-gala/performance/22222222-aaaa-bbbb-cccc-000000000001/ticket/add/",
			p.path)
		require.Equal(t, []string{
			"22222222-aaaa-bbbb-cccc-000000000001",
			"22222222-aaaa-bbbb-cccc-000000000003",
		}, p.form["dates"])
	}
	require.Equal(t, "Door", posts[0].form.Get("name"))
	require.Equal(t, "Advance", posts[1].form.Get("name"))
	require.Equal(t, "on", posts[1].form.Get("limit_inventory"))
}

func TestAddTicketsNoDates(t *testing.T) {
	var hits int
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		hits++
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	client := newTestClient(t, server)

	err := client.AddTickets(context.Background(), "fall-gala", nil, []TicketParams{{Name: "Door"}})
	require.ErrorIs(t, err, NoDatesGiven)
	require.Zero(t, hits)
}

func TestAddTicketsNoneResolve(t *testing.T) {
	mux := newPerformanceMux(t)
	mux.HandleFunc("POST /admin/events/fall-gala/performance/{uuid}/ticket/add/", func(w http.ResponseWriter, r *http.Request) {
		t.Error("no ticket should be added when no date resolves")
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	client := newTestClient(t, server)

	err := client.AddTickets(context.Background(), "fall-gala",
		[]string{"2030-01-01T09:00"},
		[]TicketParams{{Name: "Door"}})
	require.ErrorIs(t, err, NoValidDates)
}

func TestModifyTicket(t *testing.T) {
	var methods []string
	var form url.Values

	mux := newPerformanceMux(t)
	mux.HandleFunc("/admin/events/fall-gala/performance/{date}/ticket/{ticket}/edit/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "22222222-aaaa-bbbb-cccc-000000000001", r.PathValue("date"))
		require.Equal(t, "33333333-aaaa-bbbb-cccc-000000000002", r.PathValue("ticket"))
		methods = append(methods, r.Method)
		if r.Method == http.MethodPost {
			require.NoError(t, r.ParseForm())
			form = r.PostForm
		}
		fmt.Fprint(w, "<html>edit form</html>")
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	client := newTestClient(t, server)

	result, err := client.ModifyTicket(context.Background(), ModifyTicketRequest{
		EventSlug:  "fall-gala",
		Date:       "2019-09-29T13:00",
		TicketName: "VIP Pass",
		Price:      "120.00",
	})
	require.NoError(t, err)
	require.True(t, result.Ok)

	// the panel only honors a post that follows a render of the form
	require.Equal(t, []string{http.MethodGet, http.MethodPost}, methods)
	// the name survives when no rename is requested
	require.Equal(t, "VIP Pass", form.Get("name"))
	require.Equal(t, "120.00", form.Get("price"))
	require.Equal(t, []string{"22222222-aaaa-bbbb-cccc-000000000001"}, form["dates"])
}

func TestModifyTicketRejected(t *testing.T) {
	mux := newPerformanceMux(t)
	mux.HandleFunc("/admin/events/fall-gala/performance/{date}/ticket/{ticket}/edit/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, "<html>price must be a number</html>")
			return
		}
		fmt.Fprint(w, "<html>edit form</html>")
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	client := newTestClient(t, server)

	result, err := client.ModifyTicket(context.Background(), ModifyTicketRequest{
		EventSlug:  "fall-gala",
		Date:       "2019-09-29T13:00",
		TicketName: "VIP Pass",
		Price:      "a lot",
	})
	require.NoError(t, err)
	require.False(t, result.Ok)
	require.Equal(t, "modify_ticket.html", filepath.Base(result.DumpFile))

	body, err := os.ReadFile(result.DumpFile)
	require.NoError(t, err)
	require.Contains(t, string(body), "price must be a number")
}

func TestDeleteTicketRequiresRef(t *testing.T) {
	var hits int
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		hits++
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	client := newTestClient(t, server)

	err := client.DeleteTicket(context.Background(), "fall-gala", "2019-09-29T13:00", "", "")
	require.ErrorIs(t, err, NoTicketRef)
	require.Zero(t, hits)
}

func TestDeleteTicketByName(t *testing.T) {
	var deleted []string
	mux := newPerformanceMux(t)
	mux.HandleFunc("GET /admin/events/fall-gala/performance/{date}/ticket/{ticket}/delete/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "delete", r.URL.Query().Get("submit"))
		deleted = append(deleted, r.PathValue("ticket"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	client := newTestClient(t, server)

	err := client.DeleteTicket(context.Background(), "fall-gala", "2019-09-29T13:00", "VIP Pass", "")
	require.NoError(t, err)
	require.Equal(t, []string{"33333333-aaaa-bbbb-cccc-000000000002"}, deleted)
}

func TestDeleteTicketByUuid(t *testing.T) {
	var paths []string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	client := newTestClient(t, server)

	// both references already resolved, exactly one request goes out
	err := client.DeleteTicket(context.Background(), "fall-gala",
		"22222222-aaaa-bbbb-cccc-000000000001",
		"", "33333333-aaaa-bbbb-cccc-000000000002")
	require.NoError(t, err)
	require.Equal(t, []string{
		"/admin/events/fall-gala/performance/22222222-aaaa-bbbb-cccc-000000000001/ticket/33333333-aaaa-bbbb-cccc-000000000002/delete/",
	}, paths)
}

func TestClearDate(t *testing.T) {
	var deleted []string
	mux := newPerformanceMux(t)
	mux.HandleFunc("GET /admin/events/fall-gala/performance/{date}/ticket/{ticket}/delete/", func(w http.ResponseWriter, r *http.Request) {
		deleted = append(deleted, r.PathValue("ticket"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	client := newTestClient(t, server)

	err := client.ClearDate(context.Background(), "fall-gala", "2019-09-29T13:00")
	require.NoError(t, err)
	// one delete per mapping entry, the shadowed duplicate never gets
	// its own request
	require.ElementsMatch(t, []string{
		"33333333-aaaa-bbbb-cccc-000000000002",
		"33333333-aaaa-bbbb-cccc-000000000003",
	}, deleted)
}

func TestClearEvent(t *testing.T) {
	var deleted []string
	mux := newPerformanceMux(t)
	mux.HandleFunc("GET /admin/events/fall-gala/performance/{date}/ticket/{ticket}/delete/", func(w http.ResponseWriter, r *http.Request) {
		deleted = append(deleted, r.PathValue("date")+"/"+r.PathValue("ticket"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	client := newTestClient(t, server)

	err := client.ClearEvent(context.Background(), "fall-gala")
	require.NoError(t, err)
	// three performances, two saved ticket types each
	require.Len(t, deleted, 6)
}
