package ticketleap

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDateFormset(t *testing.T) {
	got := dateFormset(0, DateRange{
		Start: time.Date(2019, 9, 29, 13, 0, 0, 0, time.UTC),
		End:   time.Date(2019, 9, 29, 22, 0, 0, 0, time.UTC),
	})
	want := map[string]string{
		"dates-0-start_date": "09/29/2019",
		"dates-0-start_time": "01:00",
		"dates-0-start_ampm": "pm",
		"dates-0-end_date":   "09/29/2019",
		"dates-0-end_time":   "10:00",
		"dates-0-end_ampm":   "pm",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("date formset mismatch (-want +got):\n%s", diff)
	}
}

func TestDateFormsetMorning(t *testing.T) {
	got := dateFormset(2, DateRange{
		Start: time.Date(2020, 1, 5, 9, 30, 0, 0, time.UTC),
		End:   time.Date(2020, 1, 5, 11, 0, 0, 0, time.UTC),
	})
	require.Equal(t, "01/05/2020", got["dates-2-start_date"])
	require.Equal(t, "09:30", got["dates-2-start_time"])
	require.Equal(t, "am", got["dates-2-start_ampm"])
}

func TestFormsetCounters(t *testing.T) {
	got := formsetCounters("tickets", 3)
	require.Equal(t, "3", got["tickets-TOTAL_FORMS"])
	require.Equal(t, "0", got["tickets-INITIAL_FORMS"])
	require.Equal(t, "0", got["tickets-MIN_NUM_FORMS"])
	require.Equal(t, "1000", got["tickets-MAX_NUM_FORMS"])
}

func TestTicketFormsetDefaults(t *testing.T) {
	got := ticketFormset(0, TicketParams{
		Name:  "General Admission",
		Price: "25.00",
	})
	require.Equal(t, "General Admission", got["tickets-0-name"])
	require.Equal(t, "25.00", got["tickets-0-price"])
	require.Equal(t, "fixed", got["tickets-0-pricing_type"])
	require.Equal(t, "all", got["tickets-0-visibility"])
	require.Equal(t, "ticket", got["tickets-0-delivery_method"])
	// no inventory cap, the checkbox stays off
	require.Equal(t, "", got["tickets-0-inventory"])
	require.Equal(t, "", got["tickets-0-limit_inventory"])
}

func TestTicketFormsetInventory(t *testing.T) {
	got := ticketFormset(1, TicketParams{
		Name:      "VIP Pass",
		Price:     "95.00",
		Inventory: "50",
	})
	require.Equal(t, "50", got["tickets-1-inventory"])
	require.Equal(t, "on", got["tickets-1-limit_inventory"])
}

func TestTicketAddForm(t *testing.T) {
	form := ticketAddForm("csrf-123", TicketParams{
		Name:      "Door",
		Price:     "10",
		Inventory: "200",
	}, []string{"uuid-a", "uuid-b"})

	require.Equal(t, "csrf-123", form.Get("csrfmiddlewaretoken"))
	require.Equal(t, []string{"uuid-a", "uuid-b"}, form["dates"])
	require.Equal(t, "Door", form.Get("name"))
	require.Equal(t, "fixed", form.Get("pricing_type"))
	require.Equal(t, "on", form.Get("limit_inventory"))
	// the edit form has no visibility field
	_, hasVisibility := form["visibility"]
	require.False(t, hasVisibility)
}
