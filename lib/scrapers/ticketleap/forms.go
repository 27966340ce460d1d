package ticketleap

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DateRange is one performance of an event. Times are naive wall clock
// values in the venue's timezone, the admin panel never sees a zone.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// TicketParams describes one ticket type the way the admin forms want
// it. The money and count fields stay strings since the forms accept
// free text and pass blanks through, zero values mean the form's
// blanks.
type TicketParams struct {
	Name           string `json:"name"`
	Price          string `json:"price"`
	PricingType    string `json:"pricing_type"` // defaults to "fixed"
	MinPrice       string `json:"min_price"`
	Description    string `json:"description"`
	Inventory      string `json:"inventory"`  // blank means unlimited
	Visibility     string `json:"visibility"` // defaults to "all"
	MinPerOrder    string `json:"min_per_order"`
	MaxPerOrder    string `json:"max_per_order"`
	DeliveryMethod string `json:"delivery_method"` // defaults to "ticket"
}

func (t TicketParams) withDefaults() TicketParams {
	if t.PricingType == "" {
		t.PricingType = "fixed"
	}
	if t.Visibility == "" {
		t.Visibility = "all"
	}
	if t.DeliveryMethod == "" {
		t.DeliveryMethod = "ticket"
	}
	return t
}

// limitInventory is "on" exactly when an inventory cap is set, the
// panel reads the checkbox and the count as a pair.
func (t TicketParams) limitInventory() string {
	if t.Inventory != "" {
		return "on"
	}
	return ""
}

// formsetCounters emits the management fields django expects next to
// the indexed rows of a formset.
func formsetCounters(prefix string, total int) map[string]string {
	return map[string]string{
		prefix + "-TOTAL_FORMS":   strconv.Itoa(total),
		prefix + "-INITIAL_FORMS": "0",
		prefix + "-MIN_NUM_FORMS": "0",
		prefix + "-MAX_NUM_FORMS": "1000",
	}
}

// dateFormset renders one performance as indexed formset fields. The
// panel wants the date, the 12 hour clock time and the am/pm marker
// split into separate inputs.
func dateFormset(index int, d DateRange) map[string]string {
	prefix := fmt.Sprintf("dates-%d-", index)
	return map[string]string{
		prefix + "start_date": d.Start.Format("01/02/2006"),
		prefix + "start_time": d.Start.Format("03:04"),
		prefix + "start_ampm": strings.ToLower(d.Start.Format("PM")),
		prefix + "end_date":   d.End.Format("01/02/2006"),
		prefix + "end_time":   d.End.Format("03:04"),
		prefix + "end_ampm":   strings.ToLower(d.End.Format("PM")),
	}
}

// ticketFormset renders one ticket type as indexed formset fields for
// the event create form.
func ticketFormset(index int, t TicketParams) map[string]string {
	t = t.withDefaults()
	prefix := fmt.Sprintf("tickets-%d-", index)
	return map[string]string{
		prefix + "name":                     t.Name,
		prefix + "inventory":                t.Inventory,
		prefix + "limit_inventory":          t.limitInventory(),
		prefix + "pricing_type":             t.PricingType,
		prefix + "price":                    t.Price,
		prefix + "min_price":                t.MinPrice,
		prefix + "visibility":               t.Visibility,
		prefix + "description":              t.Description,
		prefix + "sales_start_days_before":  "",
		prefix + "sales_start_hours_before": "",
		prefix + "sales_end_days_before":    "",
		prefix + "sales_end_hours_before":   "",
		prefix + "min_per_order":            t.MinPerOrder,
		prefix + "max_per_order":            t.MaxPerOrder,
		prefix + "grouping_key":             "",
		prefix + "delivery_method":          t.DeliveryMethod,
	}
}

// ticketAddForm lays a ticket out the way the standalone add and edit
// endpoints want it: flat fields plus a repeated dates field carrying
// every target performance uuid. The panel fans one post out to all of
// them.
func ticketAddForm(csrf string, t TicketParams, dateUuids []string) url.Values {
	t = t.withDefaults()
	form := url.Values{}
	form.Set("csrfmiddlewaretoken", csrf)
	for _, id := range dateUuids {
		form.Add("dates", id)
	}
	form.Set("name", t.Name)
	form.Set("description", t.Description)
	form.Set("pricing_type", t.PricingType)
	form.Set("price", t.Price)
	form.Set("min_price", t.MinPrice)
	form.Set("sales_start_date", "")
	form.Set("sales_start_time", "")
	form.Set("sales_start_ampm", "pm")
	form.Set("sales_end_date", "")
	form.Set("sales_end_time", "")
	form.Set("sales_end_ampm", "pm")
	form.Set("inventory", t.Inventory)
	form.Set("limit_inventory", t.limitInventory())
	form.Set("min_per_order", t.MinPerOrder)
	form.Set("max_per_order", t.MaxPerOrder)
	form.Set("grouping_key", "")
	form.Set("delivery_method", t.DeliveryMethod)
	return form
}
