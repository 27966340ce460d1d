package ticketleap

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

// Date is one performance scraped off an event's details page.
type Date struct {
	UUID  string
	Start time.Time
	End   time.Time
}

var uuidShape = regexp.MustCompile(`^[a-z0-9]{8}-[a-z0-9]{4}-[a-z0-9]{4}-[a-z0-9]{4}-[a-z0-9]{12}$`)

// Dates maps the date key (see DateKey) of every performance of an
// event to its uuid and parsed range. The details page hides them in a
// dropdown whose list items carry the uuid as their element id. Two
// performances starting on the same minute collapse to one entry.
func (c *Client) Dates(ctx context.Context, eventSlug string) (map[string]Date, error) {
	ctx, span := tracer.Start(ctx, "client:Dates")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("Referer", fmt.Sprintf("%s/admin/events/%s/completed-first", c.BaseUrl, eventSlug)).
		Get(fmt.Sprintf("/admin/events/%s/details", eventSlug))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch event details")
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse event details html")
		return nil, err
	}

	dropdown := doc.Find("div.dropdown.hide").First()
	if dropdown.Length() == 0 {
		err := fmt.Errorf("%w: %q has no date dropdown", UnknownEvent, eventSlug)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	dates := make(map[string]Date)
	var parseErr error
	dropdown.Find("ul li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		start, end, err := parseDateRange(li.Text())
		if err != nil {
			parseErr = err
			return false
		}
		dates[DateKey(start)] = Date{
			UUID:  li.AttrOr("id", ""),
			Start: start,
			End:   end,
		}
		return true
	})
	if parseErr != nil {
		span.RecordError(parseErr)
		span.SetStatus(codes.Error, "failed to parse a date range")
		return nil, parseErr
	}

	return dates, nil
}

// DateUUID resolves a date reference to a performance uuid. Anything
// already shaped like a uuid passes straight through without touching
// the network, everything else is treated as a date key and looked up
// on the event's details page.
func (c *Client) DateUUID(ctx context.Context, eventSlug, date string) (string, error) {
	if uuidShape.MatchString(date) {
		return date, nil
	}

	ctx, span := tracer.Start(ctx, "client:DateUUID")
	defer span.End()

	dates, err := c.Dates(ctx, eventSlug)
	if err != nil {
		return "", err
	}
	d, ok := dates[date]
	if !ok {
		err := lookupError(UnknownDate, date, keys(dates))
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return d.UUID, nil
}
