package ticketleap

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

var ticketRowIdRegex = regexp.MustCompile(`^ticket-type-([a-z0-9-]{36})$`)

// Tickets maps ticket type names to uuids for one performance. date
// takes a date key or a performance uuid. Names are whatever the
// seller typed, so two tickets sharing a name collapse to one entry.
func (c *Client) Tickets(ctx context.Context, eventSlug, date string) (map[string]string, error) {
	ctx, span := tracer.Start(ctx, "client:Tickets")
	defer span.End()

	dateUuid, err := c.DateUUID(ctx, eventSlug, date)
	if err != nil {
		return nil, err
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("Referer", c.detailsUrl(eventSlug)).
		Get(fmt.Sprintf("/admin/events/%s/performance/%s/tickets/?ajax=true", eventSlug, dateUuid))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch ticket table")
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse ticket table html")
		return nil, err
	}

	tickets := make(map[string]string)
	doc.Find("tr.ticket-type").Each(func(_ int, row *goquery.Selection) {
		groups := ticketRowIdRegex.FindStringSubmatch(row.AttrOr("id", ""))
		if len(groups) < 2 {
			return
		}
		name := strings.Trim(row.Find("td").First().Text(), " \n\t")
		tickets[name] = groups[1]
	})

	return tickets, nil
}

// TicketUUID resolves a ticket by the name shown in the performance's
// ticket table.
func (c *Client) TicketUUID(ctx context.Context, eventSlug, date, name string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:TicketUUID")
	defer span.End()

	tickets, err := c.Tickets(ctx, eventSlug, date)
	if err != nil {
		return "", err
	}
	uuid, ok := tickets[name]
	if !ok {
		err := lookupError(UnknownTicket, name, keys(tickets))
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return uuid, nil
}

// AddTickets attaches every ticket type to every listed date. dates
// holds date keys, unknown ones are skipped with a warning. The add
// endpoint fans a single post out to all uuids in its dates field, so
// one request per ticket goes out, addressed to the first resolved
// performance.
func (c *Client) AddTickets(ctx context.Context, eventSlug string, dates []string, tickets []TicketParams) error {
	ctx, span := tracer.Start(ctx, "client:AddTickets")
	defer span.End()

	if len(dates) == 0 {
		span.SetStatus(codes.Error, NoDatesGiven.Error())
		return NoDatesGiven
	}

	known, err := c.Dates(ctx, eventSlug)
	if err != nil {
		return err
	}

	var dateUuids []string
	seen := map[string]bool{}
	for _, date := range dates {
		d, ok := known[date]
		if !ok {
			slog.WarnContext(ctx, "skipping unknown date", "event", eventSlug, "date", date)
			continue
		}
		if seen[d.UUID] {
			continue
		}
		seen[d.UUID] = true
		dateUuids = append(dateUuids, d.UUID)
	}
	if len(dateUuids) == 0 {
		err := fmt.Errorf("%w: %v", NoValidDates, dates)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	for _, t := range tickets {
		form := ticketAddForm(c.CsrfToken, t, dateUuids)
		_, err := c.Http.R().
			SetContext(ctx).
			SetHeader("Accept", "*/*").
			SetHeader("Referer", c.detailsUrl(eventSlug)).
			SetHeader("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8").
			SetHeader("X-Requested-With", "XMLHttpRequest").
			SetBody(form.Encode()).
			Post(fmt.Sprintf("/admin/events/%s/performance/%s/ticket/add/", eventSlug, dateUuids[0]))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to submit ticket add form")
			return err
		}
		slog.InfoContext(ctx, "added ticket", "event", eventSlug, "name", t.Name, "dates", len(dateUuids))
	}

	return nil
}

// ModifyTicketRequest rewrites the fields of one existing ticket type.
type ModifyTicketRequest struct {
	EventSlug  string `json:"event_slug"`
	Date       string `json:"date"` // date key or performance uuid
	TicketName string `json:"ticket_name"`

	NewName     string `json:"new_name"` // keeps TicketName when blank
	Price       string `json:"price"`
	Description string `json:"description"`
	Inventory   string `json:"inventory"` // blank means unlimited
	PricingType string `json:"pricing_type"`
}

// ModifyTicket resolves the ticket and posts its replacement fields to
// the edit endpoint. The panel only honors a post that follows a fresh
// render of the edit form, so the form is fetched first. Rejections
// land in modify_ticket.html.
func (c *Client) ModifyTicket(ctx context.Context, req ModifyTicketRequest) (SubmitResult, error) {
	ctx, span := tracer.Start(ctx, "client:ModifyTicket")
	defer span.End()

	dateUuid, err := c.DateUUID(ctx, req.EventSlug, req.Date)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to resolve date")
		return SubmitResult{}, err
	}
	ticketUuid, err := c.TicketUUID(ctx, req.EventSlug, dateUuid, req.TicketName)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to resolve ticket")
		return SubmitResult{}, err
	}

	form := ticketAddForm(c.CsrfToken, TicketParams{
		Name:        cmp.Or(req.NewName, req.TicketName),
		Price:       req.Price,
		PricingType: req.PricingType,
		Description: req.Description,
		Inventory:   req.Inventory,
	}, []string{dateUuid})

	editPath := fmt.Sprintf(
		"/admin/events/%s/performance/%s/ticket/%s/edit/",
		req.EventSlug, dateUuid, ticketUuid,
	)
	headers := map[string]string{
		"Accept":           "*/*",
		"Referer":          c.detailsUrl(req.EventSlug),
		"Content-Type":     "application/x-www-form-urlencoded; charset=UTF-8",
		"X-CSRFToken":      c.CsrfToken,
		"X-Requested-With": "XMLHttpRequest",
	}

	_, err = c.Http.R().
		SetContext(ctx).
		SetHeaders(headers).
		Get(editPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch edit form")
		return SubmitResult{}, err
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetBody(form.Encode()).
		Post(editPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to submit edit form")
		return SubmitResult{}, err
	}

	return c.finishSubmit(ctx, "modify ticket", "modify_ticket.html", res), nil
}

// DeleteTicket removes one ticket type from one performance. The
// ticket goes by name or by uuid, pass "" for the one you don't have.
func (c *Client) DeleteTicket(ctx context.Context, eventSlug, date, ticketName, ticketUuid string) error {
	ctx, span := tracer.Start(ctx, "client:DeleteTicket")
	defer span.End()

	if ticketName == "" && ticketUuid == "" {
		span.SetStatus(codes.Error, NoTicketRef.Error())
		return NoTicketRef
	}

	dateUuid, err := c.DateUUID(ctx, eventSlug, date)
	if err != nil {
		return err
	}
	if ticketUuid == "" {
		ticketUuid, err = c.TicketUUID(ctx, eventSlug, dateUuid, ticketName)
		if err != nil {
			return err
		}
	}

	// deletion rides on a plain GET, the panel treats it as an ajax
	// action rather than a form
	_, err = c.Http.R().
		SetContext(ctx).
		SetHeader("Accept", "*/*").
		SetHeader("Referer", c.detailsUrl(eventSlug)).
		SetHeader("X-Requested-With", "XMLHttpRequest").
		Get(fmt.Sprintf(
			"/admin/events/%s/performance/%s/ticket/%s/delete/?submit=delete",
			eventSlug, dateUuid, ticketUuid,
		))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to request ticket delete")
		return err
	}

	slog.InfoContext(
		ctx, "deleted ticket",
		"event", eventSlug,
		"date", date,
		"ticket", cmp.Or(ticketName, ticketUuid),
	)
	return nil
}

// ClearDate deletes every ticket type on one performance. Deletes are
// independent requests, a failure partway through leaves the remainder
// in place and the call can simply be run again.
func (c *Client) ClearDate(ctx context.Context, eventSlug, date string) error {
	ctx, span := tracer.Start(ctx, "client:ClearDate")
	defer span.End()

	dateUuid, err := c.DateUUID(ctx, eventSlug, date)
	if err != nil {
		return err
	}
	tickets, err := c.Tickets(ctx, eventSlug, dateUuid)
	if err != nil {
		return err
	}

	for name, ticketUuid := range tickets {
		err := c.DeleteTicket(ctx, eventSlug, dateUuid, name, ticketUuid)
		if err != nil {
			return err
		}
	}
	return nil
}

// ClearEvent deletes every ticket type on every performance of an
// event.
func (c *Client) ClearEvent(ctx context.Context, eventSlug string) error {
	ctx, span := tracer.Start(ctx, "client:ClearEvent")
	defer span.End()

	t1 := time.Now()
	dates, err := c.Dates(ctx, eventSlug)
	if err != nil {
		return err
	}
	for _, d := range dates {
		err := c.ClearDate(ctx, eventSlug, d.UUID)
		if err != nil {
			return err
		}
	}

	slog.InfoContext(
		ctx, "cleared event",
		"event", eventSlug,
		"dates", len(dates),
		"seconds", time.Since(t1).Seconds(),
	)
	return nil
}
