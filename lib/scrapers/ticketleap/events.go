package ticketleap

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/url"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"

	"ticketleap-bulk/lib/htmlutil"
	"ticketleap-bulk/lib/textutil"
)

var (
	// the Manage anchor carries the event slug, the Clone anchor the
	// event uuid hidden in a dialog fragment
	manageHrefRegex = regexp.MustCompile(`^/admin/events/([^/]+)/details\?d=\w{3}-\d{1,2}-\d{4}_at_\d{4}[AP]M`)
	cloneHrefRegex  = regexp.MustCompile(`^#dialog=/admin/events/clone/([a-z0-9-]{36})$`)
)

// Events maps every event slug on the admin event list to its uuid.
// The list renders one Manage and one Clone anchor per event and
// nothing ties the two together except document order, so the i-th
// slug is paired with the i-th uuid.
func (c *Client) Events(ctx context.Context) (map[string]string, error) {
	ctx, span := tracer.Start(ctx, "client:Events")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("Referer", c.BaseUrl.String()+"/admin/").
		Get("/admin/events")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch event list")
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse event list html")
		return nil, err
	}

	slugs := htmlutil.MatchHrefs(htmlutil.Anchors(ctx, doc.Find(`a[title="Manage"]`)), manageHrefRegex)
	uuids := htmlutil.MatchHrefs(htmlutil.Anchors(ctx, doc.Find(`a[title="Clone"]`)), cloneHrefRegex)

	events := make(map[string]string, len(slugs))
	for i := 0; i < len(slugs) && i < len(uuids); i++ {
		events[slugs[i]] = uuids[i]
	}

	slog.DebugContext(ctx, "scraped event list", "count", len(events))
	return events, nil
}

// EventUUID resolves an event slug to its uuid via the admin event
// list.
func (c *Client) EventUUID(ctx context.Context, slug string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:EventUUID")
	defer span.End()

	events, err := c.Events(ctx)
	if err != nil {
		return "", err
	}
	uuid, ok := events[slug]
	if !ok {
		err := lookupError(UnknownEvent, slug, keys(events))
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return uuid, nil
}

// CreateEventRequest carries the create form. Title, Description,
// ImagePath, the venue block, Dates and Tickets are the parts sellers
// actually vary, everything else mirrors the form's defaults when left
// zero.
type CreateEventRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"` // derived from Title when blank
	Description string `json:"description"`
	ImagePath   string `json:"image_path"`
	AccentColor string `json:"accent_color"`

	VenueName     string `json:"venue_name"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	Region        string `json:"region"`
	PostalCode    string `json:"postal_code"`
	CountryCode   string `json:"country_code"` // defaults to "USA"
	Latitude      string `json:"latitude"`
	Longitude     string `json:"longitude"`
	Timezone      string `json:"timezone"`

	Dates   []DateRange    `json:"-"`
	Tickets []TicketParams `json:"tickets"`

	FacebookEventId string `json:"facebook_event_id"`
	FacebookPageId  string `json:"facebook_page_id"`

	GalleryType         string `json:"gallery_type"` // defaults to "no-gallery"
	GalleryName         string `json:"gallery_name"`
	HeroImageFocalPoint string `json:"hero_image_focal_point"` // defaults to "center center"

	// NoEventPage turns the hosted event page off, the form default
	// leaves it on.
	NoEventPage     bool   `json:"no_event_page"`
	NumberOfTickets string `json:"number_of_tickets"`
	DraftSetting    string `json:"draft_setting"` // defaults to "0"
	Submit          string `json:"submit"`        // defaults to "start sales now"
}

func (r CreateEventRequest) withDefaults() CreateEventRequest {
	if r.Slug == "" {
		r.Slug = textutil.FormatDefaultSlug(r.Title)
	}
	if r.CountryCode == "" {
		r.CountryCode = "USA"
	}
	if r.GalleryType == "" {
		r.GalleryType = "no-gallery"
	}
	if r.HeroImageFocalPoint == "" {
		r.HeroImageFocalPoint = "center center"
	}
	if r.DraftSetting == "" {
		r.DraftSetting = "0"
	}
	if r.Submit == "" {
		r.Submit = "start sales now"
	}
	return r
}

// CreateEvent uploads the event image, then submits the whole create
// form as multipart. A rejected form comes back as a rendered error
// page, so the verdict lands in the SubmitResult and the body in
// create_response.html.
func (c *Client) CreateEvent(ctx context.Context, req CreateEventRequest) (SubmitResult, error) {
	ctx, span := tracer.Start(ctx, "client:CreateEvent")
	defer span.End()

	req = req.withDefaults()

	images, err := c.UploadImage(ctx, req.ImagePath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to upload event image")
		return SubmitResult{}, err
	}

	eventPage := "True"
	if req.NoEventPage {
		eventPage = "False"
	}

	fields := map[string]string{
		"csrfmiddlewaretoken":       c.CsrfToken,
		"facebook_event_id":         req.FacebookEventId,
		"facebook_page_id":          req.FacebookPageId,
		"has_ticketleap_event_page": eventPage,
		"title":                     req.Title,
		"slug":                      req.Slug,
		"description":               req.Description,
		"gallery_type":              req.GalleryType,
		"gallery_name":              req.GalleryName,
		"gallery_media":             "{'media': []}",
		"gallery_media_config":      "",
		"media-upload-url":          "/admin/galleries/media/create",
		"hero_image_url":            images.Hero,
		"hero_small_image_url":      images.Small,
		"hero_image_focal_point":    req.HeroImageFocalPoint,
		"accent_color":              req.AccentColor,
		"latitude":                  req.Latitude,
		"longitude":                 req.Longitude,
		"timezone":                  req.Timezone,
		"name":                      req.VenueName,
		"street_address":            req.StreetAddress,
		"country_code":              req.CountryCode,
		"city":                      req.City,
		"region":                    req.Region,
		"postal_code":               req.PostalCode,
		"number_of_tickets":         req.NumberOfTickets,
		"draft-setting":             req.DraftSetting,
		"submit":                    req.Submit,
	}
	maps.Copy(fields, formsetCounters("dates", len(req.Dates)))
	maps.Copy(fields, formsetCounters("tickets", len(req.Tickets)))
	for i, d := range req.Dates {
		maps.Copy(fields, dateFormset(i, d))
	}
	for i, t := range req.Tickets {
		maps.Copy(fields, ticketFormset(i, t))
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("Referer", c.BaseUrl.String()+"/admin/events/create").
		SetMultipartFormData(fields).
		Post("/admin/events/create")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to submit create form")
		return SubmitResult{}, err
	}

	return c.finishSubmit(ctx, "create event", "create_response.html", res), nil
}

// CloneEventRequest copies the event at CloneSlug into a new one named
// Title, scheduled on Dates.
type CloneEventRequest struct {
	CloneSlug string      `json:"clone_slug"`
	Title     string      `json:"title"`
	Slug      string      `json:"slug"` // derived from Title when blank
	Dates     []DateRange `json:"-"`
}

// CloneEvent resolves the source event's uuid off the admin list, then
// posts the clone dialog form. Rejections land in clone_response.html.
func (c *Client) CloneEvent(ctx context.Context, req CloneEventRequest) (SubmitResult, error) {
	ctx, span := tracer.Start(ctx, "client:CloneEvent")
	defer span.End()

	if req.Slug == "" {
		req.Slug = textutil.FormatDefaultSlug(req.Title)
	}

	cloneUuid, err := c.EventUUID(ctx, req.CloneSlug)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to resolve source event")
		return SubmitResult{}, err
	}

	form := url.Values{}
	form.Set("csrfmiddlewaretoken", c.CsrfToken)
	form.Set("title", req.Title)
	form.Set("slug", req.Slug)
	for k, v := range formsetCounters("dates", len(req.Dates)) {
		form.Set(k, v)
	}
	for i, d := range req.Dates {
		for k, v := range dateFormset(i, d) {
			form.Set(k, v)
		}
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("Accept", "*/*").
		SetHeader("Referer", c.BaseUrl.String()+"/admin/events/").
		SetHeader("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8").
		SetHeader("X-Requested-With", "XMLHttpRequest").
		SetBody(form.Encode()).
		Post("/admin/events/clone/" + cloneUuid)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to submit clone form")
		return SubmitResult{}, err
	}

	return c.finishSubmit(ctx, "clone event", "clone_response.html", res), nil
}

// SetPostPurchaseMessage replaces the note buyers see on their receipt
// after checkout.
func (c *Client) SetPostPurchaseMessage(ctx context.Context, eventSlug, message string) error {
	ctx, span := tracer.Start(ctx, "client:SetPostPurchaseMessage")
	defer span.End()

	form := url.Values{}
	form.Set("csrfmiddlewaretoken", c.CsrfToken)
	form.Set("post_purchase_message", message)

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("Accept", "*/*").
		SetHeader("Referer", c.detailsUrl(eventSlug)).
		SetHeader("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8").
		SetHeader("X-Requested-With", "XMLHttpRequest").
		SetBody(form.Encode()).
		Post(fmt.Sprintf("/admin/events/%s/details/modify-post-purchase-message", eventSlug))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to submit post purchase message")
		return err
	}
	if !res.IsSuccess() {
		err := fmt.Errorf("post purchase message rejected with status %d", res.StatusCode())
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	slog.InfoContext(ctx, "set post purchase message", "event", eventSlug)
	return nil
}
