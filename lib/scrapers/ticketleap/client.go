package ticketleap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"ticketleap-bulk/lib/restyutil"
)

// the full desktop browser header set, the admin panel sits behind bot
// protection that rejects anything barer
var browserHeaders = map[string]string{
	"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:66.0) Gecko/20100101 Firefox/66.0",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.5",
	"Referer":                   "https://www.google.com/",
	"Connection":                "close",
	"Upgrade-Insecure-Requests": "1",
}

type Client struct {
	// BaseUrl starts out as the public site and is rebased onto the
	// seller's subdomain once Login resolves it.
	BaseUrl *url.URL
	Http    *resty.Client
	// CsrfToken is the csrftoken cookie captured during Login, the
	// admin panel wants it echoed in every form body and ajax header.
	CsrfToken string

	dumpDir string
}

type ClientOptions struct {
	// BaseUrl is the public site used to log in, defaults to
	// https://www.ticketleap.com.
	BaseUrl string
	// DumpDir is where the html bodies of rejected form submissions
	// land, defaults to the working directory.
	DumpDir string
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = "https://www.ticketleap.com"
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeaders(browserHeaders)
	// login hops from the public host to the seller subdomain, an
	// exact host check would cut the redirect chain short
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))
	client.SetTimeout(time.Second * 30)

	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	c := &Client{
		BaseUrl: baseUrl,
		Http:    client,
		dumpDir: opts.DumpDir,
	}
	return c, nil
}

var adminSuffix = regexp.MustCompile(`/admin/?$`)

// Login authenticates the session and rebases the client onto the
// seller subdomain the site redirects to. The panel answers 200 either
// way, landing back on the login page is the only failure signal.
func (c *Client) Login(ctx context.Context, username, password string) error {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	loginUrl := c.BaseUrl.JoinPath("login").String() + "/"

	res, err := c.Http.R().
		SetContext(ctx).
		Get("/login/")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch login page")
		return err
	}

	csrf := cookieValue(res.Cookies(), "csrftoken")
	if csrf == "" {
		// redirect hops swallow Set-Cookie headers, check the jar too
		csrf = cookieValue(c.Http.GetClient().Jar.Cookies(res.RawResponse.Request.URL), "csrftoken")
	}
	if csrf == "" {
		span.SetStatus(codes.Error, "failed to find csrf cookie")
		return fmt.Errorf("could not find csrftoken cookie on login page")
	}

	res, err = c.Http.R().
		SetContext(ctx).
		SetHeader("Referer", loginUrl).
		SetFormData(map[string]string{
			"csrfmiddlewaretoken": csrf,
			"username":            username,
			"password":            password,
		}).
		Post("/login/")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make login request")
		return err
	}

	finalUrl := res.RawResponse.Request.URL
	if finalUrl.String() == loginUrl {
		span.SetStatus(codes.Error, LoginFailed.Error())
		return LoginFailed
	}

	base, err := url.Parse(adminSuffix.ReplaceAllString(finalUrl.String(), ""))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse post-login url")
		return err
	}

	c.BaseUrl = base
	c.CsrfToken = csrf
	c.Http.SetBaseURL(base.String())
	c.Http.SetHeader("X-CSRFToken", csrf)

	slog.InfoContext(ctx, "logged in", "base_url", base.String())
	return nil
}

func cookieValue(cookies []*http.Cookie, name string) string {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

func (c *Client) detailsUrl(eventSlug string) string {
	return fmt.Sprintf("%s/admin/events/%s/details", c.BaseUrl, eventSlug)
}

// SubmitResult reports how the admin panel answered a form submission.
// The panel renders an html page for both outcomes, so the verdict is
// data rather than an error: when Ok is false, DumpFile points at the
// saved response body for inspection.
type SubmitResult struct {
	Ok         bool
	StatusCode int
	DumpFile   string
}

func (c *Client) finishSubmit(ctx context.Context, op, dumpName string, res *resty.Response) SubmitResult {
	if res.IsSuccess() {
		slog.InfoContext(ctx, op+" accepted", "status", res.StatusCode())
		return SubmitResult{Ok: true, StatusCode: res.StatusCode()}
	}

	dump := c.dumpResponse(ctx, dumpName, res.Body())
	slog.ErrorContext(
		ctx, op+" rejected",
		"status", res.StatusCode(),
		"dump", dump,
	)
	span := trace.SpanFromContext(ctx)
	span.SetStatus(codes.Error, op+" rejected")
	return SubmitResult{Ok: false, StatusCode: res.StatusCode(), DumpFile: dump}
}

func (c *Client) dumpResponse(ctx context.Context, name string, body []byte) string {
	path := filepath.Join(c.dumpDir, name)
	err := os.WriteFile(path, body, 0600)
	if err != nil {
		slog.WarnContext(ctx, "failed to write response dump", "path", path, "err", err)
		return ""
	}
	return path
}
