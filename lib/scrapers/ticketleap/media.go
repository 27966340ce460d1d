package ticketleap

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/codes"
)

// ImageURLs are the two renditions the media endpoint cuts from an
// uploaded image.
type ImageURLs struct {
	// Small is the event card rendition, Hero the full bleed banner.
	Small string
	Hero  string
}

var allowedImageExts = []string{".png", ".jpg", ".jpeg", ".tiff", ".gif"}

// UploadImage pushes an image file into the event media gallery and
// returns the hosted urls the create form wants. The extension is
// checked locally first, the endpoint answers uploads it can't decode
// with an html error page instead of json.
func (c *Client) UploadImage(ctx context.Context, path string) (ImageURLs, error) {
	ctx, span := tracer.Start(ctx, "client:UploadImage")
	defer span.End()

	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(allowedImageExts, ext) {
		err := fmt.Errorf("%w: %q", InvalidImageType, path)
		span.SetStatus(codes.Error, err.Error())
		return ImageURLs{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to open image file")
		return ImageURLs{}, err
	}
	defer file.Close()

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("Accept", "*/*").
		SetHeader("Referer", c.BaseUrl.String()+"/admin/events/create").
		SetHeader("X-Requested-With", "XMLHttpRequest").
		SetMultipartField(
			"image_file",
			filepath.Base(path),
			cmp.Or(mime.TypeByExtension(ext), "application/octet-stream"),
			file,
		).
		Post("/admin/galleries/media/create")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to upload image")
		return ImageURLs{}, err
	}

	var body struct {
		Medium struct {
			FullUrl string `json:"full_url"`
			HeroUrl string `json:"hero_url"`
		} `json:"medium"`
	}
	err = json.Unmarshal(res.Body(), &body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode upload response")
		return ImageURLs{}, fmt.Errorf("%w: %v", BadUploadResponse, err)
	}
	if body.Medium.FullUrl == "" || body.Medium.HeroUrl == "" {
		err := fmt.Errorf("%w: missing media urls", BadUploadResponse)
		span.SetStatus(codes.Error, err.Error())
		return ImageURLs{}, err
	}

	return ImageURLs{
		Small: body.Medium.FullUrl,
		Hero:  body.Medium.HeroUrl,
	}, nil
}
