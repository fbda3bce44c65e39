package market

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/devmarket/internal/client/models"
	"github.com/dmitrijs2005/devmarket/internal/client/transport"
)

const (
	// MaxDraftImages is how many images a draft accepts.
	MaxDraftImages = 4
	// ImageFieldName is the multipart field the backend reads the upload from.
	ImageFieldName = "image"
)

func draftPath(key, action string) string {
	return "/api/market/drafts/" + url.PathEscape(key) + "/" + action + "/"
}

// InitDraft starts a draft and returns the key every later step refers to.
func (c *Client) InitDraft(ctx context.Context, req DraftInitRequest) (*DraftInitResponse, error) {
	var out DraftInitResponse
	if err := c.postJSON(ctx, "/api/market/drafts/init/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadDraftImage sends img as the only part of a multipart form.
func (c *Client) UploadDraftImage(ctx context.Context, draftKey string, img models.Image) (*UploadImageResponse, error) {
	if draftKey == "" {
		return nil, ErrNoDraftKey
	}

	body, contentType, err := imageForm(img)
	if err != nil {
		return nil, err
	}

	var out UploadImageResponse
	err = c.api.Do(ctx, &transport.Request{
		Method:      http.MethodPost,
		Path:        draftPath(draftKey, "images"),
		Body:        body,
		ContentType: contentType,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadDraftImages uploads up to MaxDraftImages images one at a time, in
// input order, so images[0] becomes the main image. Extra images are ignored.
// Results are in input order. The first failure stops the batch: the remaining
// images are not sent and the results gathered so far are discarded.
func (c *Client) UploadDraftImages(ctx context.Context, draftKey string, images []models.Image) ([]UploadImageResponse, error) {
	if len(images) > MaxDraftImages {
		images = images[:MaxDraftImages]
	}

	results := make([]UploadImageResponse, 0, len(images))
	for _, img := range images {
		r, err := c.UploadDraftImage(ctx, draftKey, img)
		if err != nil {
			return nil, err
		}
		results = append(results, *r)
	}
	return results, nil
}

// AnalyzeDraft grades the draft's main image. The request has no body.
func (c *Client) AnalyzeDraft(ctx context.Context, draftKey string) (*AnalyzeResponse, error) {
	if draftKey == "" {
		return nil, ErrNoDraftKey
	}
	var out AnalyzeResponse
	if err := c.postJSON(ctx, draftPath(draftKey, "analyze"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EstimateDraft(ctx context.Context, draftKey string, req EstimateRequest) (*EstimateResponse, error) {
	if draftKey == "" {
		return nil, ErrNoDraftKey
	}
	var out EstimateResponse
	if err := c.postJSON(ctx, draftPath(draftKey, "estimate"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PublishDraft turns the draft into a product on sale.
func (c *Client) PublishDraft(ctx context.Context, draftKey string, req PublishRequest) (*PublishResponse, error) {
	if draftKey == "" {
		return nil, ErrNoDraftKey
	}
	var out PublishResponse
	if err := c.postJSON(ctx, draftPath(draftKey, "publish"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func imageForm(img models.Image) (io.Reader, string, error) {
	if img.Body == nil {
		return nil, "", fmt.Errorf("image %q has no data", img.Filename)
	}

	filename := img.Filename
	if filename == "" {
		filename = "upload.jpg"
	}
	ct := img.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(ImageFieldName), quoteEscaper.Replace(filename)))
	h.Set("Content-Type", ct)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, img.Body); err != nil {
		return nil, "", fmt.Errorf("read image %q: %w", filename, err)
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
