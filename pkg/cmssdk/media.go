package cmssdk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/aussiebroadwan/cmsadmin/pkg/apiclient"
)

// MediaUpload describes one file sent to UploadMedia.
type MediaUpload struct {
	Filename    string
	ContentType string // defaults to application/octet-stream
	Body        io.Reader

	AltText string
	Caption string
	Folder  string
}

type MediaUpdate struct {
	AltText *string `json:"alt_text,omitempty"`
	Caption *string `json:"caption,omitempty"`
	Folder  *string `json:"folder,omitempty"`
}

func (c *Client) ListMedia(ctx context.Context, params ListParams) (*Page[Media], error) {
	return getList[Media](ctx, c, "/media", params)
}

func (c *Client) GetMedia(ctx context.Context, id string) (*Media, error) {
	return getOne[Media](ctx, c, "/media/"+seg(id))
}

// UploadMedia sends the file as multipart/form-data under the "file" field.
// The body is buffered so the request can be replayed after a token refresh.
func (c *Client) UploadMedia(ctx context.Context, up MediaUpload) (*Media, error) {
	payload, contentType, err := encodeUpload(up)
	if err != nil {
		return nil, err
	}

	resp, err := c.api.Do(ctx, apiclient.Request{
		Method:      http.MethodPost,
		Path:        "/media/upload",
		RawBody:     payload,
		ContentType: contentType,
	})
	if err != nil {
		return nil, err
	}

	var out Media
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMedia(ctx context.Context, id string, in MediaUpdate) (*Media, error) {
	return patchOne[Media](ctx, c, "/media/"+seg(id), in)
}

func (c *Client) DeleteMedia(ctx context.Context, id string) error {
	return c.del(ctx, "/media/"+seg(id))
}

func encodeUpload(up MediaUpload) ([]byte, string, error) {
	if up.Body == nil {
		return nil, "", fmt.Errorf("upload %q has no body", up.Filename)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	ct := up.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, up.Filename))
	h.Set("Content-Type", ct)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, up.Body); err != nil {
		return nil, "", fmt.Errorf("failed to read upload: %w", err)
	}

	for name, value := range map[string]string{
		"alt_text": up.AltText,
		"caption":  up.Caption,
		"folder":   up.Folder,
	} {
		if value == "" {
			continue
		}
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
