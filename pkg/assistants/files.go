package assistants

import (
	"context"
	"os"
	"path/filepath"

	"github.com/conversa-hq/assistants-client/pkg/httpclient"
)

// UploadFile streams the local file at path to the remote service as
// multipart/form-data alongside the purpose string. An unreadable path fails
// before any transport call; the read handle is released whether the upload
// succeeds or not.
func (c *Client) UploadFile(ctx context.Context, path, purpose string) (*FileResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		c.log.Errorw("upload file failed", "path", path, "error", err)
		return nil, err
	}
	defer f.Close()

	var out FileResponse
	err = c.http.Upload(ctx,
		httpclient.Request{Path: "/files", Headers: c.headers()},
		httpclient.FilePart{FieldName: "file", FileName: filepath.Base(path), Reader: f},
		map[string]string{"purpose": purpose},
		&out,
	)
	if err != nil {
		c.log.Errorw("upload file failed", "path", path, "purpose", purpose, "error", err)
		return nil, err
	}
	return &out, nil
}
