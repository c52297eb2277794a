package gfycat

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gfyup/internal/logging"
	"gfyup/internal/services"
)

const uploadStage = "upload"

// Upload streams the file at path to the filedrop endpoint under identifier.
// The multipart body carries exactly two parts: "key" and "file".
func (c *Client) Upload(ctx context.Context, identifier, path string) error {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return services.Wrap(services.ErrInput, uploadStage, "validate", "identifier required", nil)
	}

	file, err := os.Open(path)
	if err != nil {
		return services.Wrap(services.ErrInput, uploadStage, "open file", path, err)
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return services.Wrap(services.ErrInput, uploadStage, "stat file", path, err)
	}

	var src io.Reader = file
	if c.progress != nil {
		src = &progressReader{r: file, total: info.Size(), fn: c.progress}
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	done := make(chan error, 1)
	go func() {
		err := writeUploadBody(mw, identifier, filepath.Base(path), src)
		_ = pw.CloseWithError(err)
		done <- err
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.FiledropURL, pr)
	if err != nil {
		_ = pr.CloseWithError(err)
		<-done
		return services.Wrap(services.ErrConfiguration, uploadStage, "new request", "", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	logger := logging.WithContext(ctx, c.logger)
	logger.Debug("uploading file",
		logging.String(logging.FieldIdentifier, identifier),
		logging.String(logging.FieldPath, path),
		logging.Int64("bytes", info.Size()),
	)

	_, err = c.doJSON(ctx, c.uploadClient, req, uploadStage, nil)
	_ = pr.Close()
	writeErr := <-done
	if err != nil {
		return err
	}
	if writeErr != nil {
		return services.Wrap(services.ErrTransport, uploadStage, "write body", "", writeErr)
	}

	logger.Debug("upload accepted", logging.String(logging.FieldIdentifier, identifier))
	return nil
}

func writeUploadBody(mw *multipart.Writer, identifier, filename string, src io.Reader) error {
	if err := mw.WriteField("key", identifier); err != nil {
		return fmt.Errorf("write key field: %w", err)
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	return mw.Close()
}

type progressReader struct {
	r     io.Reader
	sent  int64
	total int64
	fn    ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		p.fn(p.sent, p.total)
	}
	return n, err
}
