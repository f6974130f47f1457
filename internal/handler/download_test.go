package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"digital-storefront/internal/repository"
	"digital-storefront/internal/service"
	"digital-storefront/internal/storage"

	"github.com/labstack/echo/v4"
)

type stubDownloadService struct {
	download *service.Download
	err      error
}

func (s *stubDownloadService) Resolve(context.Context, string) (*service.Download, error) {
	return s.download, s.err
}

type trackingReader struct {
	io.Reader
	closed bool
}

func (r *trackingReader) Close() error {
	r.closed = true
	return nil
}

func serveDownload(t *testing.T, svc service.DownloadService) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/products/download/token", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("downloadVerificationId")
	c.SetParamValues("token")

	if err := NewDownloadHandler(svc).Download(c); err != nil {
		t.Fatalf("Download: %v", err)
	}
	return rec
}

func TestDownloadRedirectsExpiredAndUnknownAlike(t *testing.T) {
	expired := serveDownload(t, &stubDownloadService{err: repository.ErrCredentialExpired})
	unknown := serveDownload(t, &stubDownloadService{err: repository.ErrCredentialNotFound})

	for name, rec := range map[string]*httptest.ResponseRecorder{"expired": expired, "unknown": unknown} {
		if rec.Code != http.StatusTemporaryRedirect {
			t.Errorf("%s: status = %d, want %d", name, rec.Code, http.StatusTemporaryRedirect)
		}
		if got := rec.Header().Get(echo.HeaderLocation); got != ExpiredDownloadPath {
			t.Errorf("%s: location = %q, want %q", name, got, ExpiredDownloadPath)
		}
	}
	if expired.Body.String() != unknown.Body.String() {
		t.Errorf("bodies differ: %q vs %q", expired.Body.String(), unknown.Body.String())
	}
}

func TestDownloadStreamsAttachment(t *testing.T) {
	content := &trackingReader{Reader: strings.NewReader("zip-bytes")}
	rec := serveDownload(t, &stubDownloadService{download: &service.Download{
		Asset:    &storage.Asset{ReadCloser: content, Size: 9},
		Filename: "Course.zip",
	}})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderContentDisposition); got != "attachment; filename=Course.zip" {
		t.Errorf("content-disposition = %q", got)
	}
	if got := rec.Header().Get(echo.HeaderContentLength); got != "9" {
		t.Errorf("content-length = %q, want 9", got)
	}
	if rec.Body.String() != "zip-bytes" {
		t.Errorf("body = %q, want zip-bytes", rec.Body.String())
	}
	if !content.closed {
		t.Error("asset was not closed")
	}
}
