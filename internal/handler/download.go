package handler

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"digital-storefront/internal/repository"
	"digital-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

const ExpiredDownloadPath = "/products/download/expired"

type DownloadHandler struct {
	downloadService service.DownloadService
}

func NewDownloadHandler(downloadService service.DownloadService) *DownloadHandler {
	return &DownloadHandler{
		downloadService: downloadService,
	}
}

func (h *DownloadHandler) Download(c echo.Context) error {
	ctx := c.Request().Context()

	download, err := h.downloadService.Resolve(ctx, c.Param("downloadVerificationId"))
	if err != nil {
		// unknown and expired tokens look the same from outside
		if errors.Is(err, repository.ErrCredentialExpired) || errors.Is(err, repository.ErrCredentialNotFound) {
			return c.Redirect(http.StatusTemporaryRedirect, ExpiredDownloadPath)
		}
		return err
	}
	defer download.Close()

	header := c.Response().Header()
	header.Set(echo.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{
		"filename": download.Filename,
	}))
	header.Set(echo.HeaderContentLength, strconv.FormatInt(download.Size, 10))

	return c.Stream(http.StatusOK, echo.MIMEOctetStream, download)
}

func (h *DownloadHandler) Expired(c echo.Context) error {
	html := `
	<!DOCTYPE html>
	<html>
	<head>
		<meta charset="utf-8">
		<title>Download link expired</title>
		<style>
			body {
				font-family: Arial, sans-serif;
				text-align: center;
				margin-top: 80px;
			}
		</style>
	</head>
	<body>
		<h2>Download link expired</h2>
		<p>This download link is no longer valid. Check your receipt email for a fresh link or contact support.</p>
		<a href="/">Back to the store</a>
	</body>
	</html>
	`

	return c.HTML(http.StatusOK, html)
}
