package http

import (
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"opsplatform-backend/internal/domain/files"
	"opsplatform-backend/internal/domain/reconcile"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

var uploadFolders = map[string]string{
	"":         files.FolderMisc,
	"misc":     files.FolderMisc,
	"invoices": files.FolderInvoices,
	"proofs":   files.FolderProofs,
}

type FileHandler struct {
	store files.Store
	ttl   time.Duration
	log   logrus.FieldLogger
}

func NewFileHandler(store files.Store, ttl time.Duration, log logrus.FieldLogger) *FileHandler {
	return &FileHandler{store: store, ttl: ttl, log: log}
}

type uploadResp struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// Upload stores the multipart "file" in the requested folder and
// returns its path with a signed download link.
func (h *FileHandler) Upload(c echo.Context) error {
	folder, ok := uploadFolders[c.FormValue("folder")]
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "folder must be one of invoices, proofs, misc"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing file"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable file"})
	}
	defer src.Close()

	path, err := h.store.Upload(c.Request().Context(), src, fh.Filename, folder)
	if err != nil {
		return writeError(c, h.log, reconcile.RequestSave, err)
	}
	url, err := h.store.SignedURL(path, h.ttl)
	if err != nil {
		return writeError(c, h.log, reconcile.RequestSave, err)
	}
	return c.JSON(http.StatusCreated, uploadResp{Path: path, URL: url})
}

// Replace overwrites the document at "path" with the multipart "file",
// keeping links that already point at it. Only finance folders are writable.
func (h *FileHandler) Replace(c echo.Context) error {
	p := path.Clean(strings.TrimSpace(c.FormValue("path")))
	if !inUploadFolder(p) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "path must be inside invoices, proofs or misc"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing file"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable file"})
	}
	defer src.Close()

	stored, err := h.store.UploadExact(c.Request().Context(), src, p)
	if err != nil {
		return writeError(c, h.log, reconcile.RequestSave, err)
	}
	url, err := h.store.SignedURL(stored, h.ttl)
	if err != nil {
		return writeError(c, h.log, reconcile.RequestSave, err)
	}
	return c.JSON(http.StatusOK, uploadResp{Path: stored, URL: url})
}

func inUploadFolder(p string) bool {
	for _, dir := range uploadFolders {
		if strings.HasPrefix(p, dir+"/") && len(p) > len(dir)+1 {
			return true
		}
	}
	return false
}

// Download serves the file behind a signed link; the token is the credential.
func (h *FileHandler) Download(c echo.Context) error {
	rc, name, err := h.store.Open(c.Param("token"))
	if err != nil {
		return writeError(c, h.log, "", err)
	}
	defer rc.Close()

	ct := mime.TypeByExtension(filepath.Ext(name))
	if ct == "" {
		ct = echo.MIMEOctetStream
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, mime.FormatMediaType("inline", map[string]string{"filename": name}))
	return c.Stream(http.StatusOK, ct, rc)
}
