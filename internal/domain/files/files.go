package files

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrInvalidPath  = errors.New("invalid file path")
	ErrInvalidToken = errors.New("invalid or expired file link")
	ErrNotFound     = errors.New("file not found")
)

// Folders used by the finance module.
const (
	FolderInvoices = "finance/invoices"
	FolderProofs   = "finance/proofs"
	FolderMisc     = "finance/misc"
)

// Attachment is an optional upload that travels with a command.
type Attachment struct {
	Reader   io.Reader
	Filename string
}

// Store keeps finance documents. Paths are relative to the store root.
type Store interface {
	// Upload saves r under folder with a generated unique name.
	Upload(ctx context.Context, r io.Reader, filename, folder string) (string, error)
	// UploadExact saves r at path, replacing what was there.
	UploadExact(ctx context.Context, r io.Reader, path string) (string, error)
	// Remove deletes path; a missing file is not an error.
	Remove(ctx context.Context, path string) error
	// SignedURL returns a link that opens path until ttl elapses.
	SignedURL(path string, ttl time.Duration) (string, error)
	// Open resolves a signed link token.
	Open(token string) (io.ReadCloser, string, error)
}
