package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"opsplatform-backend/internal/domain/files"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const linkAudience = "opsplatform-files"

// LocalStore keeps files on disk under root and serves them through signed
// links of the form <baseURL>/<token>.
type LocalStore struct {
	root    string
	baseURL string
	key     []byte
	now     func() time.Time
}

// NewLocalStore derives its signing key from secret so that file links can
// never pass as session tokens.
func NewLocalStore(root, baseURL, secret string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     []byte("files:" + secret),
		now:     time.Now,
	}, nil
}

// clean returns p as a slash path relative to the root, or ErrInvalidPath
// when it is empty, absolute or escapes the root.
func clean(p string) (string, error) {
	p = strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	if p == "" || strings.ContainsRune(p, 0) || strings.HasPrefix(p, "/") {
		return "", files.ErrInvalidPath
	}
	c := path.Clean(p)
	if c == "." || c == ".." || strings.HasPrefix(c, "../") {
		return "", files.ErrInvalidPath
	}
	return c, nil
}

func (s *LocalStore) write(ctx context.Context, r io.Reader, rel string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	f, err := os.Create(full)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(full)
		return err
	}
	return f.Close()
}

func (s *LocalStore) Upload(ctx context.Context, r io.Reader, filename, folder string) (string, error) {
	dir, err := clean(folder)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(path.Ext(filepath.Base(filename)))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\ `) {
		ext = ""
	}
	rel := dir + "/" + uuid.NewString() + ext
	if err := s.write(ctx, r, rel); err != nil {
		return "", fmt.Errorf("store %s: %w", rel, err)
	}
	return rel, nil
}

func (s *LocalStore) UploadExact(ctx context.Context, r io.Reader, p string) (string, error) {
	rel, err := clean(p)
	if err != nil {
		return "", err
	}
	if err := s.write(ctx, r, rel); err != nil {
		return "", fmt.Errorf("store %s: %w", rel, err)
	}
	return rel, nil
}

func (s *LocalStore) Remove(ctx context.Context, p string) error {
	rel, err := clean(p)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", rel, err)
	}
	return nil
}

func (s *LocalStore) SignedURL(p string, ttl time.Duration) (string, error) {
	rel, err := clean(p)
	if err != nil {
		return "", err
	}
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   rel,
		Audience:  jwt.ClaimStrings{linkAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", err
	}
	return s.baseURL + "/" + token, nil
}

// Open returns the file behind token and its base name.
func (s *LocalStore) Open(token string) (io.ReadCloser, string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(linkAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, "", files.ErrInvalidToken
	}
	rel, err := clean(claims.Subject)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(filepath.Join(s.root, filepath.FromSlash(rel)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, "", files.ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return f, path.Base(rel), nil
}
