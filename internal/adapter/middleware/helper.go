package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempKeyPrefix = "idemp:"

func bodyHash(b []byte) string { s := sha256.Sum256(b); return hex.EncodeToString(s[:]) }

func nowUTC() time.Time { return time.Now().UTC() }

// idempKey scopes a request id to its caller and route template, so two
// users may reuse an id without colliding.
func idempKey(method, route, userID, requestID string) string {
	return idempKeyPrefix + strings.Join([]string{strings.ToLower(method), route, userID, requestID}, ":")
}

// lowercase uuid (v1-v7) or 32-char lowercase hex, the shape of pkg/id
var reRequestID = regexp.MustCompile(`^(?:[a-f0-9]{32}|[a-f0-9]{8}-[a-f0-9]{4}-[1-7][a-f0-9]{3}-[89ab][a-f0-9]{3}-[a-f0-9]{12})$`)

func validReqID(id string) bool { return reRequestID.MatchString(id) }

var requestAtLayouts = []string{time.RFC3339Nano, time.RFC3339}

// parseRequestAt reads epoch seconds, epoch milliseconds or an RFC3339 time
// carrying a zone. Naive local timestamps are rejected.
func parseRequestAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("missing " + HeaderRequestAt)
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	for _, layout := range requestAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New(HeaderRequestAt + " must be epoch (s/ms) or RFC3339 with timezone")
}

// entryStore keeps idempotency entries in Redis as JSON.
type entryStore struct{ rdb *redis.Client }

// claim writes the in-progress marker unless the key already exists; it
// reports whether this request won the key.
func (s entryStore) claim(ctx context.Context, key string, e idempEntry) (bool, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return false, err
	}
	return s.rdb.SetNX(ctx, key, payload, provisionalLockTTL).Result()
}

func (s entryStore) load(ctx context.Context, key string) (idempEntry, error) {
	var e idempEntry
	v, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return e, err
	}
	if err := json.Unmarshal(v, &e); err != nil {
		return idempEntry{}, err
	}
	return e, nil
}

// finish replaces the marker with the recorded response for ttl.
func (s entryStore) finish(ctx context.Context, key string, e idempEntry, ttl time.Duration) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, payload, ttl).Err()
}

// release drops the key so the client may retry with the same id.
func (s entryStore) release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
