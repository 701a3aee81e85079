package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"wordtrainer/internal/domain"
)

// Record kinds. The version suffix is part of every key and envelope, so a
// schema change gets new keys instead of silently reading old payloads.
const (
	kindUsers     = "users/v1"
	kindSession   = "session/v1"
	kindProgress  = "progress/v1"
	kindDaily     = "daily/v1"
	kindLastVisit = "lastvisit/v1"
	kindSpeaking  = "speaking/v1"
	kindGrammar   = "grammar/v1"
)

// UsersKey returns the key of the user collection
func UsersKey() string { return kindUsers }

// SessionKey returns the key of a client's session marker
func SessionKey(clientID string) string { return kindSession + "/" + clientID }

// ProgressKey returns the key of a user's progress record
func ProgressKey(userID string) string { return kindProgress + "/" + userID }

// DailyKey returns the key of a user's daily selection
func DailyKey(userID string) string { return kindDaily + "/" + userID }

// LastVisitKey returns the key of a user's last visit
func LastVisitKey(userID string) string { return kindLastVisit + "/" + userID }

// SpeakingKey returns the key of a user's speaking counters
func SpeakingKey(userID string) string { return kindSpeaking + "/" + userID }

// GrammarKey returns the key of a user's grammar points
func GrammarKey(userID string) string { return kindGrammar + "/" + userID }

type envelope struct {
	Schema string          `json:"schema"`
	Data   json.RawMessage `json:"data"`
}

// Encode wraps v in a versioned envelope
func Encode(kind string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", kind, err)
	}
	return json.Marshal(envelope{Schema: kind, Data: data})
}

// validator is implemented by records that carry required fields
type validator interface {
	Validate() error
}

// Decode unwraps an envelope of the given kind into v. Unknown schemas,
// unknown fields, null data and records failing their own Validate fail
// with domain.ErrCorruptRecord.
func Decode(kind string, raw []byte, v any) error {
	var env envelope
	if err := strictUnmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrCorruptRecord, kind, err)
	}
	if env.Schema != kind {
		return fmt.Errorf("%w: %s: unexpected schema %q", domain.ErrCorruptRecord, kind, env.Schema)
	}
	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("%w: %s: missing data", domain.ErrCorruptRecord, kind)
	}
	if err := strictUnmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrCorruptRecord, kind, err)
	}
	if rec, ok := v.(validator); ok {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrCorruptRecord, kind, err)
		}
	}
	return nil
}

func strictUnmarshal(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// Records stores typed records in a Store. It implements every repository
// interface in this package.
type Records struct {
	store Store
}

// NewRecords creates typed record access over store
func NewRecords(store Store) *Records {
	return &Records{store: store}
}

// load decodes the record at key into v and reports whether it existed
func (r *Records) load(ctx context.Context, kind, key string, v any) (bool, error) {
	raw, err := r.store.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := Decode(kind, raw, v); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Records) save(ctx context.Context, kind, key string, v any) error {
	raw, err := Encode(kind, v)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, key, raw)
}

// Users returns the user collection keyed by normalised email
func (r *Records) Users(ctx context.Context) (map[string]domain.User, error) {
	users := map[string]domain.User{}
	if _, err := r.load(ctx, kindUsers, UsersKey(), &users); err != nil {
		return nil, err
	}
	for email, user := range users {
		if err := user.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptRecord, kindUsers, err)
		}
		if email != user.Email {
			return nil, fmt.Errorf("%w: %s: key %q holds user %q", domain.ErrCorruptRecord, kindUsers, email, user.Email)
		}
	}
	return users, nil
}

// SaveUsers replaces the user collection
func (r *Records) SaveUsers(ctx context.Context, users map[string]domain.User) error {
	return r.save(ctx, kindUsers, UsersKey(), users)
}

// Session returns the user snapshot of a client's session, nil if none
func (r *Records) Session(ctx context.Context, clientID string) (*domain.User, error) {
	var user domain.User
	ok, err := r.load(ctx, kindSession, SessionKey(clientID), &user)
	if err != nil || !ok {
		return nil, err
	}
	return &user, nil
}

// SaveSession marks user as the client's active session
func (r *Records) SaveSession(ctx context.Context, clientID string, user domain.User) error {
	return r.save(ctx, kindSession, SessionKey(clientID), user)
}

// ClearSession removes the client's session marker
func (r *Records) ClearSession(ctx context.Context, clientID string) error {
	return r.store.Delete(ctx, SessionKey(clientID))
}

// SessionClients lists clients that hold a session marker
func (r *Records) SessionClients(ctx context.Context) ([]string, error) {
	prefix := kindSession + "/"
	keys, err := r.store.Keys(ctx, prefix)
	if err != nil {
		return nil, err
	}
	clients := make([]string, 0, len(keys))
	for _, key := range keys {
		clients = append(clients, strings.TrimPrefix(key, prefix))
	}
	return clients, nil
}

// Progress returns a user's progress, empty if none was saved
func (r *Records) Progress(ctx context.Context, userID string) (domain.ProgressRecord, error) {
	var progress domain.ProgressRecord
	if _, err := r.load(ctx, kindProgress, ProgressKey(userID), &progress); err != nil {
		return domain.ProgressRecord{}, err
	}
	return progress, nil
}

// SaveProgress replaces a user's progress
func (r *Records) SaveProgress(ctx context.Context, userID string, progress domain.ProgressRecord) error {
	return r.save(ctx, kindProgress, ProgressKey(userID), progress)
}

// DailySelection returns a user's stored selection, nil if none
func (r *Records) DailySelection(ctx context.Context, userID string) (*domain.DailySelection, error) {
	var selection domain.DailySelection
	ok, err := r.load(ctx, kindDaily, DailyKey(userID), &selection)
	if err != nil || !ok {
		return nil, err
	}
	return &selection, nil
}

// SaveDailySelection replaces a user's selection
func (r *Records) SaveDailySelection(ctx context.Context, userID string, selection domain.DailySelection) error {
	return r.save(ctx, kindDaily, DailyKey(userID), selection)
}

// LastVisit returns a user's last visit, nil if none
func (r *Records) LastVisit(ctx context.Context, userID string) (*domain.LastVisit, error) {
	var visit domain.LastVisit
	ok, err := r.load(ctx, kindLastVisit, LastVisitKey(userID), &visit)
	if err != nil || !ok {
		return nil, err
	}
	return &visit, nil
}

// SaveLastVisit replaces a user's last visit
func (r *Records) SaveLastVisit(ctx context.Context, userID string, visit domain.LastVisit) error {
	return r.save(ctx, kindLastVisit, LastVisitKey(userID), visit)
}

// SpeakingStats returns a user's speaking counters, zero if none
func (r *Records) SpeakingStats(ctx context.Context, userID string) (domain.SpeakingStats, error) {
	var stats domain.SpeakingStats
	if _, err := r.load(ctx, kindSpeaking, SpeakingKey(userID), &stats); err != nil {
		return domain.SpeakingStats{}, err
	}
	return stats, nil
}

// SaveSpeakingStats replaces a user's speaking counters
func (r *Records) SaveSpeakingStats(ctx context.Context, userID string, stats domain.SpeakingStats) error {
	return r.save(ctx, kindSpeaking, SpeakingKey(userID), stats)
}

// GrammarScore returns a user's grammar points, zero if none
func (r *Records) GrammarScore(ctx context.Context, userID string) (domain.GrammarScore, error) {
	var score domain.GrammarScore
	if _, err := r.load(ctx, kindGrammar, GrammarKey(userID), &score); err != nil {
		return domain.GrammarScore{}, err
	}
	return score, nil
}

// SaveGrammarScore replaces a user's grammar points
func (r *Records) SaveGrammarScore(ctx context.Context, userID string, score domain.GrammarScore) error {
	return r.save(ctx, kindGrammar, GrammarKey(userID), score)
}
