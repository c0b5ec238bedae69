package token

import (
	"strconv"
	"strings"
	"time"

	"github.com/jrsteele09/go-rider-auth/scope"
)

// DefaultKey is the slot used when the caller does not name one.
const DefaultKey = "defaultAccessToken"

const (
	dateSuffix   = "_date"
	tokenSuffix  = "_token"
	scopesSuffix = "_scopes"
)

// StoredRecord is the persisted form of an access token. It is always
// written and read as one unit.
type StoredRecord struct {
	ExpirationMillis int64
	Token            string
	Scopes           []string
}

// RecordFromToken converts a token into its persisted form.
func RecordFromToken(t *AccessToken) StoredRecord {
	return StoredRecord{
		ExpirationMillis: t.ExpiresAt.UnixMilli(),
		Token:            t.Token,
		Scopes:           t.Scopes.Names(),
	}
}

// DecodeFromStorage turns a persisted record back into a token. A nil
// result means the slot never held a complete token.
func DecodeFromStorage(rec *StoredRecord) *AccessToken {
	if rec == nil || rec.Token == "" || rec.ExpirationMillis <= 0 || rec.Scopes == nil {
		return nil
	}
	set, err := scope.ParseNames(rec.Scopes)
	if err != nil {
		return nil
	}
	return New(rec.Token, time.UnixMilli(rec.ExpirationMillis), set)
}

// Fields returns the flat key-value form of the record for key.
func (r StoredRecord) Fields(key string) map[string]string {
	key = ResolveKey(key)
	return map[string]string{
		key + dateSuffix:   strconv.FormatInt(r.ExpirationMillis, 10),
		key + tokenSuffix:  r.Token,
		key + scopesSuffix: strings.Join(r.Scopes, " "),
	}
}

// FieldNames lists the three flat keys belonging to key.
func FieldNames(key string) []string {
	key = ResolveKey(key)
	return []string{key + dateSuffix, key + tokenSuffix, key + scopesSuffix}
}

// RecordFromFields rebuilds a record from its flat form. It reports false
// when any field is missing or the date is not a number.
func RecordFromFields(key string, fields map[string]string) (*StoredRecord, bool) {
	key = ResolveKey(key)
	date, okDate := fields[key+dateSuffix]
	tok, okToken := fields[key+tokenSuffix]
	scopes, okScopes := fields[key+scopesSuffix]
	if !okDate || !okToken || !okScopes {
		return nil, false
	}
	millis, err := strconv.ParseInt(date, 10, 64)
	if err != nil {
		return nil, false
	}
	return &StoredRecord{
		ExpirationMillis: millis,
		Token:            tok,
		Scopes:           strings.Fields(scopes),
	}, true
}

// ResolveKey substitutes DefaultKey for an empty key.
func ResolveKey(key string) string {
	if strings.TrimSpace(key) == "" {
		return DefaultKey
	}
	return key
}
