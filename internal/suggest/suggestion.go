package suggest

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Type identifies the suggestion category. Grouping types create real
// collections; tag types are pseudo-tags applied as collections.
type Type string

const (
	TypeFranchise Type = "collection-franchise"
	TypeStudio    Type = "tag-studio"
	TypeFormat    Type = "tag-format"
	TypeLength    Type = "tag-length"
	TypeAudience  Type = "tag-audience"
	TypeMood      Type = "tag-mood"
)

var allTypes = []Type{TypeFranchise, TypeStudio, TypeFormat, TypeLength, TypeAudience, TypeMood}

// AllTypes returns the ordered list of known suggestion types.
func AllTypes() []Type {
	cp := make([]Type, len(allTypes))
	copy(cp, allTypes)
	return cp
}

// ParseType converts a string into a known Type.
func ParseType(value string) (Type, bool) {
	normalized := Type(strings.ToLower(strings.TrimSpace(value)))
	for _, t := range allTypes {
		if t == normalized {
			return t, true
		}
	}
	return "", false
}

// idNamespace seeds the deterministic suggestion id hash. Never change it:
// rescans must derive the same id for the same (type, title) pair.
var idNamespace = uuid.MustParse("9f2c1a4e-5b7d-4c38-8a61-0e4d92f3ab57")

// ID derives the stable suggestion identifier from the (type, title) key.
func ID(t Type, title string) string {
	return uuid.NewSHA1(idNamespace, []byte(string(t)+"\x00"+title)).String()
}

// Suggestion is a scored, reasoned recommendation to group items into a
// collection on the media server.
type Suggestion struct {
	ID                  string
	Type                Type
	Title               string
	Confidence          float64
	ItemIDs             []string
	Reason              string
	Applied             bool
	AppliedCollectionID string
	CreatedAt           time.Time
}

// Key returns the dedup key a suggestion is identified by across rescans.
func (s Suggestion) Key() string {
	return string(s.Type) + "\x00" + s.Title
}
