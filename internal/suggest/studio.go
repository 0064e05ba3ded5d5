package suggest

import (
	"sort"
	"strings"

	"curator/internal/media"
)

// ReasonStudioMatch is attached to every studio grouping.
const ReasonStudioMatch = "studio match"

// studioConfidence applies to all studio groupings.
const studioConfidence = 0.95

// studioAliases maps lowercase raw studio names to their canonical display
// name. Lookup is exact after trimming and lowercasing.
var studioAliases = map[string]string{
	"pixar":                         "Pixar",
	"pixar animation studios":       "Pixar",
	"walt disney":                   "Disney",
	"walt disney pictures":          "Disney",
	"disney":                        "Disney",
	"walt disney animation studios": "Disney Animation",
	"marvel studios":                "Marvel Studios",
	"lucasfilm":                     "Lucasfilm",
	"lucasfilm ltd.":                "Lucasfilm",
	"dreamworks":                    "DreamWorks",
	"dreamworks animation":          "DreamWorks",
	"dreamworks pictures":           "DreamWorks",
	"illumination":                  "Illumination",
	"illumination entertainment":    "Illumination",
	"studio ghibli":                 "Studio Ghibli",
	"ghibli":                        "Studio Ghibli",
	"a24":                           "A24",
}

// genericDistributors are studio-like entities that denote distribution
// rather than production and are excluded from studio tagging.
var genericDistributors = map[string]struct{}{
	"amazon":              {},
	"amazon studios":      {},
	"netflix":             {},
	"paramount":           {},
	"warner bros":         {},
	"warner bros.":        {},
	"universal":           {},
	"20th century fox":    {},
	"fox":                 {},
	"sony":                {},
	"columbia":            {},
	"metro-goldwyn-mayer": {},
	"mgm":                 {},
	"lionsgate":           {},
}

// CanonicalStudio resolves a raw studio string to its canonical name. The
// second return value is false when the studio is a generic distributor and
// must be excluded from tagging. Unmapped names pass through trimmed.
func CanonicalStudio(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	key := strings.ToLower(trimmed)
	if canonical, ok := studioAliases[key]; ok {
		return canonical, true
	}
	if _, generic := genericDistributors[key]; generic {
		return "", false
	}
	return trimmed, true
}

// StudioGroup collects the items produced by one canonical studio.
type StudioGroup struct {
	Name    string
	ItemIDs []string
}

// SelectStudios returns the studios worth tagging together with their item
// sets. A non-empty allowlist wins over auto-selection; otherwise the topN
// studios by item count are chosen, ties broken by name ascending.
func SelectStudios(items []media.MovieItem, allowlist []string, topN int) []StudioGroup {
	byStudio := make(map[string][]string)
	for _, item := range items {
		seen := make(map[string]bool, len(item.Studios))
		for _, raw := range item.Studios {
			canonical, ok := CanonicalStudio(raw)
			if !ok || seen[canonical] {
				continue
			}
			seen[canonical] = true
			byStudio[canonical] = append(byStudio[canonical], item.ID)
		}
	}

	names := make([]string, 0, len(byStudio))
	for name := range byStudio {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ci, cj := len(byStudio[names[i]]), len(byStudio[names[j]])
		if ci != cj {
			return ci > cj
		}
		return names[i] < names[j]
	})

	selected := names
	if len(allowlist) > 0 {
		allowed := make(map[string]bool, len(allowlist))
		for _, name := range allowlist {
			allowed[strings.ToLower(strings.TrimSpace(name))] = true
		}
		selected = selected[:0:0]
		for _, name := range names {
			if allowed[strings.ToLower(name)] {
				selected = append(selected, name)
			}
		}
	} else if topN >= 0 && len(selected) > topN {
		selected = selected[:topN]
	}

	groups := make([]StudioGroup, 0, len(selected))
	for _, name := range selected {
		groups = append(groups, StudioGroup{Name: name, ItemIDs: byStudio[name]})
	}
	return groups
}
