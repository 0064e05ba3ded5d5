package suggest

import (
	"sort"
	"strings"

	"curator/internal/media"
)

// Reasons attached to franchise groups.
const (
	ReasonFranchiseKeywords = "matched franchise keywords"
	ReasonSequelPattern     = "sequel pattern detected"
)

// franchiseConfidence applies to both grouping passes.
const franchiseConfidence = 0.95

// Rule maps a canonical franchise name to lowercase keyword phrases matched
// as substrings of the normalized title.
type Rule struct {
	Name     string
	Keywords []string
}

// Group is one proposed franchise collection.
type Group struct {
	Name       string
	ItemIDs    []string
	Reason     string
	Confidence float64
}

// defaultFranchiseRules ship with the engine; user configuration merges over
// them by name.
var defaultFranchiseRules = map[string][]string{
	"Star Wars":             {"star wars"},
	"Harry Potter":          {"harry potter", "fantastic beasts"},
	"James Bond":            {"james bond", "007"},
	"The Lord of the Rings": {"lord of the rings", "the hobbit"},
	"Jurassic Park":         {"jurassic park", "jurassic world"},
	"Indiana Jones":         {"indiana jones"},
	"Kung Fu Panda":         {"kung fu panda"},
	"Toy Story":             {"toy story"},
}

// MergeFranchiseRules combines the built-in rules with user overrides; a
// user rule replaces a built-in of the same name. The result is ordered by
// name ascending so first-match-wins grouping stays deterministic.
func MergeFranchiseRules(overrides map[string][]string) []Rule {
	merged := make(map[string][]string, len(defaultFranchiseRules)+len(overrides))
	for name, keywords := range defaultFranchiseRules {
		merged[name] = keywords
	}
	for name, keywords := range overrides {
		merged[name] = keywords
	}

	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	rules := make([]Rule, 0, len(names))
	for _, name := range names {
		keywords := make([]string, 0, len(merged[name]))
		for _, keyword := range merged[name] {
			if trimmed := strings.ToLower(strings.TrimSpace(keyword)); trimmed != "" {
				keywords = append(keywords, trimmed)
			}
		}
		rules = append(rules, Rule{Name: name, Keywords: keywords})
	}
	return rules
}

// GroupFranchises merges items into non-overlapping franchise groups.
//
// Pass one walks the configured rules in order and claims every item whose
// normalized title contains one of the rule's keyword phrases; an item
// matches at most one rule. Pass two clusters the remaining items by sequel
// base key and emits clusters where at least one member carries a sequel
// marker. Groups below minSize are not emitted and their members stay
// available for the later pass.
func GroupFranchises(items []media.MovieItem, rules []Rule, minSize int) []Group {
	if minSize < 1 {
		minSize = 1
	}

	var groups []Group
	claimed := make(map[string]bool, len(items))
	grouped := make(map[string]bool, len(items))

	for _, rule := range rules {
		if len(rule.Keywords) == 0 {
			continue
		}
		var memberIDs []string
		for _, item := range items {
			if claimed[item.ID] {
				continue
			}
			if containsAny(Normalize(item.Title), rule.Keywords) {
				claimed[item.ID] = true
				memberIDs = append(memberIDs, item.ID)
			}
		}
		if len(memberIDs) < minSize {
			continue
		}
		for _, id := range memberIDs {
			grouped[id] = true
		}
		groups = append(groups, Group{
			Name:       rule.Name,
			ItemIDs:    memberIDs,
			Reason:     ReasonFranchiseKeywords,
			Confidence: franchiseConfidence,
		})
	}

	groups = append(groups, sequelGroups(items, grouped, minSize)...)
	return groups
}

type sequelCluster struct {
	itemIDs    []string
	markers    int
	nameCounts map[string]int
}

func sequelGroups(items []media.MovieItem, grouped map[string]bool, minSize int) []Group {
	clusters := make(map[string]*sequelCluster)
	for _, item := range items {
		if grouped[item.ID] {
			continue
		}
		base := BaseKey(item.Title)
		if base == "" {
			continue
		}
		cluster := clusters[base]
		if cluster == nil {
			cluster = &sequelCluster{nameCounts: make(map[string]int)}
			clusters[base] = cluster
		}
		cluster.itemIDs = append(cluster.itemIDs, item.ID)
		cluster.nameCounts[StripMarkerTitle(item.Title)]++
		if HasSequelMarker(item.Title) {
			cluster.markers++
		}
	}

	keys := make([]string, 0, len(clusters))
	for key := range clusters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var groups []Group
	for _, key := range keys {
		cluster := clusters[key]
		if len(cluster.itemIDs) < minSize || cluster.markers == 0 {
			continue
		}
		groups = append(groups, Group{
			Name:       mostCommonName(cluster.nameCounts),
			ItemIDs:    cluster.itemIDs,
			Reason:     ReasonSequelPattern,
			Confidence: franchiseConfidence,
		})
	}
	return groups
}

// mostCommonName picks the most frequent stripped title, breaking ties with
// the lexicographically smallest name.
func mostCommonName(counts map[string]int) string {
	best := ""
	bestCount := 0
	for name, count := range counts {
		if count > bestCount || (count == bestCount && (best == "" || name < best)) {
			best = name
			bestCount = count
		}
	}
	return best
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if needle != "" && strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
