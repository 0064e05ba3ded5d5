package suggest

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"curator/internal/logging"
	"curator/internal/media"
)

// Options carries the validated engine configuration for one scan.
type Options struct {
	Franchise bool
	Studio    bool
	Format    bool
	Length    bool
	Audience  bool
	Mood      bool

	MinGroupSize    int
	TopStudios      int
	FranchiseRules  []Rule
	StudioAllowlist []string
}

// CategoryError records a classifier that failed without aborting the scan.
type CategoryError struct {
	Category string
	Err      error
}

// Result is the outcome of one assembler run.
type Result struct {
	Suggestions []Suggestion
	ItemCount   int
	Errors      []CategoryError
}

// Assembler runs the enabled classifiers and grouping over a scan snapshot
// and converts their output into a deduplicated suggestion batch.
type Assembler struct {
	opts   Options
	logger *slog.Logger
}

// NewAssembler constructs an assembler; a nil logger is replaced with a no-op.
func NewAssembler(opts Options, logger *slog.Logger) *Assembler {
	if opts.MinGroupSize < 1 {
		opts.MinGroupSize = 1
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Assembler{opts: opts, logger: logger.With(logging.String("component", "assembler"))}
}

// Run produces the suggestion batch for one item snapshot. A failure in one
// category is recorded and logged; the remaining categories still run.
func (a *Assembler) Run(items []media.MovieItem, now time.Time) Result {
	result := Result{ItemCount: len(items)}

	type category struct {
		name    string
		enabled bool
		build   func([]media.MovieItem) []Suggestion
	}
	categories := []category{
		{"franchise", a.opts.Franchise, a.buildFranchise},
		{"studio", a.opts.Studio, a.buildStudio},
		{"format", a.opts.Format, a.buildFormat},
		{"length", a.opts.Length, a.buildLength},
		{"audience", a.opts.Audience, a.buildAudience},
		{"mood", a.opts.Mood, a.buildMood},
	}

	seen := make(map[string]bool)
	for _, cat := range categories {
		if !cat.enabled {
			continue
		}
		batch, err := runCategory(cat.build, items)
		if err != nil {
			result.Errors = append(result.Errors, CategoryError{Category: cat.name, Err: err})
			a.logger.Error("classifier failed, continuing scan",
				logging.String("category", cat.name), logging.Error(err))
			continue
		}
		for _, suggestion := range batch {
			if len(suggestion.ItemIDs) < a.opts.MinGroupSize {
				continue
			}
			if seen[suggestion.Key()] {
				continue
			}
			seen[suggestion.Key()] = true
			suggestion.ID = ID(suggestion.Type, suggestion.Title)
			suggestion.CreatedAt = now
			result.Suggestions = append(result.Suggestions, suggestion)
		}
	}

	sort.SliceStable(result.Suggestions, func(i, j int) bool {
		left, right := result.Suggestions[i], result.Suggestions[j]
		if left.Confidence != right.Confidence {
			return left.Confidence > right.Confidence
		}
		if len(left.ItemIDs) != len(right.ItemIDs) {
			return len(left.ItemIDs) > len(right.ItemIDs)
		}
		if left.Type != right.Type {
			return left.Type < right.Type
		}
		return left.Title < right.Title
	})
	return result
}

// runCategory isolates one classifier so a panic in its rules cannot take
// down the rest of the scan.
func runCategory(build func([]media.MovieItem) []Suggestion, items []media.MovieItem) (batch []Suggestion, err error) {
	defer func() {
		if r := recover(); r != nil {
			batch = nil
			err = fmt.Errorf("classifier panic: %v", r)
		}
	}()
	return build(items), nil
}

func (a *Assembler) buildFranchise(items []media.MovieItem) []Suggestion {
	groups := GroupFranchises(items, a.opts.FranchiseRules, a.opts.MinGroupSize)
	suggestions := make([]Suggestion, 0, len(groups))
	for _, group := range groups {
		suggestions = append(suggestions, Suggestion{
			Type:       TypeFranchise,
			Title:      group.Name,
			Confidence: group.Confidence,
			ItemIDs:    group.ItemIDs,
			Reason:     group.Reason,
		})
	}
	return suggestions
}

func (a *Assembler) buildStudio(items []media.MovieItem) []Suggestion {
	groups := SelectStudios(items, a.opts.StudioAllowlist, a.opts.TopStudios)
	suggestions := make([]Suggestion, 0, len(groups))
	for _, group := range groups {
		suggestions = append(suggestions, Suggestion{
			Type:       TypeStudio,
			Title:      group.Name,
			Confidence: studioConfidence,
			ItemIDs:    group.ItemIDs,
			Reason:     ReasonStudioMatch,
		})
	}
	return suggestions
}

func (a *Assembler) buildFormat(items []media.MovieItem) []Suggestion {
	return a.aggregateLabels(items, TypeFormat, FormatOrder, FormatLabel)
}

func (a *Assembler) buildLength(items []media.MovieItem) []Suggestion {
	return a.aggregateLabels(items, TypeLength, LengthOrder, LengthLabel)
}

func (a *Assembler) buildAudience(items []media.MovieItem) []Suggestion {
	return a.aggregateLabels(items, TypeAudience, AudienceOrder, func(item media.MovieItem) (Label, bool) {
		return AudienceLabel(item), true
	})
}

// aggregateLabels collects per-item labels into one suggestion per distinct
// label value, emitted in the dimension's fixed order.
func (a *Assembler) aggregateLabels(items []media.MovieItem, t Type, order []string, classify func(media.MovieItem) (Label, bool)) []Suggestion {
	ids := make(map[string][]string, len(order))
	reasons := make(map[string]string, len(order))
	confidences := make(map[string]float64, len(order))
	for _, item := range items {
		label, ok := classify(item)
		if !ok {
			continue
		}
		ids[label.Value] = append(ids[label.Value], item.ID)
		reasons[label.Value] = label.Reason
		confidences[label.Value] = label.Confidence
	}

	var suggestions []Suggestion
	for _, value := range order {
		members := ids[value]
		if len(members) == 0 {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Type:       t,
			Title:      value,
			Confidence: confidences[value],
			ItemIDs:    members,
			Reason:     reasons[value],
		})
	}
	return suggestions
}

func (a *Assembler) buildMood(items []media.MovieItem) []Suggestion {
	ids := make(map[string][]string, len(MoodOrder))
	best := make(map[string]MoodMatch, len(MoodOrder))
	for _, item := range items {
		for _, match := range MoodMatches(item) {
			ids[match.Mood] = append(ids[match.Mood], item.ID)
			if match.Confidence > best[match.Mood].Confidence {
				best[match.Mood] = match
			}
		}
	}

	var suggestions []Suggestion
	for _, mood := range MoodOrder {
		members := ids[mood]
		if len(members) == 0 {
			continue
		}
		top := best[mood]
		suggestions = append(suggestions, Suggestion{
			Type:       TypeMood,
			Title:      mood,
			Confidence: top.Confidence,
			ItemIDs:    members,
			Reason:     "matched keywords: " + strings.Join(top.Keywords, ", "),
		})
	}
	return suggestions
}
