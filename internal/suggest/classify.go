package suggest

import (
	"strings"

	"curator/internal/media"
)

// Fixed confidences for the per-item classification dimensions.
const (
	formatConfidence = 0.88
	lengthConfidence = 0.80
)

// Label is one classification assignment for an item.
type Label struct {
	Value      string
	Confidence float64
	Reason     string
}

// Format label values.
const (
	FormatAnimation   = "Animation"
	FormatDocumentary = "Documentary"
	FormatLiveAction  = "Live Action"
)

// FormatOrder fixes the emission order of format suggestions.
var FormatOrder = []string{FormatAnimation, FormatDocumentary, FormatLiveAction}

// FormatLabel classifies an item by genre. Items without genre data carry no
// format label.
func FormatLabel(item media.MovieItem) (Label, bool) {
	if len(item.Genres) == 0 {
		return Label{}, false
	}
	switch {
	case item.HasGenre("Animation"):
		return Label{Value: FormatAnimation, Confidence: formatConfidence, Reason: "Animation genre"}, true
	case item.HasGenre("Documentary"):
		return Label{Value: FormatDocumentary, Confidence: formatConfidence, Reason: "Documentary genre"}, true
	default:
		return Label{Value: FormatLiveAction, Confidence: formatConfidence, Reason: "no animation or documentary genre"}, true
	}
}

// Length label values.
const (
	LengthShort    = "Short"
	LengthStandard = "Standard"
	LengthLong     = "Long"
	LengthEpic     = "Epic"
)

// LengthOrder fixes the emission order of length suggestions.
var LengthOrder = []string{LengthShort, LengthStandard, LengthLong, LengthEpic}

// LengthLabel buckets an item by runtime. Items with unknown runtime carry
// no length label.
func LengthLabel(item media.MovieItem) (Label, bool) {
	if !item.HasRuntime() {
		return Label{}, false
	}
	switch minutes := item.RuntimeMinutes; {
	case minutes <= 75:
		return Label{Value: LengthShort, Confidence: lengthConfidence, Reason: "runtime 75 minutes or less"}, true
	case minutes <= 110:
		return Label{Value: LengthStandard, Confidence: lengthConfidence, Reason: "runtime 76 to 110 minutes"}, true
	case minutes <= 140:
		return Label{Value: LengthLong, Confidence: lengthConfidence, Reason: "runtime 111 to 140 minutes"}, true
	default:
		return Label{Value: LengthEpic, Confidence: lengthConfidence, Reason: "runtime over 140 minutes"}, true
	}
}

// Audience label values.
const (
	AudienceKids    = "Kids"
	AudienceFamily  = "Family"
	AudienceTeens   = "Teens"
	AudienceAdults  = "Adults"
	AudienceGeneral = "General"
)

// AudienceOrder fixes the emission order of audience suggestions.
var AudienceOrder = []string{AudienceKids, AudienceFamily, AudienceTeens, AudienceAdults, AudienceGeneral}

var audienceByRating = map[string]Label{
	"G":     {Value: AudienceKids, Confidence: 0.88},
	"TV-Y":  {Value: AudienceKids, Confidence: 0.88},
	"TV-Y7": {Value: AudienceKids, Confidence: 0.88},
	"PG":    {Value: AudienceFamily, Confidence: 0.85},
	"PG-13": {Value: AudienceTeens, Confidence: 0.82},
	"R":     {Value: AudienceAdults, Confidence: 0.85},
	"NC-17": {Value: AudienceAdults, Confidence: 0.85},
	"TV-MA": {Value: AudienceAdults, Confidence: 0.85},
}

// AudienceLabel maps an item's official rating to an audience label. Every
// item receives exactly one label; unrated and unrecognized ratings fall
// back to General.
func AudienceLabel(item media.MovieItem) Label {
	rating := strings.ToUpper(strings.TrimSpace(item.OfficialRating))
	if label, ok := audienceByRating[rating]; ok {
		label.Reason = "official rating " + rating
		return label
	}
	return Label{Value: AudienceGeneral, Confidence: 0.70, Reason: "no recognized official rating"}
}
