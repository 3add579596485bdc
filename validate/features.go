package validate

import (
	"fmt"
	"strings"

	"github.com/coregx/polyregex/regex"
)

// Feature is a syntactic construct whose use can be restricted by
// configuration, independently of whether the pattern is well-formed.
type Feature uint16

const (
	// LookAhead covers (?=...) and (?!...).
	LookAhead Feature = 1 << iota
	// LookBehind covers (?<=...) and (?<!...).
	LookBehind
	// BackReferences covers numbered and named backreferences.
	BackReferences
	// NamedCaptureGroups covers (?<name>...) and (?P<name>...).
	NamedCaptureGroups
	// UnicodePropertyEscapes covers \p{...} and \P{...}.
	UnicodePropertyEscapes
	// LazyQuantifiers covers *?, +?, ?? and {n,m}?.
	LazyQuantifiers
	// WordBoundaries covers \b and \B.
	WordBoundaries
	// Conditionals covers (?(group)yes|no).
	Conditionals

	featureCount = iota
)

var featureNames = [featureCount]string{
	"lookahead",
	"lookbehind",
	"backreferences",
	"named-capture-groups",
	"unicode-property-escapes",
	"lazy-quantifiers",
	"word-boundaries",
	"conditionals",
}

// String returns the feature name used in errors and configuration.
func (f Feature) String() string {
	for i := 0; i < featureCount; i++ {
		if f == 1<<uint(i) {
			return featureNames[i]
		}
	}
	return fmt.Sprintf("Feature(%#x)", uint16(f))
}

// index returns the bit index of a single feature.
func (f Feature) index() int {
	for i := 0; i < featureCount; i++ {
		if f == 1<<uint(i) {
			return i
		}
	}
	return -1
}

// FeatureSet is the set of features an engine accepts.
type FeatureSet Feature

const (
	// AllFeatures accepts every construct the validators understand.
	AllFeatures = FeatureSet(1<<featureCount - 1)

	// DFAFeatures accepts only constructs that a finite automaton can
	// execute without backtracking.
	DFAFeatures = AllFeatures &^ FeatureSet(LookAhead|LookBehind|BackReferences|Conditionals)
)

// Has reports whether f is in the set.
func (fs FeatureSet) Has(f Feature) bool {
	return Feature(fs)&f == f
}

// String lists the features in the set, comma separated.
func (fs FeatureSet) String() string {
	var names []string
	for i := 0; i < featureCount; i++ {
		if Feature(fs)&(1<<uint(i)) != 0 {
			names = append(names, featureNames[i])
		}
	}
	return strings.Join(names, ",")
}

// ParseFeatureSet parses a preset name ("all", "dfa") or a comma separated
// list of feature names. An entry prefixed with '-' removes the feature
// from the set built so far, so "all,-lookbehind" is everything except
// lookbehind.
//
// Example:
//
//	fs, err := validate.ParseFeatureSet("dfa,lazy-quantifiers")
func ParseFeatureSet(spec string) (FeatureSet, error) {
	var fs FeatureSet
	for _, item := range strings.Split(spec, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		remove := strings.HasPrefix(item, "-")
		item = strings.TrimPrefix(item, "-")

		var bits FeatureSet
		switch item {
		case "all":
			bits = AllFeatures
		case "dfa":
			bits = DFAFeatures
		default:
			found := false
			for i, name := range featureNames {
				if name == item {
					bits = FeatureSet(1 << uint(i))
					found = true
					break
				}
			}
			if !found {
				return 0, fmt.Errorf("regexp: unknown feature %q", item)
			}
		}
		if remove {
			fs &^= bits
		} else {
			fs |= bits
		}
	}
	return fs, nil
}

// CheckSupport returns an *regex.UnsupportedFeatureError for the first
// feature (in pattern order) that res uses and fs does not contain.
func (fs FeatureSet) CheckSupport(src regex.Source, res *Result) error {
	disallowed := res.Features &^ Feature(fs)
	if disallowed == 0 {
		return nil
	}

	first, pos := Feature(0), -1
	for i := 0; i < featureCount; i++ {
		f := Feature(1 << uint(i))
		if disallowed&f == 0 {
			continue
		}
		p := res.Position(f)
		if first == 0 || (p >= 0 && (pos < 0 || p < pos)) {
			first, pos = f, p
		}
	}
	return &regex.UnsupportedFeatureError{
		Source:   src,
		Feature:  first.String(),
		Position: pos,
	}
}
