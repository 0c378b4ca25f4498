// Package label converts elm-test label sequences into hierarchical paths and
// location URLs, and computes relations between those paths.
package label

import (
	"slices"
	"strings"
)

// Separator joins segments in the string form of a Path.
const Separator = "/"

// Path is an immutable hierarchical path of encoded segments.
// The zero value is the empty path.
type Path struct {
	segments []string
}

// NewPath builds a Path from already encoded segments.
func NewPath(segments ...string) Path {
	if len(segments) == 0 {
		return Path{}
	}
	return Path{segments: slices.Clone(segments)}
}

// ParsePath splits the string form of a Path. The empty string is the empty path.
func ParsePath(s string) Path {
	if s == "" {
		return Path{}
	}
	return Path{segments: strings.Split(s, Separator)}
}

// ToPath encodes every label and joins them in order.
func ToPath(labels []string) Path {
	if len(labels) == 0 {
		return Path{}
	}
	segments := make([]string, len(labels))
	for i, l := range labels {
		segments[i] = EncodeSegment(l)
	}
	return Path{segments: segments}
}

// Labels decodes every segment of p, reproducing the labels given to ToPath.
func Labels(p Path) ([]string, error) {
	labels := make([]string, 0, len(p.segments))
	for _, s := range p.segments {
		l, err := DecodeSegment(s)
		if err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, nil
}

// ModuleName returns the first segment verbatim, or "" for the empty path.
// Module names are plain dotted names and are not decoded.
func ModuleName(p Path) string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[0]
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.segments)
}

// IsEmpty reports whether p has no segments.
func (p Path) IsEmpty() bool {
	return len(p.segments) == 0
}

// Segment returns the i-th encoded segment.
func (p Path) Segment(i int) string {
	return p.segments[i]
}

// Segments returns a copy of the encoded segments.
func (p Path) Segments() []string {
	return slices.Clone(p.segments)
}

// Last returns the final segment, or "" for the empty path.
func (p Path) Last() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// Parent returns all segments but the last. Paths with fewer than two
// segments have no parent.
func (p Path) Parent() (Path, bool) {
	if len(p.segments) < 2 {
		return Path{}, false
	}
	return Path{segments: p.segments[:len(p.segments)-1]}, true
}

// Append returns a new path with segments added at the end.
func (p Path) Append(segments ...string) Path {
	out := make([]string, 0, len(p.segments)+len(segments))
	out = append(out, p.segments...)
	out = append(out, segments...)
	return NewPath(out...)
}

// HasPrefix reports whether prefix is an element-wise prefix of p.
// The empty path is a prefix of every path.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix.segments) > len(p.segments) {
		return false
	}
	return slices.Equal(p.segments[:len(prefix.segments)], prefix.segments)
}

// Equal reports whether both paths have the same segments.
func (p Path) Equal(other Path) bool {
	return slices.Equal(p.segments, other.segments)
}

// Rel expresses target relative to p: the common prefix is dropped and
// every remaining segment of p becomes "..". An empty p returns target.
func (p Path) Rel(target Path) Path {
	if p.IsEmpty() {
		return target
	}
	base, rest := p.segments, target.segments
	for len(base) > 0 && len(rest) > 0 && base[0] == rest[0] {
		base = base[1:]
		rest = rest[1:]
	}
	out := make([]string, 0, len(base)+len(rest))
	for range base {
		out = append(out, "..")
	}
	out = append(out, rest...)
	return NewPath(out...)
}

func (p Path) String() string {
	return strings.Join(p.segments, Separator)
}
