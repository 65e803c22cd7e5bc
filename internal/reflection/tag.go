package reflection

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// TagKey is the struct tag key mockcoll reads.
const TagKey = "mockcoll"

// ErrMalformedTag is returned for a mockcoll tag that cannot be parsed.
var ErrMalformedTag = errors.New("malformed mockcoll tag")

// Marker is a single annotation inside a mockcoll tag.
type Marker string

const (
	// InjectCollections marks an object under test.
	InjectCollections Marker = "injectCollections"
	// InjectMocks is the legacy spelling of InjectCollections.
	InjectMocks Marker = "injectMocks"

	// Injectable marks a value that may be injected into an object under test.
	Injectable Marker = "injectable"
	// Mock is the legacy spelling of Injectable.
	Mock Marker = "mock"

	IgnoreInjectee   Marker = "ignoreInjectee"
	IgnoreInjectable Marker = "ignoreInjectable"

	// CollectionOfMocks marks a collection field to be filled with generated doubles.
	CollectionOfMocks Marker = "collectionOfMocks"
)

const countOption = "count"

func (m Marker) valid() bool {
	switch m {
	case InjectCollections, InjectMocks, Injectable, Mock, IgnoreInjectee, IgnoreInjectable, CollectionOfMocks:
		return true
	}
	return false
}

// Tag is a parsed mockcoll struct tag.
type Tag struct {
	Markers []Marker

	// Count is the number of doubles requested by collectionOfMocks; only
	// meaningful when HasCount is set.
	Count    int
	HasCount bool

	// Skip is set for `mockcoll:"-"`.
	Skip bool
}

// Has reports whether the tag carries marker m.
func (t Tag) Has(m Marker) bool {
	for _, marker := range t.Markers {
		if marker == m {
			return true
		}
	}
	return false
}

// ParseTag parses the mockcoll tag of a struct field. It reports false when
// the field has no mockcoll tag.
//
//	Listeners []Listener `mockcoll:"collectionOfMocks,count=3"`
//	Subject   *Service   `mockcoll:"injectCollections"`
//	Cache     []Listener `mockcoll:"-"`
func ParseTag(tag reflect.StructTag) (Tag, bool, error) {
	raw, ok := tag.Lookup(TagKey)
	if !ok {
		return Tag{}, false, nil
	}
	if strings.TrimSpace(raw) == "-" {
		return Tag{Skip: true}, true, nil
	}

	var info Tag
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if key, value, isOption := strings.Cut(part, "="); isOption {
			if key != countOption {
				return Tag{}, true, fmt.Errorf("%w: unknown option %q", ErrMalformedTag, key)
			}
			n, err := strconv.Atoi(value)
			if err != nil {
				return Tag{}, true, fmt.Errorf("%w: count %q is not an integer", ErrMalformedTag, value)
			}
			info.Count, info.HasCount = n, true
			continue
		}

		marker := Marker(part)
		if !marker.valid() {
			return Tag{}, true, fmt.Errorf("%w: unknown marker %q", ErrMalformedTag, part)
		}
		if !info.Has(marker) {
			info.Markers = append(info.Markers, marker)
		}
	}

	if info.HasCount && !info.Has(CollectionOfMocks) {
		return Tag{}, true, fmt.Errorf("%w: %s requires %s", ErrMalformedTag, countOption, CollectionOfMocks)
	}

	return info, true, nil
}
