package mockcoll

import "github.com/junioryono/mockcoll/internal/reflection"

// TagKey is the struct tag key read from test fixtures.
const TagKey = reflection.TagKey

// Marker is one annotation in a mockcoll struct tag.
type Marker = reflection.Marker

// Markers recognised in `mockcoll:"..."` tags. Several markers are separated by
// commas; collectionOfMocks takes an optional count option.
//
//	type Fixture struct {
//	    Bus       *EventBus         `mockcoll:"injectCollections"`
//	    First     Listener          `mockcoll:"mock"`
//	    Second    Listener          `mockcoll:"mock"`
//	    Generated []Listener        `mockcoll:"collectionOfMocks,count=3"`
//	}
const (
	InjectCollections = reflection.InjectCollections
	InjectMocks       = reflection.InjectMocks
	Injectable        = reflection.Injectable
	Mock              = reflection.Mock
	IgnoreInjectee    = reflection.IgnoreInjectee
	IgnoreInjectable  = reflection.IgnoreInjectable
	CollectionOfMocks = reflection.CollectionOfMocks
)

// Field is a struct field handle returned by a FieldRetriever.
type Field = reflection.Field

// Tag is a parsed mockcoll struct tag.
type Tag = reflection.Tag
