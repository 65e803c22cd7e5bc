package testutil

import "github.com/junioryono/mockcoll/collection"

// BusFixture is a fixture with an EventBus under test and two listener mocks.
type BusFixture struct {
	Bus    *EventBus `mockcoll:"injectCollections"`
	First  Listener  `mockcoll:"mock"`
	Second Listener  `mockcoll:"mock"`
}

// NewBusFixture creates a BusFixture with fresh mocks.
func NewBusFixture() *BusFixture {
	return &BusFixture{
		Bus:    &EventBus{},
		First:  NewMockListener(),
		Second: NewMockListener(),
	}
}

// GeneratedFixture has collectionOfMocks fields of each supported shape.
type GeneratedFixture struct {
	Default  collection.Set[Listener]   `mockcoll:"collectionOfMocks"`
	Three    []Listener                 `mockcoll:"collectionOfMocks,count=3"`
	Empty    collection.List[Listener]  `mockcoll:"collectionOfMocks,count=0"`
	Queue    collection.Queue[Listener] `mockcoll:"collectionOfMocks,count=2"`
	Untagged []Listener
}

// BaseFixture is embedded by LayeredFixture.
type BaseFixture struct {
	Base Listener `mockcoll:"mock"`
}

// LayeredFixture declares its own injectable after an embedded one.
type LayeredFixture struct {
	BaseFixture
	Bus  *EventBus `mockcoll:"injectCollections"`
	Leaf Listener  `mockcoll:"mock"`
}

// IgnoringFixture marks fields to leave out of resolution.
type IgnoringFixture struct {
	Bus     *EventBus `mockcoll:"injectCollections"`
	Skipped *EventBus `mockcoll:"injectMocks,ignoreInjectee"`
	Kept    Listener  `mockcoll:"injectable"`
	Hidden  Listener  `mockcoll:"mock,ignoreInjectable"`
}

// PointerBase is embedded by pointer in PointerFixture.
type PointerBase struct {
	Base Listener `mockcoll:"mock"`
}

// PointerFixture embeds its base by pointer, which may be left nil.
type PointerFixture struct {
	*PointerBase
	Bus  *EventBus `mockcoll:"injectCollections"`
	Leaf Listener  `mockcoll:"mock"`
}

// GeneratedBase is embedded by pointer in PointerGeneratedFixture.
type GeneratedBase struct {
	Generated []Listener `mockcoll:"collectionOfMocks"`
}

// PointerGeneratedFixture reaches a collectionOfMocks field through an
// embedded pointer.
type PointerGeneratedFixture struct {
	*GeneratedBase
}
