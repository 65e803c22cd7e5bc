package mockcoll

import "sync"

var (
	defaultMu       sync.RWMutex
	defaultInjector *Injector
)

// SetDefault sets the Injector used by the package-level Inject.
// This is similar to slog.SetDefault.
//
// Pass nil to go back to an injector built with no options.
func SetDefault(injector *Injector) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultInjector = injector
}

// Default returns the Injector used by the package-level Inject, building
// one with no options on first use.
func Default() *Injector {
	defaultMu.RLock()
	injector := defaultInjector
	defaultMu.RUnlock()
	if injector != nil {
		return injector
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultInjector == nil {
		injector, err := NewInjector()
		if err != nil {
			panic(err)
		}
		defaultInjector = injector
	}
	return defaultInjector
}

// Inject runs an injection pass over target with the default Injector.
//
// The default Injector knows no doubles, so fixtures with collectionOfMocks
// fields need SetDefault with an Injector built using WithDouble.
func Inject(target any) error {
	return Default().Inject(target)
}
