package reflection

import (
	"reflect"
	"strings"
)

// FormatType formats a reflect.Type for error and log messages, dropping
// package paths from named types.
func FormatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Pointer:
		return "*" + FormatType(t.Elem())
	case reflect.Slice:
		return "[]" + FormatType(t.Elem())
	case reflect.Map:
		return "map[" + FormatType(t.Key()) + "]" + FormatType(t.Elem())
	}

	if t.Name() == "" {
		return t.String()
	}

	// Generic instantiations carry full package paths inside the brackets,
	// e.g. collection.Set[github.com/x/y.Listener].
	name := t.Name()
	if open := strings.IndexByte(name, '['); open >= 0 {
		return shortPkg(t.String()[:strings.IndexByte(t.String(), '[')]) + "[" + shortArgs(name[open+1:len(name)-1]) + "]"
	}
	return shortPkg(t.String())
}

// shortPkg trims "github.com/a/b.Name" down to "b.Name".
func shortPkg(s string) string {
	if slash := strings.LastIndexByte(s, '/'); slash >= 0 {
		return s[slash+1:]
	}
	return s
}

func shortArgs(args string) string {
	parts := strings.Split(args, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		prefix := strings.TrimRight(p, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_./-")
		parts[i] = prefix + shortPkg(p[len(prefix):])
	}
	return strings.Join(parts, ",")
}
