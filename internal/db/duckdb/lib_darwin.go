package duckdb

import "github.com/ebitengine/purego"

func libNames() []string {
	return []string{
		"libduckdb.dylib",
		"/usr/local/lib/libduckdb.dylib",
		"/opt/homebrew/lib/libduckdb.dylib",
	}
}

func openLibrary(name string) (uintptr, error) {
	return purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}
