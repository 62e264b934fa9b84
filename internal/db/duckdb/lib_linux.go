package duckdb

import "github.com/ebitengine/purego"

func libNames() []string {
	return []string{
		"libduckdb.so",
		"/usr/local/lib/libduckdb.so",
		"/usr/lib/libduckdb.so",
	}
}

func openLibrary(name string) (uintptr, error) {
	return purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}
