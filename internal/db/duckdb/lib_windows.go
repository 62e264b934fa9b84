package duckdb

import "golang.org/x/sys/windows"

func libNames() []string {
	return []string{"duckdb.dll"}
}

func openLibrary(name string) (uintptr, error) {
	h, err := windows.LoadLibrary(name)
	return uintptr(h), err
}
