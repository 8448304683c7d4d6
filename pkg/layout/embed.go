package layout

import (
	"embed"
	"io/fs"
)

//go:embed layouts/*
var embeddedLayouts embed.FS

// EmbeddedFS returns the bundled leave request layouts. Callers may pass this
// filesystem to LoadFS when no layout path is configured.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedLayouts, "layouts")
	if err != nil {
		panic(err)
	}
	return sub
}
