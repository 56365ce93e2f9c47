package demo

import (
	"embed"
	"io/fs"
)

//go:embed assets
var assets embed.FS

// Messages returns the bundled message files.
func Messages() fs.FS {
	sub, _ := fs.Sub(assets, "assets/messages")
	return sub
}

// Constraints returns the bundled constraint declarations.
func Constraints() []byte {
	data, _ := assets.ReadFile("assets/constraints.yaml")
	return data
}

func templates() fs.FS {
	sub, _ := fs.Sub(assets, "assets/templates")
	return sub
}
