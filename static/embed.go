// Package staticfiles embeds the page assets so the server binary is
// self-contained. Set dev_static in the config to serve from disk instead.
package staticfiles

import (
	"embed"
	"io/fs"
)

//go:embed css/* js/*
var embedded embed.FS

func EmbeddedFS() fs.FS {
	return embedded
}
