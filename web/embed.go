// Package web embeds the browser client served at "/".
package web

import (
	"embed"
	"io/fs"
)

//go:embed index.html static
var files embed.FS

// IndexHTML returns the landing page.
func IndexHTML() ([]byte, error) {
	return files.ReadFile("index.html")
}

// Static returns the asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
