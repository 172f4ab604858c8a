// Package web holds the browser client served at the site root.
package web

import "embed"

//go:embed public
var Public embed.FS
