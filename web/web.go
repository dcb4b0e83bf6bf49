// Package web holds the embedded HTML templates and static assets.
package web

import "embed"

// Templates, sayfa şablonları (templates/base.html + sayfa başına bir dosya)
//
//go:embed templates/*.html
var Templates embed.FS

// Static, CSS ve diğer statik dosyalar
//
//go:embed static
var Static embed.FS
