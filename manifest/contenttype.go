// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package manifest

import (
	"path"
	"strings"
)

const DefaultContentType = "application/octet-stream"
const BundleContentType = "application/javascript"

var contentTypes = map[string]string{
	".js":    "application/javascript",
	".json":  "application/json",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".webp":  "image/webp",
	".svg":   "image/svg+xml",
	".ttf":   "font/ttf",
	".otf":   "font/otf",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".css":   "text/css",
	".html":  "text/html",
	".mp3":   "audio/mpeg",
	".mp4":   "video/mp4",
}

// ContentTypeFor maps a file name to its MIME type by extension.
func ContentTypeFor(name string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(name))]; ok {
		return ct
	}
	return DefaultContentType
}
