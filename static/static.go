// Package static embeds the demo web client.
package static

import "embed"

//go:embed index.html app.js
var Files embed.FS
