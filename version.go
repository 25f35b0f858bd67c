package brush

import _ "embed"

// Version is the release version of brush, with a trailing newline.
//
//go:embed VERSION
var Version string
