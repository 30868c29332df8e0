package app

import "embed"

// UI holds frontend sources served by the application.
//
//go:embed ui
var UI embed.FS
