package web

import "embed"

// FS holds the stylesheet and other static assets served under /static.
//
//go:embed static/*
var FS embed.FS
