package piopack

import (
	"runtime"

	"github.com/gookit/color"
)

const (
	toolName     = "cppcheck"
	pkgName      = "tool-cppcheck"
	manifestName = "package.json"
)

// Global variables
var (
	ConfigFile  = "piopack.conf"
	Debug       bool
	buildRoot   string // base of the per-target build directory
	resultDir   string // where finished packages land
	archiveMode string // "pio" or "tar"
	version     = "dev"     // overridden at build time
	buildDate   = "unknown" // overridden at build time
	arch        = runtime.GOARCH
)

// color helpers
var (
	colInfo    = color.Info // style provided by gookit/color
	colWarn    = color.Warn
	colError   = color.Error
	colSuccess = color.HEX("#1976D2")
	colArrow   = color.HEX("#FFEB3B")
)
