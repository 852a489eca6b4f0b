package piopack

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/gookit/color"
)

// printHelp prints the commands table
func printHelp() {
	colSuccess.Println("Usage: piopack <command>")
	fmt.Println()
	color.Info.Println("Available Commands:")

	type cmdInfo struct {
		Cmd  string
		Desc string
	}
	cmds := []cmdInfo{
		{"run", "Build, package and validate one registry archive (default)"},
		{"version, --version", "Version information"},
		{"help, -h", "Show this help"},
	}

	maxLen := 0
	for _, c := range cmds {
		if len(c.Cmd) > maxLen {
			maxLen = len(c.Cmd)
		}
	}
	for _, c := range cmds {
		fmt.Print("  ")
		colArrow.Print(c.Cmd)
		fmt.Print(strings.Repeat(" ", maxLen-len(c.Cmd)+2))
		color.Info.Println(c.Desc)
	}

	fmt.Println()
	color.Info.Println("Configuration is taken from the environment (or piopack.conf):")
	color.Info.Println("  PLATFORMIO_PACKAGE_VERSION        release version override")
	color.Info.Println("  GITHUB_REF                        CI tag reference (refs/tags/<v>)")
	color.Info.Println("  PLATFORMIO_PACKAGE_SYSTEM_VALUES  comma-separated target systems")
	color.Info.Println("  PIOPACK_ARCHIVE                   'pio' (default) or 'tar'")
	color.Info.Println("  PIOPACK_DEBUG                     set to 1 for debug output")
	color.Info.Println("  R2_*                              optional mirror credentials")
	fmt.Println()
}

// Main is the CLI entrypoint.
func Main() {
	ctx, cancel := signalContext()
	defer cancel()

	cfg, err := loadConfig(ConfigFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to read %s: %v\n", ConfigFile, err)
	}
	initConfig(cfg)

	cmd := "run"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "run":
		if err := runPipeline(ctx, cfg); err != nil {
			colError.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	case "version", "--version":
		fmt.Printf("piopack %s (%s) %s/%s\n", version, buildDate, runtime.GOOS, arch)
	case "help", "-h", "--help":
		printHelp()
	default:
		colError.Printf("Unknown command: %s\n", cmd)
		printHelp()
		os.Exit(1)
	}
}
