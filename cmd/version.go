package cmd

import (
	"fmt"
	"runtime"

	"github.com/eknkc/pinsearch/internal/pinboard"
	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X github.com/eknkc/pinsearch/cmd.version=...".
var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show pinsearch version, build information and the API it talks to",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// userAgent tags every API request with the running build.
func userAgent() string {
	return pinboard.DefaultUserAgent + "/" + version
}

func runVersion(_ *cobra.Command, _ []string) error {
	fmt.Fprintf(stdout, "Version:    %s\n", version)
	fmt.Fprintf(stdout, "Commit:     %s\n", emptyAsNA(commit))
	fmt.Fprintf(stdout, "Build Date: %s\n", emptyAsNA(buildDate))
	fmt.Fprintf(stdout, "Go Version: %s\n", runtime.Version())
	fmt.Fprintf(stdout, "OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(stdout, "User-Agent: %s\n", userAgent())

	// Config errors are ignored here.
	if cfg, err := loadConfig(); err == nil {
		fmt.Fprintf(stdout, "API:        %s\n", cfg.Settings.APIBaseURL)
		fmt.Fprintf(stdout, "Data Dir:   %s\n", cfg.Paths.DataDir)
		fmt.Fprintf(stdout, "Cache Dir:  %s\n", cfg.Paths.CacheDir)
	}
	return nil
}

func emptyAsNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
