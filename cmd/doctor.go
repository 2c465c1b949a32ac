package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/eknkc/pinsearch/internal/config"
	"github.com/eknkc/pinsearch/internal/freshness"
	"github.com/eknkc/pinsearch/internal/snapshot"
	"github.com/eknkc/pinsearch/internal/store"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run environment checks",
	Long: `Check that pinsearch's configuration, token and cache are usable.
Run this command when searches return errors, or before filing a bug report.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

var doctorFixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Automatically fix detected issues",
	Long: `Fix detected issues in the local cache.

Currently fixes:
  - Corrupt bookmark cache: removes it so the next search downloads a new one
  - Leftover temp files from interrupted writes

Run 'pinsearch doctor' first to see what will be fixed.`,
	Args: cobra.NoArgs,
	RunE: runDoctorFix,
}

func init() {
	doctorCmd.AddCommand(doctorFixCmd)
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(_ *cobra.Command, _ []string) error {
	allOK := true
	failD := func(format string, args ...any) {
		printErr("", fmt.Sprintf(format, args...))
		allOK = false
	}

	printSection("pinsearch doctor")

	// ── Check 1: configuration resolves ───────────────────────────────────────
	fmt.Fprintln(stdout, "\n[ settings ]")
	cfg, err := loadConfig()
	if err != nil {
		failD("%v", err)
		return errors.New("doctor found problems")
	}
	if _, err := os.Stat(cfg.Paths.SettingsFile()); os.IsNotExist(err) {
		printSkip("", "no settings.yaml, using defaults (run 'pinsearch init' for a template)")
	} else {
		printOK("", fmt.Sprintf("valid YAML: %s", cfg.Paths.SettingsFile()))
	}
	printInfo("", fmt.Sprintf("api %s, staleness %s, output %s", cfg.Settings.APIBaseURL, cfg.Settings.Staleness, cfg.Settings.Output))

	// ── Check 2: directories are writable ─────────────────────────────────────
	fmt.Fprintln(stdout, "\n[ directories ]")
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.CacheDir} {
		if err := checkWritable(dir); err != nil {
			failD("%s is not writable: %v", dir, err)
		} else {
			printOK("", dir)
		}
	}

	// ── Check 3: token ────────────────────────────────────────────────────────
	fmt.Fprintln(stdout, "\n[ token ]")
	creds, err := config.LoadCredentials(cfg.Paths.CredentialsFile())
	switch {
	case err != nil:
		failD("%v", err)
	case cfg.TokenOverride != "":
		if _, err := config.ValidateToken(cfg.TokenOverride); err != nil {
			failD("%s: %v", config.EnvToken, err)
		} else {
			printOK("", fmt.Sprintf("token from %s", config.EnvToken))
		}
	case creds.Token == "":
		failD("no token set; run 'pinsearch search --token username:TOKEN'")
	default:
		if _, err := config.ValidateToken(creds.Token); err != nil {
			failD("stored token: %v", err)
		} else {
			printOK("", "stored token looks valid")
		}
	}

	// ── Check 4: bookmark cache ───────────────────────────────────────────────
	fmt.Fprintln(stdout, "\n[ cache ]")
	s, err := snapshot.NewStore(cfg.Paths.CacheFile()).Load()
	var perr *store.ParseError
	switch {
	case errors.As(err, &perr):
		failD("corrupt cache %s (run 'pinsearch doctor fix')", perr.Path)
	case err != nil:
		failD("%v", err)
	case s == nil:
		printMiss("", "no cache yet; the next search downloads bookmarks")
	default:
		printOK("", fmt.Sprintf("%d bookmarks cached", len(s.Entries)))
	}
	if tmps := leftoverTempFiles(cfg.Paths); len(tmps) > 0 {
		printWarn("", fmt.Sprintf("%d leftover temp file(s) (run 'pinsearch doctor fix')", len(tmps)))
	}

	// ── Check 5: refresh lock ─────────────────────────────────────────────────
	fmt.Fprintln(stdout, "\n[ background refresh ]")
	lock := freshness.NewLock(cfg.Paths.LockFile())
	locked, err := lock.TryLock()
	switch {
	case err != nil:
		failD("cannot check refresh lock: %v", err)
	case !locked:
		printInfo("", "a background refresh is running right now")
	default:
		_ = lock.Unlock()
		printOK("", "no refresh in progress")
	}

	fmt.Fprintln(stdout)
	if !allOK {
		return errors.New("doctor found problems")
	}
	printOK("", "All checks passed.")
	return nil
}

func runDoctorFix(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	printSection("pinsearch doctor fix")

	// ── Fix: corrupt cache ────────────────────────────────────────────────────
	fmt.Fprintln(stdout, "\n[ cache ]")
	var perr *store.ParseError
	_, err = snapshot.NewStore(cfg.Paths.CacheFile()).Load()
	switch {
	case errors.As(err, &perr):
		if err := store.Remove(perr.Path); err != nil {
			return fmt.Errorf("cannot remove corrupt cache: %w", err)
		}
		printOK("", fmt.Sprintf("removed corrupt cache %s", perr.Path))
	case err != nil:
		return err
	default:
		printOK("", "cache is readable, nothing to fix")
	}

	// ── Fix: leftover temp files ──────────────────────────────────────────────
	fmt.Fprintln(stdout, "\n[ temp files ]")
	tmps := leftoverTempFiles(cfg.Paths)
	if len(tmps) == 0 {
		printOK("", "no temp files found")
		return nil
	}
	var failed int
	for _, p := range tmps {
		if err := os.Remove(p); err != nil {
			printErr("", fmt.Sprintf("cannot delete %s: %v", p, err))
			failed++
		} else {
			printOK("", fmt.Sprintf("deleted %s", p))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) could not be deleted", failed)
	}
	return nil
}

// leftoverTempFiles lists temp files that an interrupted atomic write left behind.
func leftoverTempFiles(p config.Paths) []string {
	var out []string
	for _, target := range []string{p.CacheFile(), p.CredentialsFile()} {
		matches, _ := filepath.Glob(filepath.Join(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp"))
		out = append(out, matches...)
	}
	return out
}

func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
