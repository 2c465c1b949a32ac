package cmd

import (
	"github.com/eknkc/pinsearch/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write settings.yaml and .env templates",
	Long: `Create commented settings.yaml and .env templates in the data directory.
Existing files are left untouched.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	created, err := config.EnsureTemplates(cfg.Paths)
	if err != nil {
		return err
	}
	made := make(map[string]bool, len(created))
	for _, p := range created {
		made[p] = true
		printOK("", "created "+p)
	}
	for _, p := range []string{cfg.Paths.SettingsFile(), cfg.Paths.DotEnvFile()} {
		if !made[p] {
			printSkip("", "exists "+p)
		}
	}
	return nil
}
