package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ormasoftchile/autodoc/pkg/config"
	"github.com/ormasoftchile/autodoc/pkg/report"
)

// Version is set at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

var (
	v      = config.New()
	cfg    *config.Config
	logger = slog.New(slog.DiscardHandler)

	configPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "autodoc [playbook.yml]",
	Short: "Generate a README for an Ansible playbook",
	Long: `autodoc reads a playbook and writes a Markdown summary of each play:
description, hosts, mandatory variables, default variables, tasks and roles.

Vault-encrypted values are never copied into the report; they appear as ENCRYPTED.

Examples:
  autodoc site.yml
  autodoc generate site.yml --output-dir docs
  autodoc -p site.yml -o docs/site.md
  autodoc site.yml --select '"nginx" in roles'`,
	Args:              cobra.MaximumNArgs(1),
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runGenerate,
}

// loadConfig resolves settings once flags are parsed.
func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(v, configPath)
	if err != nil {
		return err
	}
	cfg = c
	if cfg.Verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return nil
}

// --- generate ---

var (
	genPlaybookPath string
	genOutputPath   string
)

var generateCmd = &cobra.Command{
	Use:   "generate [playbook.yml]",
	Short: "Write the README for a playbook (the default action)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGenerate,
}

// addGenerateFlags registers the playbook and output flags on cmd. The root
// command and generate share the same variables.
func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&genPlaybookPath, "playbook-path", "p", "", "Path to the playbook file")
	cmd.Flags().StringVarP(&genOutputPath, "output-path", "o", "", "Path of the report (default: README_<playbook>_.md)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	path, err := playbookArg(genPlaybookPath, args)
	if err != nil {
		return err
	}
	res, err := report.Generate(report.Options{
		PlaybookPath: path,
		OutputPath:   genOutputPath,
		OutputDir:    cfg.OutputDir,
		Select:       cfg.Select,
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	printSummary(cmd.OutOrStdout(), res)
	return nil
}

// playbookArg picks the playbook from --playbook-path or the positional
// argument; exactly one must be given.
func playbookArg(flag string, args []string) (string, error) {
	switch {
	case flag != "" && len(args) > 0:
		return "", fmt.Errorf("playbook given twice: use either --playbook-path or an argument")
	case flag != "":
		return flag, nil
	case len(args) > 0:
		return args[0], nil
	default:
		return "", fmt.Errorf("playbook path required: autodoc <playbook.yml> or --playbook-path")
	}
}

// --- version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "autodoc %s (build: %s)\n", version, commit)
	},
}

func init() {
	// global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./"+config.FileName+" if present)")
	rootCmd.PersistentFlags().String("select", "", "expr-lang expression selecting plays, e.g. '\"web\" in roles'")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug details to stderr")
	_ = v.BindPFlag("select", rootCmd.PersistentFlags().Lookup("select"))
	_ = v.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.PersistentFlags().String("output-dir", "", "Directory for the default-named report")
	_ = v.BindPFlag("output_dir", rootCmd.PersistentFlags().Lookup("output-dir"))

	// generate flags
	addGenerateFlags(rootCmd)
	addGenerateFlags(generateCmd)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
