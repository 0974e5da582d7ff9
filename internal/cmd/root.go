package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/re-centris/cpp2uml/internal/analyzer"
	"github.com/re-centris/cpp2uml/internal/common/logger"
	"github.com/re-centris/cpp2uml/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "cpp2uml [file|directory]",
	Short: "Convert C++ headers to PlantUML class diagrams",
	Long: `Convert C/C++ header files to PlantUML class diagrams.

A file produces <file>_class.pu. A directory is scanned recursively for
headers and produces <directory>_class_diagram_all.pu, including the
inheritance, aggregation and composition relationships between the
classes found.`,
	Args:              cobra.ExactArgs(1),
	PersistentPreRunE: setup,
	RunE:              runConvert,
	SilenceErrors:     true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default "+config.DefaultFile+")")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this file")
	rootCmd.PersistentFlags().StringSlice("extensions", []string{".h", ".hpp"}, "Header extensions scanned in directories")
	rootCmd.PersistentFlags().Bool("gitignore", true, "Skip headers ignored by .gitignore files")
	rootCmd.PersistentFlags().Int("dedupe-distance", -1, "Skip headers within this TLSH distance of one already scanned (-1 disables)")

	rootCmd.Flags().StringP("output-dir", "o", "", "Directory for generated diagrams")
	rootCmd.Flags().Bool("relations", false, "Include relationships in single-file diagrams")

	viper.BindPFlag("log.debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("log.file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("scan.extensions", rootCmd.PersistentFlags().Lookup("extensions"))
	viper.BindPFlag("scan.respect_gitignore", rootCmd.PersistentFlags().Lookup("gitignore"))
	viper.BindPFlag("scan.dedupe_distance", rootCmd.PersistentFlags().Lookup("dedupe-distance"))
	viper.BindPFlag("output.dir", rootCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("output.relations", rootCmd.Flags().Lookup("relations"))
}

// Execute runs the root command
func Execute() error {
	defer logger.Sync()
	return rootCmd.Execute()
}

// setup loads the configuration and initializes logging
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(viper.GetViper(), configPath)
	if err != nil {
		return err
	}

	var paths []string
	if cfg.Log.File != "" {
		paths = append(paths, cfg.Log.File)
	}
	if err := logger.Init(cfg.Log.Debug, paths...); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func newAnalyzer() *analyzer.Analyzer {
	return analyzer.New(analyzer.AnalyzerOptions{
		Extensions:       cfg.Scan.Extensions,
		OutputDir:        cfg.Output.Dir,
		Relations:        cfg.Output.Relations,
		RespectGitignore: cfg.Scan.RespectGitignore,
		DedupeDistance:   cfg.Scan.DedupeDistance,
	})
}

func runConvert(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	res, err := newAnalyzer().Convert(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	ok := color.New(color.FgGreen, color.Bold)
	ok.Fprintf(cmd.ErrOrStderr(), "%d classes", res.Registry.Len())
	fmt.Fprintf(cmd.ErrOrStderr(), " from %d file(s) written to %s in %s\n",
		res.Files, res.Output, res.Stats.Elapsed.Round(time.Millisecond))
	if res.Skipped > 0 || res.Failed > 0 {
		color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(),
			"%d header(s) skipped, %d failed\n", res.Skipped, res.Failed)
	}
	return nil
}
