package cmd

import (
	"github.com/re-centris/cpp2uml/internal/common/logger"
	"github.com/re-centris/cpp2uml/internal/uml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var modelFormat string

var modelCmd = &cobra.Command{
	Use:   "model [file|directory]",
	Short: "Print the parsed class model",
	Long: `Scan a header file or directory like the root command and print the
recognized classes, members, methods and known relationships as YAML or
TOML instead of writing a diagram.`,
	Args: cobra.ExactArgs(1),
	RunE: runModel,
}

func init() {
	modelCmd.Flags().StringVarP(&modelFormat, "format", "f", string(uml.FormatYAML), "Output format (yaml|toml)")
	rootCmd.AddCommand(modelCmd)
}

func runModel(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	res, err := newAnalyzer().Scan(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	logger.Debug("Writing model",
		zap.String("input", args[0]),
		zap.String("format", modelFormat),
		zap.Int("classes", res.Registry.Len()))

	return uml.WriteModel(cmd.OutOrStdout(), res.Registry, uml.Format(modelFormat))
}
