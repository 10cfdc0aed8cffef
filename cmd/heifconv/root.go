package main

import (
	"strings"

	"github.com/spf13/cobra"

	"heifconv/internal/codec"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "heifconv <format>",
		Short: "Convert HEIF/HEIC images in the current directory to PNG or JPEG",
		Long: "Convert every HEIF/HEIC image in the current directory.\n\n" +
			"Converted files are written to {dir}/{dir-name}-{format}. JPEG output is\n" +
			"compared with its source using SSIM and the preserved quality is reported.\n\n" +
			"Supported formats: " + strings.Join(codec.ValidTokens, ", "),
		Example:       "  heifconv png\n  heifconv jpg",
		ValidArgs:     codec.ValidTokens,
		Args:          cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Arguments are valid once we get here; later errors are not usage errors.
			cmd.SilenceUsage = true
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConversion(cmd, ctx, args[0])
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))

	return rootCmd
}
