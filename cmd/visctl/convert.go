package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ronan-fesselier/vista-sdk-go/localid"
	"github.com/ronan-fesselier/vista-sdk-go/visversion"
)

var convertTargetVersion string

var convertCmd = &cobra.Command{
	Use:   "convert <local-id>",
	Short: "Convert a Local ID string to a different VIS version",
	Long: `convert parses local-id, converts its primary/secondary items,
metadata tags, and verbose flag to --target-version using the cached
GmodVersioning conversion tables, and prints the resulting Local ID
string. Conversion fails if the source item has no equivalent in the
target version.`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(args[0])
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertTargetVersion, "target-version", "", "VIS version to convert to (required)")
	_ = convertCmd.MarkFlagRequired("target-version")
}

func runConvert(s string) error {
	target, err := visversion.Parse(convertTargetVersion)
	if err != nil {
		return fmt.Errorf("visctl: %w", err)
	}

	b, errs := localid.TryParseWithErrors(s, facade.Resolver())
	if !errs.IsEmpty() {
		return formatParseError(errs)
	}

	converted, err := facade.ConvertLocalID(b, target)
	if err != nil {
		return fmt.Errorf("visctl: %w", err)
	}

	fmt.Println(converted.String())
	return nil
}
