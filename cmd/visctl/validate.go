package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ronan-fesselier/vista-sdk-go/vis"
	"github.com/ronan-fesselier/vista-sdk-go/visversion"
)

var (
	validateVisVersion string
	validateCodebook   string
)

var validateCmd = &cobra.Command{
	Use:   "validate <value>",
	Short: "Validate a value against an ISO 19848 character class or a codebook",
	Long: `With no --codebook flag, validate checks whether value is a legal
ISO 19848 unreserved string (or, with --local-id, a legal Local ID
character string that also allows '/').

With --codebook, value is instead checked against that codebook's
standard/custom value rules for --vis-version (default: the latest
supported version).`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(args[0])
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateVisVersion, "vis-version", "", "VIS version to validate against (default: latest)")
	validateCmd.Flags().StringVar(&validateCodebook, "codebook", "", "codebook name to validate value against, e.g. Quantity")
	validateCmd.Flags().Bool("local-id", false, "use the Local-ID character class (permits '/') instead of the plain ISO one")
}

func runValidate(value string) error {
	if validateCodebook == "" {
		localID, _ := validateCmd.Flags().GetBool("local-id")
		ok := vis.IsISOString(value)
		if localID {
			ok = vis.MatchISOLocalIDString(value)
		}
		fmt.Printf("valid: %v\n", ok)
		return nil
	}

	ver := visversion.Latest()
	if validateVisVersion != "" {
		parsed, err := visversion.Parse(validateVisVersion)
		if err != nil {
			return fmt.Errorf("visctl: %w", err)
		}
		ver = parsed
	}

	cbs, err := facade.Codebooks(ver)
	if err != nil {
		return fmt.Errorf("visctl: %w", err)
	}
	tag, ok := cbs.TryCreateTag(codebookNameArg(validateCodebook), value)
	if !ok {
		fmt.Println("valid: false")
		return nil
	}
	fmt.Printf("valid: true\n")
	fmt.Printf("custom: %v\n", tag.IsCustom())
	return nil
}
