package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ronan-fesselier/vista-sdk-go/localid"
	"github.com/ronan-fesselier/vista-sdk-go/parseerrors"
	"github.com/ronan-fesselier/vista-sdk-go/universalid"
)

var parseCmd = &cobra.Command{
	Use:   "parse <id>",
	Short: "Parse a Local ID or Universal ID string and print its structure",
	Long: `Parse accepts either a Local ID ("/dnv-v2/vis-3-4a/...") or a
Universal ID ("data.dnv.com/IMO.../dnv-v2/..."), printing the resolved
VIS version, primary/secondary item paths, metadata tags, and verbose
flag. Parse errors are printed in full rather than just the first one.`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runParse(args[0])
	},
}

func runParse(s string) error {
	resolver := facade.Resolver()

	if strings.Contains(s, "/dnv-v") && strings.HasPrefix(s, "data.dnv.com") {
		uid, errs := universalid.TryParseWithErrors(s, resolver)
		if !errs.IsEmpty() {
			return formatParseError(errs)
		}
		printUniversalBuilder(uid)
		return nil
	}

	b, errs := localid.TryParseWithErrors(s, resolver)
	if !errs.IsEmpty() {
		return formatParseError(errs)
	}
	printLocalBuilder(b)
	return nil
}

// formatParseError renders errs, calling out a structural (Formatting-or-
// worse) failure distinctly from a failure limited to individual segments
// that happened to still parse completely.
func formatParseError(errs parseerrors.Errors) error {
	if errs.HasErrorOrWorse(parseerrors.KindFormatting) {
		return fmt.Errorf("visctl: malformed input:\n%s", errs.String())
	}
	return fmt.Errorf("visctl: %s", errs.String())
}

func printLocalBuilder(b localid.Builder) {
	if ver, ok := b.VisVersion(); ok {
		fmt.Printf("vis_version: %s\n", ver)
	}
	if primary, ok := b.Items().PrimaryItem(); ok {
		fmt.Printf("primary: %s\n", primary.String())
	}
	if secondary, ok := b.Items().SecondaryItem(); ok {
		fmt.Printf("secondary: %s\n", secondary.String())
	}
	fmt.Printf("verbose: %v\n", b.VerboseMode())
	for _, tag := range b.MetadataTags() {
		fmt.Printf("tag %s: %s\n", tag.Name(), tag.Value())
	}
}

func printUniversalBuilder(b universalid.Builder) {
	if imo, ok := b.ImoNumber(); ok {
		fmt.Printf("imo_number: %s\n", imo.String())
	}
	if lb, ok := b.LocalID(); ok {
		printLocalBuilder(lb)
	}
}
