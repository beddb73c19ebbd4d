package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ronan-fesselier/vista-sdk-go/codebook"
	"github.com/ronan-fesselier/vista-sdk-go/visversion"
)

var codebookListVisVersion string

var codebookListCmd = &cobra.Command{
	Use:   "codebook-list <name>",
	Short: "List the standard values of a codebook, grouped",
	Long: `codebook-list prints every standard value of the named codebook
(one of Quantity, Content, Calculation, State, Command, Type,
FunctionalServices, MaintenanceCategory, ActivityType, Position, Detail)
for --vis-version (default: the latest supported version), grouped the
way the resource file groups them.`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCodebookList(args[0])
	},
}

func init() {
	codebookListCmd.Flags().StringVar(&codebookListVisVersion, "vis-version", "", "VIS version to list (default: latest)")
}

func codebookNameArg(s string) codebook.Name {
	return codebook.Name(s)
}

func runCodebookList(name string) error {
	ver := visversion.Latest()
	if codebookListVisVersion != "" {
		parsed, err := visversion.Parse(codebookListVisVersion)
		if err != nil {
			return fmt.Errorf("visctl: %w", err)
		}
		ver = parsed
	}

	cbs, err := facade.Codebooks(ver)
	if err != nil {
		return fmt.Errorf("visctl: %w", err)
	}

	cb := cbs.Codebook(codebookNameArg(name))
	if cb == nil {
		return fmt.Errorf("visctl: unrecognized codebook %q", name)
	}

	groups := cb.Groups()
	sort.Strings(groups)
	raw := cb.RawData()
	for _, group := range groups {
		fmt.Printf("%s:\n", group)
		values := raw[group]
		sort.Strings(values)
		for _, v := range values {
			fmt.Printf("  %s\n", v)
		}
	}
	return nil
}
