package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"reqlock/internal/app"
)

type diffOptions struct {
	Before string
	After  string
	Type   string
}

func newDiffCommand() *cobra.Command {
	opts := diffOptions{}
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare two manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDiff(opts)
		},
	}
	cmd.Flags().StringVar(&opts.Before, "before", "", "Old manifest path")
	cmd.Flags().StringVar(&opts.After, "after", "", "New manifest path")
	cmd.Flags().StringVar(&opts.Type, "type", "pip", "Manifest type (pip or apt)")
	return cmd
}

func runDiff(opts diffOptions) error {
	service := app.NewService()
	result, err := service.Diff(app.DiffRequest{
		BeforePath: opts.Before,
		AfterPath:  opts.After,
		Type:       parseDependencyType(opts.Type),
	})
	if err != nil {
		return err
	}
	diff := result.Result
	if diff.Empty() {
		fmt.Println("manifests are identical")
		return nil
	}
	for _, entry := range diff.Added {
		fmt.Printf("+ %s%s\n", entry.Name, entry.New)
	}
	for _, entry := range diff.Removed {
		fmt.Printf("- %s%s\n", entry.Name, entry.Old)
	}
	for _, entry := range diff.Changed {
		fmt.Printf("~ %s %s -> %s\n", entry.Name, entry.Old, entry.New)
	}
	return nil
}
