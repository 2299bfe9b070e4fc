package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"reqlock/internal/app"
)

type convertOptions struct {
	PyProject string
	Output    string
}

func newConvertCommand() *cobra.Command {
	opts := convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Extract pyproject.toml dependencies into requirements form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConvert(opts)
		},
	}
	cmd.Flags().StringVar(&opts.PyProject, "pyproject", "pyproject.toml", "pyproject.toml path")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Write the result to this path instead of stdout")
	return cmd
}

func runConvert(opts convertOptions) error {
	service := app.NewService()
	result, err := service.Convert(app.ConvertRequest{
		PyProjectPath: opts.PyProject,
		OutputPath:    opts.Output,
	})
	if err != nil {
		return err
	}
	if opts.Output == "" {
		fmt.Print(result.Rendered)
		return nil
	}
	fmt.Printf("converted: %d requirement(s) -> %s\n", result.Requirements, opts.Output)
	return nil
}
