package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqlock/internal/app"
)

type validateOptions struct {
	Manifests []string
	Type      string
	Policy    string
	Strict    bool
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate manifest syntax, duplicates, and versions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringSliceVar(&opts.Manifests, "manifest", nil, "Manifest path(s)")
	cmd.Flags().StringVar(&opts.Type, "type", "pip", "Manifest type (pip or apt)")
	cmd.Flags().StringVar(&opts.Policy, "policy", "", "Policy file path")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Require exact pins and forbid editable/URL entries")
	_ = viper.BindPFlag("manifests", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("policy", cmd.Flags().Lookup("policy"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	service := app.NewService()
	result, err := service.Validate(ctx, app.ValidateRequest{
		ManifestPaths: resolveStrings(cmd, opts.Manifests, "manifests", "manifest"),
		Type:          parseDependencyType(opts.Type),
		PolicyPath:    resolveString(cmd, opts.Policy, "policy", "policy"),
		Strict:        resolveBool(cmd, opts.Strict, "strict", "strict"),
	})
	if err != nil {
		return err
	}
	for _, finding := range result.Report.Findings {
		fmt.Println(finding.String())
	}
	if result.Report.Errors() > 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("manifest has findings: %d error(s), %d warning(s)",
				result.Report.Errors(), result.Report.Warnings()))
	}
	fmt.Printf("validated: %d manifest(s) clean\n", result.Manifests)
	return nil
}
