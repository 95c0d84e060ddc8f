package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	vterrors "github.com/vango-dev/vtree/internal/errors"
)

func errorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "errors [code]",
		Short: "Explain error codes",
		Long: `List every error code vtree can report, or explain one.

Examples:
  vtree errors
  vtree errors VT003`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, code := range vterrors.GetAllCodes() {
					tmpl, _ := vterrors.GetTemplate(code)
					fmt.Fprintf(out, "%s  %-9s %s\n", code, tmpl.Category, tmpl.Message)
				}
				return nil
			}

			code := strings.ToUpper(args[0])
			tmpl, ok := vterrors.GetTemplate(code)
			if !ok {
				return vterrors.Newf(vterrors.CategoryCLI, "unknown error code %q", args[0]).
					WithSuggestion("Run \"vtree errors\" to list every code")
			}
			fmt.Fprintf(out, "%s: %s\n", code, tmpl.Message)
			fmt.Fprintf(out, "Category: %s\n", tmpl.Category)
			if tmpl.Suggestion != "" {
				fmt.Fprintf(out, "Hint: %s\n", tmpl.Suggestion)
			}
			return nil
		},
	}
}
