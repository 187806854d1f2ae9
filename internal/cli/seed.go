package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"desbuguei/internal/service"
)

var seedCmd = &cobra.Command{
	Use:   "seed [termos...]",
	Short: "Popula o banco com os termos padrao (ou os informados)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		terms := service.DefaultSeedTerms
		if len(args) > 0 {
			terms = args
		}
		out := cmd.OutOrStdout()
		return a.svc.Seed(cmd.Context(), terms, func(line string) {
			fmt.Fprintln(out, line)
		})
	},
}
