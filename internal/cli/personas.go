package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"desbuguei/internal/domain"
)

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "Lista as personas do assistente de voz",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNOME\tARQUETIPO\tVOZ\tVELOCIDADE")
		for _, p := range domain.Personas() {
			id := p.ID
			if id == domain.DefaultPersonaID {
				id += " *"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1fx\n", id, p.Name, p.Archetype, p.VoiceName, p.Speed)
		}
		return w.Flush()
	},
}
