package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd arma el CLI `cadastro` (submit, migrate).
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cadastro",
		Short:         "Herramientas del cadastro de donos y mascotas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newSubmitCmd())
	cmd.AddCommand(newMigrateCmd())
	return cmd
}
