package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-cadastro/internal/client"
	"pet-cadastro/internal/platform/httpclient"

	"github.com/spf13/cobra"
)

var ErrSubmissionFailed = errors.New("cadastro failed")

func newSubmitCmd() *cobra.Command {
	var (
		server  string
		timeout time.Duration
		values  = make(map[string]*string, len(client.Fields))
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Envía un cadastro al servidor, igual que el formulario web",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := httpclient.NewWithBaseURL(server, timeout)
			if err != nil {
				return err
			}

			fields := make(map[string]string, len(values))
			for name, v := range values {
				fields[name] = *v
			}

			out, err := client.NewFormController(c).Submit(cmd.Context(), fields)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Message)
			if !out.Success() {
				return fmt.Errorf("%w (request_id=%s)", ErrSubmissionFailed, out.RequestID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "http://localhost:3000", "URL base del servidor")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Timeout del request (0 = sin timeout)")
	for _, name := range client.Fields {
		v := new(string)
		values[name] = v
		cmd.Flags().StringVar(v, strings.ReplaceAll(name, "_", "-"), "", "Campo "+name)
	}
	return cmd
}
