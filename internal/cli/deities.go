package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/devotional-service/internal/domain"
)

func deitiesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "deities",
		Short: "Show how many items are classified to each deity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.client(cmd)
			if err != nil {
				return err
			}

			counts, err := client.FetchDeities(cmd.Context())
			if err != nil {
				return err
			}

			return writeDeities(cmd.OutOrStdout(), opts.output, counts)
		},
	}
}

func healthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the API is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.client(cmd)
			if err != nil {
				return err
			}

			if err := client.Health(cmd.Context()); err != nil {
				return err
			}

			if ok, err := encode(cmd.OutOrStdout(), opts.output, map[string]string{"status": "ok"}); ok {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "ok")

			return err
		},
	}
}

type classification struct {
	Deity     string `json:"deity"     yaml:"deity"`
	Name      string `json:"name"      yaml:"name"`
	HindiName string `json:"hindiName" yaml:"hindiName"`
}

// classifyCmd runs the classifier locally; it never contacts the API.
func classifyCmd(opts *options) *cobra.Command {
	var author string

	cmd := &cobra.Command{
		Use:   "classify <title>",
		Short: "Classify a devotional title (and optional author) offline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deity := domain.Classify(args[0], author)
			result := classification{
				Deity:     string(deity),
				Name:      deity.DisplayName(),
				HindiName: deity.HindiName(),
			}

			if ok, err := encode(cmd.OutOrStdout(), opts.output, result); ok {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", result.Deity, result.Name, result.HindiName)

			return err
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "author of the work")

	return cmd
}
