package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"codeberg.org/mutker/vitalchart/internal/logger"
	"codeberg.org/mutker/vitalchart/internal/store"
)

type importOptions struct {
	userID    string
	batchSize int
}

// NewImportCommand creates the import command.
func NewImportCommand(root *RootOptions) *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import <payload.json>...",
		Short: "Load payload samples into the sample database",
		Long: `Load the samples of one or more payloads into the sample database.
A sample already stored for the same time, user and metric is replaced.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, root, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.userID, "user", "", "User ID for points without a user_id")
	cmd.Flags().IntVar(&opts.batchSize, "batch-size", store.DefaultBatchSize, "Records per transaction")

	return cmd
}

func runImport(cmd *cobra.Command, root *RootOptions, opts *importOptions, args []string) error {
	repo, err := openStore(root)
	if err != nil {
		return err
	}
	defer repo.Close()

	total := 0
	for _, path := range args {
		p, err := readPayload(cmd.InOrStdin(), path)
		if err != nil {
			return err
		}
		records, err := store.FromPayload(p, opts.userID)
		if err != nil {
			return err
		}
		n, err := store.Import(cmdContext(cmd), repo, records, opts.batchSize)
		total += n
		if err != nil {
			return err
		}
		logger.Info().Str("path", path).Int("records", n).Msg("Payload imported")
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records into %s\n", total, root.Config.Database)
	return err
}
