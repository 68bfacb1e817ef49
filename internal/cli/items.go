package cli

import (
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/devotional-service/internal/domain"
)

// filterFlags are the query filters accepted by the listing commands.
type filterFlags struct {
	deity    string
	category string
	search   string
	limit    string
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.deity, "deity", "", "only items classified to this deity, e.g. Shiv")
	flags.StringVar(&f.category, "category", "", `only items in this category ("uncategorized" for items without one)`)
	flags.StringVar(&f.search, "search", "", "substring of title, author or content")
	flags.StringVar(&f.limit, "limit", "", "maximum number of items")
}

func (f *filterFlags) filters() domain.QueryFilters {
	return domain.NewQueryFilters(f.deity, f.category, f.search, f.limit)
}

func itemsCmd(opts *options) *cobra.Command {
	var filters filterFlags

	cmd := &cobra.Command{
		Use:   "items",
		Short: "List items of every collection (aarti, then chalisa, then strotam)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.client(cmd)
			if err != nil {
				return err
			}

			items, err := client.FetchAllItems(cmd.Context(), filters.filters())
			if err != nil {
				return err
			}

			return writeItems(cmd.OutOrStdout(), opts.output, items)
		},
	}

	filters.bind(cmd)

	return cmd
}

func collectionCmd(opts *options) *cobra.Command {
	var filters filterFlags

	cmd := &cobra.Command{
		Use:       "collection <aarti|chalisa|strotam>",
		Short:     "List the items of one collection",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.CollectionAarti), string(domain.CollectionChalisa), string(domain.CollectionStrotam)},
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := domain.ParseCollectionName(args[0])
			if err != nil {
				return err
			}

			client, err := opts.client(cmd)
			if err != nil {
				return err
			}

			items, err := client.FetchItemsByType(cmd.Context(), name, filters.filters())
			if err != nil {
				return err
			}

			return writeItems(cmd.OutOrStdout(), opts.output, items)
		},
	}

	filters.bind(cmd)

	return cmd
}

func collectionsCmd(opts *options) *cobra.Command {
	var filters filterFlags

	cmd := &cobra.Command{
		Use:   "collections",
		Short: "List all three collections, each filtered independently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.client(cmd)
			if err != nil {
				return err
			}

			collections, err := client.FetchCollections(cmd.Context(), filters.filters())
			if err != nil {
				return err
			}

			return writeCollections(cmd.OutOrStdout(), opts.output, collections)
		},
	}

	filters.bind(cmd)

	return cmd
}
