package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aussiebroadwan/cmsadmin/internal/admin/ui"
	"github.com/aussiebroadwan/cmsadmin/pkg/cmssdk"
	"github.com/spf13/cobra"
)

func newContentCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Browse content entries",
	}
	cmd.AddCommand(newContentListCmd(c), newContentGetCmd(c), newContentPublishCmd(c))
	return cmd
}

func newContentListCmd(c *cli) *cobra.Command {
	var lf listFlags
	var contentType, status, locale string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List content entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clients, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}

			params := lf.params(map[string]string{
				"content_type": contentType,
				"status":       status,
				"locale":       locale,
			})
			page, err := load(cmd.Context(), c, "loading content", func(ctx context.Context) (*cmssdk.Page[cmssdk.ContentEntry], error) {
				return clients.CMS.ListContent(ctx, params)
			})
			if err != nil {
				return err
			}

			return printPage(c, page, []string{"ID", "Title", "Slug", "Locale", "Status", "Version", "Updated"},
				func(e cmssdk.ContentEntry) []string {
					return []string{e.ID, e.Title, e.Slug, e.Locale, e.Status, strconv.Itoa(e.Version), dateOrDash(e.UpdatedAt)}
				})
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVar(&contentType, "type", "", "filter by content type id")
	cmd.Flags().StringVar(&status, "status", "", "filter by status: draft, published or archived")
	cmd.Flags().StringVar(&locale, "locale", "", "filter by locale code")
	return cmd
}

func newContentGetCmd(c *cli) *cobra.Command {
	var typeSlug, locale string
	var width int

	cmd := &cobra.Command{
		Use:   "get <id|slug>",
		Short: "Show one entry and render its body",
		Long: `Show one entry by id. With --type the argument is treated as a slug
inside that content type, optionally narrowed by --locale.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}

			entry, err := load(cmd.Context(), c, "loading entry", func(ctx context.Context) (*cmssdk.ContentEntry, error) {
				if typeSlug != "" {
					return clients.CMS.GetContentBySlug(ctx, typeSlug, args[0], locale)
				}
				return clients.CMS.GetContent(ctx, args[0])
			})
			if err != nil {
				return err
			}

			if c.jsonOutput() {
				return c.printJSON(entry)
			}

			published := "-"
			if entry.PublishedAt != nil {
				published = dateOrDash(*entry.PublishedAt)
			}
			fmt.Fprintln(c.out, c.styles.Title.Render(entry.Title))
			fmt.Fprintln(c.out, c.styles.KeyValues([][2]string{
				{"id", entry.ID},
				{"slug", entry.Slug},
				{"locale", entry.Locale},
				{"status", entry.Status},
				{"version", strconv.Itoa(entry.Version)},
				{"published", published},
				{"updated", dateOrDash(entry.UpdatedAt)},
			}))

			if body, ok := ui.MarkdownField(entry.Data); ok {
				rendered, err := ui.RenderMarkdown(c.out, body, width)
				if err != nil {
					return err
				}
				fmt.Fprint(c.out, rendered)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&typeSlug, "type", "", "content type slug; treats the argument as an entry slug")
	cmd.Flags().StringVar(&locale, "locale", "", "locale code for slug lookups")
	cmd.Flags().IntVar(&width, "width", 80, "wrap width for the rendered body")
	return cmd
}

func newContentPublishCmd(c *cli) *cobra.Command {
	var unpublish bool

	cmd := &cobra.Command{
		Use:   "publish <id>",
		Short: "Publish or unpublish an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}

			var entry *cmssdk.ContentEntry
			if unpublish {
				entry, err = clients.CMS.UnpublishContent(cmd.Context(), args[0])
			} else {
				entry, err = clients.CMS.PublishContent(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}

			if c.jsonOutput() {
				return c.printJSON(entry)
			}
			fmt.Fprintf(c.out, "%s is now %s\n", entry.Title, c.styles.Accent.Render(entry.Status))
			return nil
		},
	}

	cmd.Flags().BoolVar(&unpublish, "unpublish", false, "revert the entry to draft")
	return cmd
}
