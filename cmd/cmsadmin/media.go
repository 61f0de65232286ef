package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/cmsadmin/pkg/cmssdk"
	"github.com/spf13/cobra"
)

func newMediaCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Manage the media library",
	}
	cmd.AddCommand(newMediaListCmd(c), newMediaUploadCmd(c))
	return cmd
}

func newMediaListCmd(c *cli) *cobra.Command {
	var lf listFlags
	var folder, mimeType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List media files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clients, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}

			params := lf.params(map[string]string{"folder": folder, "mime_type": mimeType})
			page, err := load(cmd.Context(), c, "loading media", func(ctx context.Context) (*cmssdk.Page[cmssdk.Media], error) {
				return clients.CMS.ListMedia(ctx, params)
			})
			if err != nil {
				return err
			}

			return printPage(c, page, []string{"ID", "Filename", "Type", "Size", "Folder", "Uploaded"},
				func(m cmssdk.Media) []string {
					return []string{m.ID, m.Filename, m.MimeType, humanBytes(m.Size), m.Folder, dateOrDash(m.CreatedAt)}
				})
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVar(&folder, "folder", "", "filter by folder")
	cmd.Flags().StringVar(&mimeType, "mime-type", "", "filter by mime type")
	return cmd
}

func newMediaUploadCmd(c *cli) *cobra.Command {
	var folder, alt, caption string

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a file to the media library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			clients, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}

			m, err := load(cmd.Context(), c, "uploading", func(ctx context.Context) (*cmssdk.Media, error) {
				return clients.CMS.UploadMedia(ctx, cmssdk.MediaUpload{
					Filename:    filepath.Base(args[0]),
					ContentType: mime.TypeByExtension(filepath.Ext(args[0])),
					Body:        f,
					Folder:      folder,
					AltText:     alt,
					Caption:     caption,
				})
			})
			if err != nil {
				return err
			}

			if c.jsonOutput() {
				return c.printJSON(m)
			}
			fmt.Fprintf(c.out, "Uploaded %s (%s) as %s\n", m.Filename, humanBytes(m.Size), m.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "target folder")
	cmd.Flags().StringVar(&alt, "alt", "", "alt text")
	cmd.Flags().StringVar(&caption, "caption", "", "caption")
	return cmd
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
