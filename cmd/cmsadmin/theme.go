package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aussiebroadwan/cmsadmin/pkg/cmssdk"
	"github.com/aussiebroadwan/cmsadmin/pkg/theme"
	"github.com/spf13/cobra"
)

func newThemeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Generate palettes and manage CMS themes",
	}
	cmd.AddCommand(newThemeGenerateCmd(c), newThemeCSSCmd(c), newThemeListCmd(c), newThemePushCmd(c))
	return cmd
}

func newThemeGenerateCmd(c *cli) *cobra.Command {
	var name, format string

	cmd := &cobra.Command{
		Use:   "generate <seed>",
		Short: "Derive light and dark palettes from a seed colour",
		Example: `  cmsadmin theme generate "#6d28d9" --name violet
  cmsadmin theme generate 0ea5e9 --format yaml > ocean.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, ok := theme.NormalizeHex(args[0])
			if !ok {
				return fmt.Errorf("invalid seed colour %q", args[0])
			}
			t := theme.Generate(seed, name)

			switch {
			case format == "json" || c.jsonOutput():
				return c.printJSON(t)
			case format == "css":
				fmt.Fprint(c.out, theme.ExportCSS(t))
			case format == "yaml":
				out, err := theme.ExportYAML(t)
				if err != nil {
					return err
				}
				_, err = c.out.Write(out)
				return err
			default:
				return fmt.Errorf("unknown format %q", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "custom", "theme name")
	cmd.Flags().StringVar(&format, "format", "css", "output format: css, yaml or json")
	return cmd
}

func newThemeCSSCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "css [seed]",
		Short: "Print the stylesheet for a seed, or for the configured theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, name := c.cfg.ThemeSeed, c.cfg.ThemeName
			if len(args) == 1 {
				seed, name = args[0], "custom"
			}

			normalized, ok := theme.NormalizeHex(seed)
			if !ok {
				return fmt.Errorf("invalid seed colour %q", seed)
			}
			fmt.Fprint(c.out, theme.ExportCSS(theme.Generate(normalized, name)))
			return nil
		},
	}
}

func newThemeListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List themes stored in the CMS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clients, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}

			themes, err := load(cmd.Context(), c, "loading themes", func(ctx context.Context) ([]cmssdk.Theme, error) {
				return clients.CMS.ListThemes(ctx)
			})
			if err != nil {
				return err
			}

			if c.jsonOutput() {
				return c.printJSON(themes)
			}
			rows := make([][]string, len(themes))
			for i, t := range themes {
				active := ""
				if t.IsActive {
					active = c.styles.Accent.Render("active")
				}
				rows[i] = []string{t.ID, t.Name, orDash(t.Seed), active, dateOrDash(t.UpdatedAt)}
			}
			fmt.Fprintln(c.out, c.styles.Table([]string{"ID", "Name", "Seed", "", "Updated"}, rows))
			return nil
		},
	}
}

func newThemePushCmd(c *cli) *cobra.Command {
	var name, file string
	var activate bool

	cmd := &cobra.Command{
		Use:   "push [seed]",
		Short: "Create a CMS theme from a seed colour or a YAML export",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := themeFromArgs(args, file, name)
			if err != nil {
				return err
			}

			clients, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}

			created, err := load(cmd.Context(), c, "saving theme", func(ctx context.Context) (*cmssdk.Theme, error) {
				created, err := clients.CMS.CreateTheme(ctx, cmssdk.ThemeInputFrom(t))
				if err != nil || !activate {
					return created, err
				}
				return clients.CMS.ActivateTheme(ctx, created.ID)
			})
			if err != nil {
				return err
			}

			if c.jsonOutput() {
				return c.printJSON(created)
			}
			state := ""
			if created.IsActive {
				state = " and activated it"
			}
			fmt.Fprintf(c.out, "Created theme %s (%s)%s\n", created.Name, created.ID, state)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "theme name (defaults to the file's name or \"custom\")")
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML theme produced by `theme generate --format yaml`")
	cmd.Flags().BoolVar(&activate, "activate", false, "make the theme active")
	return cmd
}

func themeFromArgs(args []string, file, name string) (theme.Theme, error) {
	switch {
	case file != "" && len(args) > 0:
		return theme.Theme{}, errors.New("pass either a seed or --file, not both")
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return theme.Theme{}, fmt.Errorf("failed to read %s: %w", file, err)
		}
		t, err := theme.ImportYAML(data)
		if err != nil {
			return theme.Theme{}, err
		}
		if name != "" {
			t.Name = name
		}
		return t, nil
	case len(args) == 1:
		seed, ok := theme.NormalizeHex(args[0])
		if !ok {
			return theme.Theme{}, fmt.Errorf("invalid seed colour %q", args[0])
		}
		if name == "" {
			name = "custom"
		}
		return theme.Generate(seed, name), nil
	}
	return theme.Theme{}, errors.New("a seed colour or --file is required")
}
