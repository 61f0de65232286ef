package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/cmsadmin/internal/admin/app"
	"github.com/aussiebroadwan/cmsadmin/internal/admin/ui"
	"github.com/aussiebroadwan/cmsadmin/pkg/apiclient"
	"github.com/aussiebroadwan/cmsadmin/pkg/paginate"
	"github.com/aussiebroadwan/cmsadmin/pkg/theme"
	"github.com/spf13/cobra"
)

// cli carries state shared by every command for one invocation.
type cli struct {
	out    io.Writer
	errOut io.Writer

	// Persistent flags
	configFile  string
	cmsURL      string
	platformURL string
	profile     string
	output      string

	cfg     app.Config
	logger  *slog.Logger
	styles  ui.Styles
	nav     *app.TerminalNavigator
	clients *app.Clients
}

func execute(args []string, out, errOut io.Writer) error {
	c := &cli{out: out, errOut: errOut}
	defer c.close()

	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	return root.Execute()
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "cmsadmin",
		Short: "Administer the CMS and boutique platform",
		Long: `cmsadmin talks to the headless CMS and the boutique platform APIs.

API URLs resolve from --cms-url/--platform-url, then PUBLIC_CMS_API_URL /
CMS_API_URL (and the PLATFORM equivalents), then localhost defaults.
Sessions are kept in the configured store and refreshed automatically.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(c.out, c.styles.Banner(app.BuildVersion, c.cfg.Endpoints()))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "config file (default: ./cmsadmin.yaml or ~/.config/cmsadmin/cmsadmin.yaml)")
	flags.StringVar(&c.cmsURL, "cms-url", "", "CMS API base URL")
	flags.StringVar(&c.platformURL, "platform-url", "", "platform API base URL")
	flags.StringVar(&c.profile, "profile", "", "session profile inside the store")
	flags.StringVarP(&c.output, "output", "o", "table", "output format: table or json")

	root.AddCommand(
		newLoginCmd(c),
		newLogoutCmd(c),
		newWhoamiCmd(c),
		newConfigCmd(c),
		newContentCmd(c),
		newMediaCmd(c),
		newUsersCmd(c),
		newOrdersCmd(c),
		newInventoryCmd(c),
		newThemeCmd(c),
		newDashboardCmd(c),
		newServeCmd(c),
		newGraphQLCmd(c),
	)
	return root
}

// setup loads configuration and applies the persistent flags over it.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := app.LoadConfig(c.configFile)
	if err != nil {
		return err
	}
	if c.cmsURL != "" {
		cfg.CMSURL = c.cmsURL
	}
	if c.platformURL != "" {
		cfg.PlatformURL = c.platformURL
	}
	if c.profile != "" {
		cfg.Store.Profile = c.profile
	}
	if c.output != "table" && c.output != "json" {
		return fmt.Errorf("unknown output format %q", c.output)
	}

	c.cfg = cfg
	c.logger = app.NewLogger(cfg, "cmsadmin", c.errOut)
	c.styles = ui.NewStyles(c.out, theme.Generate(cfg.ThemeSeed, cfg.ThemeName))
	c.nav = app.NewTerminalNavigator(c.errOut, "/"+strings.ReplaceAll(cmd.CommandPath(), " ", "/"))
	return nil
}

// connect opens the session store and builds the clients on first use.
func (c *cli) connect(ctx context.Context) (*app.Clients, error) {
	if c.clients != nil {
		return c.clients, nil
	}

	clients, err := app.NewClients(ctx, c.cfg, c.logger, c.nav)
	if err != nil {
		return nil, err
	}
	c.clients = clients
	return clients, nil
}

func (c *cli) close() {
	if c.clients == nil {
		return
	}
	if err := c.clients.Close(); err != nil && c.logger != nil {
		c.logger.Warn("failed to close session store", "error", err)
	}
}

// ============================================================================
// Output helpers
// ============================================================================

func (c *cli) jsonOutput() bool { return c.output == "json" }

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// load runs fn behind a spinner on stderr.
func load[T any](ctx context.Context, c *cli, label string, fn func(context.Context) (T, error)) (T, error) {
	return ui.Load(ctx, c.errOut, c.styles, label, fn)
}

// printPage renders one page of results as a table, or the whole page
// envelope as JSON.
func printPage[T any](c *cli, page *paginate.Page[T], headers []string, row func(T) []string) error {
	if c.jsonOutput() {
		return c.printJSON(page)
	}

	rows := make([][]string, len(page.Data))
	for i, item := range page.Data {
		rows[i] = row(item)
	}
	fmt.Fprintln(c.out, c.styles.Table(headers, rows))
	fmt.Fprintln(c.out, c.styles.Subtle.Render(pageFooter(page.Page, page.Pages(), page.Total)))
	return nil
}

func pageFooter(current, totalPages, total int) string {
	if totalPages == 0 {
		return "no results"
	}

	nums := paginate.PageNumbers(current, totalPages, 7)
	parts := make([]string, len(nums))
	for i, n := range nums {
		if n == current {
			parts[i] = "[" + strconv.Itoa(n) + "]"
		} else {
			parts[i] = strconv.Itoa(n)
		}
	}

	footer := fmt.Sprintf("page %d of %d (%d total)  %s", current, totalPages, total, strings.Join(parts, " "))
	if paginate.HasNext(current, totalPages) {
		footer += fmt.Sprintf("  next: --page %d", current+1)
	}
	return footer
}

// listFlags are shared by every list command.
type listFlags struct {
	page     int
	pageSize int
	search   string
	sort     string
	order    string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page, "page", 1, "page number")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 20, "results per page")
	cmd.Flags().StringVar(&f.search, "search", "", "free text search")
	cmd.Flags().StringVar(&f.sort, "sort", "", "sort field")
	cmd.Flags().StringVar(&f.order, "order", "", "sort order: asc or desc")
}

func (f *listFlags) params(filters map[string]string) apiclient.ListParams {
	clean := make(map[string]string, len(filters))
	for k, v := range filters {
		if v != "" {
			clean[k] = v
		}
	}
	return apiclient.ListParams{
		Page:     f.page,
		PageSize: f.pageSize,
		Search:   f.search,
		Sort:     f.sort,
		Order:    f.order,
		Filters:  clean,
	}
}

func dateOrDash(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
