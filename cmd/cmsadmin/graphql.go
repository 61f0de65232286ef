package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newGraphQLCmd(c *cli) *cobra.Command {
	var vars []string

	cmd := &cobra.Command{
		Use:   "graphql <query|@file|->",
		Short: "Run a query against the CMS GraphQL endpoint",
		Example: `  cmsadmin graphql '{ entries(first: 5) { id title } }'
  cmsadmin graphql @query.graphql --var slug=home --var limit=3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQuery(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			variables, err := parseVars(vars)
			if err != nil {
				return err
			}

			clients, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}

			var data map[string]any
			if err := clients.CMS.GraphQL(cmd.Context(), query, variables, &data); err != nil {
				return err
			}
			return c.printJSON(data)
		},
	}

	cmd.Flags().StringArrayVar(&vars, "var", nil, "variable as name=value; JSON values are decoded")
	return cmd
}

func readQuery(arg string, stdin io.Reader) (string, error) {
	switch {
	case arg == "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read query: %w", err)
		}
		return string(b), nil
	case strings.HasPrefix(arg, "@"):
		b, err := os.ReadFile(arg[1:])
		if err != nil {
			return "", fmt.Errorf("failed to read query: %w", err)
		}
		return string(b), nil
	}
	return arg, nil
}

// parseVars decodes name=value pairs. Values that parse as JSON keep their
// type so numbers and booleans reach the server unquoted.
func parseVars(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		name, raw, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid variable %q, want name=value", p)
		}

		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			v = raw
		}
		out[name] = v
	}
	return out, nil
}
