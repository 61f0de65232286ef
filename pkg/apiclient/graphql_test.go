package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/cmsadmin/pkg/apiclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphQL(t *testing.T) {
	t.Parallel()

	responses := map[string]string{
		"ok":        `{"data":{"entries":[{"id":"1"},{"id":"2"}]}}`,
		"partial":   `{"data":{"entries":[]},"errors":[{"message":"locale not found","path":["entries"]}]}`,
		"malformed": `{"data":`,
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/graphql", r.URL.Path)

		var req apiclient.GraphQLRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.OperationName == "" {
			_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"echo": req.Variables}})
			return
		}
		_, _ = w.Write([]byte(responses[req.OperationName]))
	}))
	t.Cleanup(srv.Close)

	c := apiclient.New(srv.URL)
	ctx := context.Background()

	type entries struct {
		Entries []struct {
			ID string `json:"id"`
		} `json:"entries"`
	}

	t.Run("data", func(t *testing.T) {
		var out entries
		err := c.GraphQLRequest(ctx, apiclient.GraphQLRequest{
			Query:         "query ok { entries { id } }",
			OperationName: "ok",
		}, &out)
		require.NoError(t, err)
		require.Len(t, out.Entries, 2)
	})

	t.Run("errors", func(t *testing.T) {
		var out entries
		err := c.GraphQLRequest(ctx, apiclient.GraphQLRequest{Query: "q", OperationName: "partial"}, &out)

		var gqlErrs apiclient.GraphQLErrors
		require.ErrorAs(t, err, &gqlErrs)
		require.Len(t, gqlErrs, 1)
		require.Equal(t, "locale not found", gqlErrs[0].Message)
		require.Contains(t, err.Error(), "locale not found")
		require.NotNil(t, out.Entries)
	})

	t.Run("malformed", func(t *testing.T) {
		err := c.GraphQLRequest(ctx, apiclient.GraphQLRequest{Query: "q", OperationName: "malformed"}, nil)
		require.ErrorIs(t, err, apiclient.ErrMalformedResponse)
	})

	t.Run("variables are sent", func(t *testing.T) {
		var out struct {
			Echo map[string]any `json:"echo"`
		}
		err := c.GraphQL(ctx, "query($id: ID!) { entry(id: $id) { id } }", map[string]any{"id": "1"}, &out)
		require.NoError(t, err)
		require.Equal(t, "1", out.Echo["id"])
	})
}
