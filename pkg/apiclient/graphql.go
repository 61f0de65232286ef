package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// GraphQLPath is the GraphQL endpoint, relative to the backend root.
const GraphQLPath = "/graphql"

// GraphQLRequest is the POST body sent to /graphql.
type GraphQLRequest struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

// GraphQLError is one entry of a response's errors array.
type GraphQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
	Locations  []struct {
		Line   int `json:"line"`
		Column int `json:"column"`
	} `json:"locations,omitempty"`
}

// GraphQLErrors is returned when a response carries a non-empty errors
// array. Data, if any, is still decoded.
type GraphQLErrors []GraphQLError

func (e GraphQLErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, ge := range e {
		msgs = append(msgs, ge.Message)
	}
	return "graphql: " + strings.Join(msgs, "; ")
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors GraphQLErrors   `json:"errors"`
}

// GraphQL posts a query with variables and decodes the data field into out.
func (c *Client) GraphQL(ctx context.Context, query string, variables map[string]any, out any) error {
	return c.GraphQLRequest(ctx, GraphQLRequest{Query: query, Variables: variables}, out)
}

// GraphQLRequest is GraphQL with an explicit operation name.
func (c *Client) GraphQLRequest(ctx context.Context, gqlReq GraphQLRequest, out any) error {
	resp, err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   GraphQLPath,
		Root:   true,
		Body:   gqlReq,
	})
	if err != nil {
		return err
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(resp.Body, &gqlResp); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if out != nil && len(gqlResp.Data) > 0 && string(gqlResp.Data) != "null" {
		if err := json.Unmarshal(gqlResp.Data, out); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}

	if len(gqlResp.Errors) > 0 {
		return gqlResp.Errors
	}
	return nil
}
