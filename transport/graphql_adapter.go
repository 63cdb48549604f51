package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Jatinprajapati7869/gitpulse/core"
	goerrors "github.com/goliatone/go-errors"
)

const KindGraphQL = "graphql"

// graphqlPayload is the POST body of every GraphQL exchange. Variables are
// omitted when the request carries none.
type graphqlPayload struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// GraphQLAdapter posts {query, variables} JSON to a fixed endpoint, layered
// on the REST adapter. The query and variables travel in the request
// metadata under "query" and "variables".
type GraphQLAdapter struct {
	Endpoint string
	REST     *RESTAdapter
}

func NewGraphQLAdapter(endpoint string, client HTTPDoer) *GraphQLAdapter {
	return &GraphQLAdapter{
		Endpoint: strings.TrimSpace(endpoint),
		REST:     NewRESTAdapter(client),
	}
}

func (*GraphQLAdapter) Kind() string {
	return KindGraphQL
}

func (a *GraphQLAdapter) Do(ctx context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	if a == nil || a.REST == nil {
		return core.TransportResponse{}, transportFailure(
			nil,
			"transport: graphql adapter requires a rest adapter",
			goerrors.CategoryInternal,
			http.StatusInternalServerError,
			map[string]any{"adapter": KindGraphQL},
		)
	}

	endpoint := strings.TrimSpace(req.URL)
	if endpoint == "" {
		endpoint = a.Endpoint
	}
	if endpoint == "" {
		return core.TransportResponse{}, transportFailure(
			nil,
			"transport: graphql endpoint is required",
			goerrors.CategoryBadInput,
			http.StatusBadRequest,
			map[string]any{"adapter": KindGraphQL},
		)
	}

	payload, err := payloadFromMetadata(req.Metadata)
	if err != nil {
		return core.TransportResponse{}, err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return core.TransportResponse{}, transportFailure(
			err,
			"transport: marshal graphql payload",
			goerrors.CategoryBadInput,
			http.StatusBadRequest,
			map[string]any{"adapter": KindGraphQL, "endpoint": endpoint},
		)
	}

	headers := map[string]string{"Content-Type": "application/json"}
	for key, value := range req.Headers {
		headers[key] = value
	}

	response, err := a.REST.Do(ctx, core.TransportRequest{
		Method:               http.MethodPost,
		URL:                  endpoint,
		Headers:              headers,
		Body:                 body,
		Metadata:             req.Metadata,
		Timeout:              req.Timeout,
		MaxResponseBodyBytes: req.MaxResponseBodyBytes,
	})
	if err != nil {
		return core.TransportResponse{}, transportFailure(
			err,
			"transport: graphql request failed",
			goerrors.CategoryExternal,
			http.StatusBadGateway,
			map[string]any{"adapter": KindGraphQL, "endpoint": endpoint},
		)
	}
	if response.Metadata == nil {
		response.Metadata = map[string]any{}
	}
	response.Metadata["kind"] = KindGraphQL
	return response, nil
}

func payloadFromMetadata(metadata map[string]any) (graphqlPayload, error) {
	query, _ := metadata["query"].(string)
	query = strings.TrimSpace(query)
	if query == "" {
		return graphqlPayload{}, transportFailure(
			nil,
			"transport: graphql query is required",
			goerrors.CategoryBadInput,
			http.StatusBadRequest,
			map[string]any{"adapter": KindGraphQL},
		)
	}
	payload := graphqlPayload{Query: query}
	if variables, ok := metadata["variables"].(map[string]any); ok && len(variables) > 0 {
		payload.Variables = make(map[string]any, len(variables))
		for key, value := range variables {
			payload.Variables[key] = value
		}
	}
	return payload, nil
}

var _ core.TransportAdapter = (*GraphQLAdapter)(nil)
