package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sushihentaime/bloggraph/internal/graph"
)

// graphqlRequest accepts either GraphQL query text or the structured single-field form.
type graphqlRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`

	graph.StructuredRequest
}

func (in *graphqlRequest) request() (*graph.Request, error) {
	switch {
	case in.Query != "" && in.Field != "":
		return nil, errors.New("request must contain either a query or a field, not both")
	case in.Query != "":
		return graph.ParseDocument(in.Query, in.OperationName, in.Variables)
	case in.Field != "":
		return in.StructuredRequest.Request()
	default:
		return nil, errors.New("request must contain a query or a field")
	}
}

func (app *application) graphqlHandler(w http.ResponseWriter, r *http.Request) {
	var input graphqlRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	req, err := input.request()
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	app.execute(w, r, req)
}

// graphqlQueryHandler serves GET /graphql?query=...&variables=... for queries only.
func (app *application) graphqlQueryHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	input := graphqlRequest{
		Query:         qs.Get("query"),
		OperationName: qs.Get("operationName"),
	}

	if vars := qs.Get("variables"); vars != "" {
		err := json.Unmarshal([]byte(vars), &input.Variables)
		if err != nil {
			app.badRequestErrorResponse(w, r, errors.New("variables must be a JSON object"))
			return
		}
	}

	if input.Query == "" {
		app.badRequestErrorResponse(w, r, errors.New("query parameter must be provided"))
		return
	}

	req, err := input.request()
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	if req.Operation != graph.OperationQuery {
		app.badRequestErrorResponse(w, r, errors.New("mutations must be sent with POST"))
		return
	}

	app.execute(w, r, req)
}

func (app *application) execute(w http.ResponseWriter, r *http.Request, req *graph.Request) {
	res := app.schema.ExecuteRequest(r.Context(), req)

	for _, e := range res.Errors {
		if e.Kind == graph.KindStorageFailure {
			app.logger.Error("storage failure", slog.String("error", e.Error()), slog.String("uri", r.URL.RequestURI()))
		}
	}

	env := envelope{"data": res.Data}
	if len(res.Errors) > 0 {
		env["errors"] = res.Errors
	}

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
