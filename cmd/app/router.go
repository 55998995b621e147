package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthCheckHandler)
	router.HandlerFunc(http.MethodPost, "/graphql", app.graphqlHandler)
	router.HandlerFunc(http.MethodGet, "/graphql", app.graphqlQueryHandler)
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	return app.recordMetrics(app.recoverPanic(app.logRequest(app.rateLimit(router))))
}
