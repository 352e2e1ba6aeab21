// Package http implements the REST transport of the recipe-box API.
//
// It wires chi routes to the services, resolves the caller from the
// Authorization header, maps service and store errors to status codes and
// handles request tracing and access logging before requests reach the
// service layer.
package http
