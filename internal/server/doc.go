// Package server runs the HTTP transport of the recipe-box API.
//
// It owns the listener lifecycle: startup, signal handling and graceful
// shutdown.
package server
