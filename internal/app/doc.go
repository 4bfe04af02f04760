// Package app wires configuration, logging, storage and the solver into the
// skiroute command: either a one-shot solve of a map file or the HTTP
// service.
package app
