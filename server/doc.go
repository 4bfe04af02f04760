// Package server exposes the route search over HTTP with Fiber.
//
// Routes:
//
//	POST   /solve      solve a map; JSON {width,height,elevations} or {rows},
//	                   or the plain-text map format for any other content type
//	GET    /runs       list stored runs, newest first (?limit=N)
//	GET    /runs/:id   fetch one run
//	DELETE /runs/:id   delete one run
//	GET    /healthz    liveness probe
//	GET    /metrics    Prometheus metrics
//
// A solve whose grid digest is already stored returns the stored run with
// status 200 and header X-Skiroute-Cache: hit; pass ?refresh=true to force a
// fresh solve. Fresh solves are stored and returned with status 201.
package server
