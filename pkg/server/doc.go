// Package server exposes the generation pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz      liveness and build version
//	GET  /v1/presets   built-in and configured presets
//	POST /v1/chaos     chaos-game run; body is a pipeline.ChaosOptions
//	POST /v1/ifs       IFS run; body is a pipeline.IFSOptions
//	POST /v1/rule      selection-rule transition graph (?format=dot|svg)
//
// Runs accept ?format=json (default) or ?format=csv. Every run response carries
// X-Run-ID, X-Cache-Decision and X-Cache-Hit headers. Errors are JSON objects of
// the form {"error": {"code": "...", "message": "..."}}.
//
// The server shares one [pipeline.Runner] across requests, so a request that
// differs from an earlier one only in n is answered by extending or truncating
// the cached sequence.
package server
