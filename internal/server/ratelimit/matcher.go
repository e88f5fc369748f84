package ratelimit

import (
	"strings"
)

// unlimited endpoints are never throttled, keyed by "METHOD path"
var unlimited = map[string]bool{
	"GET /health":  true,
	"HEAD /health": true,
}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// HEAD requests use the GET limits. Returns nil if nothing matches.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if unlimited[method+" "+path] {
		return &EndpointConfig{Path: path, Method: method}
	}
	if method == "HEAD" {
		method = "GET"
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}

	return nil
}
