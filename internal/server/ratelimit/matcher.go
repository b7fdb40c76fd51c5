package ratelimit

import "strings"

// MatchEndpoint returns the configuration for a request, or nil when the route is unlimited.
// An exact path wins; otherwise the longest configured path ending in "/" that prefixes
// the request path is used.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	var prefix *EndpointConfig
	for i := range configs {
		config := &configs[i]
		if config.Method != method {
			continue
		}
		if config.Path == path {
			return config
		}
		if strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			if prefix == nil || len(config.Path) > len(prefix.Path) {
				prefix = config
			}
		}
	}
	return prefix
}
