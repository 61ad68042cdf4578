package main

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// compare lists the breaking differences between two documents: removed
// paths, operations and response codes.
func compare(base, revision parsedSpec) []string {
	var issues []string

	for path, baseOps := range base.Paths {
		revOps, ok := revision.Paths[path]
		if !ok {
			issues = append(issues, fmt.Sprintf("removed path: %s", path))
			continue
		}

		for method, baseOp := range baseOps {
			revOp, ok := revOps[method]
			if !ok {
				issues = append(issues, fmt.Sprintf("removed operation: %s %s", strings.ToUpper(method), path))
				continue
			}

			for responseCode := range baseOp.Responses {
				if _, ok := revOp.Responses[responseCode]; !ok {
					issues = append(issues, fmt.Sprintf(
						"removed response code: %s %s -> %s",
						strings.ToUpper(method), path, strings.ToUpper(responseCode),
					))
				}
			}
		}
	}

	sort.Strings(issues)
	return issues
}

// undocumentedPrefixes are served under the base path but are not part of the JSON API.
var undocumentedPrefixes = []string{"/swagger", "/metrics"}

var routeParam = regexp.MustCompile(`:([A-Za-z0-9_]+)(<[^>]*>)?`)

// openAPIPath turns a Fiber route path like /user/:id<int> into /user/{id}.
func openAPIPath(path string) string {
	return routeParam.ReplaceAllString(path, "{$1}")
}

// checkRoutes reports routes registered under spec.BasePath with no documented
// operation, and documented operations no route serves.
func checkRoutes(routes []fiber.Route, spec parsedSpec) []string {
	served := make(map[string]map[string]struct{})
	for _, r := range routes {
		method := strings.ToLower(r.Method)
		if method == "head" || method == "options" || method == "connect" || method == "trace" {
			continue
		}
		if !strings.HasPrefix(r.Path, spec.BasePath+"/") {
			continue
		}
		path := openAPIPath(strings.TrimPrefix(r.Path, spec.BasePath))
		if isUndocumented(path) {
			continue
		}
		if served[path] == nil {
			served[path] = make(map[string]struct{})
		}
		served[path][method] = struct{}{}
	}

	var issues []string
	for path, methods := range served {
		for method := range methods {
			if _, ok := spec.Paths[path][method]; !ok {
				issues = append(issues, fmt.Sprintf("undocumented route: %s %s", strings.ToUpper(method), path))
			}
		}
	}
	for path, ops := range spec.Paths {
		for method := range ops {
			if _, ok := served[path][method]; !ok {
				issues = append(issues, fmt.Sprintf("documented but not served: %s %s", strings.ToUpper(method), path))
			}
		}
	}

	sort.Strings(issues)
	return issues
}

func isUndocumented(path string) bool {
	for _, p := range undocumentedPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
