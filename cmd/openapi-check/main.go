// Package main checks the published OpenAPI document against a previous
// revision and against the routes the server actually registers.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"barrique/docs"
	"barrique/internal/config"
	"barrique/internal/server"

	"github.com/gofiber/fiber/v2"
)

func main() {
	basePath := flag.String("base", "", "base OpenAPI swagger.yaml path")
	revisionPath := flag.String("revision", "", "revision OpenAPI swagger.yaml path (defaults to the embedded document)")
	routes := flag.Bool("routes", false, "check the embedded document against the server's routes")
	flag.Parse()

	if !*routes && strings.TrimSpace(*basePath) == "" {
		fmt.Fprintln(os.Stderr, "usage: openapi-check -base <path> [-revision <path>] | openapi-check -routes")
		os.Exit(2)
	}

	revisionSpec, err := loadRevision(*revisionPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load revision spec: %v\n", err)
		os.Exit(1)
	}

	var issues []string
	if *routes {
		registered, err := serverRoutes()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to build server routes: %v\n", err)
			os.Exit(1)
		}
		issues = append(issues, checkRoutes(registered, revisionSpec)...)
	}
	if strings.TrimSpace(*basePath) != "" {
		baseSpec, err := loadSpecFile(*basePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load base spec: %v\n", err)
			os.Exit(1)
		}
		issues = append(issues, compare(baseSpec, revisionSpec)...)
	}

	if len(issues) > 0 {
		fmt.Fprintln(os.Stderr, "openapi check failed:")
		for _, issue := range issues {
			fmt.Fprintf(os.Stderr, "- %s\n", issue)
		}
		os.Exit(1)
	}

	fmt.Println("openapi check passed")
}

func loadRevision(path string) (parsedSpec, error) {
	if strings.TrimSpace(path) == "" {
		return parseSpec(docs.YAML())
	}
	return loadSpecFile(path)
}

// serverRoutes builds the application without connecting to anything and
// returns its handler routes.
func serverRoutes() ([]fiber.Route, error) {
	cfg := &config.Config{
		Env:       "test",
		Port:      "0",
		JWTSecret: "openapi-check-route-listing-only-secret",
		JWTIssuer: "barrique-api",
	}
	srv, err := server.NewServerWithDeps(cfg, nil, nil)
	if err != nil {
		return nil, err
	}
	return srv.NewApp().GetRoutes(true), nil
}
