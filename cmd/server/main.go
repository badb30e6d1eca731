package main

import (
	"log"

	_ "issuetracker/docs"
	"issuetracker/internal/config"
	"issuetracker/internal/server"
)

// @title           Issue Tracker API
// @version         1.0
// @description     REST API for creating, listing, updating and deleting issues.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:5001
// @BasePath  /api

// @tag.name Issues
// @tag.description Issue management operations

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
