// Command soupfunc hosts the GenerateSoup function locally.
package main

import (
	"log/slog"
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"

	_ "crosswarped.com/soup/pkg/cloudfn"
)

func main() {
	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	slog.Info("Starting function host.", "port", port)
	if err := funcframework.Start(port); err != nil {
		slog.Error("Function host stopped.", "error", err)
		os.Exit(1)
	}
}
