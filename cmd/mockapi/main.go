// mockapi is a local stand-in for the gael.cloud APIs and the push
// endpoint, so the collector can be exercised end to end without
// network access or real credentials:
//
//	MOCK_USER=dev MOCK_PASSWORD=dev go run ./cmd/mockapi &
//	PROMETHEUS_URL=http://localhost:8080 PROMETHEUS_USER=dev \
//	  PROMETHEUS_PASSWORD=dev go run ./cmd/collector \
//	  -clima http://localhost:8080/general/public/clima \
//	  -sismos http://localhost:8080/general/public/sismos \
//	  -monedas http://localhost:8080/general/public/monedas
package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/FabianIMV/grafana-chile-data/internal/misc"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	r := newRouter(logger, misc.Getenv("MOCK_USER", "dev"), misc.Getenv("MOCK_PASSWORD", "dev"))

	addr := misc.Getenv("HTTP_ADDR", "localhost:8080")
	log.Printf("mock API listening at http://%s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
