// Package cloudfn registers soup generation as the GenerateSoup Cloud
// Function.
//
// The function reads these environment variables:
//
//	SOUP_BQ_TABLE  BigQuery table with word lists; embedded data when unset
//	LOG_LEVEL      debug, info, warn or error
package cloudfn

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"

	"cloud.google.com/go/bigquery"
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"crosswarped.com/soup/internal/config"
	"crosswarped.com/soup/internal/ctxlog"
	"crosswarped.com/soup/internal/httpapi"
	"crosswarped.com/soup/pkg/language"
)

// FunctionName is the entry point name of the function.
const FunctionName = "GenerateSoup"

func init() {
	functions.HTTP(FunctionName, GenerateSoup)
}

var (
	once    sync.Once
	handler http.HandlerFunc
	initErr error
)

// GenerateSoup answers with a JSON soup, or text with ?format=text.
func GenerateSoup(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		handler, initErr = newHandler(context.Background(), os.Getenv)
	})
	if initErr != nil {
		http.Error(w, "function not configured", http.StatusInternalServerError)
		return
	}
	handler(w, r)
}

func newHandler(ctx context.Context, getenv func(string) string) (http.HandlerFunc, error) {
	logger := ctxlog.New(getenv("LOG_LEVEL"), "json", os.Stderr)

	var provider language.Provider = language.Embedded()
	if table := getenv("SOUP_BQ_TABLE"); table != "" {
		if err := language.CheckTableRef(table); err != nil {
			return nil, err
		}
		client, err := bigquery.NewClient(ctx, bigquery.DetectProjectID)
		if err != nil {
			logger.Error("Failed to create BigQuery client.", "error", err)
			return nil, fmt.Errorf("bigquery client: %w", err)
		}
		bq, err := language.NewBigQueryProvider(client, table, provider)
		if err != nil {
			return nil, err
		}
		provider = bq
		logger.Info("Reading word lists from BigQuery.", "table", table)
	}

	return httpapi.NewHandler(provider, config.Default(), logger).Generate, nil
}
