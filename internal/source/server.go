package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"capnarrative/internal/model"
	"capnarrative/pkg/logging"

	"github.com/hashicorp/go-retryablehttp"
)

const fhirJSON = "application/fhir+json"

// FromServer fetches the statement a FHIR server publishes at {baseURL}/metadata.
// Transient failures are retried up to opts.RetryMax times.
func FromServer(ctx context.Context, baseURL string, opts Options) (*model.CapabilityStatement, error) {
	metadataURL := strings.TrimRight(baseURL, "/") + "/metadata"

	client := retryablehttp.NewClient()
	client.RetryMax = opts.RetryMax
	if opts.RetryWaitMin > 0 {
		client.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		client.RetryWaitMax = opts.RetryWaitMax
	}
	if opts.Timeout > 0 {
		client.HTTPClient.Timeout = opts.Timeout
	}
	client.Logger = retryLogger{}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, metadataURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", metadataURL, err)
	}
	req.Header.Set("Accept", fhirJSON)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", metadataURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", metadataURL, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", metadataURL, err)
	}
	cs, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", metadataURL, err)
	}
	logging.Info("Source", "Fetched %s from %s", cs.Present(), metadataURL)
	return cs, nil
}

// retryLogger routes retryablehttp's leveled logging into pkg/logging.
type retryLogger struct{}

func (retryLogger) Error(msg string, keysAndValues ...interface{}) {
	logging.Error("HTTP", nil, "%s %v", msg, keysAndValues)
}

func (retryLogger) Info(msg string, keysAndValues ...interface{}) {
	logging.Debug("HTTP", "%s %v", msg, keysAndValues)
}

func (retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	logging.Debug("HTTP", "%s %v", msg, keysAndValues)
}

func (retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	logging.Warn("HTTP", "%s %v", msg, keysAndValues)
}
