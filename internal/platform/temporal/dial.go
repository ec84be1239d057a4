// Package temporal holds the Temporal client setup shared by the API and worker processes.
package temporal

import (
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	platformobservability "github.com/Apurer/go-gin-shop-api/internal/platform/observability"
)

// Dial connects to Temporal with OpenTelemetry tracing and slog-backed logging.
// component names the tracer, e.g. "temporal-client" or "temporal-worker".
func Dial(address, namespace, component string, instruments *platformobservability.Instruments) (client.Client, error) {
	if instruments == nil {
		instruments = platformobservability.Discard()
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer(component),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  address,
		Namespace: namespace,
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
