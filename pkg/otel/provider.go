package otel

import (
	"os"
)

const instrumentationName = "github.com/adrianliechti/nimbus"

var EnableTelemetry = os.Getenv("TELEMETRY") != ""

type Observable interface {
	otelSetup()
}
