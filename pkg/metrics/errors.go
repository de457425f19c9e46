package metrics

import "github.com/shuldan/underc0de-admin/pkg/errors"

var newMetricsCode = errors.WithPrefix("METRICS")

var (
	ErrExporterStart  = newMetricsCode().New("cannot listen on {{.addr}}")
	ErrExporterStop   = newMetricsCode().New("metrics exporter did not stop cleanly")
	ErrTextfileWrite  = newMetricsCode().New("cannot write metrics to {{.path}}")
	ErrRegisterFailed = newMetricsCode().New("cannot register collector {{.name}}")
)
