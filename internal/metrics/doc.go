// Package metrics records site rebuild metrics.
//
// Components receive a Recorder and default to NoopRecorder, so metrics can
// be switched on without nil checks at call sites:
//
//	w := watch.New(cfgPath, watch.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// The watch command serves the registry through HTTPHandler when started
// with --metrics-addr.
package metrics
