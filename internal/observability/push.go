package observability

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// PushJob is the Pushgateway job name for report generation runs.
const PushJob = "road_safety_reports"

// Push sends every series in g to the Pushgateway at url, replacing the
// previous push for the same job and instance.
func Push(ctx context.Context, url, instance string, g prometheus.Gatherer) error {
	p := push.New(url, PushJob).Gatherer(g)
	if instance != "" {
		p = p.Grouping("instance", instance)
	}
	if err := p.PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
