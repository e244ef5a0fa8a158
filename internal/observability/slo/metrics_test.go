package slo

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	metric := &io_prometheus_client.Metric{}
	if err := g.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return metric.GetGauge().GetValue()
}

func TestTracker_RecordTick(t *testing.T) {
	SLOTickSuccessRatio.Set(0)

	tracker := &Tracker{}
	tracker.RecordTick(true)
	tracker.RecordTick(true)
	tracker.RecordTick(false)
	tracker.RecordTick(true)

	got := gaugeValue(t, SLOTickSuccessRatio)
	if got != 0.75 {
		t.Errorf("success ratio = %v, want 0.75", got)
	}
}

func TestTracker_AllFailures(t *testing.T) {
	SLOTickSuccessRatio.Set(1)

	tracker := &Tracker{}
	tracker.RecordTick(false)
	tracker.RecordTick(false)

	if got := gaugeValue(t, SLOTickSuccessRatio); got != 0 {
		t.Errorf("success ratio = %v, want 0", got)
	}
}

func TestTracker_ConcurrentRecording(t *testing.T) {
	tracker := &Tracker{}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tracker.RecordTick(true)
			}
		}()
	}
	wg.Wait()

	if got := gaugeValue(t, SLOTickSuccessRatio); got != 1.0 {
		t.Errorf("success ratio = %v, want 1.0 after all-success run", got)
	}
}

func TestObserveSnapshotAge(t *testing.T) {
	SLOSnapshotAgeSeconds.Set(0)

	ObserveSnapshotAge(123.5)

	if got := gaugeValue(t, SLOSnapshotAgeSeconds); got != 123.5 {
		t.Errorf("snapshot age = %v, want 123.5", got)
	}
}

func TestMetricsAreRegistered(t *testing.T) {
	metrics := []prometheus.Collector{
		SLOTickSuccessRatio,
		SLOSnapshotAgeSeconds,
	}

	for _, metric := range metrics {
		desc := make(chan *prometheus.Desc, 1)
		metric.Describe(desc)
		select {
		case d := <-desc:
			if d == nil {
				t.Error("metric descriptor is nil")
			}
		default:
			t.Error("no descriptor received")
		}
	}
}

func TestSLOTargetsAreReasonable(t *testing.T) {
	if TickSuccessSLO <= 0.9 || TickSuccessSLO > 1.0 {
		t.Errorf("TickSuccessSLO = %v, should be between 0.9 and 1.0", TickSuccessSLO)
	}
	if FreshnessSLO <= 0 || FreshnessSLO > 3600 {
		t.Errorf("FreshnessSLO = %v, should be between 0 and one hour", FreshnessSLO)
	}
}
