package metrics

import (
	"errors"
	"sync"
	"testing"
)

func TestCounter(t *testing.T) {
	t.Run("without labels", func(t *testing.T) {
		r := NewRegistry()
		c := r.NewCounter("test_counter", "A test counter")

		_ = c.Inc()
		_ = c.Inc()
		_ = c.Add(3)

		samples := c.Collect()
		if len(samples) != 1 {
			t.Fatalf("expected 1 sample, got %d", len(samples))
		}
		if samples[0].Value != 5 {
			t.Errorf("expected value 5, got %f", samples[0].Value)
		}
	})

	t.Run("with labels", func(t *testing.T) {
		r := NewRegistry()
		c := r.NewCounter("dispatch_total", "Dispatches", "protocol", "outcome")

		vec, err := c.WithLabels("http", "ok")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_ = vec.Inc()
		vec, _ = c.WithLabels("http", "ok")
		_ = vec.Inc()
		vec, _ = c.WithLabels("mqtt", "error")
		_ = vec.Add(5)

		samples := c.Collect()
		if len(samples) != 2 {
			t.Fatalf("expected 2 samples, got %d", len(samples))
		}

		found := make(map[string]float64)
		for _, s := range samples {
			found[s.Labels["protocol"]+"_"+s.Labels["outcome"]] = s.Value
		}
		if found["http_ok"] != 2 {
			t.Errorf("expected http_ok=2, got %f", found["http_ok"])
		}
		if found["mqtt_error"] != 5 {
			t.Errorf("expected mqtt_error=5, got %f", found["mqtt_error"])
		}
	})

	t.Run("wrong label count returns error", func(t *testing.T) {
		r := NewRegistry()
		c := r.NewCounter("test", "test", "label1", "label2")
		if _, err := c.WithLabels("only_one"); !errors.Is(err, ErrLabelCountMismatch) {
			t.Errorf("expected ErrLabelCountMismatch, got %v", err)
		}
	})

	t.Run("negative add returns error", func(t *testing.T) {
		r := NewRegistry()
		c := r.NewCounter("test", "test")
		if err := c.Add(-1); !errors.Is(err, ErrNegativeCounterValue) {
			t.Errorf("expected ErrNegativeCounterValue, got %v", err)
		}
	})
}

func TestGauge(t *testing.T) {
	t.Run("without labels", func(t *testing.T) {
		r := NewRegistry()
		g := r.NewGauge("test_gauge", "A test gauge")

		_ = g.Set(10)
		if samples := g.Collect(); len(samples) != 1 || samples[0].Value != 10 {
			t.Errorf("expected value 10")
		}

		_ = g.Inc()
		if samples := g.Collect(); samples[0].Value != 11 {
			t.Errorf("expected value 11, got %f", samples[0].Value)
		}

		_ = g.Dec()
		_ = g.Dec()
		if samples := g.Collect(); samples[0].Value != 9 {
			t.Errorf("expected value 9, got %f", samples[0].Value)
		}

		_ = g.AddValue(-5)
		if samples := g.Collect(); samples[0].Value != 4 {
			t.Errorf("expected value 4, got %f", samples[0].Value)
		}
	})

	t.Run("with labels", func(t *testing.T) {
		r := NewRegistry()
		g := r.NewGauge("loaded", "Loaded items", "kind")

		vec, err := g.WithLabels("fixture")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		vec.Set(7)
		vec.Inc()
		vec.Dec()
		vec.Add(3)

		samples := g.Collect()
		if len(samples) != 1 {
			t.Fatalf("expected 1 sample, got %d", len(samples))
		}
		if samples[0].Value != 10 {
			t.Errorf("expected value 10, got %f", samples[0].Value)
		}
	})
}

func TestRegistry(t *testing.T) {
	t.Run("collects all metrics", func(t *testing.T) {
		r := NewRegistry()
		c := r.NewCounter("c", "counter")
		g := r.NewGauge("g", "gauge")

		_ = c.Inc()
		_ = g.Set(2)

		samples := r.Collect()
		if len(samples) != 2 {
			t.Fatalf("expected 2 samples, got %d", len(samples))
		}
	})

	t.Run("panics on duplicate name", func(t *testing.T) {
		r := NewRegistry()
		r.NewCounter("same", "first")

		defer func() {
			if recover() == nil {
				t.Error("expected panic on duplicate metric name")
			}
		}()
		r.NewGauge("same", "second")
	})
}

func TestCollect_Deterministic(t *testing.T) {
	r := NewRegistry()
	c := r.NewCounter("c", "counter", "protocol")
	for _, p := range []string{"mqtt", "http", "grpc"} {
		vec, _ := c.WithLabels(p)
		_ = vec.Inc()
	}

	first := c.Collect()
	for i := 0; i < 10; i++ {
		again := c.Collect()
		for j := range first {
			if first[j].Labels["protocol"] != again[j].Labels["protocol"] {
				t.Fatal("expected stable sample order across collections")
			}
		}
	}
	if first[0].Labels["protocol"] != "grpc" {
		t.Errorf("expected label-sorted order, got %v first", first[0].Labels)
	}
}

func TestCounter_Concurrent(t *testing.T) {
	r := NewRegistry()
	c := r.NewCounter("concurrent", "test", "worker")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			vec, err := c.WithLabels("shared")
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			for j := 0; j < 100; j++ {
				_ = vec.Inc()
			}
		}()
	}
	wg.Wait()

	samples := c.Collect()
	if len(samples) != 1 || samples[0].Value != 1000 {
		t.Errorf("expected 1000, got %v", samples)
	}
}
