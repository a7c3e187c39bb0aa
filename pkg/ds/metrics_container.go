package ds

import (
	"iter"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"google.golang.org/grpc/status"
)

var (
	holeySlicePrometheusMetrics sync.Once

	holeySlicePushTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "buildbarn",
			Subsystem: "ds",
			Name:      "holey_slice_push_total",
			Help:      "Number of values pushed into a holey slice, and whether a hole was reused or the slice was grown.",
		},
		[]string{"name", "outcome"})
	holeySliceRemoveTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "buildbarn",
			Subsystem: "ds",
			Name:      "holey_slice_remove_total",
			Help:      "Number of attempts to remove a value from a holey slice.",
		},
		[]string{"name", "outcome"})
	holeySliceGetTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "buildbarn",
			Subsystem: "ds",
			Name:      "holey_slice_get_total",
			Help:      "Number of attempts to obtain a value from a holey slice.",
		},
		[]string{"name", "outcome"})

	holeySliceOccupiedSlots = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "buildbarn",
			Subsystem: "ds",
			Name:      "holey_slice_occupied_slots",
			Help:      "Number of slots in a holey slice that contain a value.",
		},
		[]string{"name"})
	holeySliceSlots = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "buildbarn",
			Subsystem: "ds",
			Name:      "holey_slice_slots",
			Help:      "Total number of slots in a holey slice, including holes.",
		},
		[]string{"name"})
)

// MetricsContainer is a decorator for Container that exposes Prometheus
// metrics on the operations performed against it, and on the number of
// slots in use.
type MetricsContainer[T any] struct {
	base Container[T]

	pushReused    prometheus.Counter
	pushAppended  prometheus.Counter
	removeTotal   *prometheus.CounterVec
	getTotal      *prometheus.CounterVec
	occupiedSlots prometheus.Gauge
	slots         prometheus.Gauge
}

var _ Container[int] = (*MetricsContainer[int])(nil)

// NewMetricsContainer creates a MetricsContainer that forwards all
// operations to a base Container. The name is used as a label on all
// metrics, and should uniquely identify the container within the
// process.
func NewMetricsContainer[T any](base Container[T], name string) *MetricsContainer[T] {
	holeySlicePrometheusMetrics.Do(func() {
		prometheus.MustRegister(holeySlicePushTotal)
		prometheus.MustRegister(holeySliceRemoveTotal)
		prometheus.MustRegister(holeySliceGetTotal)

		prometheus.MustRegister(holeySliceOccupiedSlots)
		prometheus.MustRegister(holeySliceSlots)
	})

	c := &MetricsContainer[T]{
		base: base,

		pushReused:    holeySlicePushTotal.WithLabelValues(name, "Reused"),
		pushAppended:  holeySlicePushTotal.WithLabelValues(name, "Appended"),
		removeTotal:   holeySliceRemoveTotal.MustCurryWith(prometheus.Labels{"name": name}),
		getTotal:      holeySliceGetTotal.MustCurryWith(prometheus.Labels{"name": name}),
		occupiedSlots: holeySliceOccupiedSlots.WithLabelValues(name),
		slots:         holeySliceSlots.WithLabelValues(name),
	}
	c.updateGauges()
	return c
}

func (c *MetricsContainer[T]) updateGauges() {
	c.occupiedSlots.Set(float64(c.base.Len()))
	c.slots.Set(float64(c.base.SlotCount()))
}

func (c *MetricsContainer[T]) Push(value T) int {
	slotCount := c.base.SlotCount()
	index := c.base.Push(value)
	if c.base.SlotCount() == slotCount {
		c.pushReused.Inc()
	} else {
		c.pushAppended.Inc()
	}
	c.updateGauges()
	return index
}

func (c *MetricsContainer[T]) Remove(index int) (T, error) {
	value, err := c.base.Remove(index)
	c.removeTotal.WithLabelValues(status.Code(err).String()).Inc()
	if err == nil {
		c.updateGauges()
	}
	return value, err
}

func (c *MetricsContainer[T]) Get(index int) (T, error) {
	value, err := c.base.Get(index)
	c.getTotal.WithLabelValues(status.Code(err).String()).Inc()
	return value, err
}

func (c *MetricsContainer[T]) GetPointer(index int) (*T, error) {
	value, err := c.base.GetPointer(index)
	c.getTotal.WithLabelValues(status.Code(err).String()).Inc()
	return value, err
}

func (c *MetricsContainer[T]) Len() int {
	return c.base.Len()
}

func (c *MetricsContainer[T]) SlotCount() int {
	return c.base.SlotCount()
}

func (c *MetricsContainer[T]) All() iter.Seq2[int, T] {
	return c.base.All()
}
