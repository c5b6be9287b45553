package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "elfatih_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "elfatih_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ImagesProcessed counts uploads through the image pipeline by target and result.
	ImagesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "elfatih_images_processed_total",
		Help: "Uploaded images handled by the image pipeline",
	}, []string{"target", "result"})

	// ImageProcessingDuration records decode+resize+encode time.
	ImageProcessingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "elfatih_image_processing_seconds",
		Help:    "Time spent normalizing an uploaded image",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	})

	// QRCodesGenerated counts QR symbols rendered for devices.
	QRCodesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "elfatih_qr_codes_generated_total",
		Help: "QR codes rendered by reason",
	}, []string{"reason"})

	// FeedbackMutations counts feedback writes by operation.
	FeedbackMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "elfatih_feedback_mutations_total",
		Help: "Feedback upserts and removals",
	}, []string{"operation", "feedback_type"})

	// ObjectStorageMirror counts mirror uploads and deletions by result.
	ObjectStorageMirror = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "elfatih_object_storage_mirror_total",
		Help: "Object storage mirror operations",
	}, []string{"operation", "result"})

	// WebSocketConnectionsTotal is the gauge of open feedback feed connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "elfatih_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by hub and reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "elfatih_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})
)

const queryStartKey = "observability:query_start"

// RegisterGormMetrics installs callbacks that record DatabaseQueryLatency
// for every create, query, update, delete, row and raw statement.
func RegisterGormMetrics(db *gorm.DB) error {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(queryStartKey, time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			v, ok := tx.InstanceGet(queryStartKey)
			if !ok {
				return
			}
			start, ok := v.(time.Time)
			if !ok {
				return
			}
			table := tx.Statement.Table
			if table == "" {
				table = "unknown"
			}
			DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
		}
	}

	cb := db.Callback()
	steps := []struct {
		name     string
		register func(string, func(*gorm.DB)) error
		after    func(string, func(*gorm.DB)) error
	}{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}
	for _, step := range steps {
		if err := step.register("observability:before_"+step.name, before); err != nil {
			return err
		}
		if err := step.after("observability:after_"+step.name, after(step.name)); err != nil {
			return err
		}
	}
	return nil
}
