package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// MetricPutter is the part of the CloudWatch client the sink needs
type MetricPutter interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// CloudWatchMetrics sends metrics to CloudWatch. Calls are synchronous with
// a short timeout; failures are logged and dropped.
type CloudWatchMetrics struct {
	namespace string
	client    MetricPutter
	timeout   time.Duration
	logger    *zap.Logger
}

// NewCloudWatchMetrics creates a new CloudWatch sink
func NewCloudWatchMetrics(namespace string, client MetricPutter, logger *zap.Logger) *CloudWatchMetrics {
	return &CloudWatchMetrics{
		namespace: namespace,
		client:    client,
		timeout:   2 * time.Second,
		logger:    logger,
	}
}

// RecordAnalysis implements Recorder
func (m *CloudWatchMetrics) RecordAnalysis(persisted bool, diagnosisCount int) {
	m.put(
		datum("SymptomAnalyses", 1, types.StandardUnitCount, "Persisted", strconv.FormatBool(persisted)),
		datum("DiagnosesPerAnalysis", float64(diagnosisCount), types.StandardUnitCount),
	)
}

// RecordStoreCall implements Recorder
func (m *CloudWatchMetrics) RecordStoreCall(operation, outcome string, duration time.Duration) {
	m.put(
		datum("HistoryStoreLatency", float64(duration.Milliseconds()), types.StandardUnitMilliseconds, "Operation", operation),
		datum("HistoryStoreCalls", 1, types.StandardUnitCount, "Operation", operation, "Status", outcome),
	)
}

// RecordHTTPRequest implements Recorder
func (m *CloudWatchMetrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.put(
		datum("RequestLatency", float64(duration.Milliseconds()), types.StandardUnitMilliseconds, "Route", method+" "+route),
		datum("RequestCount", 1, types.StandardUnitCount, "Route", method+" "+route, "Status", strconv.Itoa(status)),
	)
}

func (m *CloudWatchMetrics) put(data ...types.MetricDatum) {
	if m.client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: data,
	})
	if err != nil {
		m.logger.Warn("Failed to send metrics", zap.Error(err))
	}
}

// datum builds a metric datum; dims alternates dimension names and values
func datum(name string, value float64, unit types.StandardUnit, dims ...string) types.MetricDatum {
	var dimensions []types.Dimension
	for i := 0; i+1 < len(dims); i += 2 {
		dimensions = append(dimensions, types.Dimension{
			Name:  aws.String(dims[i]),
			Value: aws.String(dims[i+1]),
		})
	}

	return types.MetricDatum{
		MetricName: aws.String(name),
		Dimensions: dimensions,
		Value:      aws.Float64(value),
		Unit:       unit,
		Timestamp:  aws.Time(time.Now()),
	}
}
