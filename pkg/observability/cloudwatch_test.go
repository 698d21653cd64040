package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePutter struct {
	inputs []*cloudwatch.PutMetricDataInput
	err    error
}

func (f *fakePutter) PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	f.inputs = append(f.inputs, params)
	return &cloudwatch.PutMetricDataOutput{}, f.err
}

func TestCloudWatchMetrics_RecordStoreCall(t *testing.T) {
	putter := &fakePutter{}
	m := NewCloudWatchMetrics("SymptomCheck", putter, zap.NewNop())

	m.RecordStoreCall("list", OutcomeSuccess, 25*time.Millisecond)

	require.Len(t, putter.inputs, 1)
	input := putter.inputs[0]
	assert.Equal(t, "SymptomCheck", aws.ToString(input.Namespace))
	require.Len(t, input.MetricData, 2)
	assert.Equal(t, "HistoryStoreLatency", aws.ToString(input.MetricData[0].MetricName))
	assert.Equal(t, float64(25), aws.ToFloat64(input.MetricData[0].Value))
	require.Len(t, input.MetricData[1].Dimensions, 2)
	assert.Equal(t, "Status", aws.ToString(input.MetricData[1].Dimensions[1].Name))
}

func TestCloudWatchMetrics_FailureIsSwallowed(t *testing.T) {
	putter := &fakePutter{err: errors.New("throttled")}
	m := NewCloudWatchMetrics("SymptomCheck", putter, zap.NewNop())

	assert.NotPanics(t, func() {
		m.RecordAnalysis(false, 1)
	})
	assert.Len(t, putter.inputs, 1)
}

func TestCloudWatchMetrics_NilClient(t *testing.T) {
	m := NewCloudWatchMetrics("SymptomCheck", nil, zap.NewNop())

	assert.NotPanics(t, func() {
		m.RecordHTTPRequest("GET", "/api/v1/symptoms", 200, time.Millisecond)
	})
}
