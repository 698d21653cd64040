package eventbridge

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"symptomcheck/domain/core/valueobjects"
	"symptomcheck/domain/events"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClient struct {
	inputs []*eventbridge.PutEventsInput
	out    *eventbridge.PutEventsOutput
	err    error
}

func (f *fakeClient) PutEvents(ctx context.Context, in *eventbridge.PutEventsInput, _ ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	if f.out != nil {
		return f.out, nil
	}
	return &eventbridge.PutEventsOutput{}, nil
}

func recorded(n int) []events.DomainEvent {
	out := make([]events.DomainEvent, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, events.NewSymptomCheckRecorded(valueobjects.NewRecordID(), "user-1", []string{"fever"}, 3, false, time.Now()))
	}
	return out
}

func TestPublisher_PublishBuildsEntry(t *testing.T) {
	client := &fakeClient{}
	p := NewPublisher(client, "symptom-bus", zap.NewNop())
	id := valueobjects.NewRecordID()

	err := p.Publish(context.Background(), events.NewSymptomCheckDeleted(id, "user-1", time.Now()))
	require.NoError(t, err)

	require.Len(t, client.inputs, 1)
	require.Len(t, client.inputs[0].Entries, 1)
	entry := client.inputs[0].Entries[0]
	assert.Equal(t, "symptom-bus", aws.ToString(entry.EventBusName))
	assert.Equal(t, events.SourceSymptomCheck, aws.ToString(entry.Source))
	assert.Equal(t, events.TypeSymptomCheckDeleted, aws.ToString(entry.DetailType))

	var detail map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(entry.Detail)), &detail))
	assert.Equal(t, id.String(), detail["record_id"])
	assert.Equal(t, "user-1", detail["owner_id"])
}

func TestPublisher_PublishBatchChunks(t *testing.T) {
	client := &fakeClient{}
	p := NewPublisher(client, "symptom-bus", zap.NewNop())

	require.NoError(t, p.PublishBatch(context.Background(), recorded(23)))

	require.Len(t, client.inputs, 3)
	assert.Len(t, client.inputs[0].Entries, 10)
	assert.Len(t, client.inputs[1].Entries, 10)
	assert.Len(t, client.inputs[2].Entries, 3)
}

func TestPublisher_EmptyBatchIsNoop(t *testing.T) {
	client := &fakeClient{}
	p := NewPublisher(client, "symptom-bus", zap.NewNop())

	require.NoError(t, p.PublishBatch(context.Background(), nil))
	assert.Empty(t, client.inputs)
}

func TestPublisher_Failures(t *testing.T) {
	t.Run("client error", func(t *testing.T) {
		p := NewPublisher(&fakeClient{err: errors.New("throttled")}, "bus", zap.NewNop())
		assert.Error(t, p.PublishBatch(context.Background(), recorded(1)))
	})

	t.Run("failed entries", func(t *testing.T) {
		client := &fakeClient{out: &eventbridge.PutEventsOutput{
			FailedEntryCount: 1,
			Entries: []types.PutEventsResultEntry{
				{ErrorCode: aws.String("InternalFailure"), ErrorMessage: aws.String("boom")},
				{EventId: aws.String("ok")},
			},
		}}
		p := NewPublisher(client, "bus", zap.NewNop())
		err := p.PublishBatch(context.Background(), recorded(2))
		assert.EqualError(t, err, "1 events failed to publish")
	})
}

func TestNoopBus(t *testing.T) {
	bus := NewNoopBus(zap.NewNop())
	assert.NoError(t, bus.Publish(context.Background(), recorded(1)[0]))
	assert.NoError(t, bus.PublishBatch(context.Background(), recorded(3)))
}
