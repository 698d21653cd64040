package auth

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounterTable struct {
	counts  map[string]int
	limit   int
	err     error
	deleted []string
}

func keyOf(key map[string]types.AttributeValue) string {
	pk := key["PK"].(*types.AttributeValueMemberS).Value
	sk := key["SK"].(*types.AttributeValueMemberS).Value
	return pk + "|" + sk
}

func (f *fakeCounterTable) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	k := keyOf(params.Key)
	if f.counts[k] >= f.limit {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("limit")}
	}
	f.counts[k]++
	return &dynamodb.UpdateItemOutput{
		Attributes: map[string]types.AttributeValue{
			"Count": &types.AttributeValueMemberN{Value: strconv.Itoa(f.counts[k])},
		},
	}, nil
}

func (f *fakeCounterTable) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	k := keyOf(params.Key)
	delete(f.counts, k)
	f.deleted = append(f.deleted, k)
	return &dynamodb.DeleteItemOutput{}, nil
}

func TestDistributedRateLimiter_Allow(t *testing.T) {
	table := &fakeCounterTable{counts: map[string]int{}, limit: 2}
	limiter := NewDistributedRateLimiter(table, "symptom-checks", 2, time.Minute, "USER")
	limiter.now = func() time.Time { return time.Unix(1700000000, 0) }
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, allowed)

	require.NoError(t, limiter.Reset(ctx, "u1"))
	require.Len(t, table.deleted, 1)
	assert.Contains(t, table.deleted[0], "RATELIMIT#USER#u1|WINDOW#")
}

func TestDistributedRateLimiter_FailsOpen(t *testing.T) {
	table := &fakeCounterTable{counts: map[string]int{}, limit: 1, err: errors.New("throttled")}
	limiter := NewDistributedRateLimiter(table, "symptom-checks", 1, time.Minute, "USER")

	allowed, err := limiter.Allow(context.Background(), "u1")

	assert.True(t, allowed)
	assert.ErrorIs(t, err, ErrLimiterUnavailable)
}

func TestDistributedRateLimiter_NilClient(t *testing.T) {
	limiter := NewDistributedRateLimiter(nil, "t", 1, time.Minute, "USER")

	allowed, err := limiter.Allow(context.Background(), "u1")

	assert.NoError(t, err)
	assert.True(t, allowed)
}
