package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"symptomcheck/domain/core/entities"
	"symptomcheck/domain/core/valueobjects"
	"symptomcheck/infrastructure/persistence"
	pkgerrors "symptomcheck/pkg/errors"
	"symptomcheck/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

const (
	entityType = "SYMPTOM_CHECK"
	skPrefix   = "CHECK#"
)

// API is the subset of the DynamoDB client the store uses
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// HistoryStore keeps symptom checks in a single DynamoDB table keyed by
// PK=USER#<owner>, SK=CHECK#<id>
type HistoryStore struct {
	client    API
	tableName string
	logger    *zap.Logger
}

// NewHistoryStore creates a new DynamoDB history store
func NewHistoryStore(client API, tableName string, logger *zap.Logger) *HistoryStore {
	return &HistoryStore{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// checkItem is the DynamoDB item for one symptom check
type checkItem struct {
	PK         string         `dynamodbav:"PK" validate:"required"`
	SK         string         `dynamodbav:"SK" validate:"required"`
	EntityType string         `dynamodbav:"EntityType"`
	RecordID   string         `dynamodbav:"RecordID" validate:"required,uuid"`
	UserID     string         `dynamodbav:"UserID" validate:"required"`
	Symptoms   string         `dynamodbav:"Symptoms" validate:"required"`
	Diagnoses  []string       `dynamodbav:"Diagnoses" validate:"required,min=1,dive,required"`
	Medicines  []medicineItem `dynamodbav:"Medicines" validate:"dive"`
	CreatedAt  string         `dynamodbav:"CreatedAt" validate:"required"`
}

type medicineItem struct {
	Name        string `dynamodbav:"Name" validate:"required"`
	Link        string `dynamodbav:"Link" validate:"required"`
	Description string `dynamodbav:"Description"`
}

func ownerKey(ownerID string) string {
	return "USER#" + ownerID
}

func recordKey(id valueobjects.RecordID) string {
	return skPrefix + id.String()
}

func toItem(r *entities.DiagnosisRecord) checkItem {
	remedies := r.Remedies()
	medicines := make([]medicineItem, 0, len(remedies))
	for _, m := range remedies {
		medicines = append(medicines, medicineItem{
			Name:        m.Name,
			Link:        m.PurchaseLink,
			Description: m.Description,
		})
	}

	return checkItem{
		PK:         ownerKey(r.OwnerID()),
		SK:         recordKey(r.ID()),
		EntityType: entityType,
		RecordID:   r.ID().String(),
		UserID:     r.OwnerID(),
		Symptoms:   r.InputText(),
		Diagnoses:  r.Diagnoses(),
		Medicines:  medicines,
		CreatedAt:  utils.FormatTimestamp(r.CreatedAt()),
	}
}

func (item checkItem) toRecord() (*entities.DiagnosisRecord, error) {
	if err := utils.ValidateStruct(item); err != nil {
		return nil, err
	}

	id, err := valueobjects.NewRecordIDFromString(item.RecordID)
	if err != nil {
		return nil, err
	}
	createdAt, err := utils.ParseTimestamp(item.CreatedAt)
	if err != nil {
		return nil, err
	}

	remedies := make([]valueobjects.RemedyEntry, 0, len(item.Medicines))
	for _, m := range item.Medicines {
		remedies = append(remedies, valueobjects.RemedyEntry{
			Name:         m.Name,
			PurchaseLink: m.Link,
			Description:  m.Description,
		})
	}

	return entities.ReconstructDiagnosisRecord(id, item.UserID, item.Symptoms, item.Diagnoses, remedies, createdAt)
}

// Create implements ports.HistoryStore
func (s *HistoryStore) Create(ctx context.Context, record *entities.DiagnosisRecord) (*entities.DiagnosisRecord, error) {
	stored := record.WithID(valueobjects.NewRecordID())

	av, err := attributevalue.MarshalMap(toItem(stored))
	if err != nil {
		return nil, pkgerrors.NewPersistenceError(persistence.OpCreate, fmt.Errorf("failed to marshal symptom check: %w", err))
	}

	cond, err := expression.NewBuilder().
		WithCondition(expression.AttributeNotExists(expression.Name("PK"))).
		Build()
	if err != nil {
		return nil, pkgerrors.NewPersistenceError(persistence.OpCreate, err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(s.tableName),
		Item:                     av,
		ConditionExpression:      cond.Condition(),
		ExpressionAttributeNames: cond.Names(),
	})
	if err != nil {
		s.logFailure(persistence.OpCreate, stored.OwnerID(), err)
		return nil, pkgerrors.NewPersistenceError(persistence.OpCreate, err)
	}

	return stored, nil
}

// ListForOwner implements ports.HistoryStore. Items that fail to decode or
// validate are skipped and logged.
func (s *HistoryStore) ListForOwner(ctx context.Context, ownerID string) ([]*entities.DiagnosisRecord, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(ownerKey(ownerID))).
		And(expression.Key("SK").BeginsWith(skPrefix))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, pkgerrors.NewPersistenceError(persistence.OpList, err)
	}

	paginator := dynamodb.NewQueryPaginator(s.client, &dynamodb.QueryInput{
		TableName:                 aws.String(s.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})

	var records []*entities.DiagnosisRecord
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			s.logFailure(persistence.OpList, ownerID, err)
			return nil, pkgerrors.NewPersistenceError(persistence.OpList, err)
		}

		for _, raw := range page.Items {
			var item checkItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				s.logger.Warn("Skipping undecodable symptom check", zap.String("ownerID", ownerID), zap.Error(err))
				continue
			}
			record, err := item.toRecord()
			if err != nil {
				s.logger.Warn("Skipping malformed symptom check",
					zap.String("ownerID", ownerID),
					zap.String("sk", item.SK),
					zap.Error(err),
				)
				continue
			}
			records = append(records, record)
		}
	}

	persistence.SortNewestFirst(records)
	return records, nil
}

// DeleteByID implements ports.HistoryStore. The key includes the owner, so
// another user's id matches nothing and the call is a no-op.
func (s *HistoryStore) DeleteByID(ctx context.Context, ownerID string, id valueobjects.RecordID) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: ownerKey(ownerID)},
			"SK": &types.AttributeValueMemberS{Value: recordKey(id)},
		},
	})
	if err != nil {
		s.logFailure(persistence.OpDelete, ownerID, err)
		return pkgerrors.NewPersistenceError(persistence.OpDelete, err)
	}
	return nil
}

// Ping implements ports.HealthChecker
func (s *HistoryStore) Ping(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.tableName),
	})
	return err
}

func (s *HistoryStore) logFailure(op, ownerID string, err error) {
	fields := []zap.Field{
		zap.String("operation", op),
		zap.String("table", s.tableName),
		zap.String("ownerID", ownerID),
		zap.Error(err),
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		fields = append(fields,
			zap.String("errorCode", apiErr.ErrorCode()),
			zap.String("fault", apiErr.ErrorFault().String()),
		)
	}

	if isThrottle(err) {
		s.logger.Warn("DynamoDB operation throttled", append(fields, zap.Bool("throttled", true))...)
		return
	}
	s.logger.Error("DynamoDB operation failed", fields...)
}

// isThrottle reports whether err is a DynamoDB throttling error
func isThrottle(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	code := apiErr.ErrorCode()
	return strings.Contains(code, "Throttl") || code == "ProvisionedThroughputExceededException"
}
