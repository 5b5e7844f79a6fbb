package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ballmate_server/errs"
	"ballmate_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MateRequestRepository is the durable store for applications. Accept and
// Reject carry the per-row atomicity the workflow relies on: both are
// compare-and-swap writes, and Accept pairs the status flip with the
// post's counter increment inside one transaction so neither half can
// land without the other.
type MateRequestRepository interface {
	Create(ctx context.Context, req *models.MateRequest) error
	ExistsFor(ctx context.Context, mateID, applicantID string) (bool, error)
	FindByRequestID(ctx context.Context, requestID string) (*models.MateRequest, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]models.MateRequest, error)
	ListByPost(ctx context.Context, mateID string) ([]models.MateRequest, error)
	Accept(ctx context.Context, req *models.MateRequest) error
	Reject(ctx context.Context, req *models.MateRequest) error
	DeleteByPost(ctx context.Context, mateID string) error
}

type mateRequestRepository struct {
	Dynamo *DynamoClient
}

// NewMateRequestRepository returns the DynamoDB-backed request store.
func NewMateRequestRepository(dynamo *DynamoClient) MateRequestRepository {
	return &mateRequestRepository{Dynamo: dynamo}
}

func requestKey(mateID, applicantID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"mateId":      &types.AttributeValueMemberS{Value: mateID},
		"applicantId": &types.AttributeValueMemberS{Value: applicantID},
	}
}

// Create inserts the application. The table key is (mateId, applicantId),
// so the attribute_not_exists condition is the uniqueness constraint on
// one application per applicant per post, race included.
func (r *mateRequestRepository) Create(ctx context.Context, req *models.MateRequest) error {
	err := r.Dynamo.PutItem(ctx, models.MateRequestsTable, req, "attribute_not_exists(mateId)")
	if errors.Is(err, ErrConditionFailed) {
		return errs.ErrAlreadyApplied
	}
	return err
}

func (r *mateRequestRepository) ExistsFor(ctx context.Context, mateID, applicantID string) (bool, error) {
	var req models.MateRequest
	err := r.Dynamo.GetItem(ctx, models.MateRequestsTable, requestKey(mateID, applicantID), &req)
	if errors.Is(err, ErrItemNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *mateRequestRepository) FindByRequestID(ctx context.Context, requestID string) (*models.MateRequest, error) {
	var reqs []models.MateRequest
	err := r.Dynamo.QueryItems(ctx, models.MateRequestsTable, models.RequestIdIndex,
		"requestId = :requestId",
		map[string]types.AttributeValue{
			":requestId": &types.AttributeValueMemberS{Value: requestID},
		},
		&reqs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to look up request %s: %w", requestID, err)
	}
	if len(reqs) == 0 {
		return nil, errs.ErrRequestNotFound
	}
	return &reqs[0], nil
}

func (r *mateRequestRepository) ListByApplicant(ctx context.Context, applicantID string) ([]models.MateRequest, error) {
	var reqs []models.MateRequest
	err := r.Dynamo.ScanItems(ctx, models.MateRequestsTable,
		"applicantId = :applicantId",
		map[string]types.AttributeValue{
			":applicantId": &types.AttributeValueMemberS{Value: applicantID},
		},
		&reqs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests for applicant %s: %w", applicantID, err)
	}
	return reqs, nil
}

func (r *mateRequestRepository) ListByPost(ctx context.Context, mateID string) ([]models.MateRequest, error) {
	var reqs []models.MateRequest
	err := r.Dynamo.QueryItems(ctx, models.MateRequestsTable, "",
		"mateId = :mateId",
		map[string]types.AttributeValue{
			":mateId": &types.AttributeValueMemberS{Value: mateID},
		},
		&reqs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests for post %s: %w", mateID, err)
	}
	return reqs, nil
}

// Accept flips the request to accepted and consumes one capacity slot in
// a single transaction. Two concurrent accepts against a post's last slot
// both reach this write; the confirmedMembers < member condition lets
// exactly one through.
func (r *mateRequestRepository) Accept(ctx context.Context, req *models.MateRequest) error {
	statusUpdate := types.TransactWriteItem{
		Update: &types.Update{
			TableName:           aws.String(models.MateRequestsTable),
			Key:                 requestKey(req.MateID, req.ApplicantID),
			UpdateExpression:    aws.String("SET #status = :accepted"),
			ConditionExpression: aws.String("#status = :pending"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":accepted": &types.AttributeValueMemberS{Value: string(models.StatusAccepted)},
				":pending":  &types.AttributeValueMemberS{Value: string(models.StatusPending)},
			},
		},
	}
	counterUpdate := types.TransactWriteItem{
		Update: &types.Update{
			TableName:           aws.String(models.MatePostsTable),
			Key:                 postKey(req.MateID),
			UpdateExpression:    aws.String("SET confirmedMembers = confirmedMembers + :one, updatedAt = :now"),
			ConditionExpression: aws.String("confirmedMembers < #member AND expired = :false"),
			ExpressionAttributeNames: map[string]string{
				"#member": "member",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":one":   &types.AttributeValueMemberN{Value: "1"},
				":false": &types.AttributeValueMemberBOOL{Value: false},
				":now":   &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
			},
		},
	}

	failed, err := r.Dynamo.TransactWrite(ctx, []types.TransactWriteItem{statusUpdate, counterUpdate})
	if errors.Is(err, ErrConditionFailed) {
		if len(failed) == 2 && failed[1] {
			return errs.ErrMaxMembersReached
		}
		return errs.ErrAlreadyResponded
	}
	return err
}

// Reject sets the status without touching the counter. The pending
// condition makes a replayed decision fail instead of silently reapplying.
func (r *mateRequestRepository) Reject(ctx context.Context, req *models.MateRequest) error {
	err := r.Dynamo.UpdateItem(ctx, models.MateRequestsTable, requestKey(req.MateID, req.ApplicantID),
		"SET #status = :rejected",
		"#status = :pending",
		map[string]types.AttributeValue{
			":rejected": &types.AttributeValueMemberS{Value: string(models.StatusRejected)},
			":pending":  &types.AttributeValueMemberS{Value: string(models.StatusPending)},
		},
		map[string]string{
			"#status": "status",
		},
	)
	if errors.Is(err, ErrConditionFailed) {
		return errs.ErrAlreadyResponded
	}
	return err
}

// DeleteByPost removes every application against a withdrawn post.
func (r *mateRequestRepository) DeleteByPost(ctx context.Context, mateID string) error {
	reqs, err := r.ListByPost(ctx, mateID)
	if err != nil {
		return err
	}
	for _, req := range reqs {
		if err := r.Dynamo.DeleteItem(ctx, models.MateRequestsTable, requestKey(req.MateID, req.ApplicantID)); err != nil {
			return fmt.Errorf("failed to delete request %s: %w", req.RequestID, err)
		}
	}
	return nil
}
