package repositories

import (
	"context"
	"errors"
	"fmt"

	"ballmate_server/errs"
	"ballmate_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MatePostRepository is the durable store for mate posts. Counter updates
// never go through Save; the accept transaction in the request repository
// owns the confirmedMembers increment.
type MatePostRepository interface {
	Save(ctx context.Context, post *models.MatePost) error
	FindByID(ctx context.Context, mateID string) (*models.MatePost, error)
	FindByOwner(ctx context.Context, ownerID string) ([]models.MatePost, error)
	ListActive(ctx context.Context) ([]models.MatePost, error)
	ListActiveGameDateBefore(ctx context.Context, date string) ([]models.MatePost, error)
	MarkExpired(ctx context.Context, mateID string) error
	Delete(ctx context.Context, mateID string) error
}

type matePostRepository struct {
	Dynamo *DynamoClient
}

// NewMatePostRepository returns the DynamoDB-backed post store.
func NewMatePostRepository(dynamo *DynamoClient) MatePostRepository {
	return &matePostRepository{Dynamo: dynamo}
}

func postKey(mateID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"mateId": &types.AttributeValueMemberS{Value: mateID},
	}
}

func (r *matePostRepository) Save(ctx context.Context, post *models.MatePost) error {
	return r.Dynamo.PutItem(ctx, models.MatePostsTable, post, "")
}

func (r *matePostRepository) FindByID(ctx context.Context, mateID string) (*models.MatePost, error) {
	var post models.MatePost
	if err := r.Dynamo.GetItem(ctx, models.MatePostsTable, postKey(mateID), &post); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, errs.ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *matePostRepository) FindByOwner(ctx context.Context, ownerID string) ([]models.MatePost, error) {
	var posts []models.MatePost
	err := r.Dynamo.ScanItems(ctx, models.MatePostsTable,
		"ownerId = :ownerId",
		map[string]types.AttributeValue{
			":ownerId": &types.AttributeValueMemberS{Value: ownerID},
		},
		&posts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts for owner %s: %w", ownerID, err)
	}
	return posts, nil
}

func (r *matePostRepository) ListActive(ctx context.Context) ([]models.MatePost, error) {
	var posts []models.MatePost
	err := r.Dynamo.ScanItems(ctx, models.MatePostsTable,
		"expired = :expired",
		map[string]types.AttributeValue{
			":expired": &types.AttributeValueMemberBOOL{Value: false},
		},
		&posts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list active posts: %w", err)
	}
	return posts, nil
}

func (r *matePostRepository) ListActiveGameDateBefore(ctx context.Context, date string) ([]models.MatePost, error) {
	var posts []models.MatePost
	err := r.Dynamo.ScanItems(ctx, models.MatePostsTable,
		"expired = :expired AND gameDate < :date",
		map[string]types.AttributeValue{
			":expired": &types.AttributeValueMemberBOOL{Value: false},
			":date":    &types.AttributeValueMemberS{Value: date},
		},
		&posts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring posts: %w", err)
	}
	return posts, nil
}

// MarkExpired flips the expired flag. The flag only ever moves one way, so
// losing the condition to a concurrent sweep is not an error.
func (r *matePostRepository) MarkExpired(ctx context.Context, mateID string) error {
	err := r.Dynamo.UpdateItem(ctx, models.MatePostsTable, postKey(mateID),
		"SET expired = :true",
		"expired = :false",
		map[string]types.AttributeValue{
			":true":  &types.AttributeValueMemberBOOL{Value: true},
			":false": &types.AttributeValueMemberBOOL{Value: false},
		},
		nil,
	)
	if errors.Is(err, ErrConditionFailed) {
		return nil
	}
	return err
}

// Delete removes a withdrawn post.
func (r *matePostRepository) Delete(ctx context.Context, mateID string) error {
	return r.Dynamo.DeleteItem(ctx, models.MatePostsTable, postKey(mateID))
}
