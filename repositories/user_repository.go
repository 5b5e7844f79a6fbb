package repositories

import (
	"context"
	"errors"

	"ballmate_server/errs"
	"ballmate_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// UserRepository is the durable store for user profiles.
type UserRepository interface {
	Save(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID string) (*models.User, error)
}

type userRepository struct {
	Dynamo *DynamoClient
}

// NewUserRepository returns the DynamoDB-backed user store.
func NewUserRepository(dynamo *DynamoClient) UserRepository {
	return &userRepository{Dynamo: dynamo}
}

func (r *userRepository) Save(ctx context.Context, user *models.User) error {
	return r.Dynamo.PutItem(ctx, models.UsersTable, user, "")
}

func (r *userRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	var user models.User
	if err := r.Dynamo.GetItem(ctx, models.UsersTable, key, &user); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
