package friends

import (
	"context"
	"errors"

	"lingua-service/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FriendRepository interface {
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUsersByIDs(ctx context.Context, ids []string) ([]models.User, error)
	// FriendIDs returns the ids on the other end of the user's friendship edges.
	FriendIDs(ctx context.Context, userID string) ([]string, error)
	// FindRecommendable returns onboarded users excluding the given ids.
	FindRecommendable(ctx context.Context, userID string, excludeIDs []string) ([]models.User, error)
	AreFriends(ctx context.Context, userID, otherID string) (bool, error)
	// AddFriendEdge inserts one direction of the friends relation. Inserting an
	// existing edge is a no-op, never a duplicate.
	AddFriendEdge(ctx context.Context, userID, friendID string) error

	CreateRequest(ctx context.Context, request *models.FriendRequest) error
	FindRequestByID(ctx context.Context, id string) (*models.FriendRequest, error)
	// FindRequestBetween looks for a request between the unordered pair, in
	// either direction and with any status.
	FindRequestBetween(ctx context.Context, userID, otherID string) (*models.FriendRequest, error)
	UpdateRequestStatus(ctx context.Context, id string, status models.FriendRequestStatus) error
	PendingForRecipient(ctx context.Context, userID string) ([]models.FriendRequest, error)
	PendingFromSender(ctx context.Context, userID string) ([]models.FriendRequest, error)
	AcceptedFromSender(ctx context.Context, userID string) ([]models.FriendRequest, error)
}

type friendRepository struct {
	db *gorm.DB
}

func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *friendRepository) FindUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []models.User
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *friendRepository) FriendIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("user_id = ?", userID).
		Pluck("friend_id", &ids).Error
	return ids, err
}

func (r *friendRepository) FindRecommendable(ctx context.Context, userID string, excludeIDs []string) ([]models.User, error) {
	var users []models.User
	query := r.db.WithContext(ctx).
		Where("id <> ?", userID).
		Where("is_onboarded = ?", true)
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}
	err := query.Find(&users).Error
	return users, err
}

func (r *friendRepository) AreFriends(ctx context.Context, userID, otherID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			userID, otherID, otherID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *friendRepository) AddFriendEdge(ctx context.Context, userID, friendID string) error {
	edge := models.Friendship{
		UserID:   userID,
		FriendID: friendID,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge).Error
}

func (r *friendRepository) CreateRequest(ctx context.Context, request *models.FriendRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *friendRepository) FindRequestByID(ctx context.Context, id string) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *friendRepository) FindRequestBetween(ctx context.Context, userID, otherID string) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, otherID, otherID, userID).
		First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *friendRepository) UpdateRequestStatus(ctx context.Context, id string, status models.FriendRequestStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.FriendRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *friendRepository) PendingForRecipient(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND status = ?", userID, models.FriendRequestStatusPending).
		Find(&requests).Error
	return requests, err
}

func (r *friendRepository) PendingFromSender(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.WithContext(ctx).
		Where("sender_id = ? AND status = ?", userID, models.FriendRequestStatusPending).
		Find(&requests).Error
	return requests, err
}

func (r *friendRepository) AcceptedFromSender(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.WithContext(ctx).
		Where("sender_id = ? AND status = ?", userID, models.FriendRequestStatusAccepted).
		Find(&requests).Error
	return requests, err
}
