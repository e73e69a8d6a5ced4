package friends

import (
	"context"
	"log"

	"lingua-service/internal/events"
	"lingua-service/internal/models"
	"lingua-service/pkg/httperr"
)

type FriendService struct {
	repo      FriendRepository
	publisher events.Publisher
}

func NewFriendService(repo FriendRepository, publisher events.Publisher) *FriendService {
	return &FriendService{
		repo:      repo,
		publisher: publisher,
	}
}

// Recommended returns onboarded users the given user could befriend,
// excluding the user and anyone already in their friends set. Full scan, no
// pagination.
func (s *FriendService) Recommended(ctx context.Context, userID string) ([]models.User, error) {
	friendIDs, err := s.repo.FriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	users, err := s.repo.FindRecommendable(ctx, userID, friendIDs)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// Friends resolves the user's friends set to public profiles.
func (s *FriendService) Friends(ctx context.Context, userID string) ([]models.Profile, error) {
	friendIDs, err := s.repo.FriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	users, err := s.repo.FindUsersByIDs(ctx, friendIDs)
	if err != nil {
		return nil, err
	}

	profiles := make([]models.Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].PublicProfile())
	}
	return profiles, nil
}

// SendRequest records a pending request from sender to recipient. At most one
// request may exist between an unordered pair at a time, in either direction
// and regardless of status.
//
// The existence check and the create are two separate store calls. Two sends
// racing past the check can produce two records; that gap is inherited
// behavior and deliberately left open.
func (s *FriendService) SendRequest(ctx context.Context, senderID, recipientID string) (*models.FriendRequest, error) {
	if senderID == recipientID {
		return nil, httperr.Validation("You cannot send a friend request to yourself")
	}

	recipient, err := s.repo.FindUserByID(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, httperr.NotFound("Recipient not found")
	}

	alreadyFriends, err := s.repo.AreFriends(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if alreadyFriends {
		return nil, httperr.Conflict("You are already friends with this user")
	}

	existing, err := s.repo.FindRequestBetween(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, httperr.Conflict("A friend request already exists between you and this user")
	}

	request := &models.FriendRequest{
		SenderID:    senderID,
		RecipientID: recipientID,
		Status:      models.FriendRequestStatusPending,
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// AcceptRequest transitions a request to accepted and materializes the mutual
// friendship. Only the recorded recipient may accept. The two edge inserts
// are independent writes with set semantics, mirroring the source behavior.
func (s *FriendService) AcceptRequest(ctx context.Context, requestID, actingUserID string) error {
	request, err := s.repo.FindRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request == nil {
		return httperr.NotFound("Friend request not found")
	}

	if request.RecipientID != actingUserID {
		return httperr.Forbidden("You are not authorized to accept this friend request")
	}

	if err := s.repo.UpdateRequestStatus(ctx, requestID, models.FriendRequestStatusAccepted); err != nil {
		return err
	}

	if err := s.repo.AddFriendEdge(ctx, request.SenderID, request.RecipientID); err != nil {
		return err
	}
	if err := s.repo.AddFriendEdge(ctx, request.RecipientID, request.SenderID); err != nil {
		return err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(events.TypeFriendRequestAccepted, request.ID, request); err != nil {
			log.Printf("Error publishing friend.request.accepted event: %v", err)
		}
	}

	return nil
}

// Incoming lists pending requests addressed to the user, joined with the
// sender's public profile.
func (s *FriendService) Incoming(ctx context.Context, userID string) ([]models.FriendRequestResponse, error) {
	requests, err := s.repo.PendingForRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.joinProfiles(ctx, requests)
}

// Outgoing lists pending requests the user has sent, joined with the
// recipient's public profile.
func (s *FriendService) Outgoing(ctx context.Context, userID string) ([]models.FriendRequestResponse, error) {
	requests, err := s.repo.PendingFromSender(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.joinProfiles(ctx, requests)
}

// AcceptedSent lists requests the user sent that have since been accepted,
// used for "they accepted your request" notifications.
func (s *FriendService) AcceptedSent(ctx context.Context, userID string) ([]models.FriendRequestResponse, error) {
	requests, err := s.repo.AcceptedFromSender(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.joinProfiles(ctx, requests)
}

func (s *FriendService) joinProfiles(ctx context.Context, requests []models.FriendRequest) ([]models.FriendRequestResponse, error) {
	ids := make([]string, 0, 2*len(requests))
	for i := range requests {
		ids = append(ids, requests[i].SenderID, requests[i].RecipientID)
	}

	users, err := s.repo.FindUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Profile, len(users))
	for i := range users {
		byID[users[i].ID] = users[i].PublicProfile()
	}

	responses := make([]models.FriendRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, models.FriendRequestResponse{
			ID:        requests[i].ID,
			Sender:    byID[requests[i].SenderID],
			Recipient: byID[requests[i].RecipientID],
			Status:    requests[i].Status,
			CreatedAt: requests[i].CreatedAt,
		})
	}
	return responses, nil
}
