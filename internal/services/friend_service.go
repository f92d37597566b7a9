package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pawcz12345-dotcom/ironpact/internal/models/db_models"
	"github.com/pawcz12345-dotcom/ironpact/internal/models/response_models"
	"github.com/pawcz12345-dotcom/ironpact/internal/repositories"
	"github.com/pawcz12345-dotcom/ironpact/pkg/utils"
)

type FriendServiceInterface interface {
	SendRequest(ctx context.Context, userID uuid.UUID, username string) error
	AcceptRequest(ctx context.Context, userID, connectionID uuid.UUID) error
	ListFriends(ctx context.Context, userID uuid.UUID) ([]response_models.FriendResponse, error)
	ListPending(ctx context.Context, userID uuid.UUID) ([]response_models.PendingRequestResponse, error)
	Compare(ctx context.Context, userID, friendID uuid.UUID) (*response_models.CompareResponse, error)
}

type FriendService struct {
	friendRepo  repositories.FriendRepository
	accountRepo repositories.AccountRepository
	sessionRepo repositories.SessionRepository
}

func NewFriendService(
	friendRepo repositories.FriendRepository,
	accountRepo repositories.AccountRepository,
	sessionRepo repositories.SessionRepository,
) FriendServiceInterface {
	return &FriendService{
		friendRepo:  friendRepo,
		accountRepo: accountRepo,
		sessionRepo: sessionRepo,
	}
}

func (f *FriendService) SendRequest(ctx context.Context, userID uuid.UUID, username string) error {
	target, err := f.accountRepo.FindByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return utils.ErrDatabaseError
	}
	if target == nil {
		return utils.ErrAccountNotFound
	}
	if target.ID == userID {
		return utils.ErrSelfFriend
	}

	existing, err := f.friendRepo.FindBetween(ctx, userID, target.ID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		// Pending or accepted, either way there is nothing to create.
		return utils.ErrInvalidInput
	}

	conn := &db_models.FriendConnection{
		RequesterID: userID,
		AddresseeID: target.ID,
		Status:      db_models.FriendPending,
	}
	if err := f.friendRepo.Insert(ctx, conn); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (f *FriendService) AcceptRequest(ctx context.Context, userID, connectionID uuid.UUID) error {
	conn, err := f.friendRepo.FindById(ctx, connectionID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if conn == nil {
		return utils.ErrRecordNotFound
	}
	// Only the addressee may accept.
	if conn.AddresseeID != userID {
		return utils.ErrUnauthorized
	}
	if conn.Status != db_models.FriendPending {
		return utils.ErrInvalidInput
	}

	if err := f.friendRepo.UpdateStatus(ctx, connectionID, db_models.FriendAccepted); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (f *FriendService) ListFriends(ctx context.Context, userID uuid.UUID) ([]response_models.FriendResponse, error) {
	conns, err := f.friendRepo.ListAcceptedFor(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	friends := make([]response_models.FriendResponse, 0, len(conns))
	for _, conn := range conns {
		other := conn.Requester
		if conn.RequesterID == userID {
			other = conn.Addressee
		}
		friends = append(friends, response_models.FriendResponse{
			ConnectionID: conn.ID,
			ID:           other.ID,
			Name:         other.Name,
			Username:     other.Username,
			Emoji:        other.Emoji,
			Unit:         string(other.Unit),
		})
	}
	return friends, nil
}

func (f *FriendService) ListPending(ctx context.Context, userID uuid.UUID) ([]response_models.PendingRequestResponse, error) {
	conns, err := f.friendRepo.ListPendingFor(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	pending := make([]response_models.PendingRequestResponse, 0, len(conns))
	for _, conn := range conns {
		pending = append(pending, response_models.PendingRequestResponse{
			ConnectionID: conn.ID,
			FromID:       conn.RequesterID,
			FromName:     conn.Requester.Name,
			FromUsername: conn.Requester.Username,
		})
	}
	return pending, nil
}

func (f *FriendService) Compare(ctx context.Context, userID, friendID uuid.UUID) (*response_models.CompareResponse, error) {
	conn, err := f.friendRepo.FindBetween(ctx, userID, friendID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if conn == nil || conn.Status != db_models.FriendAccepted {
		return nil, utils.ErrNotFriends
	}

	now := time.Now().UTC()
	me, err := f.compareSide(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	friend, err := f.compareSide(ctx, friendID, now)
	if err != nil {
		return nil, err
	}

	return &response_models.CompareResponse{Me: *me, Friend: *friend}, nil
}

func (f *FriendService) compareSide(ctx context.Context, accountID uuid.UUID, now time.Time) (*response_models.CompareSide, error) {
	account, err := f.accountRepo.FindById(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	sessions, err := f.sessionRepo.ListByUser(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.CompareSide{
		ID:    account.ID,
		Name:  account.Name,
		Emoji: account.Emoji,
		Stats: *BuildDashboard(sessions, now),
	}, nil
}
