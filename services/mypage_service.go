package services

import (
	"context"
	"time"

	"ballmate_server/errs"
	"ballmate_server/models"
	"ballmate_server/repositories"
)

// MyPageService owns the owner's side of the matching workflow: deciding
// on applications and the per-user request dashboard.
type MyPageService struct {
	Posts    repositories.MatePostRepository
	Requests repositories.MateRequestRepository
	Now      func() time.Time
}

// NewMyPageService wires the service over its stores.
func NewMyPageService(posts repositories.MatePostRepository, requests repositories.MateRequestRepository) *MyPageService {
	return &MyPageService{Posts: posts, Requests: requests, Now: time.Now}
}

// Respond records the owner's accept/reject decision on a pending
// request. The decision string is accepted in the display locale or as
// the canonical status id. Accepting consumes one capacity slot; the
// store-level transaction re-checks capacity at decision time, so two
// racing accepts on the last slot cannot both land.
func (s *MyPageService) Respond(ctx context.Context, actorID, requestID, decision string) error {
	req, err := s.Requests.FindByRequestID(ctx, requestID)
	if err != nil {
		return err
	}

	post, err := s.Posts.FindByID(ctx, req.MateID)
	if err != nil {
		return err
	}
	if post.OwnerID != actorID {
		return errs.ErrUnauthorized
	}
	if post.Expired {
		return errs.ErrPostNotFound
	}
	if req.Status != models.StatusPending {
		return errs.ErrAlreadyResponded
	}

	status, err := models.ParseRequestStatus(decision)
	if err != nil {
		return errs.Validation(err.Error())
	}

	switch status {
	case models.StatusAccepted:
		if post.ConfirmedMembers >= post.Member {
			return errs.ErrMaxMembersReached
		}
		return s.Requests.Accept(ctx, req)
	case models.StatusRejected:
		return s.Requests.Reject(ctx, req)
	default:
		return errs.Validation("decision must be accept or reject")
	}
}

// RequestStatusItem is one entry of the my-page dashboard.
type RequestStatusItem struct {
	MateID           string `json:"mateId"`
	RequestID        string `json:"requestId,omitempty"`
	ApplicantID      string `json:"applicantId,omitempty"`
	Title            string `json:"title"`
	DaysSinceApplied int    `json:"daysSinceApplied,omitempty"`
	ConfirmedMembers int    `json:"confirmedMembers"`
	Member           int    `json:"member"`
	IsOwner          bool   `json:"isOwner"`
}

// RequestSummary groups a user's matching activity: incoming pending
// applications on their own posts (notifications), plus their outgoing
// applications by status. Expired posts drop out of every list.
type RequestSummary struct {
	Notifications []RequestStatusItem `json:"notifications"`
	Accepted      []RequestStatusItem `json:"accepted"`
	Pending       []RequestStatusItem `json:"pending"`
	Rejected      []RequestStatusItem `json:"rejected"`
}

// GetRequestSummary assembles the dashboard for one user.
func (s *MyPageService) GetRequestSummary(ctx context.Context, userID string) (*RequestSummary, error) {
	summary := &RequestSummary{
		Notifications: []RequestStatusItem{},
		Accepted:      []RequestStatusItem{},
		Pending:       []RequestStatusItem{},
		Rejected:      []RequestStatusItem{},
	}
	now := s.Now()

	// Outgoing applications.
	reqs, err := s.Requests.ListByApplicant(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, req := range reqs {
		post, err := s.Posts.FindByID(ctx, req.MateID)
		if err != nil || post.Expired {
			continue
		}
		item := RequestStatusItem{
			MateID:           post.MateID,
			RequestID:        req.RequestID,
			Title:            post.Title,
			DaysSinceApplied: int(now.Sub(req.AppliedAt).Hours() / 24),
			ConfirmedMembers: post.ConfirmedMembers,
			Member:           post.Member,
		}
		switch req.Status {
		case models.StatusAccepted:
			summary.Accepted = append(summary.Accepted, item)
		case models.StatusRejected:
			summary.Rejected = append(summary.Rejected, item)
		default:
			summary.Pending = append(summary.Pending, item)
		}
	}

	// Own posts: surface their pending applications as notifications and
	// list the posts themselves as accepted for their owner.
	posts, err := s.Posts.FindByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		if post.Expired {
			continue
		}
		summary.Accepted = append(summary.Accepted, RequestStatusItem{
			MateID:           post.MateID,
			Title:            post.Title,
			ConfirmedMembers: post.ConfirmedMembers,
			Member:           post.Member,
			IsOwner:          true,
		})

		postReqs, err := s.Requests.ListByPost(ctx, post.MateID)
		if err != nil {
			continue
		}
		for _, req := range postReqs {
			if req.Status != models.StatusPending {
				continue
			}
			summary.Notifications = append(summary.Notifications, RequestStatusItem{
				MateID:           post.MateID,
				RequestID:        req.RequestID,
				ApplicantID:      req.ApplicantID,
				Title:            post.Title,
				DaysSinceApplied: int(now.Sub(req.AppliedAt).Hours() / 24),
				ConfirmedMembers: post.ConfirmedMembers,
				Member:           post.Member,
				IsOwner:          true,
			})
		}
	}

	return summary, nil
}
