package services

import (
	"context"
	"sync"
	"time"

	"ballmate_server/errs"
	"ballmate_server/models"
	"ballmate_server/repositories"
)

// memStore is an in-memory stand-in for the DynamoDB tables. One mutex
// covers all three tables so the accept path gets the same atomicity as
// the store-level transaction: the status flip and the counter increment
// happen together or not at all.
type memStore struct {
	mu       sync.Mutex
	posts    map[string]models.MatePost
	requests map[string]models.MateRequest // keyed mateId + "/" + applicantId
	users    map[string]models.User
}

func newMemStore() *memStore {
	return &memStore{
		posts:    make(map[string]models.MatePost),
		requests: make(map[string]models.MateRequest),
		users:    make(map[string]models.User),
	}
}

func (s *memStore) postRepo() repositories.MatePostRepository       { return &memPostRepo{s} }
func (s *memStore) requestRepo() repositories.MateRequestRepository { return &memRequestRepo{s} }
func (s *memStore) userRepo() repositories.UserRepository           { return &memUserRepo{s} }

func (s *memStore) putPost(post models.MatePost) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[post.MateID] = post
}

func (s *memStore) getPost(mateID string) models.MatePost {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.posts[mateID]
}

func (s *memStore) putUser(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.UserID] = user
}

func (s *memStore) getRequest(mateID, applicantID string) models.MateRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[mateID+"/"+applicantID]
}

type memPostRepo struct{ s *memStore }

func (r *memPostRepo) Save(ctx context.Context, post *models.MatePost) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.posts[post.MateID] = *post
	return nil
}

func (r *memPostRepo) FindByID(ctx context.Context, mateID string) (*models.MatePost, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	post, ok := r.s.posts[mateID]
	if !ok {
		return nil, errs.ErrPostNotFound
	}
	return &post, nil
}

func (r *memPostRepo) FindByOwner(ctx context.Context, ownerID string) ([]models.MatePost, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var posts []models.MatePost
	for _, post := range r.s.posts {
		if post.OwnerID == ownerID {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (r *memPostRepo) ListActive(ctx context.Context) ([]models.MatePost, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var posts []models.MatePost
	for _, post := range r.s.posts {
		if !post.Expired {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (r *memPostRepo) ListActiveGameDateBefore(ctx context.Context, date string) ([]models.MatePost, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var posts []models.MatePost
	for _, post := range r.s.posts {
		if !post.Expired && post.GameDate < date {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (r *memPostRepo) Delete(ctx context.Context, mateID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.posts, mateID)
	return nil
}

func (r *memPostRepo) MarkExpired(ctx context.Context, mateID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	post, ok := r.s.posts[mateID]
	if !ok || post.Expired {
		return nil
	}
	post.Expired = true
	r.s.posts[mateID] = post
	return nil
}

type memRequestRepo struct{ s *memStore }

func (r *memRequestRepo) Create(ctx context.Context, req *models.MateRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := req.MateID + "/" + req.ApplicantID
	if _, ok := r.s.requests[key]; ok {
		return errs.ErrAlreadyApplied
	}
	r.s.requests[key] = *req
	return nil
}

func (r *memRequestRepo) ExistsFor(ctx context.Context, mateID, applicantID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.requests[mateID+"/"+applicantID]
	return ok, nil
}

func (r *memRequestRepo) FindByRequestID(ctx context.Context, requestID string) (*models.MateRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, req := range r.s.requests {
		if req.RequestID == requestID {
			found := req
			return &found, nil
		}
	}
	return nil, errs.ErrRequestNotFound
}

func (r *memRequestRepo) ListByApplicant(ctx context.Context, applicantID string) ([]models.MateRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var reqs []models.MateRequest
	for _, req := range r.s.requests {
		if req.ApplicantID == applicantID {
			reqs = append(reqs, req)
		}
	}
	return reqs, nil
}

func (r *memRequestRepo) ListByPost(ctx context.Context, mateID string) ([]models.MateRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var reqs []models.MateRequest
	for _, req := range r.s.requests {
		if req.MateID == mateID {
			reqs = append(reqs, req)
		}
	}
	return reqs, nil
}

func (r *memRequestRepo) Accept(ctx context.Context, req *models.MateRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := req.MateID + "/" + req.ApplicantID
	stored, ok := r.s.requests[key]
	if !ok || stored.Status != models.StatusPending {
		return errs.ErrAlreadyResponded
	}
	post, ok := r.s.posts[req.MateID]
	if !ok || post.Expired || post.ConfirmedMembers >= post.Member {
		return errs.ErrMaxMembersReached
	}

	stored.Status = models.StatusAccepted
	r.s.requests[key] = stored
	post.ConfirmedMembers++
	post.UpdatedAt = time.Now().UTC()
	r.s.posts[req.MateID] = post
	return nil
}

func (r *memRequestRepo) Reject(ctx context.Context, req *models.MateRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := req.MateID + "/" + req.ApplicantID
	stored, ok := r.s.requests[key]
	if !ok || stored.Status != models.StatusPending {
		return errs.ErrAlreadyResponded
	}
	stored.Status = models.StatusRejected
	r.s.requests[key] = stored
	return nil
}

func (r *memRequestRepo) DeleteByPost(ctx context.Context, mateID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key, req := range r.s.requests {
		if req.MateID == mateID {
			delete(r.s.requests, key)
		}
	}
	return nil
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Save(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[user.UserID] = *user
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, userID string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[userID]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return &user, nil
}
