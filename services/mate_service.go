package services

import (
	"context"
	"fmt"
	"time"

	"ballmate_server/errs"
	"ballmate_server/models"
	"ballmate_server/repositories"

	"github.com/google/uuid"
)

// MateService owns the post lifecycle, the ranked feeds and the apply
// half of the matching workflow.
type MateService struct {
	Posts    repositories.MatePostRepository
	Requests repositories.MateRequestRepository
	Users    repositories.UserRepository
	Now      func() time.Time
}

// NewMateService wires the service over its stores.
func NewMateService(posts repositories.MatePostRepository, requests repositories.MateRequestRepository, users repositories.UserRepository) *MateService {
	return &MateService{Posts: posts, Requests: requests, Users: users, Now: time.Now}
}

// MatePostInput is the caller-supplied body for creating or editing a post.
type MatePostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Contact string `json:"contact"`
	Options struct {
		Gender  string `json:"gender"`
		Age     string `json:"age"`
		Date    string `json:"date"`
		Team    string `json:"team"`
		Member  int    `json:"member"`
		Stadium string `json:"stadium"`
	} `json:"options"`
}

// MatePostOptions is the display form of a post's matching dimensions.
type MatePostOptions struct {
	Gender   string `json:"gender"`
	Age      string `json:"age"`
	GameDate string `json:"date"` // "MM-DD"
	HomeTeam string `json:"team"` // short club name
	Member   int    `json:"member"`
	Stadium  string `json:"stadium"`
}

// RecencyFeedItem is one row of the recency feed; its UpdatedAt doubles
// as the caller's next cursor.
type RecencyFeedItem struct {
	MateID           string          `json:"mateId"`
	Title            string          `json:"title"`
	Content          string          `json:"content"`
	DaysSinceWritten int             `json:"daysSinceWritten"`
	DaysUntilGame    int             `json:"daysUntilGame"`
	ConfirmedMembers int             `json:"confirmedMembers"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	Options          MatePostOptions `json:"options"`
}

// RelevanceFeedItem is one row of the relevance feed. NextCursor resumes
// pagination from this item.
type RelevanceFeedItem struct {
	MateID           string          `json:"mateId"`
	Title            string          `json:"title"`
	Content          string          `json:"content"`
	DaysSinceWritten int             `json:"daysSinceWritten"`
	DaysUntilGame    int             `json:"daysUntilGame"`
	ConfirmedMembers int             `json:"confirmedMembers"`
	NextCursor       string          `json:"nextCursor"`
	Options          MatePostOptions `json:"options"`
}

// CreatePost validates and stores a new mate post. The owner is the
// first confirmed member.
func (s *MateService) CreatePost(ctx context.Context, ownerID string, input MatePostInput) (*models.MatePost, error) {
	fields, err := s.parseInput(input)
	if err != nil {
		return nil, err
	}

	now := s.Now().UTC()
	post := &models.MatePost{
		MateID:           uuid.NewString(),
		OwnerID:          ownerID,
		Title:            input.Title,
		Content:          input.Content,
		Contact:          input.Contact,
		Gender:           fields.gender,
		Age:              fields.age,
		GameDate:         fields.gameDate,
		HomeTeam:         fields.team,
		GameStadium:      fields.stadium,
		Member:           input.Options.Member,
		ConfirmedMembers: 1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.Posts.Save(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to save mate post: %w", err)
	}
	return post, nil
}

// UpdatePost rewrites an existing post's fields. Only the owner may edit;
// confirmed members and the expired flag are never touched here.
func (s *MateService) UpdatePost(ctx context.Context, ownerID, mateID string, input MatePostInput) (*models.MatePost, error) {
	post, err := s.Posts.FindByID(ctx, mateID)
	if err != nil {
		return nil, err
	}
	if post.OwnerID != ownerID {
		return nil, errs.ErrUnauthorized
	}

	fields, err := s.parseInput(input)
	if err != nil {
		return nil, err
	}

	post.Title = input.Title
	post.Content = input.Content
	post.Contact = input.Contact
	post.Gender = fields.gender
	post.Age = fields.age
	post.GameDate = fields.gameDate
	post.HomeTeam = fields.team
	post.GameStadium = fields.stadium
	post.Member = input.Options.Member
	post.UpdatedAt = s.Now().UTC()

	if err := s.Posts.Save(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update mate post: %w", err)
	}
	return post, nil
}

// DeletePost withdraws a post, cascading to its applications. Only the
// owner may withdraw.
func (s *MateService) DeletePost(ctx context.Context, ownerID, mateID string) error {
	post, err := s.Posts.FindByID(ctx, mateID)
	if err != nil {
		return err
	}
	if post.OwnerID != ownerID {
		return errs.ErrUnauthorized
	}

	if err := s.Requests.DeleteByPost(ctx, mateID); err != nil {
		return fmt.Errorf("failed to delete applications for post %s: %w", mateID, err)
	}
	if err := s.Posts.Delete(ctx, mateID); err != nil {
		return fmt.Errorf("failed to delete mate post %s: %w", mateID, err)
	}
	return nil
}

type parsedPostFields struct {
	gender   models.Gender
	age      models.AgeRange
	team     models.Team
	stadium  models.Stadium
	gameDate string
}

func (s *MateService) parseInput(input MatePostInput) (parsedPostFields, error) {
	var out parsedPostFields

	if input.Content == "" {
		return out, errs.Validation("content is required")
	}
	if input.Contact == "" {
		return out, errs.Validation("contact is required")
	}
	if input.Options.Member < models.MinPartySize || input.Options.Member > models.MaxPartySize {
		return out, errs.Validation(fmt.Sprintf("member must be between %d and %d", models.MinPartySize, models.MaxPartySize))
	}

	var err error
	// A blank preference means the owner does not mind.
	if input.Options.Gender == "" {
		out.gender = models.GenderAny
	} else if out.gender, err = models.ParseGender(input.Options.Gender); err != nil {
		return out, errs.Validation(err.Error())
	}
	if input.Options.Age == "" {
		out.age = models.AgeAny
	} else if out.age, err = models.ParseAgeRange(input.Options.Age); err != nil {
		return out, errs.Validation(err.Error())
	}
	if out.team, err = models.ParseTeam(input.Options.Team); err != nil {
		return out, errs.Validation(err.Error())
	}
	if out.stadium, err = models.ParseStadium(input.Options.Stadium); err != nil {
		return out, errs.Validation(err.Error())
	}
	if _, err = time.Parse(models.DateLayout, input.Options.Date); err != nil {
		return out, errs.Validation(fmt.Sprintf("invalid game date: %q", input.Options.Date))
	}
	out.gameDate = input.Options.Date
	return out, nil
}

// GetPostsByDate returns one recency-mode page. A nil cursor starts from
// the most recent post.
func (s *MateService) GetPostsByDate(ctx context.Context, cursor *time.Time) ([]RecencyFeedItem, error) {
	posts, err := s.Posts.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	page := pageByRecency(posts, cursor)
	now := s.Now()
	items := make([]RecencyFeedItem, 0, len(page))
	for i := range page {
		post := &page[i]
		items = append(items, RecencyFeedItem{
			MateID:           post.MateID,
			Title:            post.Title,
			Content:          post.Content,
			DaysSinceWritten: post.DaysSinceWritten(now),
			DaysUntilGame:    post.DaysUntilGame(now),
			ConfirmedMembers: post.ConfirmedMembers,
			UpdatedAt:        post.UpdatedAt,
			Options:          displayOptions(post),
		})
	}
	return items, nil
}

// GetPostsByRelevance returns one relevance-mode page for the criteria.
// An empty cursor starts from the best-matching posts.
func (s *MateService) GetPostsByRelevance(ctx context.Context, cursor string, criteria SearchCriteria) ([]RelevanceFeedItem, error) {
	posts, err := s.Posts.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	ranked, err := rankByRelevance(posts, criteria, cursor)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	items := make([]RelevanceFeedItem, 0, len(ranked))
	for i := range ranked {
		post := &ranked[i].post
		items = append(items, RelevanceFeedItem{
			MateID:           post.MateID,
			Title:            post.Title,
			Content:          post.Content,
			DaysSinceWritten: post.DaysSinceWritten(now),
			DaysUntilGame:    post.DaysUntilGame(now),
			ConfirmedMembers: post.ConfirmedMembers,
			NextCursor:       EncodeRelevanceCursor(ranked[i].score, post.UpdatedAt),
			Options:          displayOptions(post),
		})
	}
	return items, nil
}

// Apply runs the application validation chain and registers a pending
// request. Capacity is not consumed here; only an accepted decision does
// that, so a post may hold more pending requests than open slots.
func (s *MateService) Apply(ctx context.Context, applicantID, mateID string) (*models.MateRequest, error) {
	applicant, err := s.Users.FindByID(ctx, applicantID)
	if err != nil {
		return nil, err
	}

	post, err := s.Posts.FindByID(ctx, mateID)
	if err != nil {
		return nil, err
	}

	if post.OwnerID == applicantID {
		return nil, errs.ErrOwnPost
	}

	applied, err := s.Requests.ExistsFor(ctx, mateID, applicantID)
	if err != nil {
		return nil, err
	}
	if applied {
		return nil, errs.ErrAlreadyApplied
	}

	// A full post turns everyone away before any fit check runs.
	if post.ConfirmedMembers >= post.Member {
		return nil, errs.ErrRecruitmentCompleted
	}

	if applicant.Sex == "" {
		return nil, errs.ErrGenderRequired
	}
	if applicant.Age == "" {
		return nil, errs.ErrAgeRequired
	}

	if post.Gender == models.GenderMaleOnly && applicant.Sex != models.SexMale {
		return nil, errs.ErrGenderMismatch
	}
	if post.Gender == models.GenderFemaleOnly && applicant.Sex != models.SexFemale {
		return nil, errs.ErrGenderMismatch
	}
	if post.Age != models.AgeAny && applicant.Age != post.Age {
		return nil, errs.ErrAgeMismatch
	}

	req := &models.MateRequest{
		MateID:      mateID,
		ApplicantID: applicantID,
		RequestID:   uuid.NewString(),
		Status:      models.StatusPending,
		AppliedAt:   s.Now().UTC(),
	}
	if err := s.Requests.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func displayOptions(post *models.MatePost) MatePostOptions {
	gameDate := post.GameDate
	if day, err := post.GameDay(); err == nil {
		gameDate = day.Format("01-02")
	}
	return MatePostOptions{
		Gender:   post.Gender.Korean(),
		Age:      post.Age.Korean(),
		GameDate: gameDate,
		HomeTeam: post.HomeTeam.ShortKorean(),
		Member:   post.Member,
		Stadium:  post.GameStadium.Korean(),
	}
}
