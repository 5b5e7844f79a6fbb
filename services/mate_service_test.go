package services

import (
	"context"
	"testing"
	"time"

	"ballmate_server/errs"
	"ballmate_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMateService(store *memStore) *MateService {
	svc := NewMateService(store.postRepo(), store.requestRepo(), store.userRepo())
	svc.Now = func() time.Time { return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC) }
	return svc
}

func validPostInput() MatePostInput {
	var input MatePostInput
	input.Title = "직관 같이 가요"
	input.Content = "잠실 3루석"
	input.Contact = "opentalk.example/abc"
	input.Options.Gender = string(models.GenderAny)
	input.Options.Age = string(models.AgeTwenties)
	input.Options.Date = "2026-09-01"
	input.Options.Team = string(models.TeamLG)
	input.Options.Member = 4
	input.Options.Stadium = string(models.StadiumJamsil)
	return input
}

func eligibleUser(id string) models.User {
	return models.User{
		UserID:   id,
		Nickname: "fan-" + id,
		Sex:      models.SexFemale,
		Age:      models.AgeTwenties,
	}
}

func TestCreatePost(t *testing.T) {
	store := newMemStore()
	svc := newMateService(store)

	post, err := svc.CreatePost(context.Background(), "owner-1", validPostInput())
	require.NoError(t, err)

	assert.NotEmpty(t, post.MateID)
	assert.Equal(t, "owner-1", post.OwnerID)
	assert.Equal(t, 1, post.ConfirmedMembers, "the owner fills the first slot")
	assert.False(t, post.Expired)
	assert.Equal(t, post.CreatedAt, post.UpdatedAt)

	stored := store.getPost(post.MateID)
	assert.Equal(t, models.TeamLG, stored.HomeTeam)
}

func TestCreatePostValidation(t *testing.T) {
	svc := newMateService(newMemStore())
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*MatePostInput)
	}{
		{"missing content", func(in *MatePostInput) { in.Content = "" }},
		{"missing contact", func(in *MatePostInput) { in.Contact = "" }},
		{"party too small", func(in *MatePostInput) { in.Options.Member = 1 }},
		{"party too large", func(in *MatePostInput) { in.Options.Member = 7 }},
		{"unknown team", func(in *MatePostInput) { in.Options.Team = "MLB" }},
		{"unknown stadium", func(in *MatePostInput) { in.Options.Stadium = "DODGER" }},
		{"bad date", func(in *MatePostInput) { in.Options.Date = "09/01" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validPostInput()
			tt.mutate(&input)
			_, err := svc.CreatePost(ctx, "owner-1", input)
			appErr := errs.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, 400, appErr.Status)
		})
	}
}

func TestCreatePostBlankPreferencesDefaultToAny(t *testing.T) {
	svc := newMateService(newMemStore())

	input := validPostInput()
	input.Options.Gender = ""
	input.Options.Age = ""

	post, err := svc.CreatePost(context.Background(), "owner-1", input)
	require.NoError(t, err)
	assert.Equal(t, models.GenderAny, post.Gender)
	assert.Equal(t, models.AgeAny, post.Age)
}

func TestUpdatePostOnlyByOwner(t *testing.T) {
	store := newMemStore()
	svc := newMateService(store)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "owner-1", validPostInput())
	require.NoError(t, err)

	_, err = svc.UpdatePost(ctx, "intruder", post.MateID, validPostInput())
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	input := validPostInput()
	input.Title = "변경된 제목"
	updated, err := svc.UpdatePost(ctx, "owner-1", post.MateID, input)
	require.NoError(t, err)
	assert.Equal(t, "변경된 제목", updated.Title)
}

func TestUpdatePostPreservesConfirmedMembers(t *testing.T) {
	store := newMemStore()
	svc := newMateService(store)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "owner-1", validPostInput())
	require.NoError(t, err)

	// Simulate accepted applicants between edits.
	stored := store.getPost(post.MateID)
	stored.ConfirmedMembers = 3
	store.putPost(stored)

	updated, err := svc.UpdatePost(ctx, "owner-1", post.MateID, validPostInput())
	require.NoError(t, err)
	assert.Equal(t, 3, updated.ConfirmedMembers)
}

func TestDeletePostCascadesToApplications(t *testing.T) {
	store := newMemStore()
	svc := newMateService(store)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "owner-1", validPostInput())
	require.NoError(t, err)

	store.putUser(eligibleUser("fan-1"))
	_, err = svc.Apply(ctx, "fan-1", post.MateID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeletePost(ctx, "intruder", post.MateID), errs.ErrUnauthorized)

	require.NoError(t, svc.DeletePost(ctx, "owner-1", post.MateID))
	_, err = svc.Posts.FindByID(ctx, post.MateID)
	assert.ErrorIs(t, err, errs.ErrPostNotFound)

	applied, err := svc.Requests.ExistsFor(ctx, post.MateID, "fan-1")
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestApply(t *testing.T) {
	store := newMemStore()
	svc := newMateService(store)
	ctx := context.Background()

	store.putUser(eligibleUser("fan-1"))
	post, err := svc.CreatePost(ctx, "owner-1", validPostInput())
	require.NoError(t, err)

	req, err := svc.Apply(ctx, "fan-1", post.MateID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, req.Status)
	assert.NotEmpty(t, req.RequestID)

	// Applying never consumes capacity.
	assert.Equal(t, 1, store.getPost(post.MateID).ConfirmedMembers)
}

func TestApplyValidationChain(t *testing.T) {
	store := newMemStore()
	svc := newMateService(store)
	ctx := context.Background()

	input := validPostInput()
	input.Options.Gender = string(models.GenderFemaleOnly)
	post, err := svc.CreatePost(ctx, "owner-1", input)
	require.NoError(t, err)

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Apply(ctx, "ghost", post.MateID)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("unknown post", func(t *testing.T) {
		store.putUser(eligibleUser("fan-1"))
		_, err := svc.Apply(ctx, "fan-1", "missing")
		assert.ErrorIs(t, err, errs.ErrPostNotFound)
	})

	t.Run("own post", func(t *testing.T) {
		store.putUser(eligibleUser("owner-1"))
		_, err := svc.Apply(ctx, "owner-1", post.MateID)
		assert.ErrorIs(t, err, errs.ErrOwnPost)
	})

	t.Run("profile without sex", func(t *testing.T) {
		store.putUser(models.User{UserID: "bare", Nickname: "bare"})
		_, err := svc.Apply(ctx, "bare", post.MateID)
		assert.ErrorIs(t, err, errs.ErrGenderRequired)
	})

	t.Run("profile without age", func(t *testing.T) {
		store.putUser(models.User{UserID: "no-age", Nickname: "no-age", Sex: models.SexFemale})
		_, err := svc.Apply(ctx, "no-age", post.MateID)
		assert.ErrorIs(t, err, errs.ErrAgeRequired)
	})

	t.Run("gender mismatch", func(t *testing.T) {
		user := eligibleUser("fan-m")
		user.Sex = models.SexMale
		store.putUser(user)
		_, err := svc.Apply(ctx, "fan-m", post.MateID)
		assert.ErrorIs(t, err, errs.ErrGenderMismatch)
	})

	t.Run("age mismatch", func(t *testing.T) {
		agePost := validPostInput()
		agePost.Options.Age = string(models.AgeThirties)
		restricted, err := svc.CreatePost(ctx, "owner-2", agePost)
		require.NoError(t, err)

		store.putUser(eligibleUser("fan-1"))
		_, err = svc.Apply(ctx, "fan-1", restricted.MateID)
		assert.ErrorIs(t, err, errs.ErrAgeMismatch)
	})

	t.Run("duplicate application", func(t *testing.T) {
		store.putUser(eligibleUser("fan-2"))
		_, err := svc.Apply(ctx, "fan-2", post.MateID)
		require.NoError(t, err)
		_, err = svc.Apply(ctx, "fan-2", post.MateID)
		assert.ErrorIs(t, err, errs.ErrAlreadyApplied)
	})
}

func TestApplyFullPostRejectsEligibleApplicant(t *testing.T) {
	store := newMemStore()
	svc := newMateService(store)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "owner-1", validPostInput())
	require.NoError(t, err)

	stored := store.getPost(post.MateID)
	stored.ConfirmedMembers = stored.Member
	store.putPost(stored)

	// Capacity is checked before the fit checks, so even a perfectly
	// eligible applicant is turned away.
	store.putUser(eligibleUser("fan-1"))
	_, err = svc.Apply(ctx, "fan-1", post.MateID)
	assert.ErrorIs(t, err, errs.ErrRecruitmentCompleted)
}

func TestGetPostsByDateCursorsThroughFeed(t *testing.T) {
	store := newMemStore()
	svc := newMateService(store)
	ctx := context.Background()

	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 8; i++ {
		store.putPost(feedPost(string(rune('a'+i)), base.Add(time.Duration(i)*time.Hour)))
	}

	first, err := svc.GetPostsByDate(ctx, nil)
	require.NoError(t, err)
	require.Len(t, first, FeedPageSize)

	cursor := first[len(first)-1].UpdatedAt
	second, err := svc.GetPostsByDate(ctx, &cursor)
	require.NoError(t, err)
	require.Len(t, second, 3)

	seen := make(map[string]bool)
	for _, item := range append(first, second...) {
		assert.False(t, seen[item.MateID])
		seen[item.MateID] = true
	}
	assert.Len(t, seen, 8)
}

func TestGetPostsByRelevanceRendersDisplayOptions(t *testing.T) {
	store := newMemStore()
	svc := newMateService(store)
	ctx := context.Background()

	post := feedPost("p1", time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC))
	post.Gender = models.GenderFemaleOnly
	post.Age = models.AgeTwenties
	store.putPost(post)

	items, err := svc.GetPostsByRelevance(ctx, "", SearchCriteria{Team: models.TeamLG})
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "여자만", item.Options.Gender)
	assert.Equal(t, "20대", item.Options.Age)
	assert.Equal(t, "09-01", item.Options.GameDate)
	assert.Equal(t, "LG", item.Options.HomeTeam)
	assert.Equal(t, "잠실 야구장", item.Options.Stadium)
	assert.Equal(t, EncodeRelevanceCursor(1, post.UpdatedAt), item.NextCursor)
}

func TestGetPostsByRelevanceRejectsMalformedCursor(t *testing.T) {
	svc := newMateService(newMemStore())
	_, err := svc.GetPostsByRelevance(context.Background(), "garbage", SearchCriteria{Team: models.TeamAny})
	appErr := errs.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Status)
}
