package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"ballmate_server/errs"
	"ballmate_server/models"
)

// FeedPageSize is the fixed page size of both feed modes.
const FeedPageSize = 5

// MaxMatchScore is one point per filter dimension.
const MaxMatchScore = 6

// SearchCriteria is the caller's filter set for the relevance feed. A
// zero-valued field means the caller did not filter on that dimension;
// the explicit Any ids are wildcards that match every post.
type SearchCriteria struct {
	GameDate string // models.DateLayout, "" when absent
	Gender   models.Gender
	Age      models.AgeRange
	Team     models.Team
	Stadium  models.Stadium
	Member   int // 0 when absent
}

// MatchScore counts the filter dimensions a post satisfies. An absent
// dimension scores nothing; a present one scores exactly 1 when the
// criterion is the wildcard id or equals the post's field. A post-side
// "any" value earns no point on its own; only the caller's wildcard does.
func MatchScore(post *models.MatePost, c SearchCriteria) int {
	score := 0
	if c.GameDate != "" && c.GameDate == post.GameDate {
		score++
	}
	if c.Gender != "" && (c.Gender == models.GenderAny || c.Gender == post.Gender) {
		score++
	}
	if c.Age != "" && (c.Age == models.AgeAny || c.Age == post.Age) {
		score++
	}
	if c.Team != "" && (c.Team == models.TeamAny || c.Team == post.HomeTeam) {
		score++
	}
	if c.Stadium != "" && (c.Stadium == models.StadiumAny || c.Stadium == post.GameStadium) {
		score++
	}
	if c.Member != 0 && c.Member == post.Member {
		score++
	}
	return score
}

// The relevance cursor serializes the last shown item's (score, updatedAt)
// as "<score>_<RFC3339Nano>". RFC3339 timestamps cannot contain an
// underscore, so splitting on the first one is unambiguous; everything
// else about the token is still validated strictly.
const cursorTimeLayout = time.RFC3339Nano

// EncodeRelevanceCursor builds the resume token for one feed item.
func EncodeRelevanceCursor(score int, updatedAt time.Time) string {
	return strconv.Itoa(score) + "_" + updatedAt.UTC().Format(cursorTimeLayout)
}

// ParseRelevanceCursor validates and splits a relevance cursor token.
func ParseRelevanceCursor(cursor string) (int, time.Time, error) {
	parts := strings.SplitN(cursor, "_", 2)
	if len(parts) != 2 {
		return 0, time.Time{}, errs.Validation(fmt.Sprintf("malformed cursor: %q", cursor))
	}
	score, err := strconv.Atoi(parts[0])
	if err != nil || score < 0 || score > MaxMatchScore {
		return 0, time.Time{}, errs.Validation(fmt.Sprintf("malformed cursor score: %q", cursor))
	}
	at, err := time.Parse(cursorTimeLayout, parts[1])
	if err != nil {
		return 0, time.Time{}, errs.Validation(fmt.Sprintf("malformed cursor timestamp: %q", cursor))
	}
	return score, at, nil
}

// scoredPost pairs a post with its computed score for ranking.
type scoredPost struct {
	post  models.MatePost
	score int
}

// rankByRelevance scores the candidate posts, drops zero scores, applies
// the keyset cursor and returns one page in (score desc, updatedAt desc)
// order. With no cursor the page starts from the highest score present.
func rankByRelevance(posts []models.MatePost, c SearchCriteria, cursor string) ([]scoredPost, error) {
	hasCursor := cursor != ""
	var cursorScore int
	var cursorAt time.Time
	if hasCursor {
		var err error
		cursorScore, cursorAt, err = ParseRelevanceCursor(cursor)
		if err != nil {
			return nil, err
		}
	}

	var ranked []scoredPost
	for _, post := range posts {
		if post.Expired {
			continue
		}
		score := MatchScore(&post, c)
		if score < 1 {
			continue
		}
		if hasCursor {
			// Strictly after the cursor position: lower score, or same
			// score and strictly older update.
			if score > cursorScore {
				continue
			}
			if score == cursorScore && !post.UpdatedAt.Before(cursorAt) {
				continue
			}
		}
		ranked = append(ranked, scoredPost{post: post, score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		if !ranked[i].post.UpdatedAt.Equal(ranked[j].post.UpdatedAt) {
			return ranked[i].post.UpdatedAt.After(ranked[j].post.UpdatedAt)
		}
		return ranked[i].post.MateID > ranked[j].post.MateID
	})

	if len(ranked) > FeedPageSize {
		ranked = ranked[:FeedPageSize]
	}
	return ranked, nil
}

// pageByRecency applies the single-key keyset cursor over updatedAt and
// returns one page, newest first.
func pageByRecency(posts []models.MatePost, cursor *time.Time) []models.MatePost {
	var page []models.MatePost
	for _, post := range posts {
		if post.Expired {
			continue
		}
		if cursor != nil && !post.UpdatedAt.Before(*cursor) {
			continue
		}
		page = append(page, post)
	}

	sort.Slice(page, func(i, j int) bool {
		if !page[i].UpdatedAt.Equal(page[j].UpdatedAt) {
			return page[i].UpdatedAt.After(page[j].UpdatedAt)
		}
		return page[i].MateID > page[j].MateID
	})

	if len(page) > FeedPageSize {
		page = page[:FeedPageSize]
	}
	return page
}
