package models

import "time"

// DateLayout is the wire and storage layout for game dates.
const DateLayout = "2006-01-02"

// Party size bounds for a mate post, owner included.
const (
	MinPartySize = 2
	MaxPartySize = 6
)

// MatePost is a request for companionship at a specific game. The owner
// counts as the first confirmed member.
type MatePost struct {
	MateID           string   `json:"mateId" dynamodbav:"mateId"`
	OwnerID          string   `json:"ownerId" dynamodbav:"ownerId"`
	Title            string   `json:"title" dynamodbav:"title"`
	Content          string   `json:"content" dynamodbav:"content"`
	Contact          string   `json:"contact" dynamodbav:"contact"`
	Gender           Gender   `json:"gender" dynamodbav:"gender"`
	Age              AgeRange `json:"age" dynamodbav:"age"`
	GameDate         string   `json:"gameDate" dynamodbav:"gameDate"`
	HomeTeam         Team     `json:"homeTeam" dynamodbav:"homeTeam"`
	GameStadium      Stadium  `json:"gameStadium" dynamodbav:"gameStadium"`
	Member           int      `json:"member" dynamodbav:"member"`
	ConfirmedMembers int      `json:"confirmedMembers" dynamodbav:"confirmedMembers"`
	Expired          bool     `json:"expired" dynamodbav:"expired"`

	CreatedAt time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// MatePostsTable is the DynamoDB table name for mate posts.
const MatePostsTable = "MatePosts"

// GameDay parses the stored game date.
func (p *MatePost) GameDay() (time.Time, error) {
	return time.Parse(DateLayout, p.GameDate)
}

// DaysSinceWritten returns whole days between the last update and now.
func (p *MatePost) DaysSinceWritten(now time.Time) int {
	return int(now.Truncate(24*time.Hour).Sub(p.UpdatedAt.Truncate(24*time.Hour)).Hours() / 24)
}

// DaysUntilGame returns whole days from now until the game date; negative
// once the game has passed.
func (p *MatePost) DaysUntilGame(now time.Time) int {
	day, err := p.GameDay()
	if err != nil {
		return 0
	}
	return int(day.Sub(now.Truncate(24*time.Hour)).Hours() / 24)
}
