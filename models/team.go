package models

// Reference data mirrored from the league source tables into the redis
// read-through cache. None of it participates in matching correctness.

// TeamRank is one row of the KBO standings.
type TeamRank struct {
	RankKey     string  `json:"rankKey" dynamodbav:"rankKey"` // PK, the team id
	Team        Team    `json:"team" dynamodbav:"team"`
	Rank        int     `json:"rank" dynamodbav:"rank"`
	Games       int     `json:"games" dynamodbav:"games"`
	Wins        int     `json:"wins" dynamodbav:"wins"`
	Losses      int     `json:"losses" dynamodbav:"losses"`
	Draws       int     `json:"draws" dynamodbav:"draws"`
	WinningRate float64 `json:"winningRate" dynamodbav:"winningRate"`
	GamesBehind float64 `json:"gamesBehind" dynamodbav:"gamesBehind"`
}

// TeamSchedule is one scheduled (or finished) game.
type TeamSchedule struct {
	ScheduleKey string  `json:"scheduleKey" dynamodbav:"scheduleKey"` // PK
	Date        string  `json:"date" dynamodbav:"date"`               // DateLayout
	GameTime    string  `json:"gameTime" dynamodbav:"gameTime"`
	HomeTeam    Team    `json:"homeTeam" dynamodbav:"homeTeam"`
	AwayTeam    Team    `json:"awayTeam" dynamodbav:"awayTeam"`
	Stadium     Stadium `json:"stadium" dynamodbav:"stadium"`
	HomeScore   *int    `json:"homeScore,omitempty" dynamodbav:"homeScore,omitempty"`
	AwayScore   *int    `json:"awayScore,omitempty" dynamodbav:"awayScore,omitempty"`
	Cancelled   string  `json:"cancellationReason,omitempty" dynamodbav:"cancellationReason,omitempty"`
}

// StadiumFood is a food stall entry shown on the stadium page.
type StadiumFood struct {
	FoodKey  string  `json:"foodKey" dynamodbav:"foodKey"` // PK
	Stadium  Stadium `json:"stadium" dynamodbav:"stadium"`
	Name     string  `json:"name" dynamodbav:"name"`
	Location string  `json:"location" dynamodbav:"location"`
	ImageURL string  `json:"imageUrl,omitempty" dynamodbav:"imageUrl,omitempty"`
}

const (
	TeamRanksTable     = "TeamRanks"
	TeamSchedulesTable = "TeamSchedules"
	StadiumFoodsTable  = "StadiumFoods"
)
