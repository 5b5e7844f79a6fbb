package models

import (
	"fmt"
	"strings"
)

// The domain vocabulary (teams, stadiums, gender and age preferences,
// request statuses) is stored under canonical ids and displayed under
// locale aliases. Every accepted alias lives in one table per type so
// parsing and rendering stay in this file.

// Team is a KBO club, or TeamAny for "no preference".
type Team string

const (
	TeamKIA     Team = "KIA"
	TeamKT      Team = "KT"
	TeamLG      Team = "LG"
	TeamNC      Team = "NC"
	TeamSSG     Team = "SSG"
	TeamDoosan  Team = "DOOSAN"
	TeamLotte   Team = "LOTTE"
	TeamSamsung Team = "SAMSUNG"
	TeamKiwoom  Team = "KIWOOM"
	TeamHanwha  Team = "HANWHA"
	TeamAny     Team = "ANY"
)

// Stadium is a KBO ballpark, or StadiumAny.
type Stadium string

const (
	StadiumJamsil   Stadium = "JAMSIL"
	StadiumGocheok  Stadium = "GOCHEOK"
	StadiumIncheon  Stadium = "INCHEON"
	StadiumDaegu    Stadium = "DAEGU"
	StadiumDaejeon  Stadium = "DAEJEON"
	StadiumGwangju  Stadium = "GWANGJU"
	StadiumChangwon Stadium = "CHANGWON"
	StadiumSuwon    Stadium = "SUWON"
	StadiumBusan    Stadium = "BUSAN"
	StadiumAny      Stadium = "ANY"
)

// Gender is a post's companion-gender preference.
type Gender string

const (
	GenderMaleOnly   Gender = "MALE_ONLY"
	GenderFemaleOnly Gender = "FEMALE_ONLY"
	GenderAny        Gender = "ANY"
)

// AgeRange is a decade bucket preference.
type AgeRange string

const (
	AgeTeens    AgeRange = "AGE_10S"
	AgeTwenties AgeRange = "AGE_20S"
	AgeThirties AgeRange = "AGE_30S"
	AgeForties  AgeRange = "AGE_40S"
	AgeFifties  AgeRange = "AGE_50S"
	AgeAny      AgeRange = "ANY"
)

// Sex is a user's own gender, distinct from the Gender preference on a post.
type Sex string

const (
	SexMale   Sex = "MALE"
	SexFemale Sex = "FEMALE"
)

// RequestStatus is the lifecycle state of a MateRequest.
type RequestStatus string

const (
	StatusPending  RequestStatus = "PENDING"
	StatusAccepted RequestStatus = "ACCEPTED"
	StatusRejected RequestStatus = "REJECTED"
)

// aliasTable is a bidirectional mapping between a canonical id and every
// accepted alias string. The canonical id itself is always accepted.
type aliasTable[T ~string] struct {
	display map[T]string
	lookup  map[string]T
	name    string
}

func newAliasTable[T ~string](name string, entries map[T][]string) aliasTable[T] {
	t := aliasTable[T]{
		display: make(map[T]string, len(entries)),
		lookup:  make(map[string]T, len(entries)*3),
		name:    name,
	}
	for id, aliases := range entries {
		t.display[id] = aliases[0]
		t.lookup[strings.ToUpper(string(id))] = id
		for _, alias := range aliases {
			t.lookup[alias] = id
		}
	}
	return t
}

func (t aliasTable[T]) parse(s string) (T, error) {
	if id, ok := t.lookup[strings.TrimSpace(s)]; ok {
		return id, nil
	}
	if id, ok := t.lookup[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return id, nil
	}
	var zero T
	return zero, fmt.Errorf("unknown %s value: %q", t.name, s)
}

func (t aliasTable[T]) korean(id T) string {
	return t.display[id]
}

var teamTable = newAliasTable("team", map[Team][]string{
	TeamKIA:     {"KIA 타이거즈", "KIA"},
	TeamKT:      {"KT 위즈", "KT"},
	TeamLG:      {"LG 트윈스", "LG"},
	TeamNC:      {"NC 다이노스", "NC"},
	TeamSSG:     {"SSG 랜더스", "SSG"},
	TeamDoosan:  {"두산 베어스", "두산"},
	TeamLotte:   {"롯데 자이언츠", "롯데"},
	TeamSamsung: {"삼성 라이온즈", "삼성"},
	TeamKiwoom:  {"키움 히어로즈", "키움"},
	TeamHanwha:  {"한화 이글스", "한화"},
	TeamAny:     {"상관없음"},
})

var stadiumTable = newAliasTable("stadium", map[Stadium][]string{
	StadiumJamsil:   {"잠실 야구장", "잠실"},
	StadiumGocheok:  {"고척 스카이돔", "고척"},
	StadiumIncheon:  {"인천 SSG 랜더스필드", "인천"},
	StadiumDaegu:    {"대구 삼성 라이온즈 파크", "대구"},
	StadiumDaejeon:  {"대전 한화생명 이글스파크", "대전"},
	StadiumGwangju:  {"광주 기아 챔피언스 필드", "광주"},
	StadiumChangwon: {"창원 NC 파크", "창원"},
	StadiumSuwon:    {"수원 KT 위즈 파크", "수원"},
	StadiumBusan:    {"부산 사직 야구장", "사직"},
	StadiumAny:      {"상관없음"},
})

var genderTable = newAliasTable("gender", map[Gender][]string{
	GenderMaleOnly:   {"남자만"},
	GenderFemaleOnly: {"여자만"},
	GenderAny:        {"상관없음"},
})

var ageRangeTable = newAliasTable("age range", map[AgeRange][]string{
	AgeTeens:    {"10대", "AGE_10s"},
	AgeTwenties: {"20대", "AGE_20s"},
	AgeThirties: {"30대", "AGE_30s"},
	AgeForties:  {"40대", "AGE_40s"},
	AgeFifties:  {"50대", "AGE_50s"},
	AgeAny:      {"상관없음"},
})

var sexTable = newAliasTable("sex", map[Sex][]string{
	SexMale:   {"남자"},
	SexFemale: {"여자"},
})

var statusTable = newAliasTable("request status", map[RequestStatus][]string{
	StatusPending:  {"대기"},
	StatusAccepted: {"수락"},
	StatusRejected: {"거절"},
})

// ParseTeam resolves a canonical id or any accepted alias to a Team.
func ParseTeam(s string) (Team, error) { return teamTable.parse(s) }

// Korean returns the full display name, e.g. "LG 트윈스".
func (t Team) Korean() string { return teamTable.korean(t) }

// ShortKorean returns the club name without the mascot suffix, e.g. "LG".
func (t Team) ShortKorean() string {
	full := t.Korean()
	if i := strings.IndexByte(full, ' '); i > 0 {
		return full[:i]
	}
	return full
}

func ParseStadium(s string) (Stadium, error) { return stadiumTable.parse(s) }
func (s Stadium) Korean() string             { return stadiumTable.korean(s) }

func ParseGender(s string) (Gender, error) { return genderTable.parse(s) }
func (g Gender) Korean() string            { return genderTable.korean(g) }

func ParseAgeRange(s string) (AgeRange, error) { return ageRangeTable.parse(s) }
func (a AgeRange) Korean() string              { return ageRangeTable.korean(a) }

func ParseSex(s string) (Sex, error) { return sexTable.parse(s) }
func (s Sex) Korean() string         { return sexTable.korean(s) }

// ParseRequestStatus resolves an owner's decision string. Both the display
// locale ("수락", "거절") and the canonical ids are accepted.
func ParseRequestStatus(s string) (RequestStatus, error) { return statusTable.parse(s) }
func (s RequestStatus) Korean() string                   { return statusTable.korean(s) }
