// Package errs carries the deterministic business-rule failures of the
// matching core. Each value has a stable machine code surfaced verbatim to
// the caller; anything not in this taxonomy is treated as a transient
// store failure.
package errs

import (
	"errors"
	"net/http"
)

// Error is a typed business failure.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *Error) Error() string { return e.Message }

// Post / request lifecycle failures.
var (
	ErrPostNotFound    = &Error{Code: "MATE404", Message: "존재하지 않는 직관 메이트 글입니다.", Status: http.StatusNotFound}
	ErrRequestNotFound = &Error{Code: "REQ404", Message: "존재하지 않는 신청입니다.", Status: http.StatusNotFound}
	ErrUserNotFound    = &Error{Code: "USER404", Message: "존재하지 않는 사용자입니다.", Status: http.StatusNotFound}

	ErrUnauthorized = &Error{Code: "AUTH403", Message: "사용자가 이 포스트에 접근할 수 없습니다.", Status: http.StatusForbidden}
	ErrNoSession    = &Error{Code: "AUTH401", Message: "유효한 세션이 없습니다.", Status: http.StatusUnauthorized}

	ErrOwnPost              = &Error{Code: "MATE4001", Message: "자신의 글에는 신청할 수 없습니다.", Status: http.StatusForbidden}
	ErrAlreadyApplied       = &Error{Code: "MATE4002", Message: "이미 신청한 글입니다.", Status: http.StatusConflict}
	ErrRecruitmentCompleted = &Error{Code: "MATE4003", Message: "모집이 완료된 글입니다.", Status: http.StatusConflict}
	ErrAlreadyResponded     = &Error{Code: "MATE4004", Message: "이미 응답한 신청입니다.", Status: http.StatusConflict}
	ErrMaxMembersReached    = &Error{Code: "MATE4005", Message: "모집 인원이 가득 찼습니다.", Status: http.StatusConflict}

	ErrGenderRequired = &Error{Code: "USER4001", Message: "성별 정보가 필요합니다.", Status: http.StatusBadRequest}
	ErrAgeRequired    = &Error{Code: "USER4002", Message: "연령대 정보가 필요합니다.", Status: http.StatusBadRequest}
	ErrGenderMismatch = &Error{Code: "MATE4006", Message: "모집 성별 조건에 맞지 않습니다.", Status: http.StatusBadRequest}
	ErrAgeMismatch    = &Error{Code: "MATE4007", Message: "모집 연령대 조건에 맞지 않습니다.", Status: http.StatusBadRequest}
)

// Validation returns a request-level validation failure with its own message.
func Validation(msg string) *Error {
	return &Error{Code: "VALID400", Message: msg, Status: http.StatusBadRequest}
}

// As unwraps err into a typed *Error, or nil when err is not one.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
