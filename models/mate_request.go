package models

import "time"

// MateRequest is one user's application to join one MatePost. The table
// key is (mateId, applicantId) so a second application by the same user
// to the same post is rejected by the store itself; requestId is carried
// for lookups through the RequestIdIndex GSI.
type MateRequest struct {
	MateID      string        `json:"mateId" dynamodbav:"mateId"`           // PK
	ApplicantID string        `json:"applicantId" dynamodbav:"applicantId"` // SK
	RequestID   string        `json:"requestId" dynamodbav:"requestId"`
	Status      RequestStatus `json:"status" dynamodbav:"status"`
	AppliedAt   time.Time     `json:"appliedAt" dynamodbav:"appliedAt"`
}

const (
	// MateRequestsTable is the DynamoDB table name for applications.
	MateRequestsTable = "MateRequests"
	// RequestIdIndex is the GSI keyed on requestId.
	RequestIdIndex = "RequestIdIndex"
)
