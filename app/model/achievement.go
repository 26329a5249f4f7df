package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AchievementStatus string

const (
	StatusPending  AchievementStatus = "pending"
	StatusVerified AchievementStatus = "verified"
	StatusRejected AchievementStatus = "rejected"
)

// Achievement is one document in the achievements collection. Department,
// year and section are copied from the submitting student's profile at
// submission time so faculty queues can filter on them directly.
type Achievement struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID       string             `bson:"studentId" json:"studentId"`
	StudentName     string             `bson:"studentName" json:"studentName"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description" json:"description"`
	Date            time.Time          `bson:"date" json:"date"`
	ImageURL        string             `bson:"imageUrl" json:"imageUrl"`
	Status          AchievementStatus  `bson:"status" json:"status"`
	Department      string             `bson:"department" json:"department"`
	Year            string             `bson:"year" json:"year"`
	Section         string             `bson:"section" json:"section"`
	SubmittedAt     time.Time          `bson:"submittedAt" json:"submittedAt"`
	LastUpdatedAt   time.Time          `bson:"lastUpdatedAt" json:"lastUpdatedAt"`
	VerifiedBy      string             `bson:"verifiedBy,omitempty" json:"verifiedBy,omitempty"`
	VerifiedAt      *time.Time         `bson:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`
	BlockchainHash  string             `bson:"blockchainHash,omitempty" json:"blockchainHash,omitempty"`
	RejectionReason string             `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
}

type CreateAchievementRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date" validate:"required"` // YYYY-MM-DD
	ImageURL    string `json:"imageUrl" validate:"required,url"`
}

// ResubmitRequest carries the fields a student may change when editing a
// pending or rejected record. Nil fields are left untouched.
type ResubmitRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

type RejectRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// PortfolioItem is the public projection of a verified achievement. It
// deliberately carries no reviewer fields.
type PortfolioItem struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Date           time.Time `json:"date"`
	ImageURL       string    `json:"imageUrl"`
	BlockchainHash string    `json:"blockchainHash"`
}

type PortfolioResponse struct {
	StudentName  string          `json:"studentName"`
	Achievements []PortfolioItem `json:"achievements"`
}

// StudentGroup is one roster entry: a student and their class submissions.
type StudentGroup struct {
	StudentID    string        `json:"studentId"`
	StudentName  string        `json:"studentName"`
	Achievements []Achievement `json:"achievements"`
}

type MonthCount struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Label       string `json:"label"` // e.g. "Jan 25"
	Submissions int    `json:"submissions"`
}

type DepartmentCount struct {
	Department   string `json:"department"`
	Achievements int    `json:"achievements"`
}

type AnalyticsResponse struct {
	Engagement  []MonthCount      `json:"engagement"`
	Performance []DepartmentCount `json:"performance"`
}
