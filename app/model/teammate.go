package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeammatePost is a student's call for collaborators, often pre-filled from
// the peer finder message of a generated career pathway.
type TeammatePost struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthorID    string             `bson:"authorId" json:"authorId"`
	AuthorName  string             `bson:"authorName" json:"authorName"`
	AuthorEmail string             `bson:"authorEmail" json:"authorEmail"`
	Department  string             `bson:"department" json:"department"`
	Year        string             `bson:"year" json:"year"`
	Goal        string             `bson:"goal" json:"goal"`
	Message     string             `bson:"message" json:"message"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

type CreateTeammatePostRequest struct {
	Goal    string `json:"goal" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type UpdateTeammatePostRequest struct {
	Goal    *string `json:"goal,omitempty"`
	Message *string `json:"message,omitempty"`
}
