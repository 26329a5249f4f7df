package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hari-dev-003/Achieve/app/model"
)

type AchievementRepository interface {
	Create(ctx context.Context, a *model.Achievement) error
	FindByID(ctx context.Context, id string) (*model.Achievement, error)
	FindByStudent(ctx context.Context, studentID string) ([]model.Achievement, error)
	FindVerifiedByStudent(ctx context.Context, studentID string) ([]model.Achievement, error)
	FindPendingByClass(ctx context.Context, class model.ClassKey) ([]model.Achievement, error)
	FindByClass(ctx context.Context, class model.ClassKey) ([]model.Achievement, error)
	FindAll(ctx context.Context) ([]model.Achievement, error)
	MarkVerified(ctx context.Context, id, verifiedBy, hash string, verifiedAt time.Time) error
	MarkRejected(ctx context.Context, id, reason string) error
	Resubmit(ctx context.Context, id string, req model.ResubmitRequest, now time.Time) error
	Delete(ctx context.Context, id string) error
}

type AchievementRepo struct {
	coll *mongo.Collection
}

func NewAchievementRepo(mongoDB *mongo.Database) *AchievementRepo {
	return &AchievementRepo{coll: mongoDB.Collection("achievements")}
}

func (r *AchievementRepo) Create(ctx context.Context, a *model.Achievement) error {
	res, err := r.coll.InsertOne(ctx, a)
	if err != nil {
		return err
	}
	a.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *AchievementRepo) FindByID(ctx context.Context, id string) (*model.Achievement, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid achievement id", model.ErrNotFound)
	}

	var a model.Achievement
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AchievementRepo) FindByStudent(ctx context.Context, studentID string) ([]model.Achievement, error) {
	return r.find(ctx, bson.M{"studentId": studentID},
		options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}}))
}

func (r *AchievementRepo) FindVerifiedByStudent(ctx context.Context, studentID string) ([]model.Achievement, error) {
	return r.find(ctx, bson.M{"studentId": studentID, "status": model.StatusVerified},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
}

func (r *AchievementRepo) FindPendingByClass(ctx context.Context, class model.ClassKey) ([]model.Achievement, error) {
	filter := classFilter(class)
	filter["status"] = model.StatusPending
	return r.find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}}))
}

func (r *AchievementRepo) FindByClass(ctx context.Context, class model.ClassKey) ([]model.Achievement, error) {
	return r.find(ctx, classFilter(class),
		options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}}))
}

func (r *AchievementRepo) FindAll(ctx context.Context) ([]model.Achievement, error) {
	return r.find(ctx, bson.M{}, options.Find())
}

func (r *AchievementRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]model.Achievement, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, classifyQueryErr(err, filter)
	}
	defer cursor.Close(ctx)

	results := []model.Achievement{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, classifyQueryErr(err, filter)
	}
	return results, nil
}

// MarkVerified performs the pending -> verified transition atomically: the
// update only matches while the record is still pending, so a concurrent
// second approval loses and reports ErrPreconditionFailed instead of
// overwriting the hash.
func (r *AchievementRepo) MarkVerified(ctx context.Context, id, verifiedBy, hash string, verifiedAt time.Time) error {
	return r.transition(ctx, id,
		bson.M{"status": model.StatusPending},
		bson.M{"$set": bson.M{
			"status":         model.StatusVerified,
			"blockchainHash": hash,
			"verifiedBy":     verifiedBy,
			"verifiedAt":     verifiedAt,
			"lastUpdatedAt":  verifiedAt,
		}})
}

func (r *AchievementRepo) MarkRejected(ctx context.Context, id, reason string) error {
	return r.transition(ctx, id,
		bson.M{"status": model.StatusPending},
		bson.M{"$set": bson.M{
			"status":          model.StatusRejected,
			"rejectionReason": reason,
			"lastUpdatedAt":   time.Now(),
		}})
}

// Resubmit returns a pending or rejected record to pending with the edited
// fields applied and the review fields cleared. Verified records never match.
func (r *AchievementRepo) Resubmit(ctx context.Context, id string, req model.ResubmitRequest, now time.Time) error {
	set := bson.M{
		"status":        model.StatusPending,
		"lastUpdatedAt": now,
	}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Date != nil {
		parsed, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return fmt.Errorf("%w: date must be YYYY-MM-DD", model.ErrValidation)
		}
		set["date"] = parsed
	}
	if req.ImageURL != nil {
		set["imageUrl"] = *req.ImageURL
	}

	return r.transition(ctx, id,
		bson.M{"status": bson.M{"$in": []model.AchievementStatus{model.StatusPending, model.StatusRejected}}},
		bson.M{
			"$set":   set,
			"$unset": bson.M{"rejectionReason": "", "blockchainHash": "", "verifiedBy": "", "verifiedAt": ""},
		})
}

// Delete hard-deletes a record that has not been verified yet.
func (r *AchievementRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid achievement id", model.ErrNotFound)
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{
		"_id":    oid,
		"status": bson.M{"$in": []model.AchievementStatus{model.StatusPending, model.StatusRejected}},
	})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return r.explainNoMatch(ctx, oid)
	}
	return nil
}

func (r *AchievementRepo) transition(ctx context.Context, id string, guard, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid achievement id", model.ErrNotFound)
	}

	guard["_id"] = oid
	res := r.coll.FindOneAndUpdate(ctx, guard, update)
	if errors.Is(res.Err(), mongo.ErrNoDocuments) {
		return r.explainNoMatch(ctx, oid)
	}
	return res.Err()
}

// explainNoMatch distinguishes a missing record from one in the wrong state.
func (r *AchievementRepo) explainNoMatch(ctx context.Context, oid primitive.ObjectID) error {
	var current model.Achievement
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&current)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.ErrNotFound
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: record is %s", model.ErrPreconditionFailed, current.Status)
}

func classFilter(class model.ClassKey) bson.M {
	return bson.M{
		"department": class.Department,
		"year":       class.Year,
		"section":    class.Section,
	}
}

// classifyQueryErr surfaces a missing-index failure as an actionable
// precondition error naming the fields an operator must index.
func classifyQueryErr(err error, filter bson.M) error {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		fields := make([]string, 0, len(filter))
		for f := range filter {
			fields = append(fields, f)
		}
		return fmt.Errorf("%w: achievements query failed (%s); if this is an index error, create a compound index on {%s, submittedAt}",
			model.ErrPreconditionFailed, cmdErr.Message, strings.Join(fields, ", "))
	}
	return err
}
