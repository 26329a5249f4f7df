package repo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hari-dev-003/Achieve/app/model"
)

type TeammateRepository interface {
	Create(ctx context.Context, post *model.TeammatePost) error
	FindAll(ctx context.Context) ([]model.TeammatePost, error)
	Update(ctx context.Context, id, authorID string, req model.UpdateTeammatePostRequest) error
	Delete(ctx context.Context, id, authorID string) error
}

type TeammateRepo struct {
	coll *mongo.Collection
}

func NewTeammateRepo(mongoDB *mongo.Database) *TeammateRepo {
	return &TeammateRepo{coll: mongoDB.Collection("teammatePosts")}
}

func (r *TeammateRepo) Create(ctx context.Context, post *model.TeammatePost) error {
	res, err := r.coll.InsertOne(ctx, post)
	if err != nil {
		return err
	}
	post.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *TeammateRepo) FindAll(ctx context.Context) ([]model.TeammatePost, error) {
	cursor, err := r.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []model.TeammatePost{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Update and Delete filter on authorId as well, so a non-author caller gets
// the same answer as a missing post.
func (r *TeammateRepo) Update(ctx context.Context, id, authorID string, req model.UpdateTeammatePostRequest) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid post id", model.ErrNotFound)
	}

	set := bson.M{}
	if req.Goal != nil {
		set["goal"] = *req.Goal
	}
	if req.Message != nil {
		set["message"] = *req.Message
	}
	if len(set) == 0 {
		return nil
	}

	res := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "authorId": authorID},
		bson.M{"$set": set})
	if errors.Is(res.Err(), mongo.ErrNoDocuments) {
		return model.ErrNotFound
	}
	return res.Err()
}

func (r *TeammateRepo) Delete(ctx context.Context, id, authorID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid post id", model.ErrNotFound)
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "authorId": authorID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}
