package repository

import (
	"context"
	"errors"
	"time"

	"assignment-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AssignmentRepository struct {
	Col *mongo.Collection
}

func NewAssignmentRepository(db *mongo.Database) *AssignmentRepository {
	return &AssignmentRepository{Col: db.Collection("assignments")}
}

func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	now := time.Now()
	assignment.CreatedAt = now
	assignment.UpdatedAt = now
	if assignment.ID == "" {
		assignment.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Col.InsertOne(ctx, assignment)
	return err
}

func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*models.Assignment, error) {
	filter, err := idFilter(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	var assignment models.Assignment
	if err := r.Col.FindOne(ctx, filter).Decode(&assignment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// FindAll returns every assignment, newest created first.
func (r *AssignmentRepository) FindAll(ctx context.Context) ([]models.Assignment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var assignments []models.Assignment
	for cur.Next(ctx) {
		var a models.Assignment
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, cur.Err()
}

// FindRelated returns up to limit assignments in the category, newest first,
// skipping every assignment whose name equals excludeName.
func (r *AssignmentRepository) FindRelated(ctx context.Context, category, excludeName string, limit int64) ([]models.Assignment, error) {
	filter := bson.M{
		"category": category,
		"name":     bson.M{"$ne": excludeName},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var assignments []models.Assignment
	for cur.Next(ctx) {
		var a models.Assignment
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, cur.Err()
}

// Update replaces the assignment's mutable fields. Score collections are
// never touched here; they only grow through the append operations below.
func (r *AssignmentRepository) Update(ctx context.Context, id string, assignment *models.Assignment) error {
	filter, err := idFilter(id)
	if err != nil {
		return models.ErrNotFound
	}
	assignment.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":               assignment.Name,
		"name_ar":            assignment.NameAr,
		"sku":                assignment.SKU,
		"category":           assignment.Category,
		"category_ar":        assignment.CategoryAr,
		"image":              assignment.Image,
		"questions":          assignment.Questions,
		"technicalQuestions": assignment.TechnicalQuestions,
		"updatedAt":          assignment.UpdatedAt,
	}}
	res, err := r.Col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	filter, err := idFilter(id)
	if err != nil {
		return models.ErrNotFound
	}
	res, err := r.Col.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// AppendScore pushes the submission only when no score by the same user is
// present, so the check-then-append is a single atomic write. A zero match
// against an existing document means the user already submitted.
func (r *AssignmentRepository) AppendScore(ctx context.Context, id string, sub models.ScoreSubmission) error {
	return r.appendGuarded(ctx, id, "scores", sub.User, sub)
}

// AppendTechnicalScore is AppendScore for the technicalScores collection.
func (r *AssignmentRepository) AppendTechnicalScore(ctx context.Context, id string, sub models.TechnicalScoreSubmission) error {
	return r.appendGuarded(ctx, id, "technicalScores", sub.User, sub)
}

func (r *AssignmentRepository) appendGuarded(ctx context.Context, id, field, userID string, sub any) error {
	filter, err := idFilter(id)
	if err != nil {
		return models.ErrNotFound
	}
	filter[field+".user"] = bson.M{"$ne": userID}
	res, err := r.Col.UpdateOne(ctx, filter, bson.M{
		"$push": bson.M{field: sub},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Either the assignment is gone or the guard rejected a duplicate.
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return models.ErrAlreadySubmitted
	}
	return nil
}

// idFilter accepts both hex ObjectIDs and plain string ids, since documents
// inserted by this service store _id as a hex string.
func idFilter(id string) (bson.M, error) {
	if objID, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{id, objID}}}, nil
	}
	if id == "" {
		return nil, models.ErrNotFound
	}
	return bson.M{"_id": id}, nil
}
