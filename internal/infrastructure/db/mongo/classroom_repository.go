package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/colegio/school-system/internal/core/domain"
)

const classroomsCollection = "classrooms"

type ClassroomRepository struct {
	coll *mongo.Collection
}

func NewClassroomRepository(db *mongo.Database) *ClassroomRepository {
	return &ClassroomRepository{coll: db.Collection(classroomsCollection)}
}

type mongoClassroom struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (mc *mongoClassroom) toDomain() *domain.Classroom {
	return &domain.Classroom{
		ID:        mc.ID.Hex(),
		Name:      mc.Name,
		CreatedAt: mc.CreatedAt.UTC(),
		UpdatedAt: mc.UpdatedAt.UTC(),
	}
}

func (r *ClassroomRepository) Create(ctx context.Context, classroom *domain.Classroom) (*domain.Classroom, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoClassroom{
		Name:      classroom.Name,
		CreatedAt: classroom.CreatedAt,
		UpdatedAt: classroom.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert classroom: %w", err)
	}

	created := *classroom
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ClassroomRepository) FindByID(ctx context.Context, id string) (*domain.Classroom, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrClassroomNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoClassroom
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClassroomNotFound
		}
		return nil, fmt.Errorf("find classroom: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ClassroomRepository) FindByName(ctx context.Context, name string) (*domain.Classroom, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoClassroom
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClassroomNotFound
		}
		return nil, fmt.Errorf("find classroom: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ClassroomRepository) List(ctx context.Context, page, limit int) ([]*domain.Classroom, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count classrooms: %w", err)
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list classrooms: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Classroom
	for cur.Next(ctx) {
		var mc mongoClassroom
		if err := cur.Decode(&mc); err != nil {
			return nil, 0, fmt.Errorf("decode classroom: %w", err)
		}
		out = append(out, mc.toDomain())
	}
	return out, total, cur.Err()
}

func (r *ClassroomRepository) Update(ctx context.Context, classroom *domain.Classroom) (*domain.Classroom, error) {
	oid, err := primitive.ObjectIDFromHex(classroom.ID)
	if err != nil {
		return nil, domain.ErrClassroomNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoClassroom
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"name":       classroom.Name,
			"updated_at": classroom.UpdatedAt,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClassroomNotFound
		}
		return nil, fmt.Errorf("update classroom: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ClassroomRepository) Delete(ctx context.Context, id string) (*domain.Classroom, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrClassroomNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoClassroom
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClassroomNotFound
		}
		return nil, fmt.Errorf("delete classroom: %w", err)
	}
	return mc.toDomain(), nil
}
