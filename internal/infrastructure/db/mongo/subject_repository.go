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

const subjectsCollection = "subjects"

type SubjectRepository struct {
	coll *mongo.Collection
}

func NewSubjectRepository(db *mongo.Database) *SubjectRepository {
	return &SubjectRepository{coll: db.Collection(subjectsCollection)}
}

type mongoSubject struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	ClassroomID primitive.ObjectID `bson:"classroom"`
	TeacherID   primitive.ObjectID `bson:"teacher"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func toMongoSubject(s *domain.Subject) (*mongoSubject, error) {
	classroomOID, err := primitive.ObjectIDFromHex(s.ClassroomID)
	if err != nil {
		return nil, fmt.Errorf("invalid classroom id %q", s.ClassroomID)
	}
	teacherOID, err := primitive.ObjectIDFromHex(s.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("invalid teacher id %q", s.TeacherID)
	}
	return &mongoSubject{
		Name:        s.Name,
		ClassroomID: classroomOID,
		TeacherID:   teacherOID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}, nil
}

func (ms *mongoSubject) toDomain() *domain.Subject {
	return &domain.Subject{
		ID:          ms.ID.Hex(),
		Name:        ms.Name,
		ClassroomID: ms.ClassroomID.Hex(),
		TeacherID:   ms.TeacherID.Hex(),
		CreatedAt:   ms.CreatedAt.UTC(),
		UpdatedAt:   ms.UpdatedAt.UTC(),
	}
}

func (r *SubjectRepository) Create(ctx context.Context, subject *domain.Subject) (*domain.Subject, error) {
	doc, err := toMongoSubject(subject)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert subject: %w", err)
	}

	created := *subject
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *SubjectRepository) FindByID(ctx context.Context, id string) (*domain.Subject, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSubjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoSubject
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("find subject: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *SubjectRepository) FindByClassroom(ctx context.Context, classroomID string) ([]*domain.Subject, error) {
	oid, err := primitive.ObjectIDFromHex(classroomID)
	if err != nil {
		return nil, domain.ErrClassroomNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"classroom": oid})
	if err != nil {
		return nil, fmt.Errorf("find subjects: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Subject
	for cur.Next(ctx) {
		var ms mongoSubject
		if err := cur.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode subject: %w", err)
		}
		out = append(out, ms.toDomain())
	}
	return out, cur.Err()
}

func (r *SubjectRepository) List(ctx context.Context, page, limit int) ([]*domain.Subject, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count subjects: %w", err)
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list subjects: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Subject
	for cur.Next(ctx) {
		var ms mongoSubject
		if err := cur.Decode(&ms); err != nil {
			return nil, 0, fmt.Errorf("decode subject: %w", err)
		}
		out = append(out, ms.toDomain())
	}
	return out, total, cur.Err()
}

func (r *SubjectRepository) Update(ctx context.Context, subject *domain.Subject) (*domain.Subject, error) {
	oid, err := primitive.ObjectIDFromHex(subject.ID)
	if err != nil {
		return nil, domain.ErrSubjectNotFound
	}

	doc, err := toMongoSubject(subject)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoSubject
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"name":       doc.Name,
			"classroom":  doc.ClassroomID,
			"teacher":    doc.TeacherID,
			"updated_at": doc.UpdatedAt,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&ms)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("update subject: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *SubjectRepository) Delete(ctx context.Context, id string) (*domain.Subject, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSubjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoSubject
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("delete subject: %w", err)
	}
	return ms.toDomain(), nil
}

// EnsureIndexes creates lookup indexes on the subjects collection.
func (r *SubjectRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "classroom", Value: 1}}},
		{Keys: bson.D{{Key: "teacher", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
