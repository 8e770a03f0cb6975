package store

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindsprint_backend/internals/features/homework/assignments/model"
	"mindsprint_backend/internals/helpers/apperr"
)

const mongoCollection = "assignments"

type assignmentDoc struct {
	ID          string     `bson:"_id"`
	Title       string     `bson:"title"`
	Description string     `bson:"description"`
	AssignedTo  string     `bson:"assignedTo"`
	AssignedBy  string     `bson:"assignedBy"`
	DueDate     *time.Time `bson:"dueDate,omitempty"`
	Category    string     `bson:"category"`
	Status      string     `bson:"status"`
	CompletedAt *time.Time `bson:"completedAt,omitempty"`
	ClientNotes *string    `bson:"clientNotes,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt"`
}

func docFromModel(a model.Assignment) assignmentDoc {
	return assignmentDoc{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		AssignedTo:  a.AssignedTo,
		AssignedBy:  a.AssignedBy,
		DueDate:     a.DueDate,
		Category:    string(a.Category),
		Status:      string(a.Status),
		CompletedAt: a.CompletedAt,
		ClientNotes: a.ClientNotes,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (d assignmentDoc) toModel() model.Assignment {
	a := model.Assignment{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		AssignedTo:  d.AssignedTo,
		AssignedBy:  d.AssignedBy,
		Category:    model.Category(d.Category),
		Status:      model.Status(d.Status),
		ClientNotes: d.ClientNotes,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
	if d.DueDate != nil {
		due := d.DueDate.UTC()
		a.DueDate = &due
	}
	if d.CompletedAt != nil {
		c := d.CompletedAt.UTC()
		a.CompletedAt = &c
	}
	return a
}

// MongoStore persists assignments as documents keyed by their UUID string.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	log        logrus.FieldLogger
	now        func() time.Time
}

func NewMongoStore(client *mongo.Client, dbName string, log logrus.FieldLogger) *MongoStore {
	return &MongoStore{
		client:     client,
		collection: client.Database(dbName).Collection(mongoCollection),
		log:        log.WithField("store", "mongo"),
		// BSON datetimes keep milliseconds
		now: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// EnsureIndexes creates the indexes backing the list queries.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "assignedTo", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
	})
	return apperr.Store("ensure indexes", err)
}

func (s *MongoStore) Insert(ctx context.Context, a *model.Assignment) (string, error) {
	id, err := newID()
	if err != nil {
		return "", err
	}
	now := s.now()

	next := a.Clone()
	next.ID = id
	next.CreatedAt = now
	next.UpdatedAt = now
	if next.CompletedAt != nil {
		c := next.CompletedAt.UTC().Truncate(time.Millisecond)
		next.CompletedAt = &c
	}
	if _, err := s.collection.InsertOne(ctx, docFromModel(next)); err != nil {
		s.log.WithError(err).Error("failed to insert assignment")
		return "", apperr.Store("insert", err)
	}
	*a = next
	return id, nil
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (*model.Assignment, error) {
	var doc assignmentDoc
	if err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound(id)
		}
		s.log.WithError(err).WithField("assignment_id", id).Error("failed to find assignment")
		return nil, apperr.Store("find by id", err)
	}
	out := doc.toModel()
	return &out, nil
}

func (s *MongoStore) FindByAssignee(ctx context.Context, assignee string) ([]model.Assignment, error) {
	return s.list(ctx, "find by assignee", bson.M{"assignedTo": assignee})
}

func (s *MongoStore) FindAll(ctx context.Context) ([]model.Assignment, error) {
	return s.list(ctx, "find all", bson.M{})
}

func (s *MongoStore) list(ctx context.Context, op string, filter bson.M) ([]model.Assignment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		s.log.WithError(err).Error("failed to list assignments")
		return nil, apperr.Store(op, err)
	}
	defer cursor.Close(ctx)

	var docs []assignmentDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperr.Store(op, err)
	}
	out := make([]model.Assignment, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

func (s *MongoStore) Update(ctx context.Context, id string, mutate Mutator) (*model.Assignment, error) {
	current, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := applyMutation(*current, mutate)
	if err != nil {
		var me mutatorError
		if errors.As(err, &me) {
			return nil, me.err
		}
		return nil, err
	}
	next.UpdatedAt = s.now()
	if next.CompletedAt != nil {
		c := next.CompletedAt.UTC().Truncate(time.Millisecond)
		next.CompletedAt = &c
	}

	res := s.collection.FindOneAndReplace(ctx, bson.M{"_id": id}, docFromModel(next),
		options.FindOneAndReplace().SetReturnDocument(options.After))
	var doc assignmentDoc
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound(id)
		}
		s.log.WithError(err).WithField("assignment_id", id).Error("failed to update assignment")
		return nil, apperr.Store("update", err)
	}
	out := doc.toModel()
	return &out, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		s.log.WithError(err).WithField("assignment_id", id).Error("failed to delete assignment")
		return apperr.Store("delete", err)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return apperr.Store("ping", s.client.Ping(ctx, nil))
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
