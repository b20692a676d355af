package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/olufemi424/cpa-automation/internal/core/domain"
)

const collectionMessages = "messages"

type MessageRepository struct {
	messages *mongo.Collection
	clients  *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{
		messages: db.Collection(collectionMessages),
		clients:  db.Collection(collectionClients),
	}
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m.ID = primitive.NewObjectID().Hex()
	if _, err := r.messages.InsertOne(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MessageRepository) FindByID(ctx context.Context, id string) (*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m domain.Message
	err := r.messages.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MessageRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.messages.Find(ctx,
		bson.M{"client_id": clientID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var msgs []*domain.Message
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// MarkRead marks all unread messages on the case not sent by readerID.
func (r *MessageRepository) MarkRead(ctx context.Context, clientID, readerID string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.messages.UpdateMany(ctx,
		bson.M{
			"client_id": clientID,
			"sender_id": bson.M{"$ne": readerID},
			"is_read":   false,
		},
		bson.M{"$set": bson.M{"is_read": true, "read_at": at}},
	)
	return err
}

func (r *MessageRepository) CountUnread(ctx context.Context, scope domain.AccessScope) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"is_read": false}

	clientFilter := scopeFilter(scope)
	if len(clientFilter) > 0 {
		raw, err := r.clients.Distinct(ctx, "_id", clientFilter)
		if err != nil {
			return 0, err
		}
		ids := make([]string, 0, len(raw))
		for _, v := range raw {
			if s, ok := v.(string); ok {
				ids = append(ids, s)
			}
		}
		query["client_id"] = bson.M{"$in": ids}
	}

	return r.messages.CountDocuments(ctx, query)
}

// EnsureIndexes creates necessary indexes on the messages collection.
func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "is_read", Value: 1}}},
	}

	_, err := r.messages.Indexes().CreateMany(ctx, indexes)
	return err
}
