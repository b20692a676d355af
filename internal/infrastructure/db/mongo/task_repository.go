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
	"github.com/olufemi424/cpa-automation/internal/core/ports"
)

const collectionTasks = "tasks"

type TaskRepository struct {
	tasks   *mongo.Collection
	clients *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{
		tasks:   db.Collection(collectionTasks),
		clients: db.Collection(collectionClients),
	}
}

// scopedClientIDs resolves the access scope to the set of client ids it
// covers, so task queries can filter by owning case. An unrestricted scope
// returns nil (no client filter).
func (r *TaskRepository) scopedClientIDs(ctx context.Context, scope domain.AccessScope) ([]string, error) {
	filter := scopeFilter(scope)
	if len(filter) == 0 {
		return nil, nil
	}
	raw, err := r.clients.Distinct(ctx, "_id", filter)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids, nil
}

// taskQuery builds the query document for the scope, optionally narrowed to
// one requested client. Scoped queries with no matching clients use an
// impossible id list so the result is empty rather than unscoped.
func (r *TaskRepository) taskQuery(ctx context.Context, scope domain.AccessScope, clientID string) (bson.M, error) {
	ids, err := r.scopedClientIDs(ctx, scope)
	if err != nil {
		return nil, err
	}
	query := bson.M{}
	if clause, ok := clientIDClause(ids, scope.Restricted(), clientID); ok {
		query["client_id"] = clause
	}
	return query, nil
}

// clientIDClause intersects the scope's client id set with an optional
// requested client id. A requested client outside a restricted scope yields
// an impossible clause; the scope is never widened by the request.
func clientIDClause(ids []string, restricted bool, clientID string) (interface{}, bool) {
	if clientID != "" {
		if !restricted {
			return clientID, true
		}
		for _, id := range ids {
			if id == clientID {
				return clientID, true
			}
		}
		return bson.M{"$in": []string{}}, true
	}
	if restricted {
		if ids == nil {
			ids = []string{}
		}
		return bson.M{"$in": ids}, true
	}
	return nil, false
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	t.ID = primitive.NewObjectID().Hex()
	if _, err := r.tasks.InsertOne(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Task
	err := r.tasks.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) List(ctx context.Context, filter ports.ListTasksFilter) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query, err := r.taskQuery(ctx, filter.Scope, filter.ClientID)
	if err != nil {
		return nil, err
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.AssignedToID != "" {
		query["assigned_to_id"] = filter.AssignedToID
	}
	if filter.Search != "" {
		query["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": filter.Search, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": filter.Search, "$options": "i"}},
		}
	}

	// Incomplete first, then nearest due date, then newest.
	sort := bson.D{
		{Key: "is_completed", Value: 1},
		{Key: "due_date", Value: 1},
		{Key: "created_at", Value: -1},
	}

	cur, err := r.tasks.Find(ctx, query, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tasks []*domain.Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, id string, upd ports.TaskUpdate) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	unset := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.AssignedToID != nil {
		set["assigned_to_id"] = *upd.AssignedToID
	}
	if upd.DueDate != nil {
		set["due_date"] = *upd.DueDate
	}
	if upd.IsCompleted != nil {
		set["is_completed"] = *upd.IsCompleted
		if *upd.IsCompleted && upd.CompletedAt != nil {
			set["completed_at"] = *upd.CompletedAt
		} else if !*upd.IsCompleted {
			unset["completed_at"] = ""
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var updated domain.Task
	err := r.tasks.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (r *TaskRepository) CountByStatus(ctx context.Context, scope domain.AccessScope) (map[domain.ClientStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	match, err := r.taskQuery(ctx, scope, "")
	if err != nil {
		return nil, err
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}

	cur, err := r.tasks.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	counts := make(map[domain.ClientStatus]int64)
	for cur.Next(ctx) {
		var row struct {
			Status domain.ClientStatus `bson:"_id"`
			Count  int64               `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.Status] = row.Count
	}
	return counts, cur.Err()
}

func (r *TaskRepository) CountCompletedSince(ctx context.Context, scope domain.AccessScope, since time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query, err := r.taskQuery(ctx, scope, "")
	if err != nil {
		return 0, err
	}
	query["is_completed"] = true
	query["completed_at"] = bson.M{"$gte": since}
	return r.tasks.CountDocuments(ctx, query)
}

func (r *TaskRepository) CountOverdue(ctx context.Context, scope domain.AccessScope, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query, err := r.taskQuery(ctx, scope, "")
	if err != nil {
		return 0, err
	}
	query["is_completed"] = false
	query["due_date"] = bson.M{"$lt": now}
	return r.tasks.CountDocuments(ctx, query)
}

func (r *TaskRepository) ListDueBetween(ctx context.Context, scope domain.AccessScope, from, to time.Time) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query, err := r.taskQuery(ctx, scope, "")
	if err != nil {
		return nil, err
	}
	query["is_completed"] = false
	query["due_date"] = bson.M{"$gte": from, "$lte": to}

	cur, err := r.tasks.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tasks []*domain.Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// EnsureIndexes creates necessary indexes on the tasks collection.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_to_id", Value: 1}}},
		{Keys: bson.D{{Key: "due_date", Value: 1}}},
	}

	_, err := r.tasks.Indexes().CreateMany(ctx, indexes)
	return err
}
