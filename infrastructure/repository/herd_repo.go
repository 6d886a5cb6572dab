package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"herdly-go/domain/herd"
)

// herdDocument is the MongoDB document structure for herds.
// The herd name is the document _id: it is the natural primary key, and
// the primary index makes duplicate inserts fail atomically without a
// separate unique index.
type herdDocument struct {
	Name        string   `bson:"_id"`
	Description string   `bson:"description,omitempty"`
	Members     []string `bson:"members"`
	Archived    bool     `bson:"archived"`
}

// MongoHerdStore implements herd.Store and herd.Coordinator using
// MongoDB. Conditional updates ride on filtered UpdateOne calls, so the
// guard is evaluated server-side at commit time; multi-record
// operations run inside an explicit session transaction.
type MongoHerdStore struct {
	collection *mongo.Collection
	client     *mongo.Client
	logger     *slog.Logger
}

// NewMongoHerdStore creates a new MongoDB-based herd store.
func NewMongoHerdStore(db *MongoDB, logger *slog.Logger) *MongoHerdStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &MongoHerdStore{
		collection: db.Collection("herd"),
		client:     db.Client(),
		logger:     logger,
	}
}

// FindByName retrieves a herd by name. Returns nil, nil when absent.
func (r *MongoHerdStore) FindByName(ctx context.Context, name string) (*herd.Herd, error) {
	filter := bson.M{"_id": name}
	var doc herdDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, classifyMongoErr("find herd", err)
	}

	return documentToHerd(&doc), nil
}

// FindAll retrieves all herds, active and archived.
func (r *MongoHerdStore) FindAll(ctx context.Context) ([]*herd.Herd, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, classifyMongoErr("find herds", err)
	}
	defer cursor.Close(ctx)

	var docs []herdDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, classifyMongoErr("decode herds", err)
	}

	herds := make([]*herd.Herd, len(docs))
	for i, doc := range docs {
		herds[i] = documentToHerd(&doc)
	}

	return herds, nil
}

// InsertIfAbsent creates a new herd. The primary index on _id rejects a
// duplicate name atomically, racing inserts included.
func (r *MongoHerdStore) InsertIfAbsent(ctx context.Context, h *herd.Herd) error {
	doc := herdToDocument(h)
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return herd.NewError(herd.KindDuplicateName, "herd %q already exists", h.Name)
		}
		return classifyMongoErr("insert herd", err)
	}

	r.logger.Info("Herd inserted", "name", h.Name)
	return nil
}

// ConditionalUpdate applies mutations to the named herd, guarded by the
// predicates. Guards travel in the update filter, so a record that no
// longer satisfies them simply does not match, which surfaces as
// KindConflict.
func (r *MongoHerdStore) ConditionalUpdate(ctx context.Context, name string, preds []herd.Predicate, muts []herd.Mutation) error {
	filter := predicatesToFilter(name, preds)
	update, err := mutationsToUpdate(muts)
	if err != nil {
		return err
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return classifyMongoErr("update herd", err)
	}
	if result.MatchedCount == 0 {
		return herd.NewError(herd.KindConflict, "herd %q changed concurrently or is gone", name)
	}

	r.logger.Debug("Herd updated", "name", name)
	return nil
}

// InTransaction runs fn inside one MongoDB transaction. The transaction
// is started and committed explicitly rather than through the driver's
// retrying helper, so a write conflict aborts once and surfaces as
// KindConflict for the caller to retry with fresh state.
func (r *MongoHerdStore) InTransaction(ctx context.Context, fn func(ctx context.Context, s herd.Store) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return classifyMongoErr("start session", err)
	}
	defer session.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	err = mongo.WithSession(ctx, session, func(sc mongo.SessionContext) error {
		if err := session.StartTransaction(txnOpts); err != nil {
			return classifyMongoErr("start transaction", err)
		}

		if err := fn(sc, r); err != nil {
			_ = session.AbortTransaction(sc)
			return err
		}

		if err := session.CommitTransaction(sc); err != nil {
			return classifyMongoErr("commit transaction", err)
		}
		return nil
	})

	if err != nil {
		var he *herd.Error
		if errors.As(err, &he) {
			return he
		}
		return classifyMongoErr("transaction", err)
	}
	return nil
}

// predicatesToFilter translates guard predicates into the update
// filter. The predicate set is closed; an unknown type is a programming
// error and panics at the type switch.
func predicatesToFilter(name string, preds []herd.Predicate) bson.M {
	filter := bson.M{"_id": name}
	if len(preds) == 0 {
		return filter
	}

	conds := make([]bson.M, 0, len(preds))
	for _, p := range preds {
		switch p := p.(type) {
		case herd.NotArchived:
			conds = append(conds, bson.M{"archived": false})
		case herd.Contains:
			conds = append(conds, bson.M{"members": p.Animal})
		case herd.NotContains:
			conds = append(conds, bson.M{"members": bson.M{"$ne": p.Animal}})
		default:
			panic(fmt.Sprintf("unknown predicate type %T", p))
		}
	}
	filter["$and"] = conds
	return filter
}

// mutationsToUpdate translates mutations into one update document.
// Adds collapse into a single $addToSet (idempotent by construction),
// removals into $pullAll, archiving into $set.
func mutationsToUpdate(muts []herd.Mutation) (bson.M, error) {
	var (
		adds     []string
		pulls    []string
		archived bool
	)

	for _, m := range muts {
		switch m := m.(type) {
		case herd.PushMember:
			adds = append(adds, m.Animal)
		case herd.PushMembers:
			adds = append(adds, m.Animals...)
		case herd.PullMember:
			pulls = append(pulls, m.Animal)
		case herd.PullMembers:
			pulls = append(pulls, m.Animals...)
		case herd.MarkArchived:
			archived = true
		default:
			panic(fmt.Sprintf("unknown mutation type %T", m))
		}
	}

	if archived && (len(adds) > 0 || len(pulls) > 0) {
		// A $set on members cannot be combined with $addToSet/$pullAll
		// on the same path in one update.
		return nil, herd.NewError(herd.KindDatabaseError, "archive cannot be combined with member mutations")
	}

	update := bson.M{}
	if len(adds) > 0 {
		update["$addToSet"] = bson.M{"members": bson.M{"$each": adds}}
	}
	if len(pulls) > 0 {
		update["$pullAll"] = bson.M{"members": pulls}
	}
	if archived {
		update["$set"] = bson.M{"archived": true, "members": []string{}}
	}
	if len(update) == 0 {
		return nil, herd.NewError(herd.KindDatabaseError, "no mutations given")
	}
	return update, nil
}

// classifyMongoErr maps driver failures onto the closed error-kind set.
// Transient transaction errors and write conflicts are retry-eligible
// conflicts; everything else is a database error.
func classifyMongoErr(op string, err error) error {
	var se mongo.ServerError
	if errors.As(err, &se) {
		if se.HasErrorLabel("TransientTransactionError") || se.HasErrorCode(112) {
			return herd.NewError(herd.KindConflict, "%s: transaction conflict: %v", op, err)
		}
	}
	return herd.NewError(herd.KindDatabaseError, "%s: %v", op, err)
}

// documentToHerd converts a MongoDB document to a domain Herd.
func documentToHerd(doc *herdDocument) *herd.Herd {
	members := doc.Members
	if members == nil {
		members = []string{}
	}
	return &herd.Herd{
		Name:        doc.Name,
		Description: doc.Description,
		Members:     members,
		Archived:    doc.Archived,
	}
}

// herdToDocument converts a domain Herd to a MongoDB document.
func herdToDocument(h *herd.Herd) *herdDocument {
	members := h.Members
	if members == nil {
		members = []string{}
	}
	return &herdDocument{
		Name:        h.Name,
		Description: h.Description,
		Members:     members,
		Archived:    h.Archived,
	}
}

// Ensure MongoHerdStore implements the domain contracts
var (
	_ herd.Store       = (*MongoHerdStore)(nil)
	_ herd.Coordinator = (*MongoHerdStore)(nil)
)
