// Package archive keeps ledgers of past runs in MongoDB.
//
// Every individual is stored as one document in a collection, keyed by
// (simulation_id, id). Saving a ledger twice is idempotent, so a run can be
// archived after every checkpoint. BSON dates have millisecond precision;
// timestamps of loaded individuals are truncated accordingly.
package archive

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/beeline/pkg/errors"
	"github.com/matzehuels/beeline/pkg/lineage"
)

// Default names used by [Connect].
const (
	DefaultDatabase   = "beeline"
	DefaultCollection = "individuals"
)

// Mongo is an archive of individuals backed by one MongoDB collection.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect opens a client for uri and ensures the collection's unique index.
// The database and collection default to [DefaultDatabase] and
// [DefaultCollection] when empty.
func Connect(ctx context.Context, uri, database, collection string) (*Mongo, error) {
	if database == "" {
		database = DefaultDatabase
	}
	if collection == "" {
		collection = DefaultCollection
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	m := &Mongo{client: client, coll: client.Database(database).Collection(collection)}
	if err := m.ensureIndex(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return m, nil
}

func (m *Mongo) ensureIndex(ctx context.Context) error {
	_, err := m.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "simulation_id", Value: 1}, {Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("simulation_id_1_id_1"),
	})
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Save upserts every individual. It returns the number of documents that
// were inserted or changed.
func (m *Mongo) Save(ctx context.Context, individuals []lineage.Individual) (int64, error) {
	if len(individuals) == 0 {
		return 0, nil
	}
	res, err := m.coll.BulkWrite(ctx, upserts(individuals), options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("save individuals: %w", err)
	}
	return res.UpsertedCount + res.ModifiedCount, nil
}

// Load returns the ledger of simulationID, in id order. An unknown
// simulation is [errors.ErrCodeNotFound].
func (m *Mongo) Load(ctx context.Context, simulationID string, opts ...lineage.LedgerOption) (*lineage.Ledger, error) {
	cur, err := m.coll.Find(ctx, simulationFilter(simulationID),
		options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find individuals: %w", err)
	}
	var records []lineage.Individual
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode individuals: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "simulation %q is not archived", simulationID)
	}
	l, err := lineage.Restore(records, opts...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "restore simulation %q", simulationID)
	}
	return l, nil
}

// Simulations lists the archived simulation ids.
func (m *Mongo) Simulations(ctx context.Context) ([]string, error) {
	values, err := m.coll.Distinct(ctx, "simulation_id", bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list simulations: %w", err)
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func simulationFilter(simulationID string) bson.D {
	return bson.D{{Key: "simulation_id", Value: simulationID}}
}

func upserts(individuals []lineage.Individual) []mongo.WriteModel {
	models := make([]mongo.WriteModel, len(individuals))
	for i, ind := range individuals {
		models[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.D{
				{Key: "simulation_id", Value: ind.SimulationID},
				{Key: "id", Value: ind.ID},
			}).
			SetReplacement(ind).
			SetUpsert(true)
	}
	return models
}
