// Package store persists circuits under generated IDs.
//
// [MongoStore] keeps one document per circuit in the "circuits" collection;
// [MemoryStore] keeps them in a map and backs tests and the server when no
// database is configured. Both hold the circuit in its JSON form, so a
// loaded circuit equals the saved one.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/netweave/pkg/errors"
	"github.com/matzehuels/netweave/pkg/netlist"
)

// Record describes a stored circuit.
type Record struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Instances int       `bson:"instances" json:"instances"`
	Subckts   int       `bson:"subckts" json:"subckts"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Store saves and loads circuits. Missing IDs fail with NOT_FOUND.
type Store interface {
	Save(ctx context.Context, name string, c *netlist.Circuit) (Record, error)
	Load(ctx context.Context, id string) (*netlist.Circuit, Record, error)
	Delete(ctx context.Context, id string) error
	// List returns records newest first. limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]Record, error)
	Close(ctx context.Context) error
}

// document is the persisted form of a circuit.
type document struct {
	Record  `bson:",inline"`
	Circuit string `bson:"circuit"`
}

var now = time.Now

func newDocument(name string, c *netlist.Circuit) (document, error) {
	data, err := c.ToJSON()
	if err != nil {
		return document{}, err
	}
	return document{
		Record: Record{
			ID:        uuid.NewString(),
			Name:      name,
			Instances: len(c.Instances()),
			Subckts:   len(c.Subckts()),
			CreatedAt: now().UTC().Truncate(time.Millisecond),
		},
		Circuit: string(data),
	}, nil
}

func (d document) circuit() (*netlist.Circuit, error) {
	c, err := netlist.CircuitFromJSON([]byte(d.Circuit))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode stored circuit %s", d.ID)
	}
	return c, nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "circuit %s not found", id)
}
