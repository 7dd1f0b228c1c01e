// Package store keeps a history of pipeline runs so rendered diagrams can
// be looked up by ID after the response that produced them.
//
// Two backends are provided: [MemoryStore] for the CLI and tests, and
// [MongoStore] for a server that should remember renders across restarts.
// Records hold the layout and render metadata but not the artifact bytes;
// artifacts are re-rendered from the layout on demand.
package store

import (
	"context"
	"slices"
	"time"

	"github.com/matzehuels/gatesketch/pkg/diagram"
	"github.com/matzehuels/gatesketch/pkg/pipeline"
)

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Record is one stored pipeline run.
type Record struct {
	ID         string         `json:"id" bson:"_id"`
	Expression string         `json:"expression" bson:"expression"`
	VizType    string         `json:"viz_type" bson:"viz_type"`
	Style      string         `json:"style" bson:"style"`
	Formats    []string       `json:"formats" bson:"formats"`
	Sizes      map[string]int `json:"sizes,omitempty" bson:"sizes,omitempty"`
	GateCount  int            `json:"gate_count" bson:"gate_count"`
	Depth      int            `json:"depth" bson:"depth"`
	Layout     diagram.Layout `json:"layout" bson:"layout"`
	CreatedAt  time.Time      `json:"created_at" bson:"created_at"`
}

// Store persists records. Implementations must be safe for concurrent use.
type Store interface {
	// Save inserts or replaces the record with r.ID.
	Save(ctx context.Context, r Record) error

	// Get returns the record with id, or a NOT_FOUND error.
	Get(ctx context.Context, id string) (Record, error)

	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]Record, error)

	// Close releases the backend.
	Close(ctx context.Context) error
}

// NewRecord builds a record from a finished pipeline run.
func NewRecord(res *pipeline.Result) Record {
	r := Record{
		ID:         res.ID,
		Expression: res.Layout.Expression,
		VizType:    res.Layout.VizType,
		Style:      res.Layout.Style,
		Sizes:      make(map[string]int, len(res.Artifacts)),
		GateCount:  res.Stats.GateCount,
		Depth:      res.Stats.Depth,
		Layout:     res.Layout,
		CreatedAt:  time.Now().UTC(),
	}
	for f, data := range res.Artifacts {
		r.Formats = append(r.Formats, f)
		r.Sizes[f] = len(data)
	}
	slices.Sort(r.Formats)
	return r
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
