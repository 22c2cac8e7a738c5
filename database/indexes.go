package database

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type IndexSpec struct {
	Name   string
	Key    bson.D
	Unique bool
}

func (s IndexSpec) Model() mongo.IndexModel {
	opts := options.Index().SetName(s.Name)
	if s.Unique {
		opts.SetUnique(true)
	}
	return mongo.IndexModel{Keys: s.Key, Options: opts}
}

// WorkOrderIndexSpecs is the canonical index set of the work order collection.
// The _id index is implicit and not listed.
func WorkOrderIndexSpecs() []IndexSpec {
	return []IndexSpec{
		{Name: "brigada_id_1", Key: bson.D{{Key: "brigada_id", Value: 1}}},
		{Name: "cliente_numero_1", Key: bson.D{{Key: "cliente_numero", Value: 1}}},
		{Name: "fecha_ejecucion_-1", Key: bson.D{{Key: "fecha_ejecucion", Value: -1}}},
		{Name: "estado_1", Key: bson.D{{Key: "estado", Value: 1}}},
		{Name: "fecha_creacion_-1", Key: bson.D{{Key: "fecha_creacion", Value: -1}}},
		{Name: "estado_1_fecha_ejecucion_-1", Key: bson.D{
			{Key: "estado", Value: 1},
			{Key: "fecha_ejecucion", Value: -1},
		}},
	}
}

// MissingIndexes returns the specs whose normalized key is not in existing.
func MissingIndexes(specs []IndexSpec, existing map[string]struct{}) []IndexSpec {
	var missing []IndexSpec
	for _, s := range specs {
		if _, found := existing[NormalizeKey(s.Key)]; !found {
			missing = append(missing, s)
		}
	}
	return missing
}

// ListIndexKeys returns a set keyed by normalized key spec like "estado:1.fecha_ejecucion:-1".
func ListIndexKeys(ctx context.Context, coll *mongo.Collection) (map[string]struct{}, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string]struct{})
	for cur.Next(ctx) {
		var doc struct {
			Key bson.D `bson:"key"`
		}
		if err := cur.Decode(&doc); err != nil {
			continue
		}
		out[NormalizeKey(doc.Key)] = struct{}{}
	}
	return out, cur.Err()
}

// NormalizeKey builds a string like "field1:1.field2:-1". Fields keep their
// key order: a compound index on {a, b} is a different index from {b, a}.
func NormalizeKey(d bson.D) string {
	if len(d) == 0 {
		return ""
	}
	parts := make([]string, 0, len(d))
	for _, e := range d {
		parts = append(parts, e.Key+":"+keyDirection(e.Value))
	}
	return strings.Join(parts, ".")
}

func keyDirection(v interface{}) string {
	switch n := v.(type) {
	case int32:
		return fmt.Sprintf("%d", n)
	case int64:
		return fmt.Sprintf("%d", n)
	case int:
		return fmt.Sprintf("%d", n)
	case float64:
		return fmt.Sprintf("%d", int64(n))
	default:
		return fmt.Sprintf("%v", v)
	}
}

// KeyAsJS returns a JS object literal for createIndex keys, e.g. { estado: 1, fecha_ejecucion: -1 }
func KeyAsJS(d bson.D) string {
	if len(d) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(d))
	for _, e := range d {
		parts = append(parts, fmt.Sprintf("%s: %v", e.Key, e.Value))
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}
