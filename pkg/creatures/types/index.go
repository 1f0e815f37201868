package types

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Ascending sort direction of an index key
const Ascending = 1

// IndexSpec describes an index by name and ordered keys
type IndexSpec struct {
	Name string `bson:"name"`
	Keys bson.D `bson:"key"`
}

// ascendingIndex builds a single field ascending index named the way
// the server would name it
func ascendingIndex(field string) IndexSpec {
	return IndexSpec{
		Name: fmt.Sprintf("%s_%d", field, Ascending),
		Keys: bson.D{{Key: field, Value: Ascending}},
	}
}

// Indexes returns the indexes of the creatures collection
func Indexes() []IndexSpec {
	return []IndexSpec{
		ascendingIndex(FieldName),
		ascendingIndex(FieldType),
		ascendingIndex(FieldChallengeRating),
	}
}

// Model converts s to a mongo index model
func (s IndexSpec) Model() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    s.Keys,
		Options: options.Index().SetName(s.Name),
	}
}

// Equal reports whether both specs have the same name and keys.
// Key values are compared numerically so 1 and 1.0 match.
func (s IndexSpec) Equal(o IndexSpec) bool {
	if s.Name != o.Name || len(s.Keys) != len(o.Keys) {
		return false
	}
	for i := range s.Keys {
		if s.Keys[i].Key != o.Keys[i].Key {
			return false
		}
		a, ok := direction(s.Keys[i].Value)
		if !ok {
			return false
		}
		b, ok := direction(o.Keys[i].Value)
		if !ok || a != b {
			return false
		}
	}
	return true
}

func direction(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
