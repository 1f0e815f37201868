package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestIndexes(t *testing.T) {
	indexes := Indexes()
	require.Len(t, indexes, 3)

	want := []struct {
		name  string
		field string
	}{
		{"name_1", "name"},
		{"type_1", "type"},
		{"challenge_rating_1", "challenge_rating"},
	}
	for i, w := range want {
		assert.Equal(t, w.name, indexes[i].Name)
		assert.Equal(t, bson.D{{Key: w.field, Value: 1}}, indexes[i].Keys)
	}
}

func TestIndexedFieldsMatchDocument(t *testing.T) {
	data, err := bson.Marshal(Creature{Name: "Owlbear", Type: "monstrosity", ChallengeRating: 3})
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(data, &doc))

	for _, spec := range Indexes() {
		for _, key := range spec.Keys {
			assert.Contains(t, doc, key.Key)
		}
	}
	assert.NotContains(t, doc, "_id")
}

func TestIndexSpecModel(t *testing.T) {
	spec := Indexes()[2]
	model := spec.Model()

	assert.Equal(t, spec.Keys, model.Keys)
	require.NotNil(t, model.Options)
	require.NotNil(t, model.Options.Name)
	assert.Equal(t, "challenge_rating_1", *model.Options.Name)
}

func TestIndexSpecEqual(t *testing.T) {
	base := IndexSpec{Name: "type_1", Keys: bson.D{{Key: "type", Value: 1}}}

	tests := []struct {
		name  string
		other IndexSpec
		want  bool
	}{
		{"same", base, true},
		{"int32 direction", IndexSpec{Name: "type_1", Keys: bson.D{{Key: "type", Value: int32(1)}}}, true},
		{"double direction", IndexSpec{Name: "type_1", Keys: bson.D{{Key: "type", Value: 1.0}}}, true},
		{"descending", IndexSpec{Name: "type_1", Keys: bson.D{{Key: "type", Value: -1}}}, false},
		{"other field", IndexSpec{Name: "type_1", Keys: bson.D{{Key: "name", Value: 1}}}, false},
		{"other name", IndexSpec{Name: "kind", Keys: bson.D{{Key: "type", Value: 1}}}, false},
		{"text index", IndexSpec{Name: "type_1", Keys: bson.D{{Key: "type", Value: "text"}}}, false},
		{"compound", IndexSpec{Name: "type_1", Keys: bson.D{{Key: "type", Value: 1}, {Key: "name", Value: 1}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Equal(tt.other))
		})
	}
}
