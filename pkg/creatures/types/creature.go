package types

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// CreatureCollection db collection name
	CreatureCollection = "creatures"
)

// indexed document fields
const (
	FieldName            = "name"
	FieldType            = "type"
	FieldChallengeRating = "challenge_rating"
)

// Creature is the part of a creature document the database knows about.
// The collection is schemaless, documents may carry any other field.
type Creature struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Type            string             `bson:"type" json:"type"`
	ChallengeRating float64            `bson:"challenge_rating" json:"challenge_rating"`
}
