package bootstrap

import (
	"context"

	"github.com/grimhallow/creaturedb/config"
	"github.com/grimhallow/creaturedb/pkg/creatures/types"
)

// primary key index every collection has
const idIndexName = "_id_"

// Report describes what Inspect found on the server
type Report struct {
	Database   string   `yaml:"database"`
	Collection string   `yaml:"collection"`
	Exists     bool     `yaml:"exists"`
	Indexes    []string `yaml:"indexes"`
	// Missing lists expected indexes absent or defined with other keys
	Missing []string `yaml:"missing,omitempty"`
	// Unexpected lists indexes that are not part of the creatures layout
	Unexpected []string `yaml:"unexpected,omitempty"`
}

// Complete reports whether the collection and all its indexes are in place
func (r Report) Complete() bool {
	return r.Exists && len(r.Missing) == 0
}

// Inspect checks the layout Run produces without modifying anything
func Inspect(ctx context.Context, srv Server, s config.Settings) (Report, error) {
	db := srv.Database(s.Database)
	report := Report{
		Database:   db.Name(),
		Collection: types.CreatureCollection,
	}

	collections, err := db.ListCollections(ctx)
	if err != nil {
		return report, Classify("list collections", err)
	}
	for _, name := range collections {
		if name == types.CreatureCollection {
			report.Exists = true
			break
		}
	}

	if !report.Exists {
		for _, spec := range types.Indexes() {
			report.Missing = append(report.Missing, spec.Name)
		}
		return report, nil
	}

	existing, err := db.ListIndexes(ctx, types.CreatureCollection)
	if err != nil {
		return report, Classify("list indexes", err)
	}

	byName := make(map[string]types.IndexSpec, len(existing))
	for _, idx := range existing {
		byName[idx.Name] = idx
		report.Indexes = append(report.Indexes, idx.Name)
	}

	expected := make(map[string]bool)
	for _, spec := range types.Indexes() {
		expected[spec.Name] = true
		idx, ok := byName[spec.Name]
		if !ok || !spec.Equal(idx) {
			report.Missing = append(report.Missing, spec.Name)
		}
	}

	for _, idx := range existing {
		if idx.Name != idIndexName && !expected[idx.Name] {
			report.Unexpected = append(report.Unexpected, idx.Name)
		}
	}

	return report, nil
}
