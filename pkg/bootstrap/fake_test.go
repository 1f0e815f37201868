package bootstrap

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/grimhallow/creaturedb/pkg/creatures/types"
)

// fakeServer is an in memory Server that answers like mongod does for
// the handful of commands the bootstrap sends
type fakeServer struct {
	users     map[string]map[string]User
	databases map[string]map[string][]types.IndexSpec
	// fail makes the named operation return the error
	fail  map[string]error
	calls []string
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		users:     map[string]map[string]User{},
		databases: map[string]map[string][]types.IndexSpec{},
		fail:      map[string]error{},
	}
}

func (s *fakeServer) Database(name string) Database {
	return &fakeDatabase{srv: s, name: name}
}

// databaseNames lists databases that were written to
func (s *fakeServer) databaseNames() []string {
	var names []string
	for name := range s.databases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type fakeDatabase struct {
	srv  *fakeServer
	name string
}

func (d *fakeDatabase) Name() string {
	return d.name
}

func (d *fakeDatabase) call(op string) error {
	d.srv.calls = append(d.srv.calls, op)
	return d.srv.fail[op]
}

func (d *fakeDatabase) collections() map[string][]types.IndexSpec {
	cols, ok := d.srv.databases[d.name]
	if !ok {
		cols = map[string][]types.IndexSpec{}
		d.srv.databases[d.name] = cols
	}
	return cols
}

func (d *fakeDatabase) CreateUser(ctx context.Context, user User) error {
	if err := d.call("createUser"); err != nil {
		return err
	}

	users, ok := d.srv.users[d.name]
	if !ok {
		users = map[string]User{}
		d.srv.users[d.name] = users
	}
	if _, ok := users[user.Name]; ok {
		return mongo.CommandError{
			Code:    51003,
			Name:    "Location51003",
			Message: fmt.Sprintf("User \"%s@%s\" already exists", user.Name, d.name),
		}
	}
	users[user.Name] = user
	d.collections()["system.users"] = nil
	return nil
}

func (d *fakeDatabase) CreateCollection(ctx context.Context, name string) error {
	if err := d.call("create"); err != nil {
		return err
	}

	cols := d.collections()
	if _, ok := cols[name]; ok {
		return mongo.CommandError{
			Code:    48,
			Name:    "NamespaceExists",
			Message: fmt.Sprintf("Collection %s.%s already exists.", d.name, name),
		}
	}
	cols[name] = []types.IndexSpec{{Name: idIndexName, Keys: bson.D{{Key: "_id", Value: int32(1)}}}}
	return nil
}

func (d *fakeDatabase) CreateIndexes(ctx context.Context, collection string, indexes []types.IndexSpec) ([]string, error) {
	if err := d.call("createIndexes"); err != nil {
		return nil, err
	}

	cols := d.collections()
	existing, ok := cols[collection]
	if !ok {
		existing = []types.IndexSpec{{Name: idIndexName, Keys: bson.D{{Key: "_id", Value: int32(1)}}}}
	}

	// the command is atomic, check everything before applying
	var add []types.IndexSpec
	for _, spec := range indexes {
		found := false
		for _, idx := range existing {
			if idx.Name != spec.Name {
				continue
			}
			if !idx.Equal(spec) {
				return nil, mongo.CommandError{
					Code:    86,
					Name:    "IndexKeySpecsConflict",
					Message: fmt.Sprintf("An existing index has the same name as the requested index: %s", spec.Name),
				}
			}
			found = true
		}
		if !found {
			add = append(add, spec)
		}
	}

	cols[collection] = append(existing, add...)

	names := make([]string, 0, len(indexes))
	for _, spec := range indexes {
		names = append(names, spec.Name)
	}
	return names, nil
}

func (d *fakeDatabase) ListCollections(ctx context.Context) ([]string, error) {
	if err := d.call("listCollections"); err != nil {
		return nil, err
	}

	var names []string
	for name := range d.srv.databases[d.name] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (d *fakeDatabase) ListIndexes(ctx context.Context, collection string) ([]types.IndexSpec, error) {
	if err := d.call("listIndexes"); err != nil {
		return nil, err
	}

	indexes, ok := d.srv.databases[d.name][collection]
	if !ok {
		return nil, mongo.CommandError{Code: 26, Name: "NamespaceNotFound", Message: "ns does not exist"}
	}
	return append([]types.IndexSpec(nil), indexes...), nil
}
