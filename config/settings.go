package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Variant selects which flavour of the bootstrap procedure runs
type Variant string

const (
	// VariantAdmin creates the root user and uses dnd_db by default
	VariantAdmin Variant = "admin"
	// VariantMonsters skips the root user and uses dnd_monster_data by default
	VariantMonsters Variant = "monsters"
)

const (
	// DefaultAdminUsername is used when MONGO_INITDB_ROOT_USERNAME is not set
	DefaultAdminUsername = "admin"
	// DefaultAdminPassword is used when MONGO_INITDB_ROOT_PASSWORD is not set
	DefaultAdminPassword = "adminpassword"
	// DefaultAdminDatabase is the default application database of VariantAdmin
	DefaultAdminDatabase = "dnd_db"
	// DefaultMonstersDatabase is the default application database of VariantMonsters
	DefaultMonstersDatabase = "dnd_monster_data"
)

var possibleVariants = []Variant{VariantAdmin, VariantMonsters}

// ParseVariant parses a variant name, case insensitive
func ParseVariant(s string) (Variant, error) {
	for _, v := range possibleVariants {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid variant '%s'", s)
}

// Settings struct
type Settings struct {
	Variant       Variant `ignored:"true"`
	AdminUsername string  `envconfig:"MONGO_INITDB_ROOT_USERNAME"`
	AdminPassword string  `envconfig:"MONGO_INITDB_ROOT_PASSWORD"`
	Database      string  `envconfig:"MONGO_INITDB_DATABASE"`
}

// Defaults returns the settings used when no environment variable is set
func Defaults(variant Variant) Settings {
	s := Settings{
		Variant:       variant,
		AdminUsername: DefaultAdminUsername,
		AdminPassword: DefaultAdminPassword,
		Database:      DefaultAdminDatabase,
	}
	if variant == VariantMonsters {
		s.Database = DefaultMonstersDatabase
	}
	return s
}

// FromEnv loads the settings of variant from the process environment.
// Unset or empty variables fall back to the default, any other value is
// taken as is.
func FromEnv(variant Variant) (Settings, error) {
	def := Defaults(variant)
	s := def
	if err := envconfig.Process("", &s); err != nil {
		return Settings{}, errors.Wrap(err, "failed to load settings from environment")
	}

	// compose passes unset interpolations as empty strings
	if s.AdminUsername == "" {
		s.AdminUsername = def.AdminUsername
	}
	if s.AdminPassword == "" {
		s.AdminPassword = def.AdminPassword
	}
	if s.Database == "" {
		s.Database = def.Database
	}

	return s, s.Valid()
}

// Valid checks if the settings can be used to run the bootstrap
func (s Settings) Valid() error {
	for _, v := range possibleVariants {
		if s.Variant == v {
			return nil
		}
	}
	return fmt.Errorf("invalid variant '%s'", s.Variant)
}

// CreatesAdmin reports whether the root user is created
func (s Settings) CreatesAdmin() bool {
	return s.Variant == VariantAdmin
}

func (s Settings) String() string {
	return fmt.Sprintf("variant=%s user=%s database=%s", s.Variant, s.AdminUsername, s.Database)
}
