package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	domcatalog "github.com/kailas-cloud/omnisearch/internal/domain/catalog"
	domprofile "github.com/kailas-cloud/omnisearch/internal/domain/profile"
	"github.com/kailas-cloud/omnisearch/internal/domain/social"
)

// Fixture is a development data set.
type Fixture struct {
	Profiles []ProfileRow `yaml:"profiles"`
	Sitters  []ItemRow    `yaml:"sitters"`
	Products []ItemRow    `yaml:"products"`
	Follows  []Edge       `yaml:"follows"`
	Requests []Edge       `yaml:"requests"`
}

// ProfileRow is a parent profile in fixture form.
type ProfileRow struct {
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
	Username        string `yaml:"username"`
	ImageURL        string `yaml:"image_url"`
	Bio             string `yaml:"bio"`
	Phone           string `yaml:"phone"`
	Location        string `yaml:"location"`
	Privacy         string `yaml:"privacy"`
	PhoneSearchable bool   `yaml:"phone_searchable"`
}

// ItemRow is a sitter or product in fixture form.
type ItemRow struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Username    string  `yaml:"username"`
	ImageURL    string  `yaml:"image_url"`
	Description string  `yaml:"description"`
	Rating      float64 `yaml:"rating"`
	ReviewCount int     `yaml:"review_count"`
}

// Edge is a directed relationship between two profile ids.
type Edge struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// LoadFixture reads and validates a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}
	return &f, nil
}

// Validate checks ids are present and unique per type, privacy values are
// known and every edge joins known profiles.
func (f *Fixture) Validate() error {
	profiles := make(map[string]struct{}, len(f.Profiles))
	for i, p := range f.Profiles {
		if p.ID == "" || p.Name == "" {
			return fmt.Errorf("profiles[%d]: id and name are required", i)
		}
		if _, dup := profiles[p.ID]; dup {
			return fmt.Errorf("profiles[%d]: duplicate id %q", i, p.ID)
		}
		switch social.Privacy(p.Privacy) {
		case social.Public, social.Private, "":
		default:
			return fmt.Errorf("profiles[%d]: unknown privacy %q", i, p.Privacy)
		}
		profiles[p.ID] = struct{}{}
	}

	for name, rows := range map[string][]ItemRow{"sitters": f.Sitters, "products": f.Products} {
		seen := make(map[string]struct{}, len(rows))
		for i, r := range rows {
			if r.ID == "" || r.Name == "" {
				return fmt.Errorf("%s[%d]: id and name are required", name, i)
			}
			if _, dup := seen[r.ID]; dup {
				return fmt.Errorf("%s[%d]: duplicate id %q", name, i, r.ID)
			}
			if r.Rating < 0 || r.Rating > 5 {
				return fmt.Errorf("%s[%d]: rating must be in [0, 5]", name, i)
			}
			seen[r.ID] = struct{}{}
		}
	}

	for name, edges := range map[string][]Edge{"follows": f.Follows, "requests": f.Requests} {
		for i, e := range edges {
			_, okFrom := profiles[e.From]
			_, okTo := profiles[e.To]
			if !okFrom || !okTo {
				return fmt.Errorf("%s[%d]: unknown profile in %s -> %s", name, i, e.From, e.To)
			}
			if e.From == e.To {
				return fmt.Errorf("%s[%d]: self edge %s", name, i, e.From)
			}
		}
	}
	return nil
}

// DomainProfiles converts profile rows.
func (f *Fixture) DomainProfiles() []domprofile.Profile {
	out := make([]domprofile.Profile, len(f.Profiles))
	for i, p := range f.Profiles {
		out[i] = domprofile.Profile{
			ID:              p.ID,
			Name:            p.Name,
			Username:        p.Username,
			ImageURL:        p.ImageURL,
			Bio:             p.Bio,
			Phone:           p.Phone,
			Location:        p.Location,
			Privacy:         social.ParsePrivacy(p.Privacy),
			PhoneSearchable: p.PhoneSearchable,
		}
	}
	return out
}

func domainItems(rows []ItemRow) []domcatalog.Item {
	out := make([]domcatalog.Item, len(rows))
	for i, r := range rows {
		out[i] = domcatalog.Item{
			ID:          r.ID,
			Name:        r.Name,
			Username:    r.Username,
			ImageURL:    r.ImageURL,
			Description: r.Description,
			Rating:      r.Rating,
			ReviewCount: r.ReviewCount,
		}
	}
	return out
}
