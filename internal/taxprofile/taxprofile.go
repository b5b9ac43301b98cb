// Package taxprofile manages named, reusable sets of tax elements kept in a
// YAML file. Profiles are templates: applying one stamps copies of its
// elements, with fresh ids, onto an income entry.
package taxprofile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Te4g/financial-tracker/internal/models"
	"github.com/Te4g/financial-tracker/internal/parsererror"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// ErrProfileNotFound is returned when no profile carries the requested name.
var ErrProfileNotFound = errors.New("tax profile not found")

// Profile is a named set of tax elements.
type Profile struct {
	Name     string
	Elements []models.TaxElement
}

// Store loads and saves tax profiles from a YAML file.
type Store struct {
	ProfilesFile string
}

// NewStore creates a store reading from the given YAML file.
func NewStore(profilesFile string) *Store {
	return &Store{ProfilesFile: profilesFile}
}

type profileDocument struct {
	Profiles []profileYAML `yaml:"profiles"`
}

type profileYAML struct {
	Name     string        `yaml:"name"`
	Elements []elementYAML `yaml:"elements"`
}

// elementYAML keeps percentages as strings so the file round-trips without
// binary floating point drift.
type elementYAML struct {
	Name       string `yaml:"name"`
	Percentage string `yaml:"percentage"`
}

// List returns all profiles sorted by name. A missing file yields an empty
// list, not an error.
func (s *Store) List() ([]Profile, error) {
	data, err := os.ReadFile(s.ProfilesFile)
	if os.IsNotExist(err) {
		log.Warnf("Tax profiles file not found: %s", s.ProfilesFile)
		return []Profile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading tax profiles file: %w", err)
	}

	var doc profileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing tax profiles file: %w", err)
	}

	profiles := make([]Profile, 0, len(doc.Profiles))
	for _, p := range doc.Profiles {
		profile, err := fromYAML(p)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })

	log.Debugf("Loaded %d tax profiles from %s", len(profiles), s.ProfilesFile)
	return profiles, nil
}

// Get returns the profile with the given name.
func (s *Store) Get(name string) (Profile, error) {
	profiles, err := s.List()
	if err != nil {
		return Profile{}, err
	}
	for _, profile := range profiles {
		if profile.Name == name {
			return profile, nil
		}
	}
	return Profile{}, fmt.Errorf("profile '%s': %w", name, ErrProfileNotFound)
}

// Set inserts or replaces the profile and saves the file.
func (s *Store) Set(profile Profile) error {
	if profile.Name == "" {
		return fmt.Errorf("profile name is empty")
	}
	for _, element := range profile.Elements {
		if err := element.Validate(); err != nil {
			return fmt.Errorf("invalid profile '%s': %w", profile.Name, err)
		}
	}

	profiles, err := s.List()
	if err != nil {
		return err
	}

	replaced := false
	for i, existing := range profiles {
		if existing.Name == profile.Name {
			profiles[i] = profile
			replaced = true
			break
		}
	}
	if !replaced {
		profiles = append(profiles, profile)
	}

	return s.save(profiles)
}

// Remove deletes the profile with the given name and saves the file.
func (s *Store) Remove(name string) error {
	profiles, err := s.List()
	if err != nil {
		return err
	}

	kept := profiles[:0]
	for _, profile := range profiles {
		if profile.Name != name {
			kept = append(kept, profile)
		}
	}
	if len(kept) == len(profiles) {
		return fmt.Errorf("profile '%s': %w", name, ErrProfileNotFound)
	}

	return s.save(kept)
}

// Apply returns copies of the profile's elements with fresh ids, ready to be
// attached to an income entry.
func (p Profile) Apply(ids models.IDSource) []models.TaxElement {
	elements := make([]models.TaxElement, len(p.Elements))
	for i, element := range p.Elements {
		elements[i] = models.TaxElement{
			ID:         ids.NewID(),
			Name:       element.Name,
			Percentage: element.Percentage,
		}
	}
	return elements
}

func (s *Store) save(profiles []Profile) error {
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })

	doc := profileDocument{Profiles: make([]profileYAML, len(profiles))}
	for i, profile := range profiles {
		doc.Profiles[i] = toYAML(profile)
	}

	dir := filepath.Dir(s.ProfilesFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error marshaling tax profiles: %w", err)
	}

	if err := os.WriteFile(s.ProfilesFile, data, 0644); err != nil {
		return fmt.Errorf("error writing tax profiles: %w", err)
	}

	log.Debugf("Saved %d tax profiles to %s", len(profiles), s.ProfilesFile)
	return nil
}

func fromYAML(p profileYAML) (Profile, error) {
	profile := Profile{Name: p.Name, Elements: make([]models.TaxElement, 0, len(p.Elements))}
	for _, element := range p.Elements {
		percentage, err := decimal.NewFromString(element.Percentage)
		if err != nil {
			return Profile{}, fmt.Errorf("profile '%s': %w",
				p.Name, &parsererror.ParseError{Parser: "taxprofile", Field: "percentage", Value: element.Percentage, Err: err})
		}
		profile.Elements = append(profile.Elements, models.TaxElement{
			Name:       element.Name,
			Percentage: percentage,
		})
	}
	return profile, nil
}

func toYAML(profile Profile) profileYAML {
	p := profileYAML{Name: profile.Name, Elements: make([]elementYAML, len(profile.Elements))}
	for i, element := range profile.Elements {
		p.Elements[i] = elementYAML{
			Name:       element.Name,
			Percentage: element.Percentage.String(),
		}
	}
	return p
}
