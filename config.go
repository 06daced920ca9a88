package luckdraw

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is one named draw configuration as loaded from YAML. Optional
// fields use pointers so "absent" and "zero" stay distinguishable; Normalize
// fills in the defaults.
//
//	mode: grid_lottery
//	quantity: 2
//	allow_repeat: false
//	seed: 42          # optional; omit for crypto randomness
//	items:
//	  - id: alice
//	    name: Alice
type Profile struct {
	Mode        string        `yaml:"mode"`
	Quantity    *int          `yaml:"quantity,omitempty"`
	AllowRepeat bool          `yaml:"allow_repeat,omitempty"`
	Seed        *uint64       `yaml:"seed,omitempty"`
	Items       []ProfileItem `yaml:"items"`
}

// ProfileItem mirrors Item in the YAML schema.
type ProfileItem struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// ParseProfile decodes and validates a YAML profile.
func ParseProfile(data []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// LoadProfile reads and parses a YAML profile from disk.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	return ParseProfile(data)
}

// Validate checks the profile against the same rules Select enforces, so a
// bad file fails at load time rather than at draw time.
func (p Profile) Validate() error {
	if _, err := ParseMode(p.Mode); err != nil {
		return fmt.Errorf("profile mode %q: %w", p.Mode, err)
	}
	if len(p.Items) == 0 {
		return ErrEmptyItemList
	}
	seen := make(map[string]bool, len(p.Items))
	for i, it := range p.Items {
		if it.ID == "" {
			return &ConfigError{Field: "items", Reason: fmt.Sprintf("item %d has an empty id", i)}
		}
		if seen[it.ID] {
			return &ConfigError{Field: "items", Reason: fmt.Sprintf("duplicate item id %q", it.ID)}
		}
		seen[it.ID] = true
	}
	q := p.quantity()
	if q < 1 {
		return ErrInvalidQuantity
	}
	if !p.AllowRepeat && q > len(p.Items) {
		return ErrInvalidQuantity
	}
	return nil
}

func (p Profile) quantity() int {
	if p.Quantity == nil {
		return 1
	}
	return *p.Quantity
}

// DrawMode returns the parsed Mode. Call Validate (or ParseProfile) first.
func (p Profile) DrawMode() Mode {
	m, err := ParseMode(p.Mode)
	if err != nil {
		return ModeGridLottery
	}
	return m
}

// Request converts the profile into the DrawRequest it describes.
func (p Profile) Request() DrawRequest {
	items := make([]Item, len(p.Items))
	for i, it := range p.Items {
		items[i] = Item{ID: it.ID, Name: it.Name}
	}
	return DrawRequest{Items: items, Quantity: p.quantity(), AllowRepeat: p.AllowRepeat}
}

// Source returns the RandomSource the profile asks for: seeded when a seed is
// present, the crypto default otherwise.
func (p Profile) Source() RandomSource {
	if p.Seed != nil {
		return NewSeededSource(*p.Seed)
	}
	return DefaultSource()
}
