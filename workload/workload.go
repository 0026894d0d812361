// Package workload generates deterministic contact datasets for store
// benchmarking. The same Config always yields the same records.
package workload

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	mrand "math/rand"
	"strings"

	"github.com/weiihann/contactbench/store"
)

const (
	letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits  = "0123456789"
)

// ErrNameSpace is returned when more distinct names are requested than
// NameLength letters can form.
var ErrNameSpace = errors.New("not enough distinct names")

// DefaultDomains are the email domains picked from when Config.Domains is
// empty.
var DefaultDomains = []string{
	"gmail.com", "yahoo.com", "hotmail.com", "example.com",
}

// Summary contains statistics about a generated dataset.
type Summary struct {
	Contacts int
	Domains  map[string]int
	// Collisions counts random names rejected because they were already
	// used.
	Collisions int
}

// Config controls dataset generation parameters.
type Config struct {
	Seed        int64
	NameLength  int
	PhoneLength int
	Domains     []string
}

func (c Config) withDefaults() Config {
	if c.NameLength <= 0 {
		c.NameLength = 8
	}

	if c.PhoneLength <= 0 {
		c.PhoneLength = 10
	}

	if len(c.Domains) == 0 {
		c.Domains = DefaultDomains
	}

	return c
}

// Generator produces deterministic contacts from a Config.
type Generator struct {
	cfg        Config
	rng        *mrand.Rand
	collisions int
}

// NewGenerator creates a Generator from the given Config.
func NewGenerator(cfg Config) *Generator {
	cfg = cfg.withDefaults()

	return &Generator{
		cfg: cfg,
		rng: mrand.New(mrand.NewSource(cfg.Seed)),
	}
}

// nameSpace reports whether NameLength title-cased letters can form at
// least n distinct names. Title-casing folds case, leaving 26 choices per
// position.
func (g *Generator) nameSpace(n int) bool {
	capacity := 1
	for range g.cfg.NameLength {
		if capacity >= n || capacity > math.MaxInt/26 {
			return true
		}

		capacity *= 26
	}

	return capacity >= n
}

// Contacts returns n records with pairwise distinct names.
func (g *Generator) Contacts(n int) ([]store.Record, error) {
	if !g.nameSpace(n) {
		return nil, fmt.Errorf("%w: %d requested with name length %d",
			ErrNameSpace, n, g.cfg.NameLength)
	}

	records := make([]store.Record, 0, max(n, 0))
	seen := make(map[string]struct{}, max(n, 0))

	for range n {
		var name string

		for {
			name = g.randomName()
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}

				break
			}

			g.collisions++
		}

		records = append(records, store.Record{
			Name:  name,
			Phone: g.randomPhone(),
			Email: g.randomEmail(name),
		})
	}

	return records, nil
}

// Generate writes n contacts to w as JSONL and returns a Summary.
func (g *Generator) Generate(w io.Writer, n int) (Summary, error) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	before := g.collisions
	summary := Summary{Domains: make(map[string]int)}

	contacts, err := g.Contacts(n)
	if err != nil {
		return summary, err
	}

	for _, r := range contacts {
		if err := enc.Encode(r); err != nil {
			return summary, fmt.Errorf("encode contact %q: %w", r.Name, err)
		}

		summary.Contacts++

		if _, domain, ok := strings.Cut(r.Email, "@"); ok {
			summary.Domains[domain]++
		}
	}

	summary.Collisions = g.collisions - before

	return summary, nil
}

// randomName draws NameLength ASCII letters and title-cases them.
func (g *Generator) randomName() string {
	buf := make([]byte, g.cfg.NameLength)
	for i := range buf {
		buf[i] = letters[g.rng.Intn(len(letters))]
	}

	name := strings.ToLower(string(buf))

	return strings.ToUpper(name[:1]) + name[1:]
}

func (g *Generator) randomPhone() string {
	buf := make([]byte, g.cfg.PhoneLength)
	for i := range buf {
		buf[i] = digits[g.rng.Intn(len(digits))]
	}

	return string(buf)
}

func (g *Generator) randomEmail(name string) string {
	domain := g.cfg.Domains[g.rng.Intn(len(g.cfg.Domains))]

	return strings.ToLower(name) + "@" + domain
}
