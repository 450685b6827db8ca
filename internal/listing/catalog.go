package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/cloud-ru/finboard-go/internal/logging"
	"github.com/cloud-ru/finboard-go/internal/metrics"
)

// ErrNotArray is returned when a listing file does not hold a JSON array
var ErrNotArray = errors.New("listing document is not a JSON array")

// ErrUnknownKind is returned for kinds the catalog does not serve
var ErrUnknownKind = errors.New("unknown listing kind")

// Kind describes one listing page and its backing file
type Kind struct {
	Name        string
	File        string
	Title       string
	Subtitle    string
	Placeholder string
}

// Kinds served by the dashboard
var Kinds = []Kind{
	{
		Name:        "stock",
		File:        "stocks.json",
		Title:       "Stocks",
		Subtitle:    "Monitor and analyze your stock investments",
		Placeholder: "Search stocks...",
	},
	{
		Name:        "etf",
		File:        "etf.json",
		Title:       "ETFs",
		Subtitle:    "Discover and track exchange-traded funds",
		Placeholder: "Search ETFs...",
	},
}

// LookupKind finds a kind by name
func LookupKind(name string) (Kind, bool) {
	for _, k := range Kinds {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}

// LoadFile reads a listing document. Elements that are not objects are skipped.
func LoadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	items, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNotArray)
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			records = append(records, obj)
		}
	}
	return records, nil
}

// Snapshot is the loaded state of one kind
type Snapshot struct {
	Kind    Kind
	Records []Record
	Err     error
}

// Table returns the snapshot as a table with the default columns
func (s Snapshot) Table() Table {
	return Table{Columns: DefaultColumns(), Records: s.Records}
}

// Catalog holds the records of every kind read from a data directory
type Catalog struct {
	dir string
	log *logrus.Entry

	mu     sync.RWMutex
	loaded bool
	data   map[string]Snapshot

	cron *cron.Cron
}

// NewCatalog creates an empty catalog reading from dir
func NewCatalog(dir string, log logrus.FieldLogger) *Catalog {
	return &Catalog{
		dir:  dir,
		log:  logging.Component(log, "listing"),
		data: make(map[string]Snapshot),
	}
}

// Load reads every kind concurrently. A failing file leaves its kind empty
// with the error attached; Load itself only fails when ctx is cancelled.
func (c *Catalog) Load(ctx context.Context) error {
	results := make([]Snapshot, len(Kinds))

	g, ctx := errgroup.WithContext(ctx)
	for i, k := range Kinds {
		i, k := i, k
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records, err := LoadFile(filepath.Join(c.dir, k.File))
			results[i] = Snapshot{Kind: k, Records: records, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range results {
		if s.Err != nil {
			metrics.ListingLoadErrors.WithLabelValues(s.Kind.Name).Inc()
			c.log.WithError(s.Err).WithField(logging.FieldKind, s.Kind.Name).Error("Failed to load listing data")
		} else {
			c.log.WithFields(logrus.Fields{
				logging.FieldKind:  s.Kind.Name,
				logging.FieldCount: len(s.Records),
			}).Info("Listing data loaded")
		}
		metrics.ListingRecords.WithLabelValues(s.Kind.Name).Set(float64(len(s.Records)))
		c.data[s.Kind.Name] = s
	}
	c.loaded = true
	return nil
}

// Loaded reports whether at least one Load completed
func (c *Catalog) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Get returns the snapshot for a kind
func (c *Catalog) Get(name string) (Snapshot, error) {
	k, ok := LookupKind(name)
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrUnknownKind, name)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if s, ok := c.data[name]; ok {
		return s, nil
	}
	return Snapshot{Kind: k}, nil
}

// Search filters a kind by term and records the query
func (c *Catalog) Search(name, term string) (Snapshot, []Record, error) {
	s, err := c.Get(name)
	if err != nil {
		return Snapshot{}, nil, err
	}
	filtered := "false"
	if term != "" {
		filtered = "true"
	}
	metrics.ListingSearches.WithLabelValues(name, filtered).Inc()
	return s, s.Table().Filter(term), nil
}

// StartReload re-reads the data directory on a cron schedule. An empty
// schedule disables reloading.
func (c *Catalog) StartReload(schedule string) error {
	if schedule == "" {
		return nil
	}
	cr := cron.New()
	_, err := cr.AddFunc(schedule, func() {
		if err := c.Load(context.Background()); err != nil {
			c.log.WithError(err).Warn("Listing reload aborted")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid reload schedule %q: %w", schedule, err)
	}
	cr.Start()
	c.cron = cr
	c.log.WithField("schedule", schedule).Info("Listing reload scheduled")
	return nil
}

// Stop halts scheduled reloads and waits for a running one to finish
func (c *Catalog) Stop() {
	if c.cron == nil {
		return
	}
	<-c.cron.Stop().Done()
}
