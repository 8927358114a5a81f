package dispatch

import (
	"iter"
	"slices"
	"strings"

	"github.com/openclaw/claw-runner/internal/models"
)

// Relevance of the first action in a result; each following one ranks lower.
const (
	topRelevance  = 1.0
	relevanceStep = 0.02
)

// Dispatcher answers queries against one config snapshot.
type Dispatcher struct {
	trigger string
	table   []Keyword
	catalog []models.Action
	byID    map[string]int
}

// New creates a dispatcher for cfg. cfg must not be mutated afterwards.
func New(cfg *models.Config) *Dispatcher {
	catalog := Catalog(cfg)
	byID := make(map[string]int, len(catalog))
	for i, a := range catalog {
		byID[a.ID] = i
	}
	return &Dispatcher{
		trigger: cfg.TriggerWord(),
		table:   KeywordTable(cfg.Keywords),
		catalog: catalog,
		byID:    byID,
	}
}

// Trigger returns the launcher prefix word.
func (d *Dispatcher) Trigger() string {
	return d.trigger
}

// Match lazily yields the actions for query in display order.
// A recognized keyword yields its group, narrowed by the modifier when one
// matches; anything else yields the top-level group.
func (d *Dispatcher) Match(query string) iter.Seq[models.Action] {
	q := ParseQuery(query, d.trigger, d.table)
	ids := d.selectIDs(q)

	return func(yield func(models.Action) bool) {
		for i, id := range ids {
			a := d.catalog[d.byID[id]]
			a.Relevance = topRelevance - float64(i)*relevanceStep
			if !yield(a) {
				return
			}
		}
	}
}

// Matches collects Match.
func (d *Dispatcher) Matches(query string) []models.Action {
	return slices.Collect(d.Match(query))
}

// Lookup finds an action by id.
func (d *Dispatcher) Lookup(id string) (models.Action, bool) {
	i, ok := d.byID[id]
	if !ok {
		return models.Action{}, false
	}
	return d.catalog[i], true
}

// All returns the whole catalog in display order.
func (d *Dispatcher) All() []models.Action {
	return slices.Clone(d.catalog)
}

func (d *Dispatcher) selectIDs(q Query) []string {
	group := lookupGroup(d.table, q.Keyword)
	if group == "" {
		return TopLevel
	}

	var inGroup, narrowed []string
	for _, a := range d.catalog {
		if a.Group != group {
			continue
		}
		inGroup = append(inGroup, a.ID)
		if q.Modifier != "" && a.Modifier != "" && strings.HasPrefix(a.Modifier, q.Modifier) {
			narrowed = append(narrowed, a.ID)
		}
	}

	if len(narrowed) > 0 {
		return narrowed
	}
	return inGroup
}
