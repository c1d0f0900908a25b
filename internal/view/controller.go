// Package view holds the cross-panel navigation state shared by the CLI and
// the local inspection server: which tab is active, which entity is focused,
// and which source snippet is highlighted, plus the current query result and
// the recent-query list.
package view

import (
	"strings"
	"sync"

	"github.com/hyperjump/kaisetsu/internal/grounding"
	"github.com/hyperjump/kaisetsu/internal/models"
)

// Tab identifies one of the result panels.
type Tab string

const (
	TabUpload   Tab = "upload"
	TabAnswer   Tab = "answer"
	TabSources  Tab = "sources"
	TabEntities Tab = "entities"
	TabGraph    Tab = "graph"
	TabPipeline Tab = "pipeline"
	TabExport   Tab = "export"
)

// NoHighlight is the HighlightedSource value meaning no snippet is highlighted.
const NoHighlight = -1

// maxHistory caps the in-memory recent-query list.
const maxHistory = 20

// State is a snapshot of the navigation state. Returned by value; mutating a
// snapshot does not affect the controller.
type State struct {
	Tab               Tab
	FocusedEntity     *models.Entity
	HighlightedSource int
}

// HistoryEntry is one recent query with its result.
type HistoryEntry struct {
	Query  string
	Result *models.QueryResult
}

// Controller coordinates cross-panel navigation: a click in one panel (an
// entity badge, say) drives the selection shown in another (graph focus,
// source highlight). All transitions are synchronous and never perform I/O.
type Controller struct {
	mu      sync.Mutex
	state   State
	result  *models.QueryResult
	history []HistoryEntry
}

// NewController returns a controller in the initial state: upload tab, no
// focus, no highlight, no result.
func NewController() *Controller {
	return &Controller{
		state: State{Tab: TabUpload, HighlightedSource: NoHighlight},
	}
}

// State returns a snapshot of the current navigation state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Result returns the current query result, or nil before any query.
func (c *Controller) Result() *models.QueryResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// SetResult replaces the current result wholesale and resets focus and
// highlight; readers never observe a partially updated result. The active tab
// becomes the answer panel. The query is prepended to the recent-query list.
func (c *Controller) SetResult(result *models.QueryResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if result != nil {
		result.Normalize()
	}
	c.result = result
	c.state = State{Tab: TabAnswer, HighlightedSource: NoHighlight}
	if result != nil && result.Query != "" {
		c.history = append([]HistoryEntry{{Query: result.Query, Result: result}}, c.history...)
		if len(c.history) > maxHistory {
			c.history = c.history[:maxHistory]
		}
	}
}

// History returns a copy of the recent-query list, most recent first.
func (c *Controller) History() []HistoryEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]HistoryEntry, len(c.history))
	copy(out, c.history)
	return out
}

// SelectEntity focuses the entity and switches to the graph panel. Focus and
// tab change atomically; the tab switch does not clear the new focus.
func (c *Controller) SelectEntity(e models.Entity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = State{Tab: TabGraph, FocusedEntity: &e, HighlightedSource: NoHighlight}
}

// ShowSourcesForEntity highlights the best-matching snippet for the entity
// and switches to the sources panel atomically. With no result or no mention,
// the sources panel opens without a highlight.
func (c *Controller) ShowSourcesForEntity(e models.Entity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := NoHighlight
	if c.result != nil {
		idx = grounding.BestSnippetForEntity(e, c.result.Snippets)
	}
	c.state = State{Tab: TabSources, FocusedEntity: &e, HighlightedSource: idx}
}

// NavigateToEntityByName resolves name case-insensitively against the current
// result's entities and, when found, behaves as SelectEntity. Unknown names
// are a silent no-op; navigation must never fail on a missing entity.
func (c *Controller) NavigateToEntityByName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil || name == "" {
		return
	}
	for _, e := range c.result.Entities {
		if strings.EqualFold(e.Name, name) {
			entity := e
			c.state = State{Tab: TabGraph, FocusedEntity: &entity, HighlightedSource: NoHighlight}
			return
		}
	}
}

// ChangeTab switches the active tab and clears focus and highlight; plain tab
// switches reset cross-panel focus.
func (c *Controller) ChangeTab(t Tab) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = State{Tab: t, HighlightedSource: NoHighlight}
}

// Reset discards the result and history and returns to the initial state.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result = nil
	c.history = nil
	c.state = State{Tab: TabUpload, HighlightedSource: NoHighlight}
}
