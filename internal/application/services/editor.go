// Package services contains the application layer orchestrating domain and
// infrastructure components.
package services

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/barkit-dev/barkit/internal/domain/entities"
	"github.com/barkit-dev/barkit/internal/domain/schema"
	domainservices "github.com/barkit-dev/barkit/internal/domain/services"
	"github.com/barkit-dev/barkit/internal/infrastructure/config"
	"github.com/barkit-dev/barkit/internal/infrastructure/reload"
	"github.com/barkit-dev/barkit/internal/infrastructure/saver"
)

// Editor is the editing session over one config root. It owns the in-memory
// document and stylesheet, tracks dirty state against the last load or save,
// and serializes writes through the background saver.
type Editor struct {
	store     *config.Store
	validator *schema.Validator
	notifier  *reload.Notifier
	tracker   *domainservices.DirtyTracker
	saver     *saver.Saver

	mu     sync.Mutex
	doc    *entities.Document
	styles string
}

// NewEditor creates an editor over the given store. The validator checks
// documents before any save; the notifier signals the bar after one.
func NewEditor(store *config.Store, validator *schema.Validator, notifier *reload.Notifier) *Editor {
	return &Editor{
		store:     store,
		validator: validator,
		notifier:  notifier,
		tracker:   domainservices.NewDirtyTracker(),
		saver:     saver.New(store.Save),
	}
}

// Load reads the config and stylesheet, creating defaults when the config
// file does not exist, and resets the dirty baselines.
func (e *Editor) Load(ctx context.Context) error {
	var doc *entities.Document
	var styles string

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		doc, err = e.store.LoadOrInit()
		return err
	})
	g.Go(func() error {
		var err error
		styles, err = e.store.LoadStyles()
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc = doc
	e.styles = styles
	if err := e.tracker.Mark(doc); err != nil {
		return err
	}
	e.tracker.MarkStyles(styles)
	return nil
}

// Document returns the live document. Callers mutate it in place and then
// call Save.
func (e *Editor) Document() *entities.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc
}

// Styles returns the current stylesheet text.
func (e *Editor) Styles() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.styles
}

// SetStyles replaces the stylesheet text.
func (e *Editor) SetStyles(css string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.styles = css
}

// Validate checks the current document against the widget schema table.
func (e *Editor) Validate() entities.ValidationResult {
	e.mu.Lock()
	doc := e.doc
	e.mu.Unlock()
	return e.validator.Validate(doc)
}

// Dirty reports whether the document or stylesheet differs from the last
// loaded or saved state.
func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.IsDirty(e.doc) || e.tracker.StylesDirty(e.styles)
}

// Save validates and persists the current state, then signals the bar. A
// document with findings is refused. A clean state is a no-op. Failure to
// signal the bar does not fail the save.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	doc := e.doc
	styles := e.styles
	docDirty := e.tracker.IsDirty(doc)
	stylesDirty := e.tracker.StylesDirty(styles)
	e.mu.Unlock()

	if !docDirty && !stylesDirty {
		slog.Debug("nothing to save")
		return nil
	}

	if result := e.validator.Validate(doc); !result.Valid() {
		return &entities.ValidationError{Findings: result.Findings}
	}

	if docDirty {
		ticket := e.saver.Submit(doc)
		if err := ticket.Wait(ctx); err != nil {
			return err
		}
	}
	if stylesDirty {
		if err := e.store.SaveStyles(styles); err != nil {
			return err
		}
	}

	e.mu.Lock()
	if err := e.tracker.Mark(doc); err != nil {
		e.mu.Unlock()
		return err
	}
	e.tracker.MarkStyles(styles)
	e.mu.Unlock()

	if err := e.notifier.Notify(ctx); err != nil {
		slog.Warn("saved config but failed to signal bar reload", "error", err)
	}
	return nil
}
