package mock

import (
	"context"

	"github.com/fwojciec/terreno"
)

var _ terreno.PropertyWriter = (*PropertyWriter)(nil)

// PropertyWriter is a mock implementation of terreno.PropertyWriter.
type PropertyWriter struct {
	WritePropertyFn func(ctx context.Context, p *terreno.Property) error
	CloseFn         func() error
}

func (w *PropertyWriter) WriteProperty(ctx context.Context, p *terreno.Property) error {
	return w.WritePropertyFn(ctx, p)
}

func (w *PropertyWriter) Close() error {
	return w.CloseFn()
}

var _ terreno.ContactService = (*ContactService)(nil)

// ContactService is a mock implementation of terreno.ContactService.
type ContactService struct {
	FindContactsFn func(ctx context.Context, reference string) (*terreno.Contacts, error)
}

func (s *ContactService) FindContacts(ctx context.Context, reference string) (*terreno.Contacts, error) {
	return s.FindContactsFn(ctx, reference)
}

var _ terreno.Ledger = (*Ledger)(nil)

// Ledger is a mock implementation of terreno.Ledger.
type Ledger struct {
	SeenFn func(url string) bool
	AddFn  func(url string) bool
	LenFn  func() int
}

func (l *Ledger) Seen(url string) bool {
	return l.SeenFn(url)
}

func (l *Ledger) Add(url string) bool {
	return l.AddFn(url)
}

func (l *Ledger) Len() int {
	return l.LenFn()
}
