package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/terreno"
)

var (
	_ terreno.PropertyWriter = (*LoggingPropertyWriter)(nil)
	_ terreno.ContactService = (*LoggingContactService)(nil)
)

// LoggingPropertyWriter wraps a PropertyWriter with logging.
type LoggingPropertyWriter struct {
	next   terreno.PropertyWriter
	logger *slog.Logger
}

// NewLoggingPropertyWriter creates a new LoggingPropertyWriter.
func NewLoggingPropertyWriter(next terreno.PropertyWriter, logger *slog.Logger) *LoggingPropertyWriter {
	return &LoggingPropertyWriter{next: next, logger: logger}
}

// WriteProperty delegates to the wrapped writer and logs the operation.
func (w *LoggingPropertyWriter) WriteProperty(ctx context.Context, p *terreno.Property) (err error) {
	defer func(begin time.Time) {
		w.logger.Debug("write property",
			"url", p.URL,
			"reference", p.Reference,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteProperty(ctx, p)
}

// Close delegates to the wrapped writer.
func (w *LoggingPropertyWriter) Close() error {
	err := w.next.Close()
	if err != nil {
		w.logger.Error("close property writer", "err", err)
	}
	return err
}

// LoggingContactService wraps a ContactService with logging.
type LoggingContactService struct {
	next   terreno.ContactService
	logger *slog.Logger
}

// NewLoggingContactService creates a new LoggingContactService.
func NewLoggingContactService(next terreno.ContactService, logger *slog.Logger) *LoggingContactService {
	return &LoggingContactService{next: next, logger: logger}
}

// FindContacts delegates to the wrapped service and logs the operation.
func (s *LoggingContactService) FindContacts(ctx context.Context, reference string) (contacts *terreno.Contacts, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find contacts",
			"reference", reference,
			"found", contacts != nil && contacts.Phone1 != "",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindContacts(ctx, reference)
}
