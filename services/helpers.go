package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-progression/repositories"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/Dosada05/tournament-progression/services")

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// endSpan records err on the span before ending it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// handleRepositoryError translates repository sentinels into service errors.
// Errors that already carry a service kind pass through unchanged.
func handleRepositoryError(err error, op string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound), errors.Is(err, ErrConflict),
		errors.Is(err, ErrState), errors.Is(err, ErrPermission):
		return err
	case errors.Is(err, repositories.ErrCompetitionNotFound):
		return ErrCompetitionNotFound
	case errors.Is(err, repositories.ErrParticipantNotFound), errors.Is(err, repositories.ErrStandingNotFound):
		return ErrParticipantNotFound
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrEventNotFound):
		return ErrEventNotFound
	case errors.Is(err, repositories.ErrCardNotFound):
		return ErrCardNotFound
	case errors.Is(err, repositories.ErrCompetitorNotFound), errors.Is(err, repositories.ErrProgressNotFound):
		return ErrCompetitorNotFound
	case errors.Is(err, repositories.ErrInvalidReference):
		return fmt.Errorf("%w: %s: %v", ErrNotFound, op, err)
	case errors.Is(err, repositories.ErrDuplicate):
		return fmt.Errorf("%w: %s: %v", ErrConflict, op, err)
	case errors.Is(err, repositories.ErrCheckViolation):
		return fmt.Errorf("%w: %s: %v", ErrValidation, op, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func intPtr(v int) *int {
	return &v
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
