package labels

import (
	"context"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const LabelsKey contextKey = "labels"

func WithLabels(ctx context.Context, l Labels) context.Context {
	return context.WithValue(ctx, LabelsKey, l)
}

// FromContext returns the labels negotiated for the request, or Default.
func FromContext(ctx context.Context) Labels {
	l, ok := ctx.Value(LabelsKey).(Labels)
	if !ok {
		log.Trace("labels not found in context, using default")
		return Default
	}
	return l
}
