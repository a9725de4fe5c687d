package auditlog

import "context"

type Metadata struct {
	Subscription string
	Service      string
	ResourceType string
	ResourceID   string
	ResourceName string
}

type metadataKey struct{}

// WithMetadata attaches audit metadata to a context. Fields already
// attached survive unless the new metadata overrides them, so a child
// command can fill in what its parent left blank.
func WithMetadata(ctx context.Context, meta Metadata) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	existing, _ := ctx.Value(metadataKey{}).(Metadata)
	merged := Metadata{
		Subscription: pick(meta.Subscription, existing.Subscription),
		Service:      pick(meta.Service, existing.Service),
		ResourceType: pick(meta.ResourceType, existing.ResourceType),
		ResourceID:   pick(meta.ResourceID, existing.ResourceID),
		ResourceName: pick(meta.ResourceName, existing.ResourceName),
	}
	return context.WithValue(ctx, metadataKey{}, merged)
}

// MetadataFromContext returns audit metadata stored in the context.
func MetadataFromContext(ctx context.Context) Metadata {
	if ctx == nil {
		return Metadata{}
	}
	meta, _ := ctx.Value(metadataKey{}).(Metadata)
	return meta
}

func pick(next, fallback string) string {
	if next != "" {
		return next
	}
	return fallback
}
