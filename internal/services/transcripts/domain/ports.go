package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Upload(ctx context.Context, in UploadInput) (UploadResult, error)
	Segments(ctx context.Context, in SegmentsInput) ([]Segment, error)
	List(ctx context.Context, in ListInput) ([]Transcript, error)
}
