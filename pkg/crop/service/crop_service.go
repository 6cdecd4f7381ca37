package service

import (
	"context"

	"agrimanage/entities"
	"agrimanage/pkg/crop/repository"
)

// Filter narrows List. Empty fields match everything; Season "all" too.
type Filter struct {
	Query  string
	Season string
}

type CropService interface {
	List(ctx context.Context, f Filter) []entities.Crop
	Get(ctx context.Context, id int64) (entities.Crop, error)
	Create(ctx context.Context, in repository.CropInput) (entities.Crop, error)
	Update(ctx context.Context, id int64, in repository.CropInput) (entities.Crop, error)
	Patch(ctx context.Context, id int64, p repository.CropPatch) (entities.Crop, error)
	Delete(ctx context.Context, id int64) error
	// Import appends ins, or replaces the whole list when replace is set.
	Import(ctx context.Context, ins []repository.CropInput, replace bool) ([]entities.Crop, error)
	// Reject reports a request that failed before reaching the store, the
	// same way a failed store operation is reported, and returns err.
	Reject(op string, err error) error
}
