package repository

import (
	"context"

	"agrimanage/entities"
)

// CropRepository is the ordered record store. Every mutation is mirrored to
// the durable slot before it becomes visible.
type CropRepository interface {
	List(ctx context.Context) []entities.Crop
	Get(ctx context.Context, id int64) (entities.Crop, error)
	Add(ctx context.Context, in CropInput) (entities.Crop, error)
	Update(ctx context.Context, id int64, in CropInput) (entities.Crop, error)
	Patch(ctx context.Context, id int64, p CropPatch) (entities.Crop, error)
	Remove(ctx context.Context, id int64) error
	// Replace swaps the whole list for ins (ids are assigned fresh).
	Replace(ctx context.Context, ins []CropInput) ([]entities.Crop, error)
	// AddMany appends ins in order, all or nothing.
	AddMany(ctx context.Context, ins []CropInput) ([]entities.Crop, error)
	Hydrate(ctx context.Context) error
}
