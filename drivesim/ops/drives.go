package ops

import (
	"context"

	"github.com/google/uuid"

	"github.com/nonibytes/drivesim/drivesim"
	"github.com/nonibytes/drivesim/drivesim/search"
)

// CreateDrive registers a new shared drive for the user.
func CreateDrive(ctx context.Context, store *drivesim.Store, idx search.Index, userID, name, themeID string) (*drivesim.Drive, error) {
	if name == "" {
		return nil, drivesim.ValidationError("drive name is required")
	}
	store.EnsureUser(userID)

	d := &drivesim.Drive{
		ID:          "drive_" + uuid.NewString(),
		Name:        name,
		Kind:        "drive#drive",
		CreatedTime: nowStamp(),
		ThemeID:     themeID,
	}
	store.AddDrive(userID, d)
	if err := idx.Upsert(ctx, []search.Document{d.Document()}); err != nil {
		return nil, drivesim.Wrap(drivesim.ErrInternal, "index drive", err)
	}
	return d, nil
}

// GetDrive fetches a shared drive by id.
func GetDrive(store *drivesim.Store, userID, driveID string) (*drivesim.Drive, error) {
	d, ok := store.DriveByID(userID, driveID)
	if !ok {
		return nil, drivesim.NotFoundError("drive", driveID)
	}
	return d, nil
}

// HideDrive hides the drive from default listings.
func HideDrive(ctx context.Context, store *drivesim.Store, idx search.Index, userID, driveID string) (*drivesim.Drive, error) {
	return setDriveHidden(ctx, store, idx, userID, driveID, true)
}

// UnhideDrive restores the drive to default listings.
func UnhideDrive(ctx context.Context, store *drivesim.Store, idx search.Index, userID, driveID string) (*drivesim.Drive, error) {
	return setDriveHidden(ctx, store, idx, userID, driveID, false)
}

func setDriveHidden(ctx context.Context, store *drivesim.Store, idx search.Index, userID, driveID string, hidden bool) (*drivesim.Drive, error) {
	d, ok := store.DriveByID(userID, driveID)
	if !ok {
		return nil, drivesim.NotFoundError("drive", driveID)
	}
	d.Hidden = hidden
	if err := idx.Upsert(ctx, []search.Document{d.Document()}); err != nil {
		return nil, drivesim.Wrap(drivesim.ErrInternal, "index drive", err)
	}
	return d, nil
}

// UpdateDrive renames the drive or changes its theme.
func UpdateDrive(ctx context.Context, store *drivesim.Store, idx search.Index, userID, driveID string, name, themeID *string) (*drivesim.Drive, error) {
	d, ok := store.DriveByID(userID, driveID)
	if !ok {
		return nil, drivesim.NotFoundError("drive", driveID)
	}
	if name != nil {
		if *name == "" {
			return nil, drivesim.ValidationError("drive name is required")
		}
		d.Name = *name
	}
	if themeID != nil {
		d.ThemeID = *themeID
	}
	if err := idx.Upsert(ctx, []search.Document{d.Document()}); err != nil {
		return nil, drivesim.Wrap(drivesim.ErrInternal, "index drive", err)
	}
	return d, nil
}

// DeleteDrive removes an empty shared drive. A drive that still holds files
// cannot be deleted.
func DeleteDrive(ctx context.Context, store *drivesim.Store, idx search.Index, userID, driveID string) error {
	if _, ok := store.DriveByID(userID, driveID); !ok {
		return drivesim.NotFoundError("drive", driveID)
	}
	for _, f := range store.Files(userID) {
		if f.DriveID == driveID || hasParent(f, driveID) {
			return drivesim.ValidationError("cannot delete a shared drive that contains files")
		}
	}
	store.RemoveDrive(userID, driveID)
	if err := idx.Delete(ctx, search.ResourceDrive, driveID); err != nil {
		return drivesim.Wrap(drivesim.ErrInternal, "deindex drive", err)
	}
	return nil
}
