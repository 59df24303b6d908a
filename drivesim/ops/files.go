package ops

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/nonibytes/drivesim/drivesim"
	"github.com/nonibytes/drivesim/drivesim/search"
)

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// CreateFileRequest carries the writable fields of a new file.
type CreateFileRequest struct {
	Name        string
	MimeType    string
	Description string
	Parents     []string
	DriveID     string
	Starred     bool
	Content     *drivesim.Content
}

// CreateFile validates the request, charges the user's quota and registers
// the new record with the store and the search index.
func CreateFile(ctx context.Context, store *drivesim.Store, idx search.Index, userID string, req CreateFileRequest) (*drivesim.File, error) {
	if req.Name == "" {
		return nil, drivesim.ValidationError("file name is required")
	}
	store.EnsureUser(userID)

	for _, p := range req.Parents {
		if _, ok := store.FileByID(userID, p); ok {
			continue
		}
		if _, ok := store.DriveByID(userID, p); ok {
			continue
		}
		return nil, drivesim.NotFoundError("parent", p)
	}
	if req.DriveID != "" {
		if _, ok := store.DriveByID(userID, req.DriveID); !ok {
			return nil, drivesim.NotFoundError("drive", req.DriveID)
		}
	}

	size := fileSize(req.MimeType, req.Content)
	limit, usage := store.Quota(userID)
	if usage+size > limit {
		return nil, drivesim.QuotaError(fmt.Sprintf("storage quota exceeded: %d bytes used of %d", usage, limit))
	}

	stamp := nowStamp()
	u, _ := store.User(userID)
	owner := u.About.User.EmailAddress

	f := &drivesim.File{
		ID:             "file_" + uuid.NewString(),
		DriveID:        req.DriveID,
		Name:           req.Name,
		MimeType:       req.MimeType,
		CreatedTime:    stamp,
		ModifiedTime:   stamp,
		Parents:        req.Parents,
		Owners:         []string{owner},
		Size:           strconv.FormatInt(size, 10),
		Description:    req.Description,
		QuotaBytesUsed: strconv.FormatInt(size, 10),
		Starred:        req.Starred,
		Content:        req.Content,
		Permissions: []drivesim.Permission{{
			ID:           "perm_" + uuid.NewString(),
			Role:         "owner",
			Type:         "user",
			EmailAddress: owner,
		}},
	}
	if req.Content != nil {
		f.Revisions = []drivesim.Revision{{
			ID:           "rev_" + uuid.NewString(),
			MimeType:     req.MimeType,
			ModifiedTime: stamp,
			Size:         f.Size,
			Content:      req.Content,
		}}
	}

	store.AddFile(userID, f)
	store.UpdateUsage(userID, size)
	if err := idx.Upsert(ctx, []search.Document{f.Document()}); err != nil {
		return nil, drivesim.Wrap(drivesim.ErrInternal, "index file", err)
	}
	return f, nil
}

func fileSize(mimeType string, content *drivesim.Content) int64 {
	if mimeType == drivesim.FolderMimeType {
		return 0
	}
	if content != nil {
		return int64(len(content.Data))
	}
	return drivesim.DefaultFileSize
}

// GetFile fetches a file by id.
func GetFile(store *drivesim.Store, userID, fileID string) (*drivesim.File, error) {
	f, ok := store.FileByID(userID, fileID)
	if !ok {
		return nil, drivesim.NotFoundError("file", fileID)
	}
	return f, nil
}

// UpdateFileRequest is a patch: nil pointers leave the field untouched.
type UpdateFileRequest struct {
	Name        *string
	MimeType    *string
	Description *string
	Starred     *bool
	Trashed     *bool
	Parents     []string
	Content     *drivesim.Content
}

// UpdateFile applies the patch, adjusting quota when the content size
// changes and refreshing the index document.
func UpdateFile(ctx context.Context, store *drivesim.Store, idx search.Index, userID, fileID string, req UpdateFileRequest) (*drivesim.File, error) {
	f, ok := store.FileByID(userID, fileID)
	if !ok {
		return nil, drivesim.NotFoundError("file", fileID)
	}

	if req.Name != nil {
		f.Name = *req.Name
	}
	if req.MimeType != nil {
		f.MimeType = *req.MimeType
	}
	if req.Description != nil {
		f.Description = *req.Description
	}
	if req.Starred != nil {
		f.Starred = *req.Starred
	}
	if req.Trashed != nil {
		f.Trashed = *req.Trashed
	}
	if req.Parents != nil {
		for _, p := range req.Parents {
			if _, ok := store.FileByID(userID, p); ok {
				continue
			}
			if _, ok := store.DriveByID(userID, p); ok {
				continue
			}
			return nil, drivesim.NotFoundError("parent", p)
		}
		f.Parents = req.Parents
	}

	stamp := nowStamp()
	if req.Content != nil {
		oldSize, _ := strconv.ParseInt(f.Size, 10, 64)
		newSize := int64(len(req.Content.Data))

		limit, usage := store.Quota(userID)
		if usage-oldSize+newSize > limit {
			return nil, drivesim.QuotaError("storage quota exceeded")
		}

		f.Content = req.Content
		f.Size = strconv.FormatInt(newSize, 10)
		f.QuotaBytesUsed = f.Size
		f.Revisions = append(f.Revisions, drivesim.Revision{
			ID:           "rev_" + uuid.NewString(),
			MimeType:     f.MimeType,
			ModifiedTime: stamp,
			Size:         f.Size,
			Content:      req.Content,
		})
		store.UpdateUsage(userID, newSize-oldSize)
	}
	f.ModifiedTime = stamp

	if err := idx.Upsert(ctx, []search.Document{f.Document()}); err != nil {
		return nil, drivesim.Wrap(drivesim.ErrInternal, "index file", err)
	}
	return f, nil
}

// TrashFile moves the file to the trash without deleting it.
func TrashFile(ctx context.Context, store *drivesim.Store, idx search.Index, userID, fileID string) (*drivesim.File, error) {
	trashed := true
	return UpdateFile(ctx, store, idx, userID, fileID, UpdateFileRequest{Trashed: &trashed})
}

// UntrashFile restores a trashed file.
func UntrashFile(ctx context.Context, store *drivesim.Store, idx search.Index, userID, fileID string) (*drivesim.File, error) {
	trashed := false
	return UpdateFile(ctx, store, idx, userID, fileID, UpdateFileRequest{Trashed: &trashed})
}

// DeleteFile removes the file permanently. Folders take their descendants
// with them; freed bytes are refunded to the quota and every removed record
// leaves the search index.
func DeleteFile(ctx context.Context, store *drivesim.Store, idx search.Index, userID, fileID string) error {
	if _, ok := store.FileByID(userID, fileID); !ok {
		return drivesim.NotFoundError("file", fileID)
	}

	pending := []string{fileID}
	for len(pending) > 0 {
		id := pending[0]
		pending = pending[1:]
		pending = append(pending, store.ChildFiles(userID, id)...)

		f, ok := store.RemoveFile(userID, id)
		if !ok {
			continue
		}
		size, _ := strconv.ParseInt(f.Size, 10, 64)
		store.UpdateUsage(userID, -size)
		if err := idx.Delete(ctx, search.ResourceFile, id); err != nil {
			return drivesim.Wrap(drivesim.ErrInternal, "deindex file", err)
		}
	}
	return nil
}

// EmptyTrash permanently deletes every trashed file.
func EmptyTrash(ctx context.Context, store *drivesim.Store, idx search.Index, userID string) error {
	for _, f := range store.Files(userID) {
		if !f.Trashed {
			continue
		}
		if err := DeleteFile(ctx, store, idx, userID, f.ID); err != nil {
			if drivesim.IsKind(err, drivesim.ErrNotFound) {
				continue
			}
			return err
		}
	}
	return nil
}

// About returns the user's account metadata, creating the user on first use.
func About(store *drivesim.Store, userID string) *drivesim.About {
	u := store.EnsureUser(userID)
	return &u.About
}
