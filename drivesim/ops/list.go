package ops

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/nonibytes/drivesim/drivesim"
	"github.com/nonibytes/drivesim/drivesim/filter"
	"github.com/nonibytes/drivesim/drivesim/query"
	"github.com/nonibytes/drivesim/drivesim/search"
)

// ListFilesOptions configures a file list request.
type ListFilesOptions struct {
	Query     string
	OrderBy   string
	PageSize  int
	PageToken string
	DriveID   string
}

// FileList is one page of list results.
type FileList struct {
	Kind          string           `json:"kind"`
	NextPageToken string           `json:"nextPageToken,omitempty"`
	Files         []*drivesim.File `json:"files"`
}

// ListFiles materializes the user's files, applies the query filter,
// ordering and pagination. Query errors fail the call before any record is
// evaluated; no partial results are produced.
func ListFiles(ctx context.Context, store *drivesim.Store, idx search.Index, userID string, opts ListFilesOptions) (*FileList, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = drivesim.DefaultFilePageSize
	}
	if pageSize > drivesim.MaxFilePageSize {
		return nil, drivesim.ValidationError(fmt.Sprintf("pageSize must be between 1 and %d", drivesim.MaxFilePageSize))
	}

	if _, ok := store.User(userID); !ok {
		return nil, drivesim.NotFoundError("user", userID)
	}
	files := store.Files(userID)

	if opts.DriveID != "" {
		kept := files[:0:0]
		for _, f := range files {
			if f.DriveID == opts.DriveID || hasParent(f, opts.DriveID) {
				kept = append(kept, f)
			}
		}
		files = kept
	}

	if opts.Query != "" {
		expr, err := query.Parse(opts.Query)
		if err != nil {
			return nil, drivesim.InvalidQueryError(opts.Query, err)
		}
		m := &filter.Matcher{Index: idx, Resource: search.ResourceFile}
		files, err = filter.Apply(ctx, m, expr, files)
		if err != nil {
			return nil, drivesim.InvalidQueryError(opts.Query, err)
		}
	}

	if opts.OrderBy != "" {
		orderFiles(files, opts.OrderBy)
	}

	offset := DecodePageToken(opts.PageToken)
	page, next := paginate(files, offset, pageSize)
	return &FileList{Kind: "drive#fileList", NextPageToken: next, Files: page}, nil
}

func hasParent(f *drivesim.File, parentID string) bool {
	for _, p := range f.Parents {
		if p == parentID {
			return true
		}
	}
	return false
}

// orderFiles applies a comma-separated orderBy string. Fields are applied in
// reverse with stable sorts so the first field dominates; a " desc" suffix
// flips the direction.
func orderFiles(files []*drivesim.File, orderBy string) {
	fields := strings.Split(orderBy, ",")
	for i := len(fields) - 1; i >= 0; i-- {
		field := strings.TrimSpace(fields[i])
		desc := false
		if strings.HasSuffix(field, " desc") {
			field = strings.TrimSuffix(field, " desc")
			desc = true
		}

		var less func(a, b *drivesim.File) bool
		switch field {
		case "folder":
			less = func(a, b *drivesim.File) bool { return !a.IsFolder() && b.IsFolder() }
		case "name":
			less = func(a, b *drivesim.File) bool { return a.Name < b.Name }
		case "createdTime":
			less = func(a, b *drivesim.File) bool { return a.CreatedTime < b.CreatedTime }
		case "modifiedTime":
			less = func(a, b *drivesim.File) bool { return a.ModifiedTime < b.ModifiedTime }
		case "size":
			less = func(a, b *drivesim.File) bool { return sizeOf(a) < sizeOf(b) }
		case "quotaBytesUsed":
			less = func(a, b *drivesim.File) bool { return quotaOf(a) < quotaOf(b) }
		default:
			continue
		}

		if desc {
			inner := less
			less = func(a, b *drivesim.File) bool { return inner(b, a) }
		}
		sort.SliceStable(files, func(x, y int) bool { return less(files[x], files[y]) })
	}
}

func sizeOf(f *drivesim.File) int64 {
	n, _ := strconv.ParseInt(f.Size, 10, 64)
	return n
}

func quotaOf(f *drivesim.File) int64 {
	n, _ := strconv.ParseInt(f.QuotaBytesUsed, 10, 64)
	return n
}

// ListDrivesOptions configures a shared-drive list request.
type ListDrivesOptions struct {
	Query     string
	PageSize  int
	PageToken string
}

// DriveList is one page of shared-drive results.
type DriveList struct {
	Kind          string            `json:"kind"`
	NextPageToken string            `json:"nextPageToken,omitempty"`
	Drives        []*drivesim.Drive `json:"drives"`
}

// ListDrives lists the user's shared drives with query filtering and
// pagination.
func ListDrives(ctx context.Context, store *drivesim.Store, idx search.Index, userID string, opts ListDrivesOptions) (*DriveList, error) {
	pageSize := opts.PageSize
	if pageSize == 0 {
		pageSize = drivesim.DefaultDrivePage
	}
	if pageSize <= 0 || pageSize > drivesim.MaxDrivePageSize {
		return nil, drivesim.ValidationError(fmt.Sprintf("pageSize must be between 1 and %d", drivesim.MaxDrivePageSize))
	}

	if _, ok := store.User(userID); !ok {
		return nil, drivesim.NotFoundError("user", userID)
	}
	drives := store.Drives(userID)

	if opts.Query != "" {
		expr, err := query.Parse(opts.Query)
		if err != nil {
			return nil, drivesim.InvalidQueryError(opts.Query, err)
		}
		m := &filter.Matcher{Index: idx, Resource: search.ResourceDrive}
		drives, err = filter.Apply(ctx, m, expr, drives)
		if err != nil {
			return nil, drivesim.InvalidQueryError(opts.Query, err)
		}
	}

	offset := DecodePageToken(opts.PageToken)
	page, next := paginate(drives, offset, pageSize)
	return &DriveList{Kind: "drive#driveList", NextPageToken: next, Drives: page}, nil
}
