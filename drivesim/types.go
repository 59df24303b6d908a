package drivesim

import (
	"github.com/nonibytes/drivesim/drivesim/search"
)

// Content is the inline payload of a file: raw or base64 data plus
// bookkeeping carried over between revisions.
type Content struct {
	Data              string `json:"data"`
	Encoding          string `json:"encoding,omitempty"`
	Checksum          string `json:"checksum,omitempty"`
	Version           string `json:"version,omitempty"`
	LastContentUpdate string `json:"lastContentUpdate,omitempty"`
}

// Permission grants one principal a role on a file or drive.
type Permission struct {
	ID           string `json:"id"`
	Role         string `json:"role"`
	Type         string `json:"type"`
	EmailAddress string `json:"emailAddress,omitempty"`
	Domain       string `json:"domain,omitempty"`
}

// Revision is one saved version of a file's content.
type Revision struct {
	ID               string   `json:"id"`
	MimeType         string   `json:"mimeType,omitempty"`
	ModifiedTime     string   `json:"modifiedTime,omitempty"`
	KeepForever      bool     `json:"keepForever,omitempty"`
	OriginalFilename string   `json:"originalFilename,omitempty"`
	Size             string   `json:"size,omitempty"`
	Content          *Content `json:"content,omitempty"`
}

// File is one file or folder record. Timestamps are RFC3339 strings and
// size is a decimal string, mirroring the wire shape of the Drive API.
type File struct {
	ID             string       `json:"id"`
	DriveID        string       `json:"driveId,omitempty"`
	Name           string       `json:"name"`
	MimeType       string       `json:"mimeType,omitempty"`
	CreatedTime    string       `json:"createdTime,omitempty"`
	ModifiedTime   string       `json:"modifiedTime,omitempty"`
	ViewedByMeTime string       `json:"viewedByMeTime,omitempty"`
	Trashed        bool         `json:"trashed"`
	Starred        bool         `json:"starred"`
	Parents        []string     `json:"parents,omitempty"`
	Owners         []string     `json:"owners,omitempty"`
	Size           string       `json:"size,omitempty"`
	Description    string       `json:"description,omitempty"`
	QuotaBytesUsed string       `json:"quotaBytesUsed,omitempty"`
	Content        *Content     `json:"content,omitempty"`
	Permissions    []Permission `json:"permissions,omitempty"`
	Revisions      []Revision   `json:"revisions,omitempty"`
}

// Drive is one shared-drive record.
type Drive struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Kind        string `json:"kind,omitempty"`
	CreatedTime string `json:"createdTime,omitempty"`
	Hidden      bool   `json:"hidden"`
	ThemeID     string `json:"themeId,omitempty"`
}

// Field returns the queryable value for a field name. The second return is
// false when the field is unset; an empty optional string counts as unset.
// The content field surfaces its data text directly.
func (f *File) Field(name string) (any, bool) {
	switch name {
	case "id":
		return f.ID, f.ID != ""
	case "driveId":
		return f.DriveID, f.DriveID != ""
	case "name":
		return f.Name, f.Name != ""
	case "mimeType":
		return f.MimeType, f.MimeType != ""
	case "createdTime":
		return f.CreatedTime, f.CreatedTime != ""
	case "modifiedTime":
		return f.ModifiedTime, f.ModifiedTime != ""
	case "viewedByMeTime":
		return f.ViewedByMeTime, f.ViewedByMeTime != ""
	case "trashed":
		return f.Trashed, true
	case "starred":
		return f.Starred, true
	case "parents":
		return f.Parents, len(f.Parents) > 0
	case "owners":
		return f.Owners, len(f.Owners) > 0
	case "size":
		return f.Size, f.Size != ""
	case "description":
		return f.Description, f.Description != ""
	case "quotaBytesUsed":
		return f.QuotaBytesUsed, f.QuotaBytesUsed != ""
	case "content":
		if f.Content == nil {
			return "", false
		}
		return f.Content.Data, true
	default:
		return nil, false
	}
}

func (f *File) RecordID() string { return f.ID }

func (f *File) IsFolder() bool { return f.MimeType == FolderMimeType }

// Field is the drive-side queryable accessor.
func (d *Drive) Field(name string) (any, bool) {
	switch name {
	case "id":
		return d.ID, d.ID != ""
	case "name":
		return d.Name, d.Name != ""
	case "kind":
		return d.Kind, d.Kind != ""
	case "createdTime":
		return d.CreatedTime, d.CreatedTime != ""
	case "hidden":
		return d.Hidden, true
	case "themeId":
		return d.ThemeID, d.ThemeID != ""
	default:
		return nil, false
	}
}

func (d *Drive) RecordID() string { return d.ID }

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// Document projects the file onto its indexed fields.
func (f *File) Document() search.Document {
	return search.Document{
		ID:       f.ID,
		Name:     f.Name,
		Resource: search.ResourceFile,
		Fields: map[string]string{
			"id":          f.ID,
			"name":        f.Name,
			"mimeType":    f.MimeType,
			"trashed":     boolString(f.Trashed),
			"starred":     boolString(f.Starred),
			"parents":     joinList(f.Parents),
			"description": f.Description,
		},
	}
}

// Document projects the drive onto its indexed fields.
func (d *Drive) Document() search.Document {
	return search.Document{
		ID:       d.ID,
		Name:     d.Name,
		Resource: search.ResourceDrive,
		Fields: map[string]string{
			"id":          d.ID,
			"name":        d.Name,
			"hidden":      boolString(d.Hidden),
			"themeId":     d.ThemeID,
			"createdTime": d.CreatedTime,
		},
	}
}

func joinList(vals []string) string {
	out := ""
	for i, v := range vals {
		if i > 0 {
			out += " "
		}
		out += v
	}
	return out
}
