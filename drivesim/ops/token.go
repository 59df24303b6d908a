// Package ops implements the CRUD and list operations over the record
// store. List handlers parse the query once per request, filter through the
// expression engine, then order and paginate.
package ops

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"time"
)

// pageToken is the opaque pagination cursor: a base64url JSON offset.
type pageToken struct {
	Offset      int    `json:"offset"`
	LastRowTime string `json:"last_row_time,omitempty"`
}

// EncodePageToken builds the cursor for the next page.
func EncodePageToken(offset int) string {
	b, _ := json.Marshal(pageToken{
		Offset:      offset,
		LastRowTime: strconv.FormatInt(time.Now().Unix(), 10),
	})
	return base64.URLEncoding.EncodeToString(b)
}

// DecodePageToken extracts the offset from a cursor. Invalid tokens fall
// back to offset zero rather than failing the request.
func DecodePageToken(tok string) int {
	if tok == "" {
		return 0
	}
	raw, err := base64.URLEncoding.DecodeString(tok)
	if err != nil {
		return 0
	}
	var pt pageToken
	if err := json.Unmarshal(raw, &pt); err != nil {
		return 0
	}
	if pt.Offset < 0 {
		return 0
	}
	return pt.Offset
}

func paginate[T any](items []T, offset, pageSize int) ([]T, string) {
	if offset >= len(items) {
		return nil, ""
	}
	end := offset + pageSize
	if end > len(items) {
		end = len(items)
	}
	page := items[offset:end]
	if end < len(items) {
		return page, EncodePageToken(end)
	}
	return page, ""
}
