package drivesim

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/nonibytes/drivesim/drivesim/search"
)

// StorageQuota mirrors the about.storageQuota shape: byte counts carried as
// decimal strings.
type StorageQuota struct {
	Limit             string `json:"limit"`
	Usage             string `json:"usage"`
	UsageInDrive      string `json:"usageInDrive"`
	UsageInDriveTrash string `json:"usageInDriveTrash"`
}

// AccountUser identifies the signed-in user.
type AccountUser struct {
	DisplayName  string `json:"displayName"`
	Kind         string `json:"kind"`
	Me           bool   `json:"me"`
	PermissionID string `json:"permissionId"`
	EmailAddress string `json:"emailAddress"`
}

// About holds per-user account metadata and quota.
type About struct {
	Kind            string       `json:"kind"`
	StorageQuota    StorageQuota `json:"storageQuota"`
	CanCreateDrives bool         `json:"canCreateDrives"`
	MaxUploadSize   string       `json:"maxUploadSize"`
	User            AccountUser  `json:"user"`
}

// User is one user's record collections. Files and Drives are ordered
// slices so list handlers see a stable insertion order.
type User struct {
	About  About    `json:"about"`
	Files  []*File  `json:"files"`
	Drives []*Drive `json:"drives"`
}

// Store is the in-memory keyed record store, optionally persisted to a JSON
// snapshot. All exported methods are safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	users map[string]*User
}

func NewStore() *Store {
	return &Store{users: make(map[string]*User)}
}

// EnsureUser returns the user's collections, creating them with default
// quota on first use.
func (s *Store) EnsureUser(userID string) *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureUserLocked(userID)
}

func (s *Store) ensureUserLocked(userID string) *User {
	if u, ok := s.users[userID]; ok {
		return u
	}
	u := &User{
		About: About{
			Kind: "drive#about",
			StorageQuota: StorageQuota{
				Limit:             strconv.FormatInt(DefaultQuotaLimit, 10),
				Usage:             "0",
				UsageInDrive:      "0",
				UsageInDriveTrash: "0",
			},
			CanCreateDrives: true,
			MaxUploadSize:   strconv.FormatInt(DefaultMaxUpload, 10),
			User: AccountUser{
				DisplayName:  fmt.Sprintf("User %s", userID),
				Kind:         "drive#user",
				Me:           true,
				PermissionID: "1234567890",
				EmailAddress: userID + "@example.com",
			},
		},
	}
	s.users[userID] = u
	return u
}

// User returns the user's collections without creating them.
func (s *Store) User(userID string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	return u, ok
}

// Files returns a copy of the user's file list in insertion order.
func (s *Store) Files(userID string) []*File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil
	}
	out := make([]*File, len(u.Files))
	copy(out, u.Files)
	return out
}

// Drives returns a copy of the user's drive list in insertion order.
func (s *Store) Drives(userID string) []*Drive {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil
	}
	out := make([]*Drive, len(u.Drives))
	copy(out, u.Drives)
	return out
}

// FileByID looks a file up in the user's collection.
func (s *Store) FileByID(userID, fileID string) (*File, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, false
	}
	for _, f := range u.Files {
		if f.ID == fileID {
			return f, true
		}
	}
	return nil, false
}

// DriveByID looks a shared drive up in the user's collection.
func (s *Store) DriveByID(userID, driveID string) (*Drive, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, false
	}
	for _, d := range u.Drives {
		if d.ID == driveID {
			return d, true
		}
	}
	return nil, false
}

// AddFile appends the file to the user's collection.
func (s *Store) AddFile(userID string, f *File) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.ensureUserLocked(userID)
	u.Files = append(u.Files, f)
}

// RemoveFile removes the file and returns it, or false if absent.
func (s *Store) RemoveFile(userID, fileID string) (*File, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, false
	}
	for i, f := range u.Files {
		if f.ID == fileID {
			u.Files = append(u.Files[:i], u.Files[i+1:]...)
			return f, true
		}
	}
	return nil, false
}

// AddDrive appends the drive to the user's collection.
func (s *Store) AddDrive(userID string, d *Drive) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.ensureUserLocked(userID)
	u.Drives = append(u.Drives, d)
}

// RemoveDrive removes the drive and returns it, or false if absent.
func (s *Store) RemoveDrive(userID, driveID string) (*Drive, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, false
	}
	for i, d := range u.Drives {
		if d.ID == driveID {
			u.Drives = append(u.Drives[:i], u.Drives[i+1:]...)
			return d, true
		}
	}
	return nil, false
}

// ChildFiles returns the ids of files listing parentID among their parents.
func (s *Store) ChildFiles(userID, parentID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil
	}
	var ids []string
	for _, f := range u.Files {
		for _, p := range f.Parents {
			if p == parentID {
				ids = append(ids, f.ID)
				break
			}
		}
	}
	return ids
}

// Quota returns the user's limit and current usage in bytes.
func (s *Store) Quota(userID string) (limit, usage int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return 0, 0
	}
	limit, _ = strconv.ParseInt(u.About.StorageQuota.Limit, 10, 64)
	usage, _ = strconv.ParseInt(u.About.StorageQuota.Usage, 10, 64)
	return limit, usage
}

// UpdateUsage adjusts the user's quota usage by sizeDiff, clamping at zero.
func (s *Store) UpdateUsage(userID string, sizeDiff int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return
	}
	usage, _ := strconv.ParseInt(u.About.StorageQuota.Usage, 10, 64)
	usage += sizeDiff
	if usage < 0 {
		usage = 0
	}
	str := strconv.FormatInt(usage, 10)
	u.About.StorageQuota.Usage = str
	u.About.StorageQuota.UsageInDrive = str
}

type snapshot struct {
	Users map[string]*User `json:"users"`
}

// Load replaces the store contents with the JSON snapshot at path.
func (s *Store) Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return Wrap(ErrIO, "read snapshot", err)
	}
	var snap snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return Wrap(ErrIO, "decode snapshot", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.Users == nil {
		snap.Users = make(map[string]*User)
	}
	s.users = snap.Users
	return nil
}

// Save writes the store contents to a JSON snapshot at path.
func (s *Store) Save(path string) error {
	s.mu.RLock()
	b, err := json.MarshalIndent(snapshot{Users: s.users}, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return Wrap(ErrIO, "encode snapshot", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return Wrap(ErrIO, "write snapshot", err)
	}
	return nil
}

// Reindex pushes every record into the search index.
func (s *Store) Reindex(ctx context.Context, idx search.Index) error {
	s.mu.RLock()
	var docs []search.Document
	for _, u := range s.users {
		for _, f := range u.Files {
			docs = append(docs, f.Document())
		}
		for _, d := range u.Drives {
			docs = append(docs, d.Document())
		}
	}
	s.mu.RUnlock()
	return idx.Upsert(ctx, docs)
}
