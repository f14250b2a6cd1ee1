package services

import (
	"path"

	"github.com/dmitrijs2005/profilesync/internal/server/config"
)

// OwnerKey is where an owner's profile image lives. The read and
// replace paths always use it.
func OwnerKey(ownerID string) string {
	return "profileImages/" + ownerID
}

// FilenameKey derives a key from the uploaded file's name. Distinct owners
// uploading files with the same name share an object under this scheme.
// An unusable name yields "", which the uploader rejects.
func FilenameKey(name string) string {
	base := path.Base(name)
	if base == "." || base == "/" || base == ".." {
		return ""
	}
	return "images/" + base
}

// KeyScheme picks the key the create path uploads to.
type KeyScheme string

func (k KeyScheme) CreateKey(ownerID, fileName string) string {
	if k == config.KeySchemeFilename {
		return FilenameKey(fileName)
	}
	return OwnerKey(ownerID)
}
