package models

// StoredAsset describes an object held by an asset store.
type StoredAsset struct {
	Key         string
	ContentType string
	Size        int64
	ETag        string
}
