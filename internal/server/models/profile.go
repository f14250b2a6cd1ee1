// Package models defines the server-side data shapes shared by the
// repositories, the asset stores and the profile services.
package models

import "time"

// ProfileFields are the user-editable profile attributes. Values are kept
// exactly as submitted; Age in particular is never coerced to a number.
type ProfileFields struct {
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Address    string `json:"address" validate:"required"`
	Profession string `json:"profession" validate:"required"`
	Age        string `json:"age" validate:"required"`
}

// ProfileRecord is a persisted profile document.
//
// OwnerID is the identity key the record is looked up by; Email comes from
// the identity token and is not user-editable. ImageRef is the durable
// locator of the profile image at the time the record was written.
type ProfileRecord struct {
	ID      string `json:"-"`
	OwnerID string `json:"ownerId"`
	ProfileFields
	Email     string    `json:"email"`
	ImageRef  string    `json:"imageRef"`
	CreatedAt time.Time `json:"-"`
}

// ProfileView is the read-path result: the stored record with ImageRef
// replaced by a freshly resolved reference.
//
// ImageErr is set when the image could not be resolved; the record is
// still returned and ImageRef keeps the stored value.
type ProfileView struct {
	Profile  *ProfileRecord
	ImageErr error
}
