// Package common contains shared constants and error values used across
// profilesync components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// ProfilesCollection is the document collection holding profile records.
const ProfilesCollection = "users"

// OwnerField is the document field profile records are looked up by.
const OwnerField = "ownerId"
