package proto

import (
	"google.golang.org/protobuf/types/known/timestamppb"
)

type ProfileFields struct {
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Address    string `json:"address,omitempty"`
	Profession string `json:"profession,omitempty"`
	Age        string `json:"age,omitempty"`
}

func (x *ProfileFields) GetFirstName() string {
	if x != nil {
		return x.FirstName
	}
	return ""
}

func (x *ProfileFields) GetLastName() string {
	if x != nil {
		return x.LastName
	}
	return ""
}

func (x *ProfileFields) GetAddress() string {
	if x != nil {
		return x.Address
	}
	return ""
}

func (x *ProfileFields) GetProfession() string {
	if x != nil {
		return x.Profession
	}
	return ""
}

func (x *ProfileFields) GetAge() string {
	if x != nil {
		return x.Age
	}
	return ""
}

// Image carries the image bytes inline. Data is base64 on the wire.
type Image struct {
	Name        string `json:"name,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Data        []byte `json:"data,omitempty"`
}

func (x *Image) GetName() string {
	if x != nil {
		return x.Name
	}
	return ""
}

func (x *Image) GetContentType() string {
	if x != nil {
		return x.ContentType
	}
	return ""
}

func (x *Image) GetData() []byte {
	if x != nil {
		return x.Data
	}
	return nil
}

type CreateProfileRequest struct {
	Fields *ProfileFields `json:"fields,omitempty"`
	Image  *Image         `json:"image,omitempty"`
}

func (x *CreateProfileRequest) GetFields() *ProfileFields {
	if x != nil {
		return x.Fields
	}
	return nil
}

func (x *CreateProfileRequest) GetImage() *Image {
	if x != nil {
		return x.Image
	}
	return nil
}

type ReplaceImageRequest struct {
	Image *Image `json:"image,omitempty"`
}

func (x *ReplaceImageRequest) GetImage() *Image {
	if x != nil {
		return x.Image
	}
	return nil
}

type GetProfileRequest struct{}

type Profile struct {
	Id        string                 `json:"id,omitempty"`
	OwnerId   string                 `json:"ownerId,omitempty"`
	Fields    *ProfileFields         `json:"fields,omitempty"`
	Email     string                 `json:"email,omitempty"`
	ImageRef  string                 `json:"imageRef,omitempty"`
	CreatedAt *timestamppb.Timestamp `json:"createdAt,omitempty"`
}

func (x *Profile) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

func (x *Profile) GetOwnerId() string {
	if x != nil {
		return x.OwnerId
	}
	return ""
}

func (x *Profile) GetFields() *ProfileFields {
	if x != nil {
		return x.Fields
	}
	return nil
}

func (x *Profile) GetEmail() string {
	if x != nil {
		return x.Email
	}
	return ""
}

func (x *Profile) GetImageRef() string {
	if x != nil {
		return x.ImageRef
	}
	return ""
}

func (x *Profile) GetCreatedAt() *timestamppb.Timestamp {
	if x != nil {
		return x.CreatedAt
	}
	return nil
}

type GetProfileResponse struct {
	Profile *Profile `json:"profile,omitempty"`
	// ImageError is set when the stored image could not be resolved.
	ImageError string `json:"imageError,omitempty"`
}

func (x *GetProfileResponse) GetProfile() *Profile {
	if x != nil {
		return x.Profile
	}
	return nil
}

func (x *GetProfileResponse) GetImageError() string {
	if x != nil {
		return x.ImageError
	}
	return ""
}

// ProfileEvent is one message of a CreateProfile or ReplaceImage stream.
// Progress events come first; the last event carries the result.
type ProfileEvent struct {
	Progress float64  `json:"progress,omitempty"`
	Profile  *Profile `json:"profile,omitempty"`
	ImageRef string   `json:"imageRef,omitempty"`
}

func (x *ProfileEvent) GetProgress() float64 {
	if x != nil {
		return x.Progress
	}
	return 0
}

func (x *ProfileEvent) GetProfile() *Profile {
	if x != nil {
		return x.Profile
	}
	return nil
}

func (x *ProfileEvent) GetImageRef() string {
	if x != nil {
		return x.ImageRef
	}
	return ""
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status,omitempty"`
}

func (x *PingResponse) GetStatus() string {
	if x != nil {
		return x.Status
	}
	return ""
}
