package proto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestCodec_Registered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, CodecName, c.Name())
}

func TestCodec_ProfileEventWireShape(t *testing.T) {
	c := encoding.GetCodec(CodecName)

	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	b, err := c.Marshal(&ProfileEvent{Profile: &Profile{
		OwnerId:   "u1",
		Fields:    &ProfileFields{FirstName: "Ann", Age: "30"},
		CreatedAt: timestamppb.New(created),
	}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"profile":{"ownerId":"u1","fields":{"firstName":"Ann","age":"30"},"createdAt":{"seconds":1735787045}}}`, string(b))

	var got ProfileEvent
	require.NoError(t, c.Unmarshal(b, &got))
	assert.Equal(t, created, got.GetProfile().GetCreatedAt().AsTime())
}

func TestCodec_ImageDataIsBase64(t *testing.T) {
	c := encoding.GetCodec(CodecName)

	b, err := c.Marshal(&Image{Name: "me.jpg", Data: []byte{0xff, 0xd8, 0xff}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"me.jpg","data":"/9j/"}`, string(b))
}

func TestGetters_NilSafe(t *testing.T) {
	var p *Profile
	assert.Empty(t, p.GetFields().GetFirstName())
	assert.Nil(t, p.GetCreatedAt())

	var ev *ProfileEvent
	assert.Zero(t, ev.GetProgress())
	assert.Empty(t, ev.GetImageRef())
}
