package proto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestJSONCodec_Registered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, "json", c.Name())
}

func TestJSONCodec_PresentationRoundTrip(t *testing.T) {
	c := jsonCodec{}
	created := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	in := &GetPresentationResponse{Presentation: &Presentation{
		PublicID:  "deck0001",
		Theme:     "black.css",
		CreatedAt: timestamppb.New(created),
		Slides:    []*Slide{{ID: 1, Content: "blob", Order: 1}},
	}}

	b, err := c.Marshal(in)
	require.NoError(t, err)

	var out GetPresentationResponse
	require.NoError(t, c.Unmarshal(b, &out))
	p := out.GetPresentation()
	require.NotNil(t, p)
	assert.Equal(t, "deck0001", p.PublicID)
	assert.True(t, p.CreatedAt.AsTime().Equal(created))
	require.Len(t, p.Slides, 1)
	assert.Equal(t, "blob", p.Slides[0].Content)
}

func TestSlideInput_OmitsMissingID(t *testing.T) {
	b, err := jsonCodec{}.Marshal(&SlideInput{Content: "x", Order: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"content":"x","order":2}`, string(b))
}

func TestNilGetters(t *testing.T) {
	var p *PingResponse
	assert.Equal(t, "", p.GetStatus())
	var g *GetPresentationResponse
	assert.Nil(t, g.GetPresentation())
}
