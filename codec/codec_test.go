package codec_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/codec"
	"github.com/reoring/goshape/dsl"
)

func TestTimeRFC3339_RoundTrip(t *testing.T) {
	ctx := context.Background()
	n := codec.TimeRFC3339()

	got, err := goshape.Decode(ctx, n, "2026-08-29T12:30:00Z")
	require.NoError(t, err)
	ts, ok := got.(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2026, ts.Year())

	enc, err := goshape.Encode(ctx, n, ts)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-29T12:30:00Z", enc)
}

func TestTimeRFC3339_AcceptsNano(t *testing.T) {
	got, err := goshape.Decode(context.Background(), codec.TimeRFC3339(), "2026-08-29T12:30:00.123456789Z")
	require.NoError(t, err)
	ts := got.(time.Time)
	assert.Equal(t, 123456789, ts.Nanosecond())
}

func TestTimeRFC3339_RejectsGarbage(t *testing.T) {
	_, err := goshape.Decode(context.Background(), codec.TimeRFC3339(), "yesterday")
	require.Error(t, err)
	iss, ok := goshape.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, goshape.CodeTransform, iss[0].Code)
}

func TestTimeRFC3339_ValidateSeesTimeValue(t *testing.T) {
	ctx := context.Background()
	n := codec.TimeRFC3339()
	assert.True(t, goshape.Is(ctx, n, time.Now()))
	// Validation runs on the type side, so the wire string does not conform.
	assert.False(t, goshape.Is(ctx, n, "2026-08-29T12:30:00Z"))
}

func TestNumberFromString_RoundTrip(t *testing.T) {
	ctx := context.Background()
	n := codec.NumberFromString()
	got, err := goshape.Decode(ctx, n, "12.5")
	require.NoError(t, err)
	assert.Equal(t, 12.5, got)

	enc, err := goshape.Encode(ctx, n, 12.5)
	require.NoError(t, err)
	assert.Equal(t, "12.5", enc)
}

func TestNumberFromString_Invalid(t *testing.T) {
	_, err := goshape.Decode(context.Background(), codec.NumberFromString(), "12px")
	require.Error(t, err)
}

func TestBase64Bytes_RoundTrip(t *testing.T) {
	ctx := context.Background()
	n := codec.Base64Bytes()
	got, err := goshape.Decode(ctx, n, "aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)

	enc, err := goshape.Encode(ctx, n, []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8=", enc)
}

func TestBase64Bytes_Invalid(t *testing.T) {
	_, err := goshape.Decode(context.Background(), codec.Base64Bytes(), "!!!")
	require.Error(t, err)
}

func TestIdentity(t *testing.T) {
	n := codec.Identity(dsl.String())
	got, err := goshape.Decode(context.Background(), n, "v")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestCodecInsideStruct(t *testing.T) {
	s := dsl.MustStruct(
		dsl.Required("created_at", codec.TimeRFC3339()),
	)
	got, err := goshape.Decode(context.Background(), s, map[string]any{
		"created_at": "2026-01-02T00:00:00Z",
	})
	require.NoError(t, err)
	_, ok := got.(map[string]any)["created_at"].(time.Time)
	assert.True(t, ok)
}
