package common

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/testutil"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

func Test_ProcessImage(t *testing.T) {
	ctx := testutil.MockContext()
	req := testutil.NewMultipartRequest("/create/", map[string]string{"text": "x"},
		"image", "small.png", testutil.GeneratePNG(100, 50))
	ctx = xcontext.WithHTTPRequest(ctx, req)

	obj, err := ProcessImage(ctx, "image", "posts")
	require.NoError(t, err)
	require.Equal(t, "image/png", obj.Mime)
	require.Equal(t, "posts", obj.Prefix)
	require.Equal(t, "small.png", obj.FileName)

	img, err := png.Decode(bytes.NewReader(obj.Data))
	require.NoError(t, err)
	require.Equal(t, 100, img.Bounds().Dx())
}

func Test_ProcessImage_Downscale(t *testing.T) {
	ctx := testutil.MockContext()
	req := testutil.NewMultipartRequest("/create/", nil,
		"image", "wide.png", testutil.GeneratePNG(2000, 100))
	ctx = xcontext.WithHTTPRequest(ctx, req)

	obj, err := ProcessImage(ctx, "image", "posts")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(obj.Data))
	require.NoError(t, err)
	require.Equal(t, 960, img.Bounds().Dx())
	require.Equal(t, 48, img.Bounds().Dy())
}

func Test_ProcessImage_NoFile(t *testing.T) {
	ctx := testutil.MockContext()
	ctx = xcontext.WithHTTPRequest(ctx, testutil.NewFormRequest("/create/", map[string]string{"text": "x"}))

	obj, err := ProcessImage(ctx, "image", "posts")
	require.NoError(t, err)
	require.Nil(t, obj)
}

func Test_ProcessImage_NotAnImage(t *testing.T) {
	ctx := testutil.MockContext()
	req := testutil.NewMultipartRequest("/create/", nil, "image", "a.txt", []byte("plain text"))
	ctx = xcontext.WithHTTPRequest(ctx, req)

	_, err := ProcessImage(ctx, "image", "posts")
	require.Error(t, err)
	require.True(t, errorx.Is(err, errorx.BadRequest))
}

func Test_sanitizeFileName(t *testing.T) {
	require.Equal(t, "a_b.png", sanitizeFileName("a b.png"))
	require.Equal(t, "evil.png", sanitizeFileName("../../evil.png"))
	require.Equal(t, "x.png", sanitizeFileName(`C:\dir\x.png`))
}
