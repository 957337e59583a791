package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "upload/ab/car.jpg", strings.NewReader("photo")))

	rc, err := s.Get(ctx, "upload/ab/car.jpg")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "photo", string(data))

	require.NoError(t, s.Delete(ctx, "upload/ab/car.jpg"))
	_, err = s.Get(ctx, "upload/ab/car.jpg")
	assert.Error(t, err)

	// Deleting twice is fine.
	assert.NoError(t, s.Delete(ctx, "upload/ab/car.jpg"))
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	err = s.Save(context.Background(), "../escape.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestImageProcessorFit(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 200))
	for x := 0; x < 400; x++ {
		src.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var in bytes.Buffer
	require.NoError(t, png.Encode(&in, src))

	out, err := NewImageProcessor().Fit(&in, 200, 200)
	require.NoError(t, err)

	img, err := imaging.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
}

func TestImageProcessorRejectsGarbage(t *testing.T) {
	_, err := NewImageProcessor().Fit(strings.NewReader("not an image"), 10, 10)
	assert.Error(t, err)
}
