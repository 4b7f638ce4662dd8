package common

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/nfnt/resize"
	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/storage"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

// ProcessImage reads the uploaded image in the form field key and downscales
// it to the configured maximum width. It returns nil if the field is absent.
// Invalid images yield an errorx.BadRequest error whose message is suitable
// for the form.
func ProcessImage(ctx context.Context, key, prefix string) (*storage.UploadObject, error) {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return nil, nil
	}

	cfg := xcontext.Configs(ctx).File
	file, header, err := req.FormFile(key)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}

		return nil, errorx.New(errorx.BadRequest, "Cannot read the uploaded file")
	}
	defer file.Close()

	if cfg.MaxSize > 0 && header.Size > int64(cfg.MaxSize)<<20 {
		return nil, errorx.New(errorx.BadRequest, "The file is larger than %d MB", cfg.MaxSize)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Cannot read the uploaded file")
	}

	mime := http.DetectContentType(data)
	img, err := decodeImg(mime, bytes.NewReader(data))
	if err != nil {
		return nil, errorx.New(errorx.BadRequest,
			"Upload a valid image. The file you uploaded was either not an image or a corrupted image")
	}

	if cfg.MaxImageWidth > 0 && uint(img.Bounds().Dx()) > cfg.MaxImageWidth {
		img = resize.Resize(cfg.MaxImageWidth, 0, img, resize.Lanczos2)
		data, err = encodeImg(mime, img)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot encode image: %v", err)
			return nil, errorx.Unknown
		}
	}

	return &storage.UploadObject{
		Prefix:   prefix,
		FileName: sanitizeFileName(header.Filename),
		Mime:     mime,
		Data:     data,
	}, nil
}

func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)

	if name == "" || name == "." || name == "/" {
		return "image"
	}

	return name
}

func decodeImg(mime string, data io.Reader) (img image.Image, err error) {
	switch mime {
	case "image/jpeg":
		img, err = jpeg.Decode(data)
	case "image/png":
		img, err = png.Decode(data)
	case "image/gif":
		img, err = gif.Decode(data)
	default:
		return nil, fmt.Errorf("unsupported image type %s", mime)
	}

	return img, err
}

func encodeImg(mime string, img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)

	var err error
	switch mime {
	case "image/jpeg":
		err = jpeg.Encode(buf, img, nil)
	case "image/png":
		err = png.Encode(buf, img)
	case "image/gif":
		err = gif.Encode(buf, img, nil)
	default:
		return nil, fmt.Errorf("unsupported image type %s", mime)
	}
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
