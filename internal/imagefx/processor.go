package imagefx

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

const (
	maxDimension   = 2048
	thumbnailWidth = 400
)

// Process 把原始图片转成主图和缩略图两份 PNG。
// 主图限制在 2048x2048 内（小图不放大），缩略图固定 400 宽等比缩放
func Process(data []byte) (main, thumb []byte, err error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("decode image: %w", err)
	}

	fitted := img
	if img.Bounds().Dx() > maxDimension || img.Bounds().Dy() > maxDimension {
		fitted = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}
	thumbImg := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)

	var mainBuf, thumbBuf bytes.Buffer
	if err := imaging.Encode(&mainBuf, fitted, imaging.PNG); err != nil {
		return nil, nil, fmt.Errorf("encode main image: %w", err)
	}
	if err := imaging.Encode(&thumbBuf, thumbImg, imaging.PNG); err != nil {
		return nil, nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return mainBuf.Bytes(), thumbBuf.Bytes(), nil
}
