package convert

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"artboard-wallpaper/internal/utils"

	"github.com/mauserzjeh/dxt"
	"github.com/pierrec/lz4/v4"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var ErrUnsupportedTexture = errors.New("unsupported texture")

// Single-channel formats stored in the .tex header. Everything else is told
// apart by payload size.
const (
	texFormatRG88 = 8
	texFormatR8   = 9
)

// Mip headers beyond these limits are rejected before anything is allocated.
const (
	maxTexDimension = 16384
	maxTexPixels    = 64 << 20
)

func readInt(r io.Reader) (uint32, error) {
	var v uint32
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

// readMagic reads an 8-byte tag and its NUL terminator.
func readMagic(r io.Reader) (string, error) {
	b := make([]byte, 9)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(bytes.Trim(b, "\x00")), nil
}

type texReader struct {
	r   io.Reader
	err error
}

func (t *texReader) int() uint32 {
	if t.err != nil {
		return 0
	}
	v, err := readInt(t.r)
	t.err = err
	return v
}

func (t *texReader) magic() string {
	if t.err != nil {
		return ""
	}
	s, err := readMagic(t.r)
	t.err = err
	return s
}

// DecodeTex decodes the first mip level of a TEXV0005 texture.
func DecodeTex(data []byte) (image.Image, error) {
	t := &texReader{r: bytes.NewReader(data)}

	if magic := t.magic(); t.err == nil && magic != "TEXV0005" {
		return nil, fmt.Errorf("%w: invalid magic %q", ErrUnsupportedTexture, magic)
	}
	t.magic() // TEXI0001

	format := t.int()
	t.int() // flags
	t.int() // texture width
	t.int() // texture height
	imgW := t.int()
	imgH := t.int()
	t.int()

	container := t.magic()
	imageCount := t.int()
	if container == "TEXB0003" {
		t.int() // free image format
	}
	if t.err != nil {
		return nil, fmt.Errorf("read tex header: %w", t.err)
	}
	utils.Debug("Texture: format %d, %dx%d, container %s", format, imgW, imgH, container)

	if imageCount == 0 {
		return nil, fmt.Errorf("%w: no image in texture", ErrUnsupportedTexture)
	}
	if mips := t.int(); t.err == nil && mips == 0 {
		return nil, fmt.Errorf("%w: no mip levels", ErrUnsupportedTexture)
	}
	mW := t.int()
	mH := t.int()
	var isLZ4 bool
	var decompressedSize uint32
	if container != "TEXB0001" {
		isLZ4 = t.int() == 1
		decompressedSize = t.int()
	}
	dataSize := t.int()
	if t.err != nil {
		return nil, fmt.Errorf("read mip header: %w", t.err)
	}
	if mW == 0 || mH == 0 || mW > maxTexDimension || mH > maxTexDimension ||
		uint64(mW)*uint64(mH) > maxTexPixels || int(dataSize) > len(data) {
		return nil, fmt.Errorf("%w: bad mip %dx%d with %d bytes", ErrUnsupportedTexture, mW, mH, dataSize)
	}
	rgba := int(mW) * int(mH) * 4
	payload := make([]byte, dataSize)
	if _, err := io.ReadFull(t.r, payload); err != nil {
		return nil, fmt.Errorf("read mip data: %w", err)
	}

	if isLZ4 {
		if decompressedSize == 0 || int(decompressedSize) > rgba {
			return nil, fmt.Errorf("%w: lz4 size %d for a %dx%d mip", ErrUnsupportedTexture, decompressedSize, mW, mH)
		}
		utils.Debug("Texture: decompressing LZ4 %d -> %d", dataSize, decompressedSize)
		out := make([]byte, decompressedSize)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		payload = out[:n]
	}

	pix, err := decodePixels(payload, format, mW, mH)
	if err != nil {
		return nil, err
	}
	img := &image.NRGBA{
		Pix:    pix,
		Stride: int(mW * 4),
		Rect:   image.Rect(0, 0, int(mW), int(mH)),
	}
	if imgW == 0 || imgH == 0 || imgW > mW || imgH > mH {
		return img, nil
	}
	return img.SubImage(image.Rect(0, 0, int(imgW), int(imgH))), nil
}

func decodePixels(data []byte, format, mipW, mipH uint32) ([]byte, error) {
	w, h := int(mipW), int(mipH)
	blocks := ((w + 3) / 4) * ((h + 3) / 4)
	rgba := w * h * 4
	size := len(data)

	var pix []byte
	var err error
	switch {
	case format == texFormatR8 && size == rgba/4:
		pix = make([]byte, rgba)
		for i, v := range data {
			pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3] = v, v, v, 255
		}
	case format == texFormatRG88 && size == rgba/2:
		pix = make([]byte, rgba)
		for i := 0; i < w*h; i++ {
			lum, alpha := data[i*2], data[i*2+1]
			pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3] = lum, lum, lum, alpha
		}
	case size == rgba:
		pix = data
	case size == blocks*16:
		// DXT3 payloads share the block size; the colour data decodes the same.
		pix, err = dxt.DecodeDXT5(data, uint(w), uint(h))
	case size == blocks*8:
		pix, err = dxt.DecodeDXT1(data, uint(w), uint(h))
	default:
		return nil, fmt.Errorf("%w: format %d with %d bytes for %dx%d", ErrUnsupportedTexture, format, size, w, h)
	}
	if err != nil {
		return nil, err
	}
	if len(pix) < rgba {
		return nil, fmt.Errorf("%w: decoded %d bytes for %dx%d", ErrUnsupportedTexture, len(pix), w, h)
	}
	return pix[:rgba], nil
}

// DecodeImage picks a decoder from the file name: .tex goes through
// DecodeTex, anything else through the registered image codecs.
func DecodeImage(name string, data []byte) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(name), ".tex") {
		return DecodeTex(data)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedTexture, name)
		}
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	utils.Debug("Decoded %s image %s (%dx%d)", format, name, img.Bounds().Dx(), img.Bounds().Dy())
	return img, nil
}

// LoadImage reads and decodes an image file.
func LoadImage(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeImage(path, data)
}
