package pixmap

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// PackedPixmap is a run-length encoded pixmap.
//
// Each row is a sequence of runs (count byte in 1..255 followed by one
// pixel) terminated by a zero byte. Rows are stored top-down.
type PackedPixmap struct {
	Data      []byte
	Width     int
	Height    int
	PixFormat PixelFormat
}

// Save saves PackedPixmap
func (packedPixmap *PackedPixmap) Save(fileName string) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	if err = packedPixmap.Write(file); err != nil {
		return err
	}

	return file.Sync()
}

// Write writes the header (format, width, height as little-endian
// uint32) followed by the packed data.
func (packedPixmap *PackedPixmap) Write(w io.Writer) error {
	header := []uint32{
		uint32(packedPixmap.PixFormat),
		uint32(packedPixmap.Width),
		uint32(packedPixmap.Height),
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}

	_, err := w.Write(packedPixmap.Data)
	return err
}

// Unpack unpacks PackedPixmap
func (packedPixmap *PackedPixmap) Unpack() (*Pixmap, error) {
	pixSize := GetPixelSize(packedPixmap.PixFormat)
	if pixSize == 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, packedPixmap.PixFormat)
	}

	unpackedDataSize := packedPixmap.Width * packedPixmap.Height * pixSize
	unpackedData := make([]byte, 0, unpackedDataSize)

	rowCount := 0
	rowSize := 0
	for pos := 0; pos < len(packedPixmap.Data); {
		pixCount := int(packedPixmap.Data[pos])
		pos++
		if pixCount == 0 {
			// New row
			if rowSize != packedPixmap.Width {
				return nil, fmt.Errorf("%w: row %d has %d pixels", ErrInvalidData, rowCount, rowSize)
			}

			rowCount++
			rowSize = 0
			continue
		}
		if pos+pixSize > len(packedPixmap.Data) {
			return nil, fmt.Errorf("%w: truncated run", ErrInvalidData)
		}
		pix := packedPixmap.Data[pos : pos+pixSize]
		for i := 0; i < pixCount; i++ {
			unpackedData = append(unpackedData, pix...)
		}

		rowSize += pixCount
		pos += pixSize
	}

	if rowCount != packedPixmap.Height || rowSize != 0 {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrInvalidData, rowCount, packedPixmap.Height)
	}

	pixmap := &Pixmap{
		Data:        unpackedData,
		Width:       packedPixmap.Width,
		Height:      packedPixmap.Height,
		PixFormat:   packedPixmap.PixFormat,
		BytePerLine: packedPixmap.Width * pixSize,
	}
	return pixmap, nil
}

// LoadPackedPixmap loads a PackedPixmap saved with Save
func LoadPackedPixmap(fileName string) (*PackedPixmap, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadPackedPixmap(file)
}

// ReadPackedPixmap reads a PackedPixmap written with Write and validates
// its run structure.
func ReadPackedPixmap(r io.Reader) (*PackedPixmap, error) {
	header := [3]uint32{}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, err
	}

	pixFormat := PixelFormat(header[0])
	if !pixFormat.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFormat, header[0])
	}
	width := int(header[1])
	if width > MaxDimension {
		return nil, fmt.Errorf("%w: width %d", ErrInvalidDimensions, width)
	}
	height := int(header[2])
	if height > MaxDimension {
		return nil, fmt.Errorf("%w: height %d", ErrInvalidDimensions, height)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if width*height > 0 && len(data) == 0 {
		return nil, fmt.Errorf("%w: no pixel data", ErrInvalidData)
	}

	pixSize := GetPixelSize(pixFormat)
	rowCount := 0
	rowSize := 0
	for pos := 0; pos < len(data); {
		pixCount := data[pos]
		if pixCount == 0 {
			// New row
			if rowSize != width {
				return nil, fmt.Errorf("%w: row %d has %d pixels", ErrInvalidData, rowCount, rowSize)
			}

			rowCount++
			rowSize = 0

			pos++
			continue
		}

		rowSize += int(pixCount)
		pos += 1 + pixSize
	}

	if rowSize != 0 {
		return nil, fmt.Errorf("%w: unterminated row %d", ErrInvalidData, rowCount)
	}
	if rowCount != height {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrInvalidData, rowCount, height)
	}
	packedPixmap := &PackedPixmap{
		Data:      data,
		Width:     width,
		Height:    height,
		PixFormat: pixFormat,
	}
	return packedPixmap, nil
}

// PackPixmap packs Pixmap. Bottom-up pixmaps are packed in visual order.
func PackPixmap(pixmap *Pixmap) (*PackedPixmap, error) {
	pixSize := GetPixelSize(pixmap.PixFormat)
	if pixSize == 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, pixmap.PixFormat)
	}

	packedPixmap := &PackedPixmap{
		Width:     pixmap.Width,
		Height:    pixmap.Height,
		PixFormat: pixmap.PixFormat,
	}

	for y := 0; y < pixmap.Height; y++ {
		row := pixmap.Row(y)

		for pixOffset := 0; pixOffset <= len(row)-pixSize; {
			packedPixel := row[pixOffset : pixOffset+pixSize]

			var eqPixCount byte = 1
			pixOffset += pixSize
			for pixOffset <= len(row)-pixSize && eqPixCount < 0xFF {
				if !bytes.Equal(packedPixel, row[pixOffset:pixOffset+pixSize]) {
					break
				}

				eqPixCount++
				pixOffset += pixSize
			}

			packedPixmap.Data = append(packedPixmap.Data, eqPixCount)
			packedPixmap.Data = append(packedPixmap.Data, packedPixel...)
		}
		packedPixmap.Data = append(packedPixmap.Data, 0x00) // New row
	}

	return packedPixmap, nil
}
