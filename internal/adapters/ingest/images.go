package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/entities"
	apperrors "github.com/JhoJha/Viajes-Economicos-Chaskiway/pkg/errors"
)

// ImageReader loads the destination-image link CSV.
type ImageReader struct {
	path string
}

// NewImageReader creates an image reader over the given CSV file
func NewImageReader(path string) *ImageReader {
	return &ImageReader{path: path}
}

// Load reads the CSV and returns one image URL per city. When a city appears
// more than once the first URL wins. Rows that are too short or have an empty
// city or URL are skipped.
func (r *ImageReader) Load(ctx context.Context) ([]*entities.DestinationImage, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("image file not found: %s", r.path))
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read image header", err)
	}

	cols, err := columnIndex(header, "city", "image_url")
	if err != nil {
		return nil, err
	}
	cityCol, urlCol := cols[0], cols[1]
	minFields := maxIndex(cols) + 1

	seen := make(map[string]bool)
	skipped := 0
	var images []*entities.DestinationImage
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewInternalError("failed to read image row", err)
		}
		if len(record) < minFields {
			skipped++
			continue
		}

		city := strings.TrimSpace(record[cityCol])
		url := strings.TrimSpace(record[urlCol])
		if city == "" || url == "" {
			continue
		}
		if seen[city] {
			continue
		}
		seen[city] = true
		images = append(images, &entities.DestinationImage{Destination: city, URL: url})
	}

	if skipped > 0 {
		log.Warn().Int("rows", skipped).Msg("skipped malformed image rows")
	}

	log.Info().Int("images", len(images)).Msg("loaded destination images")
	return images, nil
}
