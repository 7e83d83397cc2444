package catalog

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/media"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/sirupsen/logrus"
)

const logoFolder = "airlines"

type MediaStore interface {
	Save(fh *multipart.FileHeader, folder, name string) (string, error)
	Delete(url string) error
}

// AirlineService is the airline CRUD plus logo management.
type AirlineService struct {
	*Service[domain.Airline]
	airlines repository.AirlineStore
	media    MediaStore
	log      logrus.FieldLogger
}

func NewAirlineService(airlines repository.AirlineStore, media MediaStore, log logrus.FieldLogger, opts ...Option) *AirlineService {
	return &AirlineService{
		Service:  NewService[domain.Airline](airlines, ValidateAirline, opts...),
		airlines: airlines,
		media:    media,
		log:      log,
	}
}

// UploadLogo stores the file, points the airline at it and removes the
// previous logo. A failed update leaves the old logo in place.
func (s *AirlineService) UploadLogo(ctx context.Context, id int64, fh *multipart.FileHeader) (*domain.Airline, error) {
	if fh == nil {
		return nil, domain.NewValidationError("logo", "no file was submitted")
	}
	airline, err := s.airlines.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.media.Save(fh, logoFolder, airline.Name)
	if err != nil {
		if errors.Is(err, media.ErrTooLarge) || errors.Is(err, media.ErrUnsupportedType) || errors.Is(err, media.ErrEmptyFile) {
			return nil, domain.NewValidationError("logo", err.Error())
		}
		return nil, err
	}

	previous, err := s.airlines.SetLogo(ctx, id, url)
	if err != nil {
		if derr := s.media.Delete(url); derr != nil {
			s.log.WithError(derr).WithField("logo", url).Warn("failed to remove orphaned logo")
		}
		return nil, err
	}
	if previous != nil && *previous != url {
		if err := s.media.Delete(*previous); err != nil {
			s.log.WithError(err).WithField("logo", *previous).Warn("failed to remove previous logo")
		}
	}

	airline.Logo = &url
	return airline, nil
}
