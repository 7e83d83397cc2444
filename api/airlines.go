package api

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/Domenick1991/airport/internal/access"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/query"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type AirlineUseCase interface {
	catalog.CatalogUseCase[domain.Airline]
	UploadLogo(ctx context.Context, id int64, fh *multipart.FileHeader) (*domain.Airline, error)
}

// AirlineHandler is the catalog handler plus the logo upload action.
type AirlineHandler struct {
	*CatalogHandler[domain.Airline, airlineRequest, *airlineRequest]
	service AirlineUseCase
}

func NewAirlineHandler(service AirlineUseCase, pages query.PageConfig) *AirlineHandler {
	return &AirlineHandler{
		CatalogHandler: NewCatalogHandler[domain.Airline, airlineRequest](access.Airlines, service, pages),
		service:        service,
	}
}

func (h *AirlineHandler) Handlers() map[access.Operation]gin.HandlerFunc {
	handlers := h.CatalogHandler.Handlers()
	handlers[access.UploadImage] = h.uploadImage
	return handlers
}

// uploadImage replaces the airline logo with a multipart "logo" file.
func (h *AirlineHandler) uploadImage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("logo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			respond(c, domain.NewValidationError("logo", "no file was submitted"))
			return
		}
		respond(c, err)
		return
	}
	airline, err := h.service.UploadLogo(c.Request.Context(), id, fh)
	if err != nil {
		respond(c, err)
		return
	}
	c.JSON(http.StatusOK, airline)
}
