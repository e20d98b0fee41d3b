package media_storage

import (
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/config"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

// ThumbnailTransformation crops project images to a 16:9 card.
const ThumbnailTransformation = "c_fill,g_auto,w_800,h_450"

type cloudinaryImages struct {
	cld    *cloudinary.Cloudinary
	logger logger.Logger
}

// NewImageURLBuilder serves project images through Cloudinary fetch URLs
// when a cloud name is configured, and unchanged otherwise.
func NewImageURLBuilder(cfg config.Config, log logger.Logger) (service.ImageURLBuilder, error) {
	if cfg.Cloudinary.CloudName == "" {
		log.Info("Cloudinary not configured, serving images as-is")
		return passthroughImages{}, nil
	}

	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.ApiKey,
		cfg.Cloudinary.ApiSecret,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot init cloudinary: %w", err)
	}

	log.Info("Cloudinary image delivery enabled", zap.String("cloud_name", cfg.Cloudinary.CloudName))
	return &cloudinaryImages{cld: cld, logger: log}, nil
}

func (a *cloudinaryImages) Thumbnail(src string) string {
	if !isRemote(src) {
		return src
	}

	img, err := a.cld.Image(src)
	if err != nil {
		a.logger.Warn("Init cloudinary asset failed", zap.String("src", src), zap.Error(err))
		return src
	}
	img.DeliveryType = api.Fetch
	img.Transformation = ThumbnailTransformation

	out, err := img.String()
	if err != nil {
		a.logger.Warn("Build thumbnail URL failed", zap.String("src", src), zap.Error(err))
		return src
	}
	return out
}

type passthroughImages struct{}

func (passthroughImages) Thumbnail(src string) string { return src }

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}
