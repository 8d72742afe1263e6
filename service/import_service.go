package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"stride-store/models"
	"stride-store/repository"
	"stride-store/utils"
)

// ImportService turns the images of a shared Drive folder into pending
// products awaiting completion (price, category, sizes) by an admin.
type ImportService struct {
	drive    DriveServiceInterface
	products repository.ProductRepositoryInterface
	log      logrus.FieldLogger
}

// NewImportService creates a new ImportService
func NewImportService(drive DriveServiceInterface, products repository.ProductRepositoryInterface, log logrus.FieldLogger) *ImportService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ImportService{
		drive:    drive,
		products: products,
		log:      log,
	}
}

// ImportFromFolder scans a Drive folder and inserts one pending product per
// new image. Files already imported (matched by Drive file id) are skipped,
// as are files whose name does not parse as BRAND-PRODUCT NAME.
func (s *ImportService) ImportFromFolder(ctx context.Context, folderID string) (*models.ImportProductsResponse, error) {
	images, err := s.drive.ListFolderImages(folderID)
	if err != nil {
		return nil, err
	}

	stats := &models.ImportProductsResponse{Total: len(images)}

	for _, img := range images {
		parsed, err := utils.ParseProductFileName(img.FileName)
		if err != nil {
			s.log.WithError(err).WithField("file", img.FileName).Warn("import: skipping unparsable filename")
			continue
		}

		exists, err := s.products.ExistsByDriveFileID(ctx, img.FileID)
		if err != nil {
			return nil, err
		}
		if exists {
			stats.Skipped++
			continue
		}

		product := &models.Product{
			Name:        parsed.Name,
			Brand:       parsed.Brand,
			Image:       img.URL,
			DriveFileID: img.FileID,
		}
		if err := s.products.InsertPending(ctx, product); err != nil {
			return nil, err
		}
		stats.Inserted++

		s.log.WithFields(logrus.Fields{
			"product": parsed.Name,
			"brand":   parsed.Brand,
			"file":    img.FileName,
		}).Info("import: pending product created")
	}

	return stats, nil
}
