package service

import "errors"

// DriveImage is one image file found in a Google Drive folder.
type DriveImage struct {
	FileID   string
	FileName string
	URL      string
}

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	ListFolderImages(folderID string) ([]DriveImage, error)
	DownloadImage(fileID string) ([]byte, error)
}

// DisabledDriveService stands in when no Drive credentials are configured.
type DisabledDriveService struct{}

var _ DriveServiceInterface = DisabledDriveService{}

func (DisabledDriveService) ListFolderImages(folderID string) ([]DriveImage, error) {
	return nil, errors.New("drive access is not configured")
}

func (DisabledDriveService) DownloadImage(fileID string) ([]byte, error) {
	return nil, errors.New("drive access is not configured")
}
