package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"keypad-studio/models"
	"keypad-studio/utils"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveService lists icon artwork uploaded to a shared Google Drive folder.
// Engineering drops insert artwork there following the icon filename
// convention; the sync service pulls it into the asset table.
type DriveService struct {
	client *drive.Service
}

// NewDriveService creates a DriveService from a Service Account JSON file.
func NewDriveService(credentialsPath string) (*DriveService, error) {
	ctx := context.Background()
	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &DriveService{client: driveService}, nil
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// ListIconAssets lists all image files in a Drive folder and parses their
// filenames into icon assets. Files that do not follow the naming convention
// are skipped with a warning.
func (ds *DriveService) ListIconAssets(folderID string) ([]models.IconAsset, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", folderID)

	var allFiles []*drive.File
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType)")
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}
		allFiles = append(allFiles, r.Files...)
		pageToken = r.NextPageToken
		if pageToken == "" {
			break
		}
	}

	imageMimeTypes := map[string]bool{
		"image/png":  true,
		"image/jpeg": true,
		"image/jpg":  true,
	}

	var assets []models.IconAsset
	for _, file := range allFiles {
		if !imageMimeTypes[strings.ToLower(file.MimeType)] {
			continue
		}
		parsed, err := utils.ParseIconFileName(file.Name)
		if err != nil {
			log.Printf("warning: failed to parse filename %s: %v", file.Name, err)
			continue
		}
		parsed.DriveFileID = file.Id
		parsed.FileName = file.Name
		parsed.ImageURL = fmt.Sprintf("https://drive.google.com/uc?id=%s", file.Id)
		assets = append(assets, *parsed)
	}
	return assets, nil
}
