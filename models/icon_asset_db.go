package models

// IconAsset represents one icon artwork file found in the Drive folder.
type IconAsset struct {
	IconID      string `json:"iconId"`
	Name        string `json:"name"`
	SizeMM      float64 `json:"sizeMm"`
	Finish      string `json:"finish"` // "matte" or "glossy"
	FileName    string `json:"fileName"`
	DriveFileID string `json:"driveFileId"`
	ImageURL    string `json:"imageUrl"`
}

// IconAssetDB represents an icon asset row for database operations.
type IconAssetDB struct {
	ID          int
	IconID      string
	Name        string
	SizeMM      float64
	Finish      string
	DriveFileID string
	ImageURL    string
	Status      string
	CreatedAt   string
}
