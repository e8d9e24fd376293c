package assets

import (
	"path/filepath"
	"strings"
	"time"
)

// Asset is one uploaded image the section forms can pick from.
type Asset struct {
	AssetID   string    `json:"assetId" bson:"assetid"`
	FileName  string    `json:"fileName" bson:"filename"`
	URL       string    `json:"url" bson:"url"`
	ThumbURL  string    `json:"thumbUrl" bson:"thumburl"`
	Size      int64     `json:"size" bson:"size"`
	Width     int       `json:"width" bson:"width"`
	Height    int       `json:"height" bson:"height"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

const uploadDir = "static/uploads"
const thumbDir = "static/uploads/thumbs"

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
}

var allowedMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/bmp":  true,
}

func extensionAllowed(name string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}
