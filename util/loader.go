package util

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/nvr-ai/ocr-prep/images"
)

// ImageFile represents an image file.
type ImageFile struct {
	// Path is the path to the image file.
	Path string
	// Data is the raw bytes of the image file.
	Data []byte
	// Format is the format implied by the file extension.
	Format images.ImageFormat
}

// LoadImageFile reads a single image file.
//
// Arguments:
// - path: Path to the image file.
//
// Returns:
// - ImageFile with the raw bytes.
// - error if the extension is not a supported image type or reading fails.
func LoadImageFile(path string) (ImageFile, error) {
	format, ok := images.ParseFormat(filepath.Ext(path))
	if !ok {
		return ImageFile{}, errors.Errorf("unsupported image extension: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ImageFile{}, errors.Wrapf(err, "failed to read %s", path)
	}
	return ImageFile{Path: path, Data: data, Format: format}, nil
}

// LoadDirectoryImageFiles reads all image files from a directory.
//
// Subdirectories and files with other extensions are skipped. Files are
// returned sorted by name so the batch order is deterministic.
//
// Arguments:
// - dir: Directory path containing image files.
//
// Returns:
// - []ImageFile: Slice of ImageFile, each containing the raw bytes of an image file.
// - error: Error if loading fails.
func LoadDirectoryImageFiles(dir string) ([]ImageFile, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		if _, ok := images.ParseFormat(filepath.Ext(file.Name())); ok {
			names = append(names, file.Name())
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	loaded := make([]ImageFile, 0, len(names))
	for _, name := range names {
		f, err := LoadImageFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, f)
	}

	return loaded, nil
}

// LoadPath loads path as a single file, or every image in it when it is a
// directory.
func LoadPath(path string) ([]ImageFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return LoadDirectoryImageFiles(path)
	}
	f, err := LoadImageFile(path)
	if err != nil {
		return nil, err
	}
	return []ImageFile{f}, nil
}
