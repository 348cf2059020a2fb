package misc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var ErrNoFileName = errors.New("no filename supplied")

func ReadFile(fileName string) ([]byte, error) {
	if fileName == "" {
		return nil, ErrNoFileName
	}
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", fileName, err)
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", fileName, err)
	}
	return fileBytes, nil
}

// WriteFile creates or truncates fileName, creating missing parent directories.
func WriteFile(fileName string, contents []byte) (int, error) {
	if fileName == "" {
		return 0, ErrNoFileName
	}
	if dir := filepath.Dir(fileName); dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return 0, fmt.Errorf("unable to create folder %s: %w", dir, err)
		}
	}
	file, err := os.Create(fileName)
	if err != nil {
		return 0, fmt.Errorf("unable to create file %s: %w", fileName, err)
	}
	bytesWritten, err := file.Write(contents)
	if err != nil {
		file.Close()
		return bytesWritten, fmt.Errorf("unable to write file %s: %w", fileName, err)
	}
	if err = file.Close(); err != nil {
		return bytesWritten, fmt.Errorf("unable to close file %s: %w", fileName, err)
	}
	return bytesWritten, nil
}

// WithExtension appends ext to fileName unless it already ends with it.
func WithExtension(fileName string, ext string) string {
	if filepath.Ext(fileName) == ext {
		return fileName
	}
	return fileName + ext
}
