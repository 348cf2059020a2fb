package fractal

import (
	"encoding/json"
	"fmt"

	"FractalGenerator/misc"
)

// FileExtension is appended to parameter files saved without it.
const FileExtension = ".yafgen"

// Save writes the parameters to fileName as indented json and returns the path written.
func (p *Parameters) Save(fileName string) (string, error) {
	fileName = misc.WithExtension(fileName, FileExtension)
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("unable to encode parameters: %w", err)
	}
	if _, err = misc.WriteFile(fileName, data); err != nil {
		return "", err
	}
	return fileName, nil
}

// Load reads a parameter file. Fields missing from the file keep their defaults.
func Load(fileName string) (Parameters, error) {
	data, err := misc.ReadFile(fileName)
	if err != nil {
		return Parameters{}, err
	}
	p := NewParameters()
	if err = json.Unmarshal(data, &p); err != nil {
		return Parameters{}, fmt.Errorf("unable to decode %s: %w", fileName, err)
	}
	if err = p.Verify(); err != nil {
		return Parameters{}, fmt.Errorf("%s: %w", fileName, err)
	}
	return p, nil
}
