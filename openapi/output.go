package openapi

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatOf detects the output format by the file extension.
func FormatOf(fileName string) (Format, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", errors.Errorf("unsupported schema file extension %q, expected .json, .yaml or .yml", filepath.Ext(fileName))
	}
}

func Marshal(doc *openapi3.T, format Format) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal openapi schema")
	} else if format == JSON {
		return append(data, '\n'), nil
	}
	// the json keeps the key order of the document, yaml nodes keep it too
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, errors.Wrap(err, "convert openapi schema to yaml")
	}
	blockStyle(&node)
	out, err := yaml.Marshal(&node)
	if err != nil {
		return nil, errors.Wrap(err, "marshal openapi schema to yaml")
	}
	return out, nil
}

func blockStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		blockStyle(child)
	}
}

func Write(fileName string, doc *openapi3.T) error {
	format, err := FormatOf(fileName)
	if err != nil {
		return err
	}
	data, err := Marshal(doc, format)
	if err != nil {
		return err
	}
	const userWriteOtherRead = fs.FileMode(0644)
	if err := os.WriteFile(fileName, data, userWriteOtherRead); err != nil {
		return errors.Wrapf(err, "write openapi schema %s", fileName)
	}
	return nil
}
