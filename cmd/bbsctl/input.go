package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/guttosm/bbs-service/internal/importer"
	"gopkg.in/yaml.v3"
)

// scheduleFile is a YAML or JSON item file. A bare list of items is accepted as well.
type scheduleFile struct {
	Items   []model.BarGroupInput `json:"items" yaml:"items"`
	Options *model.Options        `json:"options,omitempty" yaml:"options,omitempty"`
}

// input is what calculate reads from --input. Batch is set for sheets so engine
// errors can be reported against sheet rows.
type input struct {
	Items   []model.BarGroupInput
	Options model.Options
	Batch   *importer.Batch
}

var errNoItems = errors.New("input holds no bar groups")

func loadInput(path string) (*input, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".csv", ".xlsx":
		format, err := importer.FormatOf(path)
		if err != nil {
			return nil, err
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		batch, err := importer.Read(f, format)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &input{Items: batch.Items, Batch: batch}, nil

	case ".json", ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var doc *scheduleFile
		if ext == ".json" {
			doc, err = decodeJSONFile(data)
		} else {
			doc, err = decodeYAMLFile(data)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if len(doc.Items) == 0 {
			return nil, fmt.Errorf("%s: %w", path, errNoItems)
		}
		in := &input{Items: doc.Items}
		if doc.Options != nil {
			in.Options = *doc.Options
		}
		return in, nil
	}

	return nil, fmt.Errorf("%s: unsupported input format %q (want csv, xlsx, yaml or json)", path, ext)
}

func decodeJSONFile(data []byte) (*scheduleFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []model.BarGroupInput
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
		return &scheduleFile{Items: items}, nil
	}

	var doc scheduleFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func decodeYAMLFile(data []byte) (*scheduleFile, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return &scheduleFile{}, nil
	}

	node := root.Content[0]
	if node.Kind == yaml.SequenceNode {
		var items []model.BarGroupInput
		if err := node.Decode(&items); err != nil {
			return nil, err
		}
		return &scheduleFile{Items: items}, nil
	}

	var doc scheduleFile
	if err := node.Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// loadOptions reads a YAML (or JSON) options file.
func loadOptions(path string) (model.Options, error) {
	var opts model.Options
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, err
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}
