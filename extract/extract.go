// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package extract unpacks an uploaded update package archive into the
// shape the publish orchestrator consumes. Expected layout:
//
//	bundle.js       the compiled code payload (required)
//	assets/...      asset files, nested directories allowed (optional)
//	metadata.json   declared update metadata (optional)
package extract

import (
	"archive/zip"
	"encoding/json"
	"io"
	"path"
	"strings"

	"github.com/otaflow-dev/otaflow/utils"
	"github.com/pkg/errors"
)

const bundleFileName = "bundle.js"
const metadataFileName = "metadata.json"
const assetsPrefix = "assets/"

var ErrMissingBundle = errors.New("update package does not contain bundle.js")

// Metadata mirrors metadata.json. Every field is optional here; the
// orchestrator merges these with the request's form fields and rejects
// what is still missing afterwards.
type Metadata struct {
	Version            string   `json:"version"`
	Channel            string   `json:"channel"`
	RuntimeVersion     string   `json:"runtimeVersion"`
	Platforms          []string `json:"platforms"`
	TargetVersionRange string   `json:"targetVersionRange"`
}

type Asset struct {
	// Name is the path relative to the assets/ directory, e.g.
	// "icons/home.png". Clients address assets by this key.
	Name string
	Data []byte
	Hash string
}

type Package struct {
	Bundle     []byte
	BundleHash string
	Assets     []Asset
	Metadata   Metadata
}

// Open reads and fully decodes an update package archive. Contents are
// held in memory; nothing is written to disk, so there is no extraction
// directory to clean up.
func Open(zipPath string) (Package, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return Package{}, errors.Wrap(err, "invalid or corrupted update package")
	}
	defer r.Close()

	return decode(&r.Reader)
}

func decode(r *zip.Reader) (Package, error) {
	var pkg Package

	for _, f := range r.File {
		name := path.Clean(f.Name)
		if f.FileInfo().IsDir() || strings.HasPrefix(name, "..") || path.IsAbs(name) {
			continue
		}

		switch {
		case name == bundleFileName:
			data, err := readEntry(f)
			if err != nil {
				return Package{}, errors.Wrap(err, "could not read bundle.js")
			}
			pkg.Bundle = data
			pkg.BundleHash = utils.HashBytes(data)

		case name == metadataFileName:
			data, err := readEntry(f)
			if err != nil {
				return Package{}, errors.Wrap(err, "could not read metadata.json")
			}
			if err := json.Unmarshal(data, &pkg.Metadata); err != nil {
				return Package{}, errors.Wrap(err, "invalid metadata.json")
			}

		case strings.HasPrefix(name, assetsPrefix):
			data, err := readEntry(f)
			if err != nil {
				return Package{}, errors.Wrapf(err, "could not read asset %s", name)
			}
			pkg.Assets = append(pkg.Assets, Asset{
				Name: strings.TrimPrefix(name, assetsPrefix),
				Data: data,
				Hash: utils.HashBytes(data),
			})
		}
	}

	if pkg.Bundle == nil {
		return Package{}, ErrMissingBundle
	}

	return pkg, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
