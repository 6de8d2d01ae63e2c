//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// tourDocument has three sections: start, features and pricing
const tourDocument = `---
title: Product Tour
---

## Start {#start}

Welcome to the tour.

## Features {#features}

### Fast {.animate-on-scroll data-parallax=0.3}

Snaps between sections.

## Pricing {#pricing}

Free for everyone.
`

// CreateTestWorkspace creates a temporary directory for documents and config
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteDocument writes a markdown file into the workspace
func (tf *TUITestFramework) WriteDocument(name, content string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	path := filepath.Join(tf.workspace, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	return path, os.WriteFile(path, []byte(content), 0644)
}

// WriteConfig writes .sectionsnap.toml into the workspace
func (tf *TUITestFramework) WriteConfig(content string) (string, error) {
	return tf.WriteDocument(".sectionsnap.toml", content)
}

// StartTour writes the tour document and opens it at target, which may
// carry a #fragment
func (tf *TUITestFramework) StartTour(target string, args ...string) error {
	if _, err := tf.CreateTestWorkspace(); err != nil {
		return err
	}
	if _, err := tf.WriteDocument("tour.md", tourDocument); err != nil {
		return err
	}
	return tf.StartApp(append([]string{target}, args...)...)
}
