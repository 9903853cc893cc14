package docgen

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goliatone/go-docgen/pkg/archive"
)

//go:embed assets/starter
var starterAssets embed.FS

//go:embed assets/starter-manifest.yaml
var starterManifest []byte

// StarterAssetsFS returns the members of the minimal template package
// (mimetype, content.xml, styles.xml, META-INF/manifest.xml) rooted at
// the member paths.
func StarterAssetsFS() fs.FS {
	sub, err := fs.Sub(starterAssets, "assets/starter")
	if err != nil {
		return starterAssets
	}
	return sub
}

// StarterManifest returns a manifest skeleton describing the fields the
// starter template renders.
func StarterManifest() []byte {
	return append([]byte(nil), starterManifest...)
}

// WriteStarterTemplate writes a fillable template package to path. The
// body greets {{ name }} under a {{ title }} heading, so the package is
// immediately usable as a conversion source.
func WriteStarterTemplate(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("docgen: create template directory: %w", err)
		}
	}

	stage, err := os.MkdirTemp("", "docgen-starter-*")
	if err != nil {
		return fmt.Errorf("docgen: create staging directory: %w", err)
	}
	defer os.RemoveAll(stage)

	if err := stageStarterAssets(stage); err != nil {
		return fmt.Errorf("docgen: stage starter assets: %w", err)
	}
	if err := archive.Repack(stage, path); err != nil {
		return fmt.Errorf("docgen: pack starter template: %w", err)
	}
	return nil
}

func stageStarterAssets(stage string) error {
	fsys := StarterAssetsFS()
	return fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(stage, filepath.FromSlash(name))
		if entry.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		return os.WriteFile(target, content, 0o644)
	})
}
