// Package assets loads game content (rooms, dialogues and native scripts)
// into a resource storage.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/vovakirdan/tui-overworld/internal/dialog"
	"github.com/vovakirdan/tui-overworld/internal/engine"
	"github.com/vovakirdan/tui-overworld/internal/overworld"
	"github.com/vovakirdan/tui-overworld/internal/resources"
	"github.com/vovakirdan/tui-overworld/internal/scripts"
)

//go:embed all:data
var embedded embed.FS

// Default returns the content shipped with the binary.
func Default() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Open returns the content under dir, or the embedded content when dir is empty.
func Open(dir string) (fs.FS, error) {
	if dir == "" {
		return Default(), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("assets: %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}

// Load reads rooms/*.yaml and dialogs/**/*.{yaml,lua} from fsys and
// registers every native script. Rooms are stored by manifest name, dialogs
// by their path under dialogs/ without the extension.
func Load(s *resources.Storage, fsys fs.FS) error {
	if err := loadRooms(s, fsys); err != nil {
		return err
	}
	if err := loadDialogs(s, fsys); err != nil {
		return err
	}
	for _, p := range scripts.List() {
		fn, err := scripts.Lookup(p)
		if err != nil {
			return err
		}
		resources.Put[engine.Script](s, p, fn)
	}
	return nil
}

func loadRooms(s *resources.Storage, fsys fs.FS) error {
	return walk(fsys, "rooms", func(p string, data []byte) error {
		if path.Ext(p) != ".yaml" {
			return nil
		}
		tmpl, err := overworld.ParseRoom(data)
		if err != nil {
			return fmt.Errorf("assets: %s: %w", p, err)
		}
		if resources.Has[overworld.RoomTemplate](s, tmpl.Name) {
			return fmt.Errorf("assets: %s: duplicate room %q", p, tmpl.Name)
		}
		resources.Put(s, tmpl.Name, tmpl)
		return nil
	})
}

func loadDialogs(s *resources.Storage, fsys fs.FS) error {
	return walk(fsys, "dialogs", func(p string, data []byte) error {
		ext := path.Ext(p)
		name := strings.TrimSuffix(strings.TrimPrefix(p, "dialogs/"), ext)

		var (
			d   *dialog.Dialog
			err error
		)
		switch ext {
		case ".yaml":
			d, err = dialog.ParseYAML(name, data)
		case ".lua":
			d, err = dialog.ParseLua(name, string(data))
		default:
			return nil
		}
		if err != nil {
			return fmt.Errorf("assets: %s: %w", p, err)
		}
		if resources.Has[*dialog.Dialog](s, name) {
			return fmt.Errorf("assets: %s: duplicate dialog %q", p, name)
		}
		resources.Put(s, name, d)
		resources.Put[engine.Script](s, name, d)
		return nil
	})
}

// walk calls fn for every regular file under root. A missing root is empty.
func walk(fsys fs.FS, root string, fn func(p string, data []byte) error) error {
	err := fs.WalkDir(fsys, root, func(p string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if e.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("assets: %w", err)
		}
		return fn(p, data)
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
