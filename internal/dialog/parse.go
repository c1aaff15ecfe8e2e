package dialog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Shopify/go-lua"
	"gopkg.in/yaml.v3"
)

// ErrEmpty is returned for dialogues without frames.
var ErrEmpty = errors.New("dialog has no frames")

// yamlDialog is the on-disk YAML layout of a dialogue.
type yamlDialog struct {
	Name    string      `yaml:"name"`
	Advance string      `yaml:"advance,omitempty"`
	Frames  []yamlFrame `yaml:"frames"`
}

type yamlFrame struct {
	Speaker string `yaml:"speaker,omitempty"`
	Text    string `yaml:"text"`
	Await   string `yaml:"await,omitempty"`
	Raise   string `yaml:"raise,omitempty"`
}

// ParseYAML parses a dialogue manifest. name is used when the file does not
// declare one.
func ParseYAML(name string, data []byte) (*Dialog, error) {
	var yd yamlDialog
	if err := yaml.Unmarshal(data, &yd); err != nil {
		return nil, fmt.Errorf("dialog: yaml unmarshal: %w", err)
	}
	if yd.Name == "" {
		yd.Name = name
	}

	d := &Dialog{Name: yd.Name, Advance: yd.Advance}
	for _, f := range yd.Frames {
		d.Frames = append(d.Frames, Frame{
			Speaker: f.Speaker,
			Text:    strings.TrimSpace(f.Text),
			Await:   f.Await,
			Raise:   f.Raise,
		})
	}
	if len(d.Frames) == 0 {
		return nil, fmt.Errorf("dialog: %s: %w", d.Name, ErrEmpty)
	}
	return d, nil
}

// ParseLua builds a dialogue by running a Lua chunk. The chunk describes the
// dialogue with three functions:
//
//	advance(event)               -- default event that advances frames
//	say(speaker, text [, await]) -- append a frame
//	raise(event)                 -- raise event when the last frame is shown
func ParseLua(name, src string) (*Dialog, error) {
	d := &Dialog{Name: name}

	l := lua.NewState()
	lua.OpenLibraries(l)

	l.Register("advance", func(l *lua.State) int {
		d.Advance = lua.CheckString(l, 1)
		return 0
	})
	l.Register("say", func(l *lua.State) int {
		d.Frames = append(d.Frames, Frame{
			Speaker: lua.CheckString(l, 1),
			Text:    lua.CheckString(l, 2),
			Await:   lua.OptString(l, 3, ""),
		})
		return 0
	})
	l.Register("raise", func(l *lua.State) int {
		event := lua.CheckString(l, 1)
		if len(d.Frames) == 0 {
			lua.Errorf(l, "raise(%q) before any say()", event)
		}
		d.Frames[len(d.Frames)-1].Raise = event
		return 0
	})

	if err := lua.DoString(l, src); err != nil {
		return nil, fmt.Errorf("dialog: %s: lua: %w", name, err)
	}
	if len(d.Frames) == 0 {
		return nil, fmt.Errorf("dialog: %s: %w", name, ErrEmpty)
	}
	return d, nil
}
