// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

// settings holds the host's configuration variables. Each field is exposed
// to the set command under its lower-cased name.
type settings struct {
	HexMode         bool   `doc:"unprefixed numbers are hexadecimal"`
	ShowCycles      bool   `doc:"show the cycle counter with registers"`
	MemDumpBytes    int    `doc:"default number of memory bytes to dump"`
	MaxStepLines    int    `doc:"max register lines shown while stepping"`
	NextMemDumpAddr uint16 `doc:"address of next memory dump"`
}

func newSettings() *settings {
	return &settings{
		ShowCycles:   true,
		MemDumpBytes: 64,
		MaxStepLines: 20,
	}
}

type setting struct {
	name  string
	field int
	doc   string
}

var (
	settingsTree = prefixtree.New[*setting]()
	settingsList []*setting
)

func init() {
	t := reflect.TypeFor[settings]()
	for i := range t.NumField() {
		f := t.Field(i)
		s := &setting{name: f.Name, field: i, doc: f.Tag.Get("doc")}
		settingsList = append(settingsList, s)
		settingsTree.Add(strings.ToLower(f.Name), s)
	}
}

// lookup finds the setting matching the shortest unambiguous prefix 'key'
// and returns it along with its settable field value.
func (s *settings) lookup(key string) (*setting, reflect.Value, error) {
	st, err := settingsTree.FindValue(strings.ToLower(key))
	switch {
	case errors.Is(err, prefixtree.ErrPrefixAmbiguous):
		return nil, reflect.Value{}, fmt.Errorf("setting '%s' is ambiguous", key)
	case err != nil:
		return nil, reflect.Value{}, fmt.Errorf("setting '%s' not found", key)
	}
	return st, reflect.ValueOf(s).Elem().Field(st.field), nil
}

// Set parses 'value' according to the type of the setting named by 'key'
// and stores it. It returns the full name of the updated setting.
func (s *settings) Set(key, value string) (string, error) {
	st, v, err := s.lookup(key)
	if err != nil {
		return "", err
	}

	switch v.Kind() {
	case reflect.Bool:
		b, err := stringToBool(value)
		if err != nil {
			return "", err
		}
		v.SetBool(b)

	case reflect.Int:
		n, err := parseNumber(value, s.HexMode)
		if err != nil {
			return "", err
		}
		v.SetInt(int64(n))

	case reflect.Uint16:
		n, err := parseNumber(value, s.HexMode)
		if err != nil {
			return "", err
		}
		if n > 0xffff {
			return "", fmt.Errorf("value '%s' out of range for %s", value, st.name)
		}
		v.SetUint(uint64(n))
	}
	return st.name, nil
}

// Display writes one line per setting showing its value and description.
func (s *settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for _, st := range settingsList {
		v := value.Field(st.field)
		var str string
		if v.Kind() == reflect.Uint16 {
			str = fmt.Sprintf("$%04X", v.Uint())
		} else {
			str = fmt.Sprint(v.Interface())
		}
		fmt.Fprintf(w, "    %-16s %-6s  (%s)\n", st.name, str, st.doc)
	}
}
