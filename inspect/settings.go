// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspect

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

// settings holds the REPL's adjustable display preferences.
type settings struct {
	WordsPerPage   int  `doc:"number of words shown per 'words' page"`
	DisasmCount    int  `doc:"default instruction count for 'disasm'"`
	NextWordsAddr  int  `doc:"address of next 'words' page"`
	NextDisasmAddr int  `doc:"address of next 'disasm' decode"`
	PauseOnPage    bool `doc:"stored only; no command pauses between pages"`
}

func newSettings() *settings {
	return &settings{
		WordsPerPage: 20,
		DisasmCount:  10,
		PauseOnPage:  true,
	}
}

type settingsField struct {
	name  string
	index int
	kind  reflect.Kind
	typ   reflect.Type
	doc   string
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

func init() {
	t := reflect.TypeOf(settings{})
	settingsFields = make([]settingsField, t.NumField())
	for i := 0; i < len(settingsFields); i++ {
		f := t.Field(i)
		doc, _ := f.Tag.Lookup("doc")
		settingsFields[i] = settingsField{
			name:  f.Name,
			index: i,
			kind:  f.Type.Kind(),
			typ:   f.Type,
			doc:   doc,
		}
		settingsTree.Add(strings.ToLower(f.Name), &settingsFields[i])
	}
}

func (s *settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for i, f := range settingsFields {
		v := value.Field(i)
		fmt.Fprintf(w, "    %-16s %-8v (%s)\n", f.name, v, f.doc)
	}
}

func (s *settings) Kind(key string) reflect.Kind {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return reflect.Invalid
	}
	return f.kind
}

func (s *settings) Set(key string, value any) error {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return err
	}

	vIn := reflect.ValueOf(value)
	if !vIn.Type().ConvertibleTo(f.typ) {
		return errors.New("invalid type")
	}

	vOut := reflect.ValueOf(s).Elem().Field(f.index).Addr().Elem()
	vOut.Set(vIn.Convert(f.typ))
	return nil
}
