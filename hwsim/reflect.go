// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Updater is the interface that custom components built using reflection must
// implement. See MakePart.
//
type Updater interface {
	Update(c *Circuit)
}

// pinField maps a struct field to a pin or bus.
type pinField struct {
	index int
	name  string
	input bool
	bus   int // bus width, 0 for a single pin
}

// MakePart wraps an Updater into a custom component.
// Input/output pins are identified by field tags.
//
// The field tag must be `hw:"in"` or `hw:"out"` to identify input and output
// pins. By default, the pin name is the field name in lowercase. A specific
// pin name can be forced by adding it in the tag: `hw:"in,pin_name"`.
//
// Pin fields hold pin numbers: single pins must be of type int and buses
// arrays of int. Untagged fields are left alone and can hold the component's
// state; each mounted instance gets its own zero value of the struct.
//
func MakePart(u Updater) *PartSpec {
	typ := reflect.TypeOf(u)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if k := typ.Kind(); k != reflect.Struct {
		panic(errors.Errorf("unsupported type %q for %q", k, typ.Name()))
	}
	if !reflect.PtrTo(typ).Implements(reflect.TypeOf((*Updater)(nil)).Elem()) {
		panic(errors.Errorf("*%s does not implement Updater", typ.Name()))
	}

	pins := pinFields(typ)
	sp := &PartSpec{Name: strings.ToUpper(typ.Name())}
	for _, p := range pins {
		names := []string{p.name}
		if p.bus > 0 {
			names = names[:0]
			for i := 0; i < p.bus; i++ {
				names = append(names, BusPinName(p.name, i))
			}
		}
		if p.input {
			sp.Inputs = append(sp.Inputs, names...)
		} else {
			sp.Outputs = append(sp.Outputs, names...)
		}
	}
	sp.Mount = func(s *Socket) []Component {
		v := reflect.New(typ)
		e := v.Elem()
		for _, p := range pins {
			f := e.Field(p.index)
			if p.bus == 0 {
				f.SetInt(int64(s.Pin(p.name)))
				continue
			}
			for i, n := range s.Bus(p.name, p.bus) {
				f.Index(i).SetInt(int64(n))
			}
		}
		return []Component{v.Interface().(Updater).Update}
	}
	return sp
}

func pinFields(typ reflect.Type) []pinField {
	var pins []pinField
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("hw")
		if !ok {
			continue
		}
		p := pinField{index: i, name: strings.ToLower(f.Name)}
		tv := strings.Split(tag, ",")
		if len(tv) > 2 {
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}
		if len(tv) == 2 && tv[1] != "" {
			p.name = tv[1]
		}
		switch tv[0] {
		case "in":
			p.input = true
		case "out":
		default:
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}
		switch ft := f.Type; {
		case ft.Kind() == reflect.Int:
		case ft.Kind() == reflect.Array && ft.Elem().Kind() == reflect.Int && ft.Len() > 0:
			p.bus = ft.Len()
		default:
			panic(errors.Errorf("unsupported type %q for field %q in %q", ft, f.Name, typ.Name()))
		}
		pins = append(pins, p)
	}
	return pins
}
