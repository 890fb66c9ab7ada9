// Package interp is the tree-walking evaluator behind the sandbox. It
// executes the closed syntax tree from pkg/script against an explicit, finite
// environment: there is no ambient scope, module table or reflection path
// for a script to reach beyond the bindings the caller installs.
package interp

import (
	"fmt"
	"strconv"
	"strings"
)

// Tag discriminates runtime values.
type Tag int

const (
	TagNone Tag = iota
	TagBool
	TagInt
	TagFloat
	TagStr
	TagList
	TagTuple
	TagMap
	TagFunc
	TagBuiltin
)

func (t Tag) String() string {
	switch t {
	case TagNone:
		return "none"
	case TagBool:
		return "bool"
	case TagInt:
		return "int"
	case TagFloat:
		return "float"
	case TagStr:
		return "string"
	case TagList:
		return "list"
	case TagTuple:
		return "tuple"
	case TagMap:
		return "map"
	case TagFunc:
		return "function"
	case TagBuiltin:
		return "builtin"
	default:
		return "unknown"
	}
}

// Value is one script runtime value.
type Value struct {
	Tag  Tag
	Data any
}

// None is the none value.
var None = Value{Tag: TagNone}

func Bool(b bool) Value { return Value{Tag: TagBool, Data: b} }
func Int(n int64) Value { return Value{Tag: TagInt, Data: n} }
func Float(f float64) Value { return Value{Tag: TagFloat, Data: f} }
func Str(s string) Value { return Value{Tag: TagStr, Data: s} }

// ListObject backs list values so element assignment mutates in place.
type ListObject struct {
	Elems []Value
}

func List(elems []Value) Value {
	return Value{Tag: TagList, Data: &ListObject{Elems: elems}}
}

func Tuple(elems []Value) Value {
	return Value{Tag: TagTuple, Data: elems}
}

// MapObject preserves insertion order of keys.
type MapObject struct {
	keys  []Value
	vals  []Value
	index map[string]int
}

func NewMap() *MapObject {
	return &MapObject{index: make(map[string]int)}
}

func MapValue(m *MapObject) Value { return Value{Tag: TagMap, Data: m} }

// mapKey encodes a key value for lookup. Only scalar keys are hashable.
func mapKey(v Value) (string, error) {
	switch v.Tag {
	case TagNone:
		return "n:", nil
	case TagBool:
		return fmt.Sprintf("b:%v", v.Data.(bool)), nil
	case TagInt:
		return "i:" + strconv.FormatInt(v.Data.(int64), 10), nil
	case TagFloat:
		return "f:" + strconv.FormatFloat(v.Data.(float64), 'g', -1, 64), nil
	case TagStr:
		return "s:" + v.Data.(string), nil
	default:
		return "", fmt.Errorf("unhashable map key type: %s", v.Tag)
	}
}

func (m *MapObject) Set(key, val Value) error {
	k, err := mapKey(key)
	if err != nil {
		return err
	}
	if i, ok := m.index[k]; ok {
		m.vals[i] = val
		return nil
	}
	m.index[k] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, val)
	return nil
}

func (m *MapObject) Get(key Value) (Value, bool, error) {
	k, err := mapKey(key)
	if err != nil {
		return None, false, err
	}
	i, ok := m.index[k]
	if !ok {
		return None, false, nil
	}
	return m.vals[i], true, nil
}

func (m *MapObject) Len() int { return len(m.keys) }

// Keys returns keys in insertion order.
func (m *MapObject) Keys() []Value { return m.keys }

// CallArgs carries evaluated arguments into a builtin.
type CallArgs struct {
	Args   []Value
	Kwargs map[string]Value
}

// Builtin is a host function exposed to scripts. The capability API is the
// only producer.
type Builtin struct {
	Name string
	Fn   func(call CallArgs) (Value, error)
}

func BuiltinValue(b *Builtin) Value { return Value{Tag: TagBuiltin, Data: b} }

// Truthy follows the usual scripting rules: none and zero and empty
// containers are false.
func Truthy(v Value) bool {
	switch v.Tag {
	case TagNone:
		return false
	case TagBool:
		return v.Data.(bool)
	case TagInt:
		return v.Data.(int64) != 0
	case TagFloat:
		return v.Data.(float64) != 0
	case TagStr:
		return v.Data.(string) != ""
	case TagList:
		return len(v.Data.(*ListObject).Elems) > 0
	case TagTuple:
		return len(v.Data.([]Value)) > 0
	case TagMap:
		return v.Data.(*MapObject).Len() > 0
	default:
		return true
	}
}

// Equal is deep, type-strict equality except that ints compare to floats
// numerically.
func Equal(a, b Value) bool {
	if a.Tag == TagInt && b.Tag == TagFloat {
		return float64(a.Data.(int64)) == b.Data.(float64)
	}
	if a.Tag == TagFloat && b.Tag == TagInt {
		return a.Data.(float64) == float64(b.Data.(int64))
	}
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case TagNone:
		return true
	case TagBool:
		return a.Data.(bool) == b.Data.(bool)
	case TagInt:
		return a.Data.(int64) == b.Data.(int64)
	case TagFloat:
		return a.Data.(float64) == b.Data.(float64)
	case TagStr:
		return a.Data.(string) == b.Data.(string)
	case TagList:
		return equalSlices(a.Data.(*ListObject).Elems, b.Data.(*ListObject).Elems)
	case TagTuple:
		return equalSlices(a.Data.([]Value), b.Data.([]Value))
	case TagMap:
		am, bm := a.Data.(*MapObject), b.Data.(*MapObject)
		if am.Len() != bm.Len() {
			return false
		}
		for i, k := range am.keys {
			bv, ok, err := bm.Get(k)
			if err != nil || !ok || !Equal(am.vals[i], bv) {
				return false
			}
		}
		return true
	default:
		return a.Data == b.Data
	}
}

func equalSlices(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Display renders a value the way the interpolated-string form does.
func Display(v Value) string {
	switch v.Tag {
	case TagNone:
		return "none"
	case TagBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case TagInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case TagFloat:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case TagStr:
		return v.Data.(string)
	case TagList:
		return displaySeq("[", "]", v.Data.(*ListObject).Elems)
	case TagTuple:
		return displaySeq("(", ")", v.Data.([]Value))
	case TagMap:
		m := v.Data.(*MapObject)
		var b strings.Builder
		b.WriteString("{")
		for i, k := range m.keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(Display(k))
			b.WriteString(": ")
			b.WriteString(Display(m.vals[i]))
		}
		b.WriteString("}")
		return b.String()
	case TagFunc:
		return "<function>"
	case TagBuiltin:
		return "<builtin " + v.Data.(*Builtin).Name + ">"
	default:
		return "<unknown>"
	}
}

func displaySeq(open, close string, elems []Value) string {
	var b strings.Builder
	b.WriteString(open)
	for i, e := range elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(Display(e))
	}
	b.WriteString(close)
	return b.String()
}
