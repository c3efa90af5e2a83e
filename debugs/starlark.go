package debugs

import (
	"fmt"
	"reflect"

	"github.com/reusee/ladder/cells"
	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

func cellValue(c *cells.Cell) starlark.Value {
	switch c.Kind() {
	case cells.KindBool:
		return starlark.Bool(c.Bool())
	case cells.KindUint8, cells.KindUint16, cells.KindUint32, cells.KindUint64:
		return starlark.MakeUint64(c.Uint())
	case cells.KindInt32, cells.KindInt64:
		return starlark.MakeInt64(c.Int())
	case cells.KindFloat64:
		return starlark.Float(c.Float())
	case cells.KindString:
		return starlark.String(c.String())
	}
	return starlark.None
}

// fromStarlarkValue renders v the way operators type values in.
func fromStarlarkValue(v starlark.Value) string {
	if s, ok := starlark.AsString(v); ok {
		return s
	}
	return v.String()
}

// toStarlarkValue converts status records and plain Go values.
func toStarlarkValue(v any) starlark.Value {
	switch v := v.(type) {
	case nil:
		return starlark.None
	case starlark.Value:
		return v
	case *cells.Cell:
		return cellValue(v)
	case bool:
		return starlark.Bool(v)
	case string:
		return starlark.String(v)
	}

	value := reflect.ValueOf(v)
	switch value.Kind() {

	case reflect.Bool:
		return starlark.Bool(value.Bool())

	case reflect.String:
		return starlark.String(value.String())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(value.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return starlark.MakeUint64(value.Uint())

	case reflect.Float32, reflect.Float64:
		return starlark.Float(value.Float())

	case reflect.Slice, reflect.Array:
		elems := make([]starlark.Value, value.Len())
		for i := range elems {
			elems[i] = toStarlarkValue(value.Index(i).Interface())
		}
		return starlark.NewList(elems)

	case reflect.Map:
		d := starlark.NewDict(value.Len())
		iter := value.MapRange()
		for iter.Next() {
			d.SetKey(
				toStarlarkValue(iter.Key().Interface()),
				toStarlarkValue(iter.Value().Interface()),
			)
		}
		return d

	case reflect.Struct:
		typ := value.Type()
		d := starlark.NewDict(typ.NumField())
		for i := range typ.NumField() {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			d.SetKey(
				starlark.String(field.Name),
				toStarlarkValue(value.Field(i).Interface()),
			)
		}
		return d

	case reflect.Pointer, reflect.Interface:
		elem := value.Elem()
		if !elem.IsValid() {
			return starlark.None
		}
		return toStarlarkValue(elem.Interface())

	case reflect.Func:
		return starlarkutil.MakeFunc("", value.Interface())

	}

	panic(fmt.Errorf("unsupported type for starlark: %T", v))
}
