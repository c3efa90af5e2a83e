package configs

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/reusee/dscope"
)

// CueFork overrides every Configurable type in scope whose config path is set.
func CueFork(scope dscope.Scope, loader Loader) (ret dscope.Scope, err error) {
	var defs []any
	for t := range scope.AllTypes() {
		if !t.Implements(configurableType) {
			continue
		}
		path := reflect.Zero(t).Interface().(Configurable).ConfigExpr()
		ptr := reflect.New(t)
		if err := loader.AssignFirst(path, ptr.Interface()); err != nil {
			if errors.Is(err, ErrValueNotFound) {
				continue
			}
			return scope, fmt.Errorf("config %s: %w", path, err)
		}
		defs = append(defs, ptr.Elem().Interface())
	}
	if len(defs) == 0 {
		return scope, nil
	}
	return scope.Fork(defs...), nil
}
